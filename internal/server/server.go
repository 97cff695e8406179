// Package server hosts the page over HTTP: it serves each session's document and turns form
// posts into controller flows.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/controller"
	"github.com/Belphemur/ShowFinder/internal/render"
	"github.com/Belphemur/ShowFinder/internal/session"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "showfinder_session"

// Server hosts one show finder page per browser session.
type Server struct {
	store  *session.Store
	router chi.Router
}

// New creates the page host over store.
func New(store *session.Store) *Server {
	s := &Server{store: store}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", s.handlePage)
	r.Post("/search", s.handleSearch)
	r.Post("/episodes", s.handleEpisodes)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// NewHTTPServer wraps handler in an http.Server listening on address:port.
func NewHTTPServer(address string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", address, port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.page(w, r)
	if err != nil {
		http.Error(w, "failed to create page", http.StatusInternalServerError)
		return
	}

	var html string
	page.Controller.View(func(controller.State) {
		html, err = page.Document.HTML()
	})
	if err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Str("session", page.ID).Msg("Failed to serialize page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(html))
}

// handleSearch runs the search flow for the submitted term and redirects back to the page,
// so the browser never re-posts the form on reload.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	page, err := s.page(w, r)
	if err != nil {
		http.Error(w, "failed to create page", http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	term := r.PostForm.Get("term")

	if err := page.Controller.SubmitSearch(r.Context(), term); err != nil {
		writeFlowError(w, err)
		return
	}
	page.Controller.View(func(controller.State) {
		page.Document.SetSearchTerm(term)
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleEpisodes dispatches the action record bound to the submitted show.
func (s *Server) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	page, err := s.page(w, r)
	if err != nil {
		http.Error(w, "failed to create page", http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	showID, err := strconv.Atoi(r.PostForm.Get("show"))
	if err != nil {
		http.Error(w, "invalid show id", http.StatusBadRequest)
		return
	}

	var (
		action render.Action
		found  bool
	)
	page.Controller.View(func(controller.State) {
		action, found = page.Document.Shows().Action(showID)
	})
	if !found {
		http.Error(w, apperrors.NewShowActionNotFoundError(showID).Error(), http.StatusNotFound)
		return
	}

	if err := action.Activate(r.Context()); err != nil {
		writeFlowError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// page resolves the session page from the cookie, creating one when needed.
func (s *Server) page(w http.ResponseWriter, r *http.Request) (*session.Page, error) {
	var id string
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		id = cookie.Value
	}

	page, created, err := s.store.GetOrCreate(id)
	if err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("Failed to create session page")
		return nil, err
	}
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    page.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return page, nil
}

// writeFlowError reports a failed flow with a minimal status line. The page is left as it was.
func writeFlowError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.Canceled) {
		// client went away
		return
	}
	var netErr *apperrors.NetworkError
	if errors.As(err, &netErr) {
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}
	http.Error(w, "request failed", http.StatusInternalServerError)
}
