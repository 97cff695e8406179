// Package session keeps one live page (document plus controller) per browser session.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Belphemur/ShowFinder/internal/controller"
	"github.com/Belphemur/ShowFinder/internal/surface"
)

// Page is the page-lifetime state of one browser session.
type Page struct {
	ID         string
	Document   *surface.Document
	Controller *controller.Controller
}

// Config holds the settings of a Store.
type Config struct {
	// Size is the maximum number of live pages; the least recently used page is dropped first.
	Size int
	// TTL is how long an untouched page is kept.
	TTL time.Duration
	// Catalog is shared by the controllers of every page.
	Catalog controller.Catalog
	// Options are applied to every page controller.
	Options []controller.Option
}

// Store is an expiring LRU of pages keyed by session id. It is safe for concurrent use.
type Store struct {
	pages   *lru.LRU[string, *Page]
	catalog controller.Catalog
	options []controller.Option
}

// NewStore creates a page store.
func NewStore(cfg Config) *Store {
	size := cfg.Size
	if size <= 0 {
		size = 1024
	}
	s := &Store{
		catalog: cfg.Catalog,
		options: cfg.Options,
	}
	s.pages = lru.NewLRU[string, *Page](size, func(string, *Page) {
		EvictionsTotal.Inc()
	}, cfg.TTL)
	registerPagesCollector(s.pages.Len)
	return s
}

// Get returns the page for id, refreshing its recency.
func (s *Store) Get(id string) (*Page, bool) {
	if id == "" {
		return nil, false
	}
	return s.pages.Get(id)
}

// Create builds a fresh page in the Idle state and stores it under a new session id.
func (s *Store) Create() (*Page, error) {
	doc, err := surface.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	page := &Page{
		ID:         uuid.NewString(),
		Document:   doc,
		Controller: controller.New(s.catalog, doc.Shows(), doc.Episodes(), s.options...),
	}
	s.pages.Add(page.ID, page)
	CreatedTotal.Inc()
	return page, nil
}

// GetOrCreate returns the page for id, or a new page when id is unknown or expired.
func (s *Store) GetOrCreate(id string) (*Page, bool, error) {
	if page, ok := s.Get(id); ok {
		return page, false, nil
	}
	page, err := s.Create()
	return page, err == nil, err
}

// Len returns the number of live pages.
func (s *Store) Len() int {
	return s.pages.Len()
}
