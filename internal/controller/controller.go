// Package controller owns the two user-visible flows, "submit search" and "expand show",
// mediating between user actions, the catalog client and the renderers.
//
// Fetches run without holding any lock; each flow then applies its render step atomically.
// Flows are neither sequenced nor cancelled, so when several are in flight the one that
// resolves last determines what is displayed.
package controller

import (
	"context"
	"sync"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/render"
)

const (
	flowSearch = "search"
	flowExpand = "expand"
)

// Catalog is the subset of the catalog client used by the controller.
type Catalog interface {
	SearchShows(ctx context.Context, term string) ([]models.Show, error)
	ListEpisodes(ctx context.Context, showID int) ([]models.Episode, error)
}

// ErrorReporter receives every failed flow. It must not block.
type ErrorReporter interface {
	Report(ctx context.Context, flow string, err error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithErrorReporter installs an explicit error channel for failed flows.
func WithErrorReporter(r ErrorReporter) Option {
	return func(c *Controller) {
		c.reporter = r
	}
}

// Controller drives the show and episode surfaces of one page.
type Controller struct {
	catalog  Catalog
	shows    *render.ShowRenderer
	episodes *render.EpisodeRenderer
	reporter ErrorReporter

	mu    sync.Mutex
	state State
}

// New creates a controller rendering into the given surfaces. Both surfaces are owned by the
// controller from here on.
func New(catalog Catalog, shows render.ShowSurface, episodes render.EpisodeSurface, opts ...Option) *Controller {
	c := &Controller{
		catalog:  catalog,
		episodes: render.NewEpisodeRenderer(episodes),
		state:    Idle,
	}
	c.shows = render.NewShowRenderer(shows, c.ExpandShow)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitSearch searches the catalog for term, exactly as typed, then hides the episode surface
// and redraws the show list. On failure the error is returned unchanged and nothing is redrawn.
func (c *Controller) SubmitSearch(ctx context.Context, term string) error {
	logger := config.GetLogger()
	logger.Debug().Str("term", term).Msg("Submitting search")

	shows, err := c.catalog.SearchShows(ctx, term)
	if err != nil {
		return c.fail(ctx, flowSearch, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.episodes.Hide()
	c.shows.Render(shows)
	c.state = ShowsDisplayed

	metrics.FlowsTotal.WithLabelValues(flowSearch, "success").Inc()
	logger.Debug().Str("term", term).Int("shows", len(shows)).Msg("Search displayed")
	return nil
}

// ExpandShow fetches the episodes of showID and replaces the episode surface with them.
func (c *Controller) ExpandShow(ctx context.Context, showID int) error {
	logger := config.GetLogger()
	logger.Debug().Int("show_id", showID).Msg("Expanding show")

	episodes, err := c.catalog.ListEpisodes(ctx, showID)
	if err != nil {
		return c.fail(ctx, flowExpand, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.episodes.Render(episodes)
	c.state = EpisodesDisplayed

	metrics.FlowsTotal.WithLabelValues(flowExpand, "success").Inc()
	logger.Debug().Int("show_id", showID).Int("episodes", len(episodes)).Msg("Episodes displayed")
	return nil
}

// State returns the current display state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View runs fn while no flow is rendering, so fn observes both surfaces in a consistent state.
func (c *Controller) View(fn func(state State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.state)
}

func (c *Controller) fail(ctx context.Context, flow string, err error) error {
	logger := config.GetLogger()
	metrics.FlowsTotal.WithLabelValues(flow, "error").Inc()
	logger.Warn().Err(err).Str("flow", flow).Msg("Flow failed")
	if c.reporter != nil {
		c.reporter.Report(ctx, flow, err)
	}
	return err
}
