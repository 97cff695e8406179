package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/parser"
)

const (
	opSearchShows  = "search_shows"
	opListEpisodes = "list_episodes"
)

// SearchShows queries the show-search endpoint with term as the q parameter.
// The term is sent as-is, including when it is empty.
func (c *client) SearchShows(ctx context.Context, term string) ([]models.Show, error) {
	query := url.Values{}
	query.Set("q", term)
	endpoint := fmt.Sprintf("%s/search/shows?%s", strings.TrimRight(c.baseURL, "/"), query.Encode())

	return fetch(ctx, c, opSearchShows, endpoint, c.showParser)
}

// ListEpisodes queries the episode list of the show identified by showID.
func (c *client) ListEpisodes(ctx context.Context, showID int) ([]models.Episode, error) {
	endpoint := fmt.Sprintf("%s/shows/%d/episodes", strings.TrimRight(c.baseURL, "/"), showID)

	return fetch(ctx, c, opListEpisodes, endpoint, c.episodeParser)
}

// fetch performs a single GET and decodes the body with p. Any failure is reported as a
// *apperrors.NetworkError; nothing is retried.
func fetch[T any](ctx context.Context, c *client, op, endpoint string, p parser.Parser[T]) ([]T, error) {
	logger := config.GetLogger()
	start := time.Now()
	defer func() {
		metrics.CatalogRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(op, "error").Inc()
		return nil, apperrors.NewNetworkError(op, endpoint, fmt.Errorf("create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(op, "error").Inc()
		logger.Warn().Err(err).Str("url", endpoint).Msg("Catalog request failed")
		return nil, apperrors.NewNetworkError(op, endpoint, fmt.Errorf("do request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.CatalogRequestsTotal.WithLabelValues(op, "error").Inc()
		logger.Warn().Int("status", resp.StatusCode).Str("url", endpoint).Msg("Catalog returned non-success status")
		return nil, apperrors.NewStatusError(op, endpoint, resp.StatusCode)
	}

	records, err := p.Parse(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(op, "error").Inc()
		logger.Warn().Err(err).Str("url", endpoint).Msg("Failed to decode catalog response")
		return nil, apperrors.NewNetworkError(op, endpoint, err)
	}

	metrics.CatalogRequestsTotal.WithLabelValues(op, "success").Inc()
	logger.Debug().Str("operation", op).Str("url", endpoint).Int("count", len(records)).Msg("Catalog request succeeded")
	return records, nil
}
