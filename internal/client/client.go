package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/parser"
)

// Client defines the interface for querying the TV show catalog.
// Every call is a single stateless GET; failures are returned as *apperrors.NetworkError.
type Client interface {
	SearchShows(ctx context.Context, term string) ([]models.Show, error)
	ListEpisodes(ctx context.Context, showID int) ([]models.Episode, error)

	// Close releases idle connections held by the client.
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient    *http.Client
	baseURL       string
	showParser    parser.Parser[models.Show]
	episodeParser parser.Parser[models.Episode]
}

// NewClient creates a new client instance with proxy configuration if provided
func NewClient(cfg *config.Config) Client {
	logger := config.GetLogger()

	timeout := 30 * time.Second
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to preserve its pooling and HTTP/2 settings
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	baseURL := cfg.CatalogDomain
	if baseURL == "" {
		baseURL = config.DefaultCatalogDomain
	}

	return &client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newCatalogTransport(baseTransport, userAgent),
		},
		baseURL:       baseURL,
		showParser:    parser.NewShowParser(cfg.DefaultImageURL),
		episodeParser: parser.NewEpisodeParser(),
	}
}

// Close releases idle keep-alive connections.
func (c *client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
