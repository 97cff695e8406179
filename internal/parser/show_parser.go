package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
)

// ShowParser decodes a show-search response into normalized shows
type ShowParser struct {
	defaultImage string
}

// NewShowParser creates a show parser that substitutes defaultImage for missing artwork.
// An empty defaultImage falls back to models.DefaultImageURL.
func NewShowParser(defaultImage string) *ShowParser {
	if defaultImage == "" {
		defaultImage = models.DefaultImageURL
	}
	return &ShowParser{defaultImage: defaultImage}
}

// Parse decodes the search results and maps each one to a models.Show
func (p *ShowParser) Parse(body io.Reader, contentType string) ([]models.Show, error) {
	logger := config.GetLogger()

	reader, err := NewUTF8Reader(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}

	var results []models.ShowQueryResult
	if err := json.NewDecoder(reader).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode show search results: %w", err)
	}

	shows := make([]models.Show, 0, len(results))
	for _, result := range results {
		shows = append(shows, p.normalize(result.Show))
	}

	logger.Debug().Int("count", len(shows)).Interface("shows", shows).Msg("Normalized show search results")
	return shows, nil
}

func (p *ShowParser) normalize(raw models.RawShow) models.Show {
	image := raw.MediumImage()
	if image == "" {
		image = p.defaultImage
	}
	return models.Show{
		ID:      raw.ID,
		Name:    raw.Name,
		Summary: raw.Summary,
		Image:   image,
	}
}
