package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Belphemur/ShowFinder/internal/models"
)

// EpisodeParser decodes an episode-list response. Episodes are a direct field copy, so the
// catalog payload is decoded straight into models.Episode.
type EpisodeParser struct{}

// NewEpisodeParser creates a new episode parser instance
func NewEpisodeParser() *EpisodeParser {
	return &EpisodeParser{}
}

// Parse decodes the episode list
func (p *EpisodeParser) Parse(body io.Reader, contentType string) ([]models.Episode, error) {
	reader, err := NewUTF8Reader(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}

	var episodes []models.Episode
	if err := json.NewDecoder(reader).Decode(&episodes); err != nil {
		return nil, fmt.Errorf("failed to decode episode list: %w", err)
	}
	if episodes == nil {
		episodes = []models.Episode{}
	}
	return episodes, nil
}
