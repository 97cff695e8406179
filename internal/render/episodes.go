package render

import (
	"fmt"

	"github.com/Belphemur/ShowFinder/internal/models"
)

// EpisodeRenderer rebuilds the episode surface and reveals it
type EpisodeRenderer struct {
	surface EpisodeSurface
}

// NewEpisodeRenderer creates a renderer writing to surface
func NewEpisodeRenderer(surface EpisodeSurface) *EpisodeRenderer {
	return &EpisodeRenderer{surface: surface}
}

// Render clears the surface, appends one line per episode and makes the surface visible
func (r *EpisodeRenderer) Render(episodes []models.Episode) {
	r.surface.Clear()
	for _, ep := range episodes {
		r.surface.Append(EpisodeItem{Text: EpisodeText(ep)})
	}
	r.surface.SetVisible(true)
}

// Hide conceals the episode surface without touching its contents
func (r *EpisodeRenderer) Hide() {
	r.surface.SetVisible(false)
}

// EpisodeText formats an episode as "<name> (season <season>, number <number>)"
func EpisodeText(ep models.Episode) string {
	return fmt.Sprintf("%s (season %s, number %s)", ep.Name, ep.Season, ep.Number)
}
