package render

import (
	"context"
	"html/template"

	"github.com/Belphemur/ShowFinder/internal/models"
)

// ShowRenderer redraws the show surface from a list of shows
type ShowRenderer struct {
	surface ShowSurface
	expand  ExpandFunc
}

// NewShowRenderer creates a renderer writing to surface. Each rendered item's action is bound
// to expand.
func NewShowRenderer(surface ShowSurface, expand ExpandFunc) *ShowRenderer {
	return &ShowRenderer{surface: surface, expand: expand}
}

// Render replaces the surface contents with one item per show, in input order
func (r *ShowRenderer) Render(shows []models.Show) {
	r.surface.Clear()
	for _, show := range shows {
		r.surface.Append(r.item(show))
	}
}

func (r *ShowRenderer) item(show models.Show) ShowItem {
	showID := show.ID
	return ShowItem{
		ShowID:   showID,
		ImageSrc: show.Image,
		ImageAlt: show.Name,
		Heading:  show.Name,
		Summary:  template.HTML(show.Summary), //nolint:gosec // catalog summaries carry inline markup
		Action: Action{
			ShowID: showID,
			OnActivate: func(ctx context.Context) error {
				if r.expand == nil {
					return nil
				}
				return r.expand(ctx, showID)
			},
		},
	}
}
