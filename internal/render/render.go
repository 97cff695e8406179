// Package render turns normalized catalog records into display items and writes them to the
// show and episode display surfaces.
package render

import (
	"context"
	"html/template"
)

// Action is the callback record attached to a rendered show's "Episodes" control. ShowID is
// captured when the item is rendered; OnActivate runs the episode-expansion flow for it.
type Action struct {
	ShowID     int
	OnActivate func(ctx context.Context) error
}

// Activate invokes the bound expansion flow.
func (a Action) Activate(ctx context.Context) error {
	if a.OnActivate == nil {
		return nil
	}
	return a.OnActivate(ctx)
}

// ShowItem is one rendered show.
type ShowItem struct {
	ShowID   int
	ImageSrc string
	ImageAlt string
	Heading  string
	Summary  template.HTML // rich text as supplied by the catalog
	Action   Action
}

// EpisodeItem is one rendered episode line.
type EpisodeItem struct {
	Text string
}

// ShowSurface is the ordered container of rendered shows.
type ShowSurface interface {
	Clear()
	Append(item ShowItem)
}

// EpisodeSurface is the ordered container of rendered episodes. It is hidden until populated.
type EpisodeSurface interface {
	Clear()
	Append(item EpisodeItem)
	SetVisible(visible bool)
	Visible() bool
}

// ExpandFunc runs the episode-expansion flow for a show.
type ExpandFunc func(ctx context.Context, showID int) error
