package surface

import (
	"github.com/Belphemur/ShowFinder/internal/render"
)

// MemoryShows is an in-memory show surface. It backs the CLI and stands in for the page in tests.
type MemoryShows struct {
	items []render.ShowItem
}

// NewMemoryShows creates an empty in-memory show surface.
func NewMemoryShows() *MemoryShows {
	return &MemoryShows{}
}

// Clear drops every item.
func (m *MemoryShows) Clear() {
	m.items = nil
}

// Append records item.
func (m *MemoryShows) Append(item render.ShowItem) {
	m.items = append(m.items, item)
}

// Items returns a copy of the rendered items in display order.
func (m *MemoryShows) Items() []render.ShowItem {
	return append([]render.ShowItem(nil), m.items...)
}

// Action returns the action record bound to the first item rendered for showID.
func (m *MemoryShows) Action(showID int) (render.Action, bool) {
	return findAction(m.items, showID)
}

// MemoryEpisodes is an in-memory episode surface, hidden until populated.
type MemoryEpisodes struct {
	items   []render.EpisodeItem
	visible bool
}

// NewMemoryEpisodes creates an empty, hidden in-memory episode surface.
func NewMemoryEpisodes() *MemoryEpisodes {
	return &MemoryEpisodes{}
}

// Clear drops every item.
func (m *MemoryEpisodes) Clear() {
	m.items = nil
}

// Append records item.
func (m *MemoryEpisodes) Append(item render.EpisodeItem) {
	m.items = append(m.items, item)
}

// SetVisible records the visibility flag.
func (m *MemoryEpisodes) SetVisible(visible bool) {
	m.visible = visible
}

// Visible reports the last visibility set.
func (m *MemoryEpisodes) Visible() bool {
	return m.visible
}

// Texts returns the visible text of each rendered episode in display order.
func (m *MemoryEpisodes) Texts() []string {
	texts := make([]string, 0, len(m.items))
	for _, item := range m.items {
		texts = append(texts, item.Text)
	}
	return texts
}

func findAction(items []render.ShowItem, showID int) (render.Action, bool) {
	for _, item := range items {
		if item.Action.ShowID == showID {
			return item.Action, true
		}
	}
	return render.Action{}, false
}
