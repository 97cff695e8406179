package controller

// State is the informal display state of a page.
type State int

const (
	// Idle: episode surface hidden, show surface empty or stale.
	Idle State = iota
	// ShowsDisplayed: episode surface hidden, show surface populated.
	ShowsDisplayed
	// EpisodesDisplayed: episode surface visible with the episodes of exactly one show.
	EpisodesDisplayed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ShowsDisplayed:
		return "shows_displayed"
	case EpisodesDisplayed:
		return "episodes_displayed"
	default:
		return "unknown"
	}
}
