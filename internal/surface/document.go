package surface

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Belphemur/ShowFinder/internal/render"
)

//go:embed page.html
var pageShell string

const (
	styleVisible = "display: block"
	styleHidden  = "display: none"
)

var showItemTemplate = template.Must(template.New("show").Parse(
	`<div data-show-id="{{.ShowID}}" class="Show col-md-12 col-lg-6 mb-4">
  <div class="media">
    <img src="{{.ImageSrc}}" alt="{{.ImageAlt}}" class="w-25 me-3">
    <div class="media-body">
      <h5 class="text-primary">{{.Heading}}</h5>
      <div><small>{{.Summary}}</small></div>
      <form method="post" action="/episodes" class="Show-episodesForm">
        <input type="hidden" name="show" value="{{.ShowID}}">
        <button type="submit" class="btn btn-outline-light btn-sm Show-getEpisodes">Episodes</button>
      </form>
    </div>
  </div>
</div>`))

var episodeItemTemplate = template.Must(template.New("episode").Parse(`<li>{{.Text}}</li>`))

// Document is the HTML page hosting both display surfaces. It is not safe for concurrent use;
// callers serialize access (the controller renders under its own lock).
type Document struct {
	doc      *goquery.Document
	form     *goquery.Selection
	shows    *DOMShows
	episodes *DOMEpisodes
}

// NewDocument parses the page shell and resolves the surface nodes once.
func NewDocument() (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageShell))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page shell: %w", err)
	}

	required := map[string]*goquery.Selection{}
	for _, id := range []string{"#searchForm-term", "#showsList", "#episodesArea", "#episodesList"} {
		sel := doc.Find(id)
		if sel.Length() == 0 {
			return nil, fmt.Errorf("page shell is missing %s", id)
		}
		required[id] = sel
	}

	return &Document{
		doc:   doc,
		form:  required["#searchForm-term"],
		shows: &DOMShows{list: required["#showsList"]},
		episodes: &DOMEpisodes{
			area: required["#episodesArea"],
			list: required["#episodesList"],
		},
	}, nil
}

// Shows returns the show display surface (#showsList).
func (d *Document) Shows() *DOMShows {
	return d.shows
}

// Episodes returns the episode display surface (#episodesArea / #episodesList).
func (d *Document) Episodes() *DOMEpisodes {
	return d.episodes
}

// SetSearchTerm keeps the search box showing the last submitted term.
func (d *Document) SetSearchTerm(term string) {
	d.form.SetAttr("value", term)
}

// HTML serializes the whole page.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// DOMShows is the show surface backed by the #showsList node.
type DOMShows struct {
	list    *goquery.Selection
	actions []render.Action
}

// Clear removes every show item and its action record.
func (s *DOMShows) Clear() {
	s.list.Empty()
	s.actions = nil
}

// Append adds item to the end of #showsList and keeps its action record.
func (s *DOMShows) Append(item render.ShowItem) {
	var sb strings.Builder
	if err := showItemTemplate.Execute(&sb, item); err != nil {
		panic(fmt.Sprintf("surface: render show item: %v", err))
	}
	s.list.AppendHtml(sb.String())
	s.actions = append(s.actions, item.Action)
}

// Action returns the action record bound when showID was rendered.
func (s *DOMShows) Action(showID int) (render.Action, bool) {
	for _, a := range s.actions {
		if a.ShowID == showID {
			return a, true
		}
	}
	return render.Action{}, false
}

// Len returns the number of rendered show items.
func (s *DOMShows) Len() int {
	return s.list.Children().Length()
}

// DOMEpisodes is the episode surface backed by #episodesArea and its #episodesList.
type DOMEpisodes struct {
	area *goquery.Selection
	list *goquery.Selection
}

// Clear removes every episode item.
func (e *DOMEpisodes) Clear() {
	e.list.Empty()
}

// Append adds item to the end of #episodesList.
func (e *DOMEpisodes) Append(item render.EpisodeItem) {
	var sb strings.Builder
	if err := episodeItemTemplate.Execute(&sb, item); err != nil {
		panic(fmt.Sprintf("surface: render episode item: %v", err))
	}
	e.list.AppendHtml(sb.String())
}

// SetVisible shows or hides #episodesArea through its style attribute.
func (e *DOMEpisodes) SetVisible(visible bool) {
	if visible {
		e.area.SetAttr("style", styleVisible)
		return
	}
	e.area.SetAttr("style", styleHidden)
}

// Visible reports whether #episodesArea is shown.
func (e *DOMEpisodes) Visible() bool {
	style, _ := e.area.Attr("style")
	return !strings.Contains(style, "display: none")
}

// Texts returns the visible text of each rendered episode.
func (e *DOMEpisodes) Texts() []string {
	return e.list.Children().Map(func(_ int, li *goquery.Selection) string {
		return li.Text()
	})
}
