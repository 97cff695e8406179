package server

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/session"
	"github.com/Belphemur/ShowFinder/internal/testutil"
)

// catalogStub records search terms and serves canned catalog responses.
type catalogStub struct {
	mu          sync.Mutex
	terms       []string
	failSearch  bool
	searchBody  string
	episodeBody string
}

func (c *catalogStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		defer c.mu.Unlock()
		switch {
		case r.URL.Path == "/search/shows":
			c.terms = append(c.terms, r.URL.Query().Get("q"))
			if c.failSearch {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(c.searchBody))
		case strings.HasPrefix(r.URL.Path, "/shows/") && strings.HasSuffix(r.URL.Path, "/episodes"):
			_, _ = w.Write([]byte(c.episodeBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

type testEnv struct {
	catalog *catalogStub
	app     *httptest.Server
	browser *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	stub := &catalogStub{
		searchBody: testutil.GenerateSearchResponse(
			testutil.ShowResultOptions{ID: 139, Name: "Girls", Summary: "<p>Lena <b>Dunham</b></p>", MediumImage: "http://x/img.jpg"},
			testutil.ShowResultOptions{ID: 2, Name: "Boys", ImageMode: "null"},
		),
		episodeBody: testutil.ThreeEpisodesResponse(),
	}
	catalogServer := httptest.NewServer(stub.handler())
	t.Cleanup(catalogServer.Close)

	store := session.NewStore(session.Config{
		Size:    10,
		TTL:     time.Hour,
		Catalog: client.NewClient(&config.Config{CatalogDomain: catalogServer.URL, ClientTimeout: "5s"}),
	})
	app := httptest.NewServer(New(store))
	t.Cleanup(app.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &testEnv{catalog: stub, app: app, browser: &http.Client{Jar: jar}}
}

func (e *testEnv) get(t *testing.T) *goquery.Document {
	t.Helper()
	resp, err := e.browser.Get(e.app.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /: status %d", resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return doc
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := e.browser.PostForm(e.app.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_InitialPage(t *testing.T) {
	env := newTestEnv(t)
	page := env.get(t)

	if page.Find("#showsList").Children().Length() != 0 {
		t.Error("Expected an empty show list")
	}
	if style, _ := page.Find("#episodesArea").Attr("style"); style != "display: none" {
		t.Errorf("Expected hidden episode area, got %q", style)
	}

	u, _ := url.Parse(env.app.URL)
	cookies := env.browser.Jar.Cookies(u)
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Errorf("Expected a session cookie, got %v", cookies)
	}
}

func TestServer_SearchRendersShows(t *testing.T) {
	env := newTestEnv(t)
	env.get(t)

	resp := env.post(t, "/search", url.Values{"term": {"girls"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected redirect to the page, got status %d", resp.StatusCode)
	}
	if resp.Request.Method != http.MethodGet || resp.Request.URL.Path != "/" {
		t.Errorf("Expected to land on GET /, got %s %s", resp.Request.Method, resp.Request.URL.Path)
	}

	page := env.get(t)
	shows := page.Find("#showsList > div.Show")
	if shows.Length() != 2 {
		t.Fatalf("Expected 2 shows, got %d", shows.Length())
	}
	if id, _ := shows.Eq(0).Attr("data-show-id"); id != "139" {
		t.Errorf("first show id = %q", id)
	}
	if src, _ := shows.Eq(0).Find("img").Attr("src"); src != "http://x/img.jpg" {
		t.Errorf("first show image = %q", src)
	}
	if src, _ := shows.Eq(1).Find("img").Attr("src"); src != models.DefaultImageURL {
		t.Errorf("second show image = %q, want default", src)
	}
	if shows.Eq(0).Find("small b").Text() != "Dunham" {
		t.Error("Expected summary markup to be rendered")
	}
	if v, _ := page.Find("#searchForm-term").Attr("value"); v != "girls" {
		t.Errorf("Expected search box to keep the term, got %q", v)
	}
}

func TestServer_SearchTwiceDoesNotDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/search", url.Values{"term": {"girls"}})
	env.post(t, "/search", url.Values{"term": {"girls"}})

	if n := env.get(t).Find("#showsList > div.Show").Length(); n != 2 {
		t.Errorf("Expected 2 shows after searching twice, got %d", n)
	}
}

func TestServer_EmptySearchTermIsSent(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/search", url.Values{"term": {""}})

	env.catalog.mu.Lock()
	defer env.catalog.mu.Unlock()
	if len(env.catalog.terms) != 1 || env.catalog.terms[0] != "" {
		t.Errorf("Expected one catalog search with an empty term, got %q", env.catalog.terms)
	}
}

func TestServer_ExpandShowsEpisodes(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/search", url.Values{"term": {"girls"}})

	resp := env.post(t, "/episodes", url.Values{"show": {"139"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected redirect to the page, got status %d", resp.StatusCode)
	}

	page := env.get(t)
	if style, _ := page.Find("#episodesArea").Attr("style"); style != "display: block" {
		t.Errorf("Expected visible episode area, got %q", style)
	}
	items := page.Find("#episodesList > li")
	if items.Length() != 3 {
		t.Fatalf("Expected 3 episodes, got %d", items.Length())
	}
	if items.Eq(0).Text() != "Pilot (season 1, number 1)" {
		t.Errorf("first episode = %q", items.Eq(0).Text())
	}

	// a new search hides the episode area again
	env.post(t, "/search", url.Values{"term": {"girls"}})
	if style, _ := env.get(t).Find("#episodesArea").Attr("style"); style != "display: none" {
		t.Errorf("Expected hidden episode area after search, got %q", style)
	}
}

func TestServer_ExpandUnknownShow(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/search", url.Values{"term": {"girls"}})

	resp := env.post(t, "/episodes", url.Values{"show": {"999"}})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}

func TestServer_ExpandInvalidShowID(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/episodes", url.Values{"show": {"abc"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestServer_CatalogFailure(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/search", url.Values{"term": {"girls"}})
	env.catalog.mu.Lock()
	env.catalog.failSearch = true
	env.catalog.mu.Unlock()

	resp := env.post(t, "/search", url.Values{"term": {"boys"}})
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", resp.StatusCode)
	}

	// the previous results stay on the page
	if n := env.get(t).Find("#showsList > div.Show").Length(); n != 2 {
		t.Errorf("Expected previous shows to remain, got %d", n)
	}
}

func TestServer_SessionsAreIsolated(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/search", url.Values{"term": {"girls"}})

	otherJar, _ := cookiejar.New(nil)
	other := &http.Client{Jar: otherJar}
	resp, err := other.Get(env.app.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Find("#showsList > div.Show").Length() != 0 {
		t.Error("A new session must start with an empty page")
	}
}

func TestServer_Healthz(t *testing.T) {
	env := newTestEnv(t)
	resp, err := http.Get(env.app.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func TestNewHTTPServer(t *testing.T) {
	srv := NewHTTPServer("localhost", 8080, http.NewServeMux())
	if srv.Addr != "localhost:8080" {
		t.Errorf("Expected address 'localhost:8080', got %q", srv.Addr)
	}
}
