package session

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/Belphemur/ShowFinder/internal/controller"
	"github.com/Belphemur/ShowFinder/internal/models"
)

type stubCatalog struct{}

func (stubCatalog) SearchShows(context.Context, string) ([]models.Show, error) {
	return []models.Show{{ID: 1, Name: "One", Image: "http://i/1"}}, nil
}

func (stubCatalog) ListEpisodes(context.Context, int) ([]models.Episode, error) {
	return nil, nil
}

func getCounterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestStore_CreateAndGet(t *testing.T) {
	s := NewStore(Config{Size: 10, TTL: time.Hour, Catalog: stubCatalog{}})

	page, err := s.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if page.ID == "" {
		t.Fatal("Expected a session id")
	}
	if page.Controller.State() != controller.Idle {
		t.Errorf("Expected a fresh page to be Idle, got %s", page.Controller.State())
	}

	got, ok := s.Get(page.ID)
	if !ok || got != page {
		t.Fatal("Expected to get the same page back")
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 page, got %d", s.Len())
	}
}

func TestStore_PagesAreIsolated(t *testing.T) {
	s := NewStore(Config{Size: 10, TTL: time.Hour, Catalog: stubCatalog{}})
	a, _ := s.Create()
	b, _ := s.Create()

	if err := a.Controller.SubmitSearch(context.Background(), "one"); err != nil {
		t.Fatalf("SubmitSearch failed: %v", err)
	}

	if a.Document.Shows().Len() != 1 {
		t.Errorf("Expected page A to show 1 item, got %d", a.Document.Shows().Len())
	}
	if b.Document.Shows().Len() != 0 || b.Controller.State() != controller.Idle {
		t.Error("Page B must be unaffected by page A")
	}
}

func TestStore_GetUnknown(t *testing.T) {
	s := NewStore(Config{Size: 10, Catalog: stubCatalog{}})
	if _, ok := s.Get(""); ok {
		t.Error("Empty id must not resolve")
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("Unknown id must not resolve")
	}
}

func TestStore_GetOrCreate(t *testing.T) {
	s := NewStore(Config{Size: 10, TTL: time.Hour, Catalog: stubCatalog{}})

	page, created, err := s.GetOrCreate("unknown")
	if err != nil || !created {
		t.Fatalf("Expected a new page, got created=%v err=%v", created, err)
	}

	again, created, err := s.GetOrCreate(page.ID)
	if err != nil || created || again != page {
		t.Fatalf("Expected the existing page, got created=%v err=%v", created, err)
	}
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	s := NewStore(Config{Size: 2, TTL: time.Hour, Catalog: stubCatalog{}})
	before := getCounterValue(EvictionsTotal)

	first, _ := s.Create()
	second, _ := s.Create()
	s.Get(first.ID) // first becomes most recent
	_, _ = s.Create()

	if _, ok := s.Get(second.ID); ok {
		t.Error("Expected the least recently used page to be evicted")
	}
	if _, ok := s.Get(first.ID); !ok {
		t.Error("Expected the recently used page to survive")
	}
	if after := getCounterValue(EvictionsTotal); after != before+1 {
		t.Errorf("Expected evictions to increment by 1, got diff %.0f", after-before)
	}
}

func TestStore_ExpiresPages(t *testing.T) {
	s := NewStore(Config{Size: 10, TTL: 20 * time.Millisecond, Catalog: stubCatalog{}})
	page, _ := s.Create()

	time.Sleep(60 * time.Millisecond)

	if _, ok := s.Get(page.ID); ok {
		t.Error("Expected page to expire after its TTL")
	}
}

func TestStore_PagesCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	old := pagesReg
	pagesReg = reg
	t.Cleanup(func() { pagesReg = old })

	s := NewStore(Config{Size: 10, TTL: time.Hour, Catalog: stubCatalog{}})
	_, _ = s.Create()
	_, _ = s.Create()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == "session_pages" {
			if v := mf.GetMetric()[0].GetGauge().GetValue(); v != 2 {
				t.Errorf("session_pages = %.0f, want 2", v)
			}
			return
		}
	}
	t.Error("session_pages metric not found")
}
