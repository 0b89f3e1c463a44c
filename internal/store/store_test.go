package store

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"

	"streamdex/internal/engine"
)

func openTestStore(t *testing.T) (*PreferenceStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preferences.db")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestPreferenceStore_RoundTrip(t *testing.T) {
	s, _ := openTestStore(t)

	saved := engine.DefaultQueryState()
	saved.Filters.Services["Netflix"] = true
	saved.Filters.Services["Hulu"] = true
	saved.Filters.Genres["Drama"] = true
	saved.Filters.Years.Set(1980, 2005)
	saved.Filters.Rating.Set(60, 100)
	saved.SearchQuery = "heist"
	saved.Sort = engine.Sort{Key: engine.SortYear, Order: engine.SortAsc}

	s.SaveQueryState(saved)

	restored, ok := s.RestoreQueryState()
	if !ok {
		t.Fatal("RestoreQueryState() found nothing")
	}
	if !restored.Filters.Services["Netflix"] || !restored.Filters.Services["Hulu"] {
		t.Fatalf("services not restored: %+v", restored.Filters.Services)
	}
	if !restored.Filters.Genres["Drama"] {
		t.Fatalf("genres not restored: %+v", restored.Filters.Genres)
	}
	if restored.Filters.Years.Low != 1980 || restored.Filters.Years.High != 2005 {
		t.Fatalf("year range = [%d, %d]", restored.Filters.Years.Low, restored.Filters.Years.High)
	}
	if restored.Filters.Rating.Low != 60 || restored.Filters.Rating.High != 100 {
		t.Fatalf("rating range = [%d, %d]", restored.Filters.Rating.Low, restored.Filters.Rating.High)
	}
	if restored.SearchQuery != "heist" {
		t.Fatalf("search query = %q", restored.SearchQuery)
	}
	if restored.Sort != saved.Sort {
		t.Fatalf("sort = %+v, want %+v", restored.Sort, saved.Sort)
	}
}

func TestPreferenceStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.db")

	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	saved := engine.DefaultQueryState()
	saved.SearchQuery = "noir"
	s.SaveQueryState(saved)
	s.Close()

	s2, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s2.Close()

	restored, ok := s2.RestoreQueryState()
	if !ok || restored.SearchQuery != "noir" {
		t.Fatalf("state did not survive reopen: %v %q", ok, restored.SearchQuery)
	}
}

func TestPreferenceStore_MissingEntry(t *testing.T) {
	s, _ := openTestStore(t)
	if _, ok := s.RestoreQueryState(); ok {
		t.Fatal("empty store should restore nothing")
	}
}

func TestPreferenceStore_CorruptEntryFallsBack(t *testing.T) {
	s, path := openTestStore(t)
	s.Close()

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("bolt open: %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPreferences).Put([]byte(keyQueryState), []byte("not json"))
	})
	db.Close()
	if err != nil {
		t.Fatalf("corrupting entry: %v", err)
	}

	s2, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if _, ok := s2.RestoreQueryState(); ok {
		t.Fatal("corrupt entry must fall back to defaults, not restore")
	}
}

func TestPreferenceStore_RestoredRangesAreClamped(t *testing.T) {
	s, _ := openTestStore(t)

	// Simulate a blob written with out-of-domain bounds.
	blob, _ := json.Marshal(persistedQuery{
		YearRange:   [2]int{1700, 9999},
		RatingRange: [2]int{-20, 500},
		SortKey:     "made-up",
		SortOrder:   "sideways",
	})
	s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPreferences).Put([]byte(keyQueryState), blob)
	})

	restored, ok := s.RestoreQueryState()
	if !ok {
		t.Fatal("expected a restore")
	}
	def := engine.DefaultQueryState()
	if restored.Filters.Years.Low != def.Filters.Years.Min || restored.Filters.Years.High != def.Filters.Years.Max {
		t.Fatalf("year range not clamped: [%d, %d]", restored.Filters.Years.Low, restored.Filters.Years.High)
	}
	if restored.Filters.Rating.Low != engine.RatingMin || restored.Filters.Rating.High != engine.RatingMax {
		t.Fatalf("rating range not clamped: [%d, %d]", restored.Filters.Rating.Low, restored.Filters.Rating.High)
	}
	// Unknown sort names degrade to the defaults.
	if restored.Sort != def.Sort {
		t.Fatalf("sort = %+v, want default %+v", restored.Sort, def.Sort)
	}
}

func TestPreferenceStore_MemoryOnlyMode(t *testing.T) {
	s, err := Open("", nil)
	if err != nil {
		t.Fatalf("Open(\"\") error: %v", err)
	}
	defer s.Close()

	saved := engine.DefaultQueryState()
	saved.SearchQuery = "western"
	s.SaveQueryState(saved)

	restored, ok := s.RestoreQueryState()
	if !ok || restored.SearchQuery != "western" {
		t.Fatalf("memory-only round trip failed: %v %q", ok, restored.SearchQuery)
	}
}

func TestPreferenceStore_NeverPersistsPagination(t *testing.T) {
	s, _ := openTestStore(t)
	s.SaveQueryState(engine.DefaultQueryState())

	var raw []byte
	s.db.View(func(tx *bolt.Tx) error {
		raw = tx.Bucket(bucketPreferences).Get([]byte(keyQueryState))
		return nil
	})

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("stored blob is not JSON: %v", err)
	}
	for _, forbidden := range []string{"page", "page_size", "current_page", "records", "movies"} {
		if _, present := decoded[forbidden]; present {
			t.Fatalf("stored blob must not contain %q", forbidden)
		}
	}
}
