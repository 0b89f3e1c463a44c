package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"streamdex/internal/engine"
)

var bucketPreferences = []byte("preferences")

const keyQueryState = "query_state"

// persistedQuery is the serialized mirror of the user-chosen query state.
// Pagination and the loaded records are never part of it.
type persistedQuery struct {
	Services    []string `json:"services"`
	Genres      []string `json:"genres"`
	YearRange   [2]int   `json:"year_range"`
	RatingRange [2]int   `json:"rating_range"`
	SearchQuery string   `json:"search_query"`
	SortKey     string   `json:"sort_key"`
	SortOrder   string   `json:"sort_order"`
}

// PreferenceStore persists the filter/search/sort slice of the query state
// across sessions using BoltDB. An empty path opens a memory-only store
// that never touches disk.
type PreferenceStore struct {
	db     *bolt.DB
	mem    []byte // memory-only mode
	logger *slog.Logger
}

// Open opens (or creates) the preference database at path.
func Open(path string, logger *slog.Logger) (*PreferenceStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return &PreferenceStore{logger: logger}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open preference db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPreferences)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &PreferenceStore{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *PreferenceStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveQueryState writes the query state best-effort. Storage failures are
// logged and swallowed; they must never block query evaluation.
func (s *PreferenceStore) SaveQueryState(q engine.QueryState) {
	data, err := json.Marshal(toPersisted(q))
	if err != nil {
		s.logger.Warn("failed to encode query state", "error", err)
		return
	}

	if s.db == nil {
		s.mem = data
		return
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPreferences).Put([]byte(keyQueryState), data)
	})
	if err != nil {
		s.logger.Warn("failed to persist query state", "error", err)
	}
}

// RestoreQueryState reads the stored query state. Missing or corrupt
// entries return false so the caller falls back to defaults; this never
// fails hard.
func (s *PreferenceStore) RestoreQueryState() (engine.QueryState, bool) {
	var data []byte
	if s.db == nil {
		data = s.mem
	} else {
		s.db.View(func(tx *bolt.Tx) error {
			if v := tx.Bucket(bucketPreferences).Get([]byte(keyQueryState)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
	}
	if data == nil {
		return engine.QueryState{}, false
	}

	var p persistedQuery
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("discarding corrupt query state", "error", err)
		return engine.QueryState{}, false
	}
	return fromPersisted(p), true
}

func toPersisted(q engine.QueryState) persistedQuery {
	return persistedQuery{
		Services:    enabledNames(q.Filters.Services),
		Genres:      enabledNames(q.Filters.Genres),
		YearRange:   [2]int{q.Filters.Years.Low, q.Filters.Years.High},
		RatingRange: [2]int{q.Filters.Rating.Low, q.Filters.Rating.High},
		SearchQuery: q.SearchQuery,
		SortKey:     sortKeyName(q.Sort.Key),
		SortOrder:   sortOrderName(q.Sort.Order),
	}
}

// fromPersisted rebuilds a query state on top of the defaults so restored
// ranges are clamped to the current domain bounds and unknown sort names
// degrade to the default sort.
func fromPersisted(p persistedQuery) engine.QueryState {
	q := engine.DefaultQueryState()
	for _, name := range p.Services {
		q.Filters.Services[name] = true
	}
	for _, name := range p.Genres {
		q.Filters.Genres[name] = true
	}
	q.Filters.Years.Set(p.YearRange[0], p.YearRange[1])
	q.Filters.Rating.Set(p.RatingRange[0], p.RatingRange[1])
	q.SearchQuery = p.SearchQuery
	if key, ok := sortKeyFromName(p.SortKey); ok {
		q.Sort.Key = key
	}
	switch p.SortOrder {
	case "asc":
		q.Sort.Order = engine.SortAsc
	case "desc":
		q.Sort.Order = engine.SortDesc
	}
	return q
}

// enabledNames flattens a filter set to a sorted name list for a stable
// serialized form.
func enabledNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name, on := range set {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func sortKeyName(k engine.SortKey) string {
	switch k {
	case engine.SortPopularity:
		return "popularity"
	case engine.SortRating:
		return "rating"
	case engine.SortYear:
		return "year"
	default:
		return "title"
	}
}

func sortKeyFromName(name string) (engine.SortKey, bool) {
	switch name {
	case "title":
		return engine.SortTitle, true
	case "popularity":
		return engine.SortPopularity, true
	case "rating":
		return engine.SortRating, true
	case "year":
		return engine.SortYear, true
	default:
		return 0, false
	}
}

func sortOrderName(o engine.SortOrder) string {
	if o == engine.SortDesc {
		return "desc"
	}
	return "asc"
}
