package catalog

import "sort"

// Index owns the loaded record set for the lifetime of the process and
// derives the distinct sets of filterable attribute values. The derived
// sets are sorted lexicographically; the UI relies on that enumeration
// order being deterministic.
type Index struct {
	records  []MovieRecord
	byID     map[int]int // record ID -> position in records
	services []string
	genres   []string
}

// NewIndex builds an index over records. The index takes ownership of the
// slice; callers must not mutate it afterwards.
func NewIndex(records []MovieRecord) *Index {
	idx := &Index{
		records: records,
		byID:    make(map[int]int, len(records)),
	}

	serviceSet := make(map[string]struct{})
	genreSet := make(map[string]struct{})

	for i, rec := range records {
		if _, dup := idx.byID[rec.ID]; !dup {
			idx.byID[rec.ID] = i
		}
		for _, offer := range rec.Streaming {
			if offer.Service != "" {
				serviceSet[offer.Service] = struct{}{}
			}
		}
		for _, g := range rec.Genres {
			if g != "" {
				genreSet[g] = struct{}{}
			}
		}
	}

	idx.services = sortedKeys(serviceSet)
	idx.genres = sortedKeys(genreSet)
	return idx
}

// All returns the full record set in document order.
func (idx *Index) All() []MovieRecord {
	return idx.records
}

// Len returns the number of records in the catalog.
func (idx *Index) Len() int {
	return len(idx.records)
}

// ByID returns the record with the given ID, or false if absent.
func (idx *Index) ByID(id int) (MovieRecord, bool) {
	pos, ok := idx.byID[id]
	if !ok {
		return MovieRecord{}, false
	}
	return idx.records[pos], true
}

// Services returns the distinct streaming service names, sorted.
func (idx *Index) Services() []string {
	return idx.services
}

// Genres returns the distinct genre names, sorted.
func (idx *Index) Genres() []string {
	return idx.genres
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
