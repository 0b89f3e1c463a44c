package engine

import (
	"reflect"
	"testing"

	"streamdex/internal/catalog"
)

func testRecords() []catalog.MovieRecord {
	return []catalog.MovieRecord{
		{
			ID:          1,
			Title:       "The Matrix",
			ReleaseYear: 1999,
			Genres:      []string{"Action", "Science Fiction"},
			Cast:        []string{"Keanu Reeves", "Carrie-Anne Moss"},
			Keywords:    []string{"simulation", "dystopia"},
			Director:    "The Wachowskis",
			Streaming:   []catalog.StreamingOffer{{Service: "Max", Region: "US"}},
			Ratings:     catalog.Ratings{TMDBPopularity: 80, RTTomatometer: 88},
		},
		{
			ID:          2,
			Title:       "Spirited Away",
			ReleaseYear: 2001,
			Genres:      []string{"Animation", "Fantasy"},
			Cast:        []string{"Rumi Hiiragi"},
			Director:    "Hayao Miyazaki",
			Streaming:   []catalog.StreamingOffer{{Service: "Max", Region: "US"}, {Service: "Netflix", Region: "US"}},
			Ratings:     catalog.Ratings{TMDBPopularity: 70, RTTomatometer: 96},
		},
		{
			ID:          3,
			Title:       "Unrated Obscurity",
			ReleaseYear: 2010,
			Genres:      []string{"Drama"},
			Streaming:   []catalog.StreamingOffer{{Service: "Hulu", Region: "US"}},
			Ratings:     catalog.Ratings{TMDBPopularity: 5, RTTomatometer: 0},
		},
		{
			ID:          4,
			Title:       "Heat",
			ReleaseYear: 1995,
			Genres:      []string{"Action", "Crime"},
			Cast:        []string{"Al Pacino", "Robert De Niro"},
			Director:    "Michael Mann",
			Streaming:   []catalog.StreamingOffer{{Service: "Netflix", Region: "US"}},
			Ratings:     catalog.Ratings{TMDBPopularity: 60, RTTomatometer: 88},
		},
	}
}

func wideOpenQuery() QueryState {
	q := DefaultQueryState()
	q.Filters.Years = NewRange(1900, 2030)
	return q
}

func titlesOf(view []catalog.MovieRecord) []string {
	out := make([]string, len(view))
	for i, rec := range view {
		out[i] = rec.Title
	}
	return out
}

func TestEvaluate_Deterministic(t *testing.T) {
	records := testRecords()
	q := wideOpenQuery()
	q.SearchQuery = "a"
	q.Sort = Sort{Key: SortRating, Order: SortDesc}

	first := Evaluate(records, q)
	second := Evaluate(records, q)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-evaluation differs:\n%v\n%v", titlesOf(first), titlesOf(second))
	}
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	records := testRecords()
	before := titlesOf(records)

	q := wideOpenQuery()
	q.Sort = Sort{Key: SortTitle, Order: SortAsc}
	Evaluate(records, q)

	if got := titlesOf(records); !reflect.DeepEqual(got, before) {
		t.Fatalf("input slice reordered: %v", got)
	}
}

func TestEvaluate_SearchMatchesDirector(t *testing.T) {
	q := wideOpenQuery()
	q.SearchQuery = "Wachowski"

	view := Evaluate(testRecords(), q)
	if len(view) != 1 || view[0].Title != "The Matrix" {
		t.Fatalf("expected only The Matrix, got %v", titlesOf(view))
	}
}

func TestEvaluate_SearchFields(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title substring", "matri", []string{"The Matrix"}},
		{"cast member", "pacino", []string{"Heat"}},
		{"keyword", "DYSTOPIA", []string{"The Matrix"}},
		{"no match", "zzzz", nil},
		{"whitespace only is no search", "   ", []string{"The Matrix", "Spirited Away", "Unrated Obscurity", "Heat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := wideOpenQuery()
			q.SearchQuery = tt.query
			// Keep document order to make expectations readable.
			q.Sort = Sort{Key: SortPopularity, Order: SortDesc}

			view := Evaluate(testRecords(), q)
			got := titlesOf(view)
			if tt.name == "whitespace only is no search" {
				if len(got) != len(tt.want) {
					t.Fatalf("expected all %d records, got %v", len(tt.want), got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
				t.Fatalf("query %q: expected %v, got %v", tt.query, tt.want, got)
			}
		})
	}
}

func TestEvaluate_ServiceFilterProperty(t *testing.T) {
	q := wideOpenQuery()
	q.Filters.Services["Netflix"] = true

	view := Evaluate(testRecords(), q)
	if len(view) == 0 {
		t.Fatal("expected some Netflix records")
	}
	for _, rec := range view {
		found := false
		for _, offer := range rec.Streaming {
			if offer.Service == "Netflix" {
				found = true
			}
		}
		if !found {
			t.Fatalf("record %q has no Netflix offer", rec.Title)
		}
	}
}

func TestEvaluate_GenreFilter(t *testing.T) {
	q := wideOpenQuery()
	q.Filters.Genres["Action"] = true
	q.Sort = Sort{Key: SortYear, Order: SortAsc}

	view := Evaluate(testRecords(), q)
	if got := titlesOf(view); !reflect.DeepEqual(got, []string{"Heat", "The Matrix"}) {
		t.Fatalf("expected [Heat, The Matrix], got %v", got)
	}
}

func TestEvaluate_YearRangeInclusive(t *testing.T) {
	q := wideOpenQuery()
	q.Filters.Years.Set(1995, 1999)
	q.Sort = Sort{Key: SortYear, Order: SortAsc}

	view := Evaluate(testRecords(), q)
	if got := titlesOf(view); !reflect.DeepEqual(got, []string{"Heat", "The Matrix"}) {
		t.Fatalf("expected boundary years included, got %v", got)
	}
}

func TestEvaluate_UnratedExcludedByLowerBound(t *testing.T) {
	q := wideOpenQuery()
	q.Filters.Rating.Set(1, 100)

	view := Evaluate(testRecords(), q)
	for _, rec := range view {
		if rec.Ratings.RTTomatometer == 0 {
			t.Fatalf("record %q with no tomatometer passed a lower bound > 0", rec.Title)
		}
	}

	// With the full rating domain the unrated record is back.
	q.Filters.Rating.Set(0, 100)
	view = Evaluate(testRecords(), q)
	found := false
	for _, rec := range view {
		if rec.ID == 3 {
			found = true
		}
	}
	if !found {
		t.Fatal("unrated record should pass the full rating domain")
	}
}

func TestEvaluate_SortScenarios(t *testing.T) {
	records := []catalog.MovieRecord{
		{ID: 1, Title: "B", ReleaseYear: 2000},
		{ID: 2, Title: "A", ReleaseYear: 1999},
	}
	q := wideOpenQuery()

	q.Sort = Sort{Key: SortTitle, Order: SortAsc}
	if got := titlesOf(Evaluate(records, q)); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("title asc: got %v", got)
	}

	q.Sort = Sort{Key: SortYear, Order: SortDesc}
	if got := titlesOf(Evaluate(records, q)); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Fatalf("year desc: got %v", got)
	}
}

func TestEvaluate_SortStableOnEqualKeys(t *testing.T) {
	// The Matrix and Heat share tomatometer 88; their pre-sort order
	// (document order) must survive both directions.
	q := wideOpenQuery()
	q.Sort = Sort{Key: SortRating, Order: SortDesc}
	view := Evaluate(testRecords(), q)
	got := titlesOf(view)
	want := []string{"Spirited Away", "The Matrix", "Heat", "Unrated Obscurity"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rating desc: expected %v, got %v", want, got)
	}

	q.Sort = Sort{Key: SortRating, Order: SortAsc}
	view = Evaluate(testRecords(), q)
	got = titlesOf(view)
	want = []string{"Unrated Obscurity", "The Matrix", "Heat", "Spirited Away"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rating asc: expected %v, got %v", want, got)
	}
}

func TestEvaluate_CaseFoldedTitleSort(t *testing.T) {
	records := []catalog.MovieRecord{
		{ID: 1, Title: "alpha"},
		{ID: 2, Title: "Beta"},
		{ID: 3, Title: "GAMMA"},
	}
	q := wideOpenQuery()
	q.Filters.Years = NewRange(0, 3000)
	q.Sort = Sort{Key: SortTitle, Order: SortAsc}

	got := titlesOf(Evaluate(records, q))
	if !reflect.DeepEqual(got, []string{"alpha", "Beta", "GAMMA"}) {
		t.Fatalf("case-folded title sort: got %v", got)
	}
}
