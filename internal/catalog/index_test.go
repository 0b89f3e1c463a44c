package catalog

import (
	"reflect"
	"testing"
)

func indexRecords() []MovieRecord {
	return []MovieRecord{
		{
			ID:     1,
			Title:  "First",
			Genres: []string{"Drama", "Action"},
			Streaming: []StreamingOffer{
				{Service: "Netflix", Region: "US"},
				{Service: "Hulu", Region: "US"},
			},
		},
		{
			ID:     2,
			Title:  "Second",
			Genres: []string{"Action", "Comedy"},
			Streaming: []StreamingOffer{
				{Service: "Netflix", Region: "US"},
				{Service: "Apple TV+", Region: "US"},
			},
		},
	}
}

func TestIndex_DerivedSetsSortedAndDistinct(t *testing.T) {
	idx := NewIndex(indexRecords())

	wantServices := []string{"Apple TV+", "Hulu", "Netflix"}
	if got := idx.Services(); !reflect.DeepEqual(got, wantServices) {
		t.Fatalf("Services() = %v, want %v", got, wantServices)
	}

	wantGenres := []string{"Action", "Comedy", "Drama"}
	if got := idx.Genres(); !reflect.DeepEqual(got, wantGenres) {
		t.Fatalf("Genres() = %v, want %v", got, wantGenres)
	}
}

func TestIndex_ByID(t *testing.T) {
	idx := NewIndex(indexRecords())

	rec, ok := idx.ByID(2)
	if !ok || rec.Title != "Second" {
		t.Fatalf("ByID(2) = %+v, %v", rec, ok)
	}
	if _, ok := idx.ByID(99); ok {
		t.Fatal("ByID(99) should be absent")
	}
}

func TestIndex_Empty(t *testing.T) {
	idx := NewIndex(nil)
	if idx.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", idx.Len())
	}
	if got := idx.Services(); len(got) != 0 {
		t.Fatalf("Services() = %v, want empty", got)
	}
	if got := idx.Genres(); len(got) != 0 {
		t.Fatalf("Genres() = %v, want empty", got)
	}
}
