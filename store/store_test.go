package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/VantageDataChat/GoDeck/deck"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "decks.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetDeck(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	d, err := deck.Parse([]byte(`{"title": "Roadmap", "sections": [
		{"id": "s1", "title": "Goals", "components": [
			{"id": "c1", "type": "text", "data": {"text": "Ship it"}, "layout": {"x": 10, "y": "20px", "width": 300, "height": 40}}
		]}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	id, err := s.SaveDeck(ctx, d)
	if err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}
	if d.ID != "" {
		t.Error("SaveDeck must not modify the caller's deck")
	}

	got, err := s.GetDeck(ctx, id)
	if err != nil {
		t.Fatalf("GetDeck: %v", err)
	}
	if got.ID.String() != id || got.Title != "Roadmap" || len(got.Sections) != 1 {
		t.Fatalf("got %+v", got)
	}
	c := got.Sections[0].Components[0]
	if c.Layout.Y.Or(0) != 20 || string(c.Type) != "text" {
		t.Errorf("component did not round trip: %+v", c)
	}
	if c.Layout.ZIndex.Valid() {
		t.Error("missing zIndex must stay invalid")
	}
}

func TestSaveDeckUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveDeck(ctx, &deck.Deck{ID: "d1", Title: "First"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveDeck(ctx, &deck.Deck{ID: "d1", Title: "Second"}); err != nil {
		t.Fatal(err)
	}
	list, err := s.ListDecks(ctx)
	if err != nil {
		t.Fatalf("ListDecks: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Second" {
		t.Errorf("list = %+v", list)
	}
}

func TestGetAndDeleteMissingDeck(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.GetDeck(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDeck err = %v", err)
	}
	if err := s.DeleteDeck(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteDeck err = %v", err)
	}

	if _, err := s.SaveDeck(ctx, &deck.Deck{ID: "d1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteDeck(ctx, "d1"); err != nil {
		t.Fatalf("DeleteDeck: %v", err)
	}
	if _, err := s.GetDeck(ctx, "d1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deck still present: %v", err)
	}
}

func TestListDecksEmpty(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	list, err := s.ListDecks(context.Background())
	if err != nil {
		t.Fatalf("ListDecks: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("list = %#v, want empty slice", list)
	}
}

func TestSaveNilDeck(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.SaveDeck(context.Background(), nil); err == nil {
		t.Error("expected an error for a nil deck")
	}
}
