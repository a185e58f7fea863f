package test

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/online-store/core/card"
)

func TestCards(t *testing.T) {
	env := NewTestEnv(t)

	var empty []card.Card
	if code := env.do(t, http.MethodGet, "/api/cards", nil, &empty); code != http.StatusOK {
		t.Fatalf("listing cards: status %d", code)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected an empty JSON array, got %#v", empty)
	}

	// An earlier save, so the next one has something to replace.
	old := []card.Card{{Name: "Old", Price: "5 грн"}, {Name: "Older", Price: "6 грн"}, {Name: "Oldest", Price: "7 грн"}}
	if code := env.do(t, http.MethodPost, "/api/cards", old, nil); code != http.StatusOK {
		t.Fatalf("saving cards: status %d", code)
	}

	payload := []map[string]any{
		{"name": "A", "price": "10 грн", "description": "desk lamp", "availability": "in stock", "date": "2026-10-01"},
		{"name": "B", "price": "20 грн", "imageSrc": "https://res.example/b.png"},
	}

	var ack struct {
		Status string `json:"status"`
	}
	if code := env.do(t, http.MethodPost, "/api/cards", payload, &ack); code != http.StatusOK {
		t.Fatalf("saving cards: status %d", code)
	}
	if ack.Status != "ok" {
		t.Fatalf("expected status ok, got %q", ack.Status)
	}

	exp := []card.Card{
		{ID: 1, Name: "A", Price: "10 грн", Description: "desk lamp", Availability: "in stock", Date: "2026-10-01"},
		{ID: 2, Name: "B", Price: "20 грн", ImageSrc: "https://res.example/b.png"},
	}

	var first, second []card.Card
	env.do(t, http.MethodGet, "/api/cards", nil, &first)
	env.do(t, http.MethodGet, "/api/cards", nil, &second)

	if diff := cmp.Diff(exp, first); diff != "" {
		t.Fatalf("unexpected cards (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("two reads without a write differ (-first +second):\n%s", diff)
	}
}

func TestCardsRejectInvalidPayload(t *testing.T) {
	env := NewTestEnv(t)

	good := []card.Card{{Name: "A", Price: "10 грн"}}
	env.do(t, http.MethodPost, "/api/cards", good, nil)

	bad := []map[string]any{{"name": "B", "price": "1"}, {"name": "C"}}

	var eb errorBody
	if code := env.do(t, http.MethodPost, "/api/cards", bad, &eb); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if eb.Error == "" {
		t.Fatal("expected an error message")
	}

	var got []card.Card
	env.do(t, http.MethodGet, "/api/cards", nil, &got)
	if len(got) != 1 || got[0].Name != "A" {
		t.Fatalf("a rejected save changed the catalog: %+v", got)
	}
}
