package weberr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWrapChain(t *testing.T) {
	base := errors.New("no such card")
	err := NotFound(base, WithFields(map[string]any{"card": 3}))
	err = fmt.Errorf("handler: %w", err)
	err = Wrap(err, WithFields(map[string]any{"card": 4, "op": "show"}))

	if !errors.Is(err, base) {
		t.Fatal("expected the base error in the chain")
	}

	body, status, ok := Response(err)
	if !ok || status != http.StatusNotFound {
		t.Fatalf("expected a 404 response, got %d (%v)", status, ok)
	}
	if diff := cmp.Diff(&ErrorResponse{"the resource could not be found"}, body); diff != "" {
		t.Fatalf("unexpected body (-want +got):\n%s", diff)
	}

	fields, ok := Fields(err)
	if !ok {
		t.Fatal("expected fields")
	}
	if diff := cmp.Diff(map[string]any{"card": 4, "op": "show"}, fields); diff != "" {
		t.Fatalf("unexpected fields (-want +got):\n%s", diff)
	}
}

func TestStatus(t *testing.T) {
	if got := Status(errors.New("plain")); got != http.StatusInternalServerError {
		t.Fatalf("expected 500 for a plain error, got %d", got)
	}
	if got := Status(TooManyRequests(errors.New("slow"))); got != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", got)
	}
	if got := Status(BadGateway(errors.New("down"), "try again")); got != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", got)
	}
}
