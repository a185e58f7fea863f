package card

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func twoCards() []Card {
	return []Card{
		{Name: "A", Price: "10 грн", Description: "first"},
		{Name: "B", Price: "20 грн", ImageSrc: "https://res.example/b.png"},
	}
}

// testStore checks the contract every Store implementation must honour.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	got, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected an empty non-nil list, got %#v", got)
	}

	if _, err := s.Replace(ctx, []Card{{Name: "Old", Price: "1 грн"}}); err != nil {
		t.Fatal(err)
	}

	saved, err := s.Replace(ctx, twoCards())
	if err != nil {
		t.Fatal(err)
	}

	exp := twoCards()
	exp[0].ID = 1
	exp[1].ID = 2
	if diff := cmp.Diff(exp, saved); diff != "" {
		t.Fatalf("unexpected saved cards (-want +got):\n%s", diff)
	}

	first, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(exp, first); diff != "" {
		t.Fatalf("unexpected listed cards (-want +got):\n%s", diff)
	}

	second, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("listing twice gave different results (-first +second):\n%s", diff)
	}

	if _, err := s.Replace(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.List(ctx); len(got) != 0 {
		t.Fatalf("expected an empty catalog, got %+v", got)
	}
}

func testConcurrentReplace(t *testing.T, s Store) {
	ctx := context.Background()

	sets := [][]Card{
		{{Name: "A1", Price: "1"}, {Name: "A2", Price: "2"}, {Name: "A3", Price: "3"}},
		{{Name: "B1", Price: "1"}, {Name: "B2", Price: "2"}},
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(set []Card) {
			defer wg.Done()
			if _, err := s.Replace(ctx, set); err != nil {
				t.Error(err)
			}
		}(sets[i%2])
	}
	wg.Wait()

	got, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}

	// Whatever write landed last, the set must be one of the submitted ones.
	match := false
	for _, set := range sets {
		if len(set) != len(got) {
			continue
		}
		match = true
		for i := range set {
			if got[i].Name != set[i].Name || got[i].ID != i+1 {
				match = false
			}
		}
		if match {
			break
		}
	}
	if !match {
		t.Fatalf("catalog is a mix of concurrent writes: %+v", got)
	}
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestMemoryConcurrentReplace(t *testing.T) {
	testConcurrentReplace(t, NewMemory())
}
