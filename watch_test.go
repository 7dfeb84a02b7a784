package persist_test

import (
	"context"
	"reflect"
	"testing"

	persist "github.com/goliatone/go-persist"
	"github.com/goliatone/go-persist/pkg/adapters/memory"
)

func TestWatchFiresOncePerMutationInOrder(t *testing.T) {
	store, _ := newDocumentStore(t)

	var seen []document
	sub := store.Watch(func(value document) {
		seen = append(seen, value)
	})
	defer sub.Cancel()

	if err := store.Merge(context.Background(), map[string]any{"a": map[string]any{"y": 9}}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	s1 := document{A: nested{X: 5, Y: 5}, B: 5}
	s2 := document{A: nested{X: 6, Y: 6}, B: 6}
	if err := store.Set(context.Background(), s1); err != nil {
		t.Fatalf("set s1: %v", err)
	}
	if err := store.Set(context.Background(), s2); err != nil {
		t.Fatalf("set s2: %v", err)
	}

	want := []document{
		{A: nested{X: 1, Y: 9}, B: 3},
		s1,
		s2,
	}
	if !reflect.DeepEqual(want, seen) {
		t.Fatalf("notification sequence mismatch:\nwant: %+v\n got: %+v", want, seen)
	}
}

func TestWatchCancelStopsNotifications(t *testing.T) {
	store, _ := newDocumentStore(t)

	var notified int
	sub := store.Watch(func(document) { notified++ })

	if err := store.Set(context.Background(), document{B: 1}); err != nil {
		t.Fatalf("set: %v", err)
	}
	sub.Cancel()
	sub.Cancel() // safe to repeat
	if err := store.Set(context.Background(), document{B: 2}); err != nil {
		t.Fatalf("set: %v", err)
	}

	if notified != 1 {
		t.Fatalf("expected one notification before cancel, got %d", notified)
	}
}

func TestWatchNowDeliversCurrentThenChanges(t *testing.T) {
	store, _ := newDocumentStore(t)

	var seen []document
	current, sub := store.WatchNow(func(value document) {
		seen = append(seen, value)
	})
	defer sub.Cancel()

	if current.B != 3 {
		t.Fatalf("expected current value on subscribe, got %+v", current)
	}
	if err := store.Set(context.Background(), document{B: 4}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if len(seen) != 1 || seen[0].B != 4 {
		t.Fatalf("expected only the next write, got %+v", seen)
	}
}

func TestWatchMultipleSubscribersAllNotified(t *testing.T) {
	adapter := memory.New[int]()
	store := persist.New("counter", 0, adapter, persist.WithAutoInit(false))

	var a, b []int
	store.Watch(func(v int) { a = append(a, v) })
	store.Watch(func(v int) { b = append(b, v) })

	for i := 1; i <= 3; i++ {
		if err := store.Set(context.Background(), i); err != nil {
			t.Fatalf("set %d: %v", i, err)
		}
	}

	want := []int{1, 2, 3}
	if !reflect.DeepEqual(want, a) || !reflect.DeepEqual(want, b) {
		t.Fatalf("all subscribers see every write in order: %v / %v", a, b)
	}
}

func TestSubscriptionIDsAreUnique(t *testing.T) {
	store, _ := newDocumentStore(t)
	first := store.Watch(func(document) {})
	second := store.Watch(func(document) {})
	if first.ID() == "" || first.ID() == second.ID() {
		t.Fatalf("expected distinct subscription ids, got %q and %q", first.ID(), second.ID())
	}
}
