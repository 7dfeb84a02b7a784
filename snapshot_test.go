package persist_test

import (
	"context"
	"reflect"
	"testing"

	persist "github.com/goliatone/go-persist"
	"github.com/goliatone/go-persist/pkg/adapters/memory"
)

func TestSnapshotIsPlainStructuralCopy(t *testing.T) {
	store, _ := newDocumentStore(t)

	snapshot, err := store.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	want := map[string]any{
		"a": map[string]any{"x": 1.0, "y": 2.0},
		"b": 3.0,
	}
	if !reflect.DeepEqual(want, snapshot) {
		t.Fatalf("want %#v, got %#v", want, snapshot)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	adapter := memory.New[map[string]any]()
	store := persist.New("doc", map[string]any{"a": "original"}, adapter, persist.WithAutoInit(false))

	snapshot, err := store.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	snapshot.(map[string]any)["a"] = "mutated"

	if got := store.Get(); got["a"] != "original" {
		t.Fatalf("snapshot must not share structure with the live value, got %v", got)
	}
}

func TestSnapshotOfScalarValue(t *testing.T) {
	adapter := memory.New[string]()
	store := persist.New("greeting", "hello", adapter, persist.WithAutoInit(false))

	snapshot, err := store.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot != "hello" {
		t.Fatalf("want scalar snapshot, got %#v", snapshot)
	}
	if err := store.Set(context.Background(), "goodbye"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if snapshot != "hello" {
		t.Fatalf("snapshot must not track later writes, got %#v", snapshot)
	}
}
