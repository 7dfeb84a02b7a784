package sqlitestore_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	persist "github.com/goliatone/go-persist"
	"github.com/goliatone/go-persist/pkg/adapters/sqlitestore"
)

type prefs struct {
	Theme string `json:"theme"`
	Size  int    `json:"size"`
}

func openAdapter(t *testing.T) *sqlitestore.Adapter[prefs] {
	t.Helper()
	adapter, err := sqlitestore.Open[prefs](filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := adapter.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return adapter
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := sqlitestore.Open[prefs](""); err == nil {
		t.Fatal("expected an error without a path")
	}
}

func TestMissingKeyIsAbsent(t *testing.T) {
	adapter := openAdapter(t)

	res, settled := adapter.Get(context.Background(), "nope").Resolved()
	if !settled {
		t.Fatal("sqlite reads settle immediately")
	}
	if res.Found || res.Err != nil {
		t.Fatalf("missing row must be absent without error, got %+v", res)
	}
}

func TestUpsertRoundTrip(t *testing.T) {
	adapter := openAdapter(t)
	ctx := context.Background()

	if err := adapter.Set(ctx, "prefs", prefs{Theme: "light", Size: 12}); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Second write upserts the same row.
	value := prefs{Theme: "dark", Size: 14}
	if err := adapter.Set(ctx, "prefs", value); err != nil {
		t.Fatalf("second set: %v", err)
	}

	res, _ := adapter.Get(ctx, "prefs").Resolved()
	if !res.Found || !reflect.DeepEqual(value, res.Value) {
		t.Fatalf("want %+v, got %+v", value, res)
	}

	if err := adapter.Remove(ctx, "prefs"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	res, _ = adapter.Get(ctx, "prefs").Resolved()
	if res.Found {
		t.Fatalf("expected removal, got %+v", res)
	}
}

func TestStoreOverSQLite(t *testing.T) {
	adapter := openAdapter(t)
	ctx := context.Background()

	first := persist.New("prefs", prefs{Theme: "light", Size: 12}, adapter, persist.WithAutoInit(false))
	if err := first.Set(ctx, prefs{Theme: "dark", Size: 14}); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A fresh store over the same backing row loads what was written.
	second := persist.New("prefs", prefs{}, adapter, persist.WithAutoInit(false))
	if err := second.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	want := prefs{Theme: "dark", Size: 14}
	if got := second.Get(); !reflect.DeepEqual(want, got) {
		t.Fatalf("want %+v, got %+v", want, got)
	}
}
