package presets

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/reusee/beat/logs"
	"github.com/reusee/beat/modes"
	"github.com/reusee/dscope"
)

func openTestStore(t *testing.T) *Store {
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "presets.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	saved, err := store.Save(ctx, Preset{
		Name:   "saw",
		Source: "[*] = t",
	})
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" {
		t.Fatal("no id")
	}

	// replace keeps id
	replaced, err := store.Save(ctx, Preset{
		Name:   "saw",
		Source: "[*] = t * 2",
		State:  []byte{1, 2, 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	if replaced.ID != saved.ID {
		t.Fatalf("got %s", replaced.ID)
	}

	loaded, err := store.Load(ctx, "saw")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Source != "[*] = t * 2" {
		t.Fatalf("got %q", loaded.Source)
	}
	if string(loaded.State) != "\x01\x02\x03" {
		t.Fatalf("got %v", loaded.State)
	}
	if !loaded.Updated.Equal(replaced.Updated) {
		t.Fatalf("got %v", loaded.Updated)
	}

	if _, err := store.Save(ctx, Preset{
		Name:   "rise",
		Source: "[*] = t >> 4",
	}); err != nil {
		t.Fatal(err)
	}
	list, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d", len(list))
	}
	if list[0].Name != "rise" || list[1].Name != "saw" {
		t.Fatalf("got %+v", list)
	}
	if list[1].State != nil {
		t.Fatal("state should not be listed")
	}

	if err := store.Delete(ctx, "saw"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(ctx, "saw"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
	if err := store.Delete(ctx, "saw"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestOpenStore(t *testing.T) {
	path := Path(filepath.Join(t.TempDir(), "presets.db"))
	dscope.New(
		new(Module),
		modes.ForTest(t),
		dscope.Provide(path),
	).Call(func(
		openStore OpenStore,
		logger logs.Logger,
	) {
		store, err := openStore(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close()
		list, err := store.List(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != 0 {
			t.Fatalf("got %d", len(list))
		}
	})
}
