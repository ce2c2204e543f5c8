package storages

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestInTx(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()

	if err := db.InTx(ctx, func(tx Tx) error {
		_, err := tx.Exec(ctx, `create table kv (k text primary key, v integer)`)
		return err
	}); err != nil {
		t.Fatal(err)
	}

	if err := db.InTx(ctx, func(tx Tx) error {
		_, err := tx.Exec(ctx, `insert into kv (k, v) values (?, ?)`, "t", 42)
		return err
	}); err != nil {
		t.Fatal(err)
	}

	// rolled back
	errBoom := errors.New("boom")
	if err := db.InTx(ctx, func(tx Tx) error {
		if _, err := tx.Exec(ctx, `update kv set v = 0`); err != nil {
			return err
		}
		return errBoom
	}); !errors.Is(err, errBoom) {
		t.Fatalf("got %v", err)
	}

	var v int
	if err := db.InTx(ctx, func(tx Tx) error {
		row, err := tx.QueryRow(ctx, `select v from kv where k = ?`, "t")
		if err != nil {
			return err
		}
		return row.Scan(&v)
	}); err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Fatalf("got %d", v)
	}
}
