package presets

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/reusee/beat/storages"
)

var ErrNotFound = errors.New("preset not found")

// Path is the preset database file.
type Path string

type Preset struct {
	ID     string
	Name   string
	Source string
	// beathost session state, may be empty
	State   []byte
	Updated time.Time
}

type Store struct {
	db *storages.DB
}

const schema = `
create table if not exists presets (
	id text primary key,
	name text not null unique,
	source text not null,
	state blob,
	updated integer not null
)
`

func Open(ctx context.Context, path string) (*Store, error) {
	db, err := storages.Open(path)
	if err != nil {
		return nil, wrap(err)
	}
	if err := db.InTx(ctx, func(tx storages.Tx) error {
		_, err := tx.Exec(ctx, schema)
		return err
	}); err != nil {
		db.Close()
		return nil, wrap(err)
	}
	return &Store{
		db: db,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the preset with the same name. The ID of an existing preset is kept.
func (s *Store) Save(ctx context.Context, preset Preset) (ret Preset, err error) {
	ret = preset
	ret.Updated = time.Now()
	err = s.db.InTx(ctx, func(tx storages.Tx) error {
		row, err := tx.QueryRow(ctx, `select id from presets where name = ?`, preset.Name)
		if err != nil {
			return err
		}
		err = row.Scan(&ret.ID)
		switch {

		case errors.Is(err, sql.ErrNoRows):
			ret.ID = uuid.NewString()
			_, err = tx.Exec(ctx,
				`insert into presets (id, name, source, state, updated) values (?, ?, ?, ?, ?)`,
				ret.ID, ret.Name, ret.Source, ret.State, ret.Updated.UnixNano(),
			)
			return err

		case err != nil:
			return err

		}
		_, err = tx.Exec(ctx,
			`update presets set source = ?, state = ?, updated = ? where id = ?`,
			ret.Source, ret.State, ret.Updated.UnixNano(), ret.ID,
		)
		return err
	})
	if err != nil {
		return ret, wrap(err)
	}
	return ret, nil
}

func (s *Store) Load(ctx context.Context, name string) (ret Preset, err error) {
	err = s.db.InTx(ctx, func(tx storages.Tx) error {
		row, err := tx.QueryRow(ctx,
			`select id, name, source, state, updated from presets where name = ?`,
			name,
		)
		if err != nil {
			return err
		}
		ret, err = scanPreset(row)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return ret, ErrNotFound
	}
	if err != nil {
		return ret, wrap(err)
	}
	return ret, nil
}

// List returns every preset by name, without state.
func (s *Store) List(ctx context.Context) (ret []Preset, err error) {
	err = s.db.InTx(ctx, func(tx storages.Tx) error {
		rows, err := tx.Query(ctx,
			`select id, name, source, null, updated from presets order by name`,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			preset, err := scanPreset(rows)
			if err != nil {
				return err
			}
			ret = append(ret, preset)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, wrap(err)
	}
	return ret, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	return s.db.InTx(ctx, func(tx storages.Tx) error {
		res, err := tx.Exec(ctx, `delete from presets where name = ?`, name)
		if err != nil {
			return wrap(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return wrap(err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func scanPreset(row interface{ Scan(...any) error }) (ret Preset, err error) {
	var updated int64
	if err := row.Scan(&ret.ID, &ret.Name, &ret.Source, &ret.State, &updated); err != nil {
		return ret, err
	}
	ret.Updated = time.Unix(0, updated)
	return ret, nil
}
