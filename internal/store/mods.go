package store

import (
	"context"
	"fmt"

	"github.com/John-Tuesday/unverdad"
	"github.com/google/uuid"
)

const (
	modColumns     = "mod_id, gb_mod_id, game_id, name, enabled"
	modViewColumns = "mod_id, mod_name, enabled, game_id, game_name, game_path, game_path_offset, mods_home_relative_path"
)

// Mods reads and writes the mod table and the v_mod view.
type Mods struct {
	s *Store
}

// Create inserts m and its paks in one transaction.
func (r *Mods) Create(ctx context.Context, m Mod, paks []Pak) error {
	for _, p := range paks {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	return r.s.InTx(ctx, func(tx *Tx) error {
		params := unverdad.NewNamedParams(map[string]any{
			"mod_id":    m.ID,
			"gb_mod_id": m.GBModID,
			"game_id":   m.GameID,
			"name":      m.Name,
			"enabled":   m.Enabled,
		})
		query := r.s.SQL("INSERT INTO {mod} (" + modColumns + ") VALUES (:mod_id, :gb_mod_id, :game_id, :name, :enabled)")
		if _, err := tx.Exec(ctx, query, params); err != nil {
			return fmt.Errorf("inserting mod %q: %w", m.Name, err)
		}
		for _, p := range paks {
			p.ModID = m.ID
			if err := r.s.Paks.insert(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// Find returns rows of v_mod matching c, or every installed mod when c is empty.
func (r *Mods) Find(ctx context.Context, c unverdad.Condition) ([]ModView, error) {
	query := r.s.SQL("SELECT " + modViewColumns + " FROM {v_mod} " + unverdad.Where(c) + " ORDER BY game_name, mod_name")
	rows, err := r.s.Query(ctx, query, unverdad.Args(c))
	if err != nil {
		return nil, fmt.Errorf("querying mods: %w", err)
	}
	defer rows.Close()

	var mods []ModView
	for rows.Next() {
		var m ModView
		if err := rows.Scan(&m.ModID, &m.ModName, &m.Enabled, &m.GameID, &m.GameName,
			&m.GamePath, &m.GamePathOffset, &m.ModsHomeRelativePath); err != nil {
			return nil, fmt.Errorf("scanning mod: %w", err)
		}
		mods = append(mods, m)
	}
	return mods, rows.Err()
}

// FindRows returns rows of the mod table matching c.
func (r *Mods) FindRows(ctx context.Context, c unverdad.Condition) ([]Mod, error) {
	query := r.s.SQL("SELECT " + modColumns + " FROM {mod} " + unverdad.Where(c) + " ORDER BY name")
	rows, err := r.s.Query(ctx, query, unverdad.Args(c))
	if err != nil {
		return nil, fmt.Errorf("querying mods: %w", err)
	}
	defer rows.Close()

	var mods []Mod
	for rows.Next() {
		var m Mod
		if err := rows.Scan(&m.ID, &m.GBModID, &m.GameID, &m.Name, &m.Enabled); err != nil {
			return nil, fmt.Errorf("scanning mod: %w", err)
		}
		mods = append(mods, m)
	}
	return mods, rows.Err()
}

// Get returns the mod with id.
func (r *Mods) Get(ctx context.Context, id uuid.UUID) (Mod, error) {
	filter := r.s.Filter()
	leaf, err := r.s.TableLeaf(filter, TableMod, unverdad.AND)
	if err != nil {
		return Mod{}, err
	}
	if err := leaf.Add("mod_id", id, unverdad.EQ); err != nil {
		return Mod{}, err
	}
	mods, err := r.FindRows(ctx, filter)
	if err != nil {
		return Mod{}, err
	}
	if len(mods) == 0 {
		return Mod{}, fmt.Errorf("mod %s: %w", id, ErrNotFound)
	}
	return mods[0], nil
}

// SetEnabled sets enabled on the mods matching c.
func (r *Mods) SetEnabled(ctx context.Context, c unverdad.Condition, enabled bool) (int64, error) {
	if !unverdad.Present(c) {
		return 0, ErrEmptyFilter
	}
	query := r.s.SQL("UPDATE {mod} SET enabled = :enabled " + unverdad.Where(c))
	res, err := r.s.Exec(ctx, query, c.Params().With("enabled", enabled))
	if err != nil {
		return 0, fmt.Errorf("updating mods: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes the mods matching c along with their paks.
func (r *Mods) Delete(ctx context.Context, c unverdad.Condition) (int64, error) {
	if !unverdad.Present(c) {
		return 0, ErrEmptyFilter
	}
	res, err := r.s.Exec(ctx, r.s.SQL("DELETE FROM {mod} "+unverdad.Where(c)), c.Params())
	if err != nil {
		return 0, fmt.Errorf("deleting mods: %w", err)
	}
	return res.RowsAffected()
}
