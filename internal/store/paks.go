package store

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/John-Tuesday/unverdad"
	"github.com/google/uuid"
)

const (
	PakSuffix = ".pak"
	SigSuffix = ".sig"
)

// Validate checks that the pak and sig paths have the expected suffixes
// and share a stem.
func (p Pak) Validate() error {
	if !strings.HasSuffix(p.PakPath, PakSuffix) {
		return fmt.Errorf("pak path %q must end in %s", p.PakPath, PakSuffix)
	}
	if !strings.HasSuffix(p.SigPath, SigSuffix) {
		return fmt.Errorf("sig path %q must end in %s", p.SigPath, SigSuffix)
	}
	pakStem := strings.TrimSuffix(path.Base(p.PakPath), PakSuffix)
	sigStem := strings.TrimSuffix(path.Base(p.SigPath), SigSuffix)
	if pakStem != sigStem {
		return fmt.Errorf("pak %q and sig %q do not share a name", p.PakPath, p.SigPath)
	}
	return nil
}

// Paks reads and writes the pak table.
type Paks struct {
	s *Store
}

func (r *Paks) insert(ctx context.Context, tx *Tx, p Pak) error {
	if p.ID == uuid.Nil {
		p.ID = NewID()
	}
	params := unverdad.NewNamedParams(map[string]any{
		"pak_id":   p.ID,
		"mod_id":   p.ModID,
		"pak_path": p.PakPath,
		"sig_path": p.SigPath,
	})
	query := r.s.SQL("INSERT INTO {pak} (pak_id, mod_id, pak_path, sig_path) VALUES (:pak_id, :mod_id, :pak_path, :sig_path)")
	if _, err := tx.Exec(ctx, query, params); err != nil {
		return fmt.Errorf("inserting pak %q: %w", p.PakPath, err)
	}
	return nil
}

// Find returns the paks matching c.
func (r *Paks) Find(ctx context.Context, c unverdad.Condition) ([]Pak, error) {
	query := r.s.SQL("SELECT pak_id, mod_id, pak_path, sig_path FROM {pak} " + unverdad.Where(c) + " ORDER BY pak_path")
	rows, err := r.s.Query(ctx, query, unverdad.Args(c))
	if err != nil {
		return nil, fmt.Errorf("querying paks: %w", err)
	}
	defer rows.Close()

	var paks []Pak
	for rows.Next() {
		var p Pak
		if err := rows.Scan(&p.ID, &p.ModID, &p.PakPath, &p.SigPath); err != nil {
			return nil, fmt.Errorf("scanning pak: %w", err)
		}
		paks = append(paks, p)
	}
	return paks, rows.Err()
}

// ForMods returns the paks of every mod in ids.
func (r *Paks) ForMods(ctx context.Context, ids ...uuid.UUID) ([]Pak, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	filter := r.s.Filter()
	leaf, err := r.s.TableLeaf(filter, TablePak, unverdad.OR)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if err := leaf.Add("mod_id", id, unverdad.EQ); err != nil {
			return nil, err
		}
	}
	return r.Find(ctx, filter)
}
