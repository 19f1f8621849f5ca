package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/John-Tuesday/unverdad"
	"github.com/google/uuid"
)

const gameColumns = "game_id, gb_game_id, name, game_path, game_path_offset, mods_home_relative_path"

// Games reads and writes the game table.
type Games struct {
	s *Store
}

// Create inserts g.
func (r *Games) Create(ctx context.Context, g Game) error {
	params := unverdad.NewNamedParams(map[string]any{
		"game_id":                 g.ID,
		"gb_game_id":              g.GBGameID,
		"name":                    g.Name,
		"game_path":               g.Path,
		"game_path_offset":        g.PathOffset,
		"mods_home_relative_path": g.ModsHomeRelativePath,
	})
	query := r.s.SQL("INSERT INTO {game} (" + gameColumns + ") VALUES " +
		"(:game_id, :gb_game_id, :name, :game_path, :game_path_offset, :mods_home_relative_path)")
	if _, err := r.s.Exec(ctx, query, params); err != nil {
		return fmt.Errorf("inserting game %q: %w", g.Name, err)
	}
	return nil
}

// Count returns the number of games.
func (r *Games) Count(ctx context.Context) (int, error) {
	row, err := r.s.QueryRow(ctx, r.s.SQL("SELECT COUNT(*) FROM {game}"), unverdad.NamedParams{})
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting games: %w", err)
	}
	return n, nil
}

// Find returns the games matching c, or every game when c is empty.
func (r *Games) Find(ctx context.Context, c unverdad.Condition) ([]Game, error) {
	query := r.s.SQL("SELECT " + gameColumns + " FROM {game} " + unverdad.Where(c) + " ORDER BY name")
	rows, err := r.s.Query(ctx, query, unverdad.Args(c))
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.ID, &g.GBGameID, &g.Name, &g.Path, &g.PathOffset, &g.ModsHomeRelativePath); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// Get returns the game with id.
func (r *Games) Get(ctx context.Context, id uuid.UUID) (Game, error) {
	filter := r.s.Filter()
	leaf, err := r.s.TableLeaf(filter, TableGame, unverdad.AND)
	if err != nil {
		return Game{}, err
	}
	if err := leaf.Add("game_id", id, unverdad.EQ); err != nil {
		return Game{}, err
	}

	games, err := r.Find(ctx, filter)
	if err != nil {
		return Game{}, err
	}
	if len(games) == 0 {
		return Game{}, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return games[0], nil
}

// NameLeaf adds a leaf to b matching game names against each of names,
// joined by OR. Matching ignores case and treats '_' and ' ' alike.
func (r *Games) NameLeaf(b *unverdad.Branch, column string, names ...string) error {
	leaf, err := b.AddLeaf("", unverdad.OR)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := leaf.AddExpr(column, r.s.MatchName(), name); err != nil {
			return err
		}
	}
	return nil
}

// ByName returns the games whose name matches name.
func (r *Games) ByName(ctx context.Context, name string) ([]Game, error) {
	filter := r.s.Filter()
	if err := r.NameLeaf(filter, "name", name); err != nil {
		return nil, err
	}
	return r.Find(ctx, filter)
}

// Resolve returns the single game identified by id or, when id is nil,
// by name. It fails when nothing or more than one game matches.
func (r *Games) Resolve(ctx context.Context, id uuid.NullUUID, name string) (Game, error) {
	if id.Valid {
		return r.Get(ctx, id.UUID)
	}
	if name == "" {
		return Game{}, errors.New("a game id or name is required")
	}
	games, err := r.ByName(ctx, name)
	if err != nil {
		return Game{}, err
	}
	switch len(games) {
	case 0:
		return Game{}, fmt.Errorf("game %q: %w", name, ErrNotFound)
	case 1:
		return games[0], nil
	default:
		return Game{}, fmt.Errorf("game name %q is ambiguous: %d games match", name, len(games))
	}
}

// SetPath sets game_path on the games matching c.
func (r *Games) SetPath(ctx context.Context, c unverdad.Condition, path sql.NullString) (int64, error) {
	if !unverdad.Present(c) {
		return 0, ErrEmptyFilter
	}
	query := r.s.SQL("UPDATE {game} SET game_path = :game_path " + unverdad.Where(c))
	res, err := r.s.Exec(ctx, query, c.Params().With("game_path", path))
	if err != nil {
		return 0, fmt.Errorf("updating game path: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes the games matching c along with their mods.
func (r *Games) Delete(ctx context.Context, c unverdad.Condition) (int64, error) {
	if !unverdad.Present(c) {
		return 0, ErrEmptyFilter
	}
	res, err := r.s.Exec(ctx, r.s.SQL("DELETE FROM {game} "+unverdad.Where(c)), c.Params())
	if err != nil {
		return 0, fmt.Errorf("deleting games: %w", err)
	}
	return res.RowsAffected()
}
