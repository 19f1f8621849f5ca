package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/John-Tuesday/unverdad"
	"github.com/John-Tuesday/unverdad/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// gameFlags select a single game by id or name.
type gameFlags struct {
	id   string
	name string
}

func (g *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&g.id, "game-id", "", "select the game by id")
	cmd.Flags().StringVar(&g.name, "game-name", "", "select the game by name; '_' matches ' '")
	cmd.MarkFlagsMutuallyExclusive("game-id", "game-name")
}

func (g *gameFlags) set() bool {
	return g.id != "" || g.name != ""
}

// resolve returns the selected game, falling back to the configured
// default game when no flag is set.
func (g *gameFlags) resolve(ctx context.Context, app *App) (store.Game, error) {
	id, err := parseNullID("game id", g.id)
	if err != nil {
		return store.Game{}, err
	}
	name := g.name
	if !id.Valid && name == "" {
		if !app.Config.DefaultGame.Enabled {
			return store.Game{}, fmt.Errorf("no game selected: use --game-id or --game-name")
		}
		name = app.Config.DefaultGame.Name
	}
	return app.Store.Games.Resolve(ctx, id, name)
}

func parseNullID(what, s string) (uuid.NullUUID, error) {
	if s == "" {
		return uuid.NullUUID{}, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.NullUUID{}, fmt.Errorf("invalid %s %q: %w", what, s, err)
	}
	return uuid.NullUUID{UUID: id, Valid: true}, nil
}

func parseIDs(what string, values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, s := range values {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", what, s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// modSelector adds the mod id and name filters to b as one OR leaf on the
// given id and name columns. Names match like game names do.
func modSelector(app *App, b *unverdad.Branch, table, nameColumn string, ids []uuid.UUID, names []string) error {
	if len(ids) == 0 && len(names) == 0 {
		return nil
	}
	leaf, err := app.Store.TableLeaf(b, table, unverdad.OR)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := leaf.Add("mod_id", id, unverdad.EQ); err != nil {
			return err
		}
	}
	for _, name := range names {
		if err := leaf.AddExpr(nameColumn, app.Store.MatchName(), name); err != nil {
			return err
		}
	}
	return nil
}

// gameDirName is the directory under the mods home holding a game's mods.
func gameDirName(g store.Game) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(g.Name)), " ", "_")
}
