package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/John-Tuesday/unverdad"
	"github.com/John-Tuesday/unverdad/internal/modfs"
	"github.com/John-Tuesday/unverdad/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewInstallCommand copies enabled mods into the game's mod directory.
func NewInstallCommand(app *App) *cobra.Command {
	var (
		game   gameFlags
		modIDs []string
		dry    bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install enabled mods into the game",
		Long: `Copy the paks of every enabled mod of the game into its mod
directory, plus any mod named with --mod-id even when it is disabled.
Without --mod-id the directory is cleared first, so disabled mods are
removed.`,
		Annotations: needsStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids, err := parseIDs("mod id", modIDs)
			if err != nil {
				return err
			}
			g, dir, err := installTarget(ctx, app, &game)
			if err != nil {
				return err
			}

			filter := app.Store.Filter()
			games, err := app.Store.TableLeaf(filter, store.ViewMod, unverdad.AND)
			if err != nil {
				return err
			}
			if err := games.Add("game_id", g.ID, unverdad.EQ); err != nil {
				return err
			}
			// Mods named with --mod-id install even when disabled.
			mods, err := app.Store.TableLeaf(filter, store.ViewMod, unverdad.OR)
			if err != nil {
				return err
			}
			if err := mods.Add("enabled", true, unverdad.EQ); err != nil {
				return err
			}
			for _, id := range ids {
				if err := mods.Add("mod_id", id, unverdad.EQ); err != nil {
					return err
				}
			}
			found, err := app.Store.Mods.Find(ctx, filter)
			if err != nil {
				return err
			}

			runner := modfs.NewRunner(app.Fs, dry, app.Out)
			runner.Logger = app.Logger
			if len(ids) == 0 {
				if err := runner.RemoveAll(dir); err != nil {
					return err
				}
			}
			if err := runner.MkdirAll(dir); err != nil {
				return err
			}

			byMod := make(map[uuid.UUID][]store.Pak)
			foundIDs := make([]uuid.UUID, 0, len(found))
			for _, m := range found {
				foundIDs = append(foundIDs, m.ModID)
			}
			paks, err := app.Store.Paks.ForMods(ctx, foundIDs...)
			if err != nil {
				return err
			}
			for _, p := range paks {
				byMod[p.ModID] = append(byMod[p.ModID], p)
			}

			for _, m := range found {
				target := filepath.Join(dir, m.ModName)
				if err := runner.RemoveAll(target); err != nil {
					return err
				}
				for _, p := range byMod[m.ModID] {
					src := modfs.Pair{
						Pak: filepath.Join(app.Config.ModsHome, filepath.FromSlash(p.PakPath)),
						Sig: filepath.Join(app.Config.ModsHome, filepath.FromSlash(p.SigPath)),
					}
					if _, err := runner.CopyPair(src, target); err != nil {
						return err
					}
				}
				app.Logger.Info("installed mod", "mod", m.ModName, "paks", len(byMod[m.ModID]))
			}
			if !dry {
				app.PrintSuccess("installed %d mod(s) into %s", len(found), dir)
			}
			return nil
		},
	}

	game.register(cmd)
	cmd.Flags().StringSliceVar(&modIDs, "mod-id", nil, "also install these mods, even if disabled")
	cmd.Flags().BoolVar(&dry, "dry", false, "print the file operations without running them")
	return cmd
}

// installTarget resolves the selected game and its mod directory.
func installTarget(ctx context.Context, app *App, game *gameFlags) (store.Game, string, error) {
	g, err := game.resolve(ctx, app)
	if err != nil {
		return store.Game{}, "", err
	}
	if !g.Path.Valid || g.Path.String == "" {
		return store.Game{}, "", fmt.Errorf("game %q has no path: set games.<name>.game_path in the config", g.Name)
	}
	return g, modfs.InstallDir(g.Path.String, g.PathOffset, g.ModsHomeRelativePath), nil
}
