package commands

import (
	"path/filepath"

	"github.com/John-Tuesday/unverdad"
	"github.com/John-Tuesday/unverdad/internal/modfs"
	"github.com/John-Tuesday/unverdad/internal/store"
	"github.com/spf13/cobra"
)

// NewUninstallCommand removes installed mods from the game's mod directory.
func NewUninstallCommand(app *App) *cobra.Command {
	var (
		game     gameFlags
		modIDs   []string
		modNames []string
		dry      bool
	)

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove mods from the game",
		Long: `Remove the selected mods from the game's mod directory, or the
whole directory when no mod is selected. The registry is not changed.`,
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

			runner := modfs.NewRunner(app.Fs, dry, app.Out)
			runner.Logger = app.Logger
			if len(ids) == 0 && len(modNames) == 0 {
				if err := runner.RemoveAll(dir); err != nil {
					return err
				}
				if !dry {
					app.PrintSuccess("removed %s", dir)
				}
				return nil
			}

			filter := app.Store.Filter()
			leaf, err := filter.AddLeaf("", unverdad.AND)
			if err != nil {
				return err
			}
			if err := leaf.Add("game_id", g.ID, unverdad.EQ); err != nil {
				return err
			}
			if err := modSelector(app, filter, store.ViewMod, "mod_name", ids, modNames); err != nil {
				return err
			}
			mods, err := app.Store.Mods.Find(ctx, filter)
			if err != nil {
				return err
			}
			for _, m := range mods {
				if err := runner.RemoveAll(filepath.Join(dir, m.ModName)); err != nil {
					return err
				}
			}
			if !dry {
				app.PrintSuccess("removed %d mod(s) from %s", len(mods), dir)
			}
			return nil
		},
	}

	game.register(cmd)
	cmd.Flags().StringSliceVar(&modIDs, "mod-id", nil, "remove only these mods")
	cmd.Flags().StringSliceVar(&modNames, "mod-name", nil, "remove only mods with these names")
	cmd.Flags().BoolVar(&dry, "dry", false, "print the file operations without running them")
	return cmd
}
