package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/John-Tuesday/unverdad/internal/modfs"
	"github.com/John-Tuesday/unverdad/internal/store"
	"github.com/spf13/cobra"
)

// NewImportCommand copies pak files into the mods home and registers them
// as one mod.
func NewImportCommand(app *App) *cobra.Command {
	var (
		game    gameFlags
		dir     string
		files   []string
		enabled bool
		dry     bool
	)

	cmd := &cobra.Command{
		Use:   "import [name]",
		Short: "Import a mod from a directory or pak files",
		Long: `Import every .pak/.sig pair below --dir, or the pairs of the given
--file paks, as a single mod. The mod is named after the directory or the
first pak unless a name is given.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: needsStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var pairs []modfs.Pair
			switch {
			case dir != "":
				found, err := modfs.FindPairs(app.Fs, dir)
				if err != nil {
					return err
				}
				pairs = found
			case len(files) > 0:
				for _, f := range files {
					p, err := modfs.PairFor(f)
					if err != nil {
						return err
					}
					pairs = append(pairs, p)
				}
			default:
				return errors.New("nothing to import: use --dir or --file")
			}
			if len(pairs) == 0 {
				return fmt.Errorf("no %s files found in %s", modfs.PakExt, dir)
			}

			name := importName(args, dir, pairs)
			g, err := game.resolve(ctx, app)
			if err != nil {
				return err
			}

			rel := filepath.Join(gameDirName(g), name)
			runner := modfs.NewRunner(app.Fs, dry, app.Out)
			runner.Logger = app.Logger

			mod := store.Mod{
				ID:      store.NewID(),
				GameID:  g.ID,
				Name:    name,
				Enabled: enabled,
			}
			paks := make([]store.Pak, 0, len(pairs))
			for _, p := range pairs {
				dst, err := runner.CopyPair(p, filepath.Join(app.Config.ModsHome, rel))
				if err != nil {
					return err
				}
				paks = append(paks, store.Pak{
					PakPath: filepath.ToSlash(filepath.Join(rel, filepath.Base(dst.Pak))),
					SigPath: filepath.ToSlash(filepath.Join(rel, filepath.Base(dst.Sig))),
				})
			}
			if dry {
				return nil
			}

			if err := app.Store.Mods.Create(ctx, mod, paks); err != nil {
				return err
			}
			app.PrintSuccess("imported %s (%d pak(s)) for %s as %s", name, len(paks), g.Name, mod.ID)
			return nil
		},
	}

	game.register(cmd)
	cmd.Flags().StringVar(&dir, "dir", "", "import every pak below this directory")
	cmd.Flags().StringSliceVar(&files, "file", nil, "import these pak files")
	cmd.Flags().BoolVar(&enabled, "enable", true, "enable the mod after importing")
	cmd.Flags().BoolVar(&dry, "dry", false, "print the file operations without running them")
	cmd.MarkFlagsMutuallyExclusive("dir", "file")
	return cmd
}

func importName(args []string, dir string, pairs []modfs.Pair) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0])
	}
	if dir != "" {
		return filepath.Base(filepath.Clean(dir))
	}
	return pairs[0].Stem()
}
