package commands

import (
	"errors"
	"strconv"

	"github.com/John-Tuesday/unverdad"
	"github.com/John-Tuesday/unverdad/internal/store"
	"github.com/spf13/cobra"
)

// NewModRegistryCommand lists the registered mods or toggles them.
func NewModRegistryCommand(app *App) *cobra.Command {
	var (
		game     gameFlags
		modIDs   []string
		modNames []string
		enable   bool
		disable  bool
	)

	cmd := &cobra.Command{
		Use:     "mod-registry",
		Aliases: []string{"mods"},
		Short:   "List, enable or disable registered mods",
		Long: `List the registered mods. Mods selected by --mod-id or --mod-name
match if any of them matches; --game-id or --game-name narrows the
selection further. With --enable or --disable the selected mods are
updated instead of listed.`,
		Annotations: needsStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids, err := parseIDs("mod id", modIDs)
			if err != nil {
				return err
			}

			filter := app.Store.Filter()
			if game.set() {
				g, err := game.resolve(ctx, app)
				if err != nil {
					return err
				}
				leaf, err := filter.AddLeaf("", unverdad.AND)
				if err != nil {
					return err
				}
				if err := leaf.Add("game_id", g.ID, unverdad.EQ); err != nil {
					return err
				}
			}

			if enable || disable {
				if err := modSelector(app, filter, store.TableMod, "name", ids, modNames); err != nil {
					return err
				}
				n, err := app.Store.Mods.SetEnabled(ctx, filter, enable)
				if errors.Is(err, store.ErrEmptyFilter) {
					return errors.New("select mods with --mod-id, --mod-name, --game-id or --game-name")
				}
				if err != nil {
					return err
				}
				state := "disabled"
				if enable {
					state = "enabled"
				}
				app.PrintSuccess("%d mod(s) %s", n, state)
				return nil
			}

			if err := modSelector(app, filter, store.ViewMod, "mod_name", ids, modNames); err != nil {
				return err
			}
			mods, err := app.Store.Mods.Find(ctx, filter)
			if err != nil {
				return err
			}
			if len(mods) == 0 {
				app.PrintWarning("no mods found")
				return nil
			}
			rows := make([][]string, 0, len(mods))
			for _, m := range mods {
				rows = append(rows, []string{m.ModID.String(), m.ModName, strconv.FormatBool(m.Enabled), m.GameName})
			}
			return app.PrintTable([]string{"ID", "Name", "Enabled", "Game"}, rows)
		},
	}

	game.register(cmd)
	cmd.Flags().StringSliceVar(&modIDs, "mod-id", nil, "select mods by id")
	cmd.Flags().StringSliceVar(&modNames, "mod-name", nil, "select mods by name")
	cmd.Flags().BoolVar(&enable, "enable", false, "enable the selected mods")
	cmd.Flags().BoolVar(&disable, "disable", false, "disable the selected mods")
	cmd.MarkFlagsMutuallyExclusive("enable", "disable")
	return cmd
}
