package commands

import (
	"github.com/spf13/cobra"
)

// annotationStore marks commands that need an open store.
const annotationStore = "unverdad/store"

var needsStore = map[string]string{annotationStore: "true"}

// NewRootCommand builds the unverdad command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unverdad",
		Short: "Manage game mods",
		Long: `unverdad keeps a registry of game mods, enables or disables them
and installs the enabled ones into the game's mod directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			if cmd.Annotations[annotationStore] == "" {
				return nil
			}
			return app.openStore(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}
	cmd.SetOut(app.Out)
	cmd.SetErr(app.Err)

	flags := cmd.PersistentFlags()
	flags.CountVarP(&app.verbose, "verbose", "v", "log more; repeat for debug output")
	flags.BoolVar(&app.debug, "debug", false, "log debug output")
	flags.BoolVarP(&app.quiet, "quiet", "q", false, "log errors only")

	cmd.AddCommand(
		NewModRegistryCommand(app),
		NewImportCommand(app),
		NewInstallCommand(app),
		NewUninstallCommand(app),
		NewConfigCommand(app),
		NewVersionCommand(app),
	)
	return cmd
}
