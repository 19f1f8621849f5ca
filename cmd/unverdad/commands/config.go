package commands

import (
	"fmt"
	"sort"

	"github.com/John-Tuesday/unverdad/internal/config"
	"github.com/spf13/cobra"
)

// NewConfigCommand prints or initializes configuration.
func NewConfigCommand(app *App) *cobra.Command {
	var (
		listAll  bool
		keys     []string
		defaults bool
		initFile bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Long: `Show the resolved configuration. Values come from config.toml,
.env files and UNVERDAD_ environment variables, in increasing priority.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case initFile:
				if err := config.WriteDefault(app.Paths); err != nil {
					return err
				}
				app.PrintSuccess("config file at %s", app.Paths.ConfigFile())
				return nil
			case defaults:
				values := config.Defaults(app.Paths)
				names := make([]string, 0, len(values))
				for k := range values {
					names = append(names, k)
				}
				sort.Strings(names)
				return printSettings(app, names, func(k string) (any, bool) {
					v, ok := values[k]
					return v, ok
				})
			case len(keys) > 0:
				return printSettings(app, keys, app.Config.Get)
			case listAll:
				return printSettings(app, app.Config.Keys(), app.Config.Get)
			default:
				return cmd.Help()
			}
		},
	}

	cmd.Flags().BoolVar(&listAll, "list-all", false, "print every setting")
	cmd.Flags().StringSliceVar(&keys, "get", nil, "print these settings")
	cmd.Flags().BoolVar(&defaults, "default", false, "print the default settings")
	cmd.Flags().BoolVar(&initFile, "init", false, "write a config file with the defaults unless one exists")
	cmd.MarkFlagsMutuallyExclusive("list-all", "get", "default", "init")
	return cmd
}

func printSettings(app *App, keys []string, get func(string) (any, bool)) error {
	for _, k := range keys {
		v, ok := get(k)
		if !ok {
			return fmt.Errorf("unknown setting %q", k)
		}
		if _, err := fmt.Fprintf(app.Out, "%s = %v\n", k, v); err != nil {
			return err
		}
	}
	return nil
}
