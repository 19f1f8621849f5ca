package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// PrintSuccess prints a success line to the app's output.
func (a *App) PrintSuccess(format string, args ...any) {
	successColor.Fprintf(a.Out, "✓ "+format+"\n", args...)
}

// PrintWarning prints a warning line to the app's error output.
func (a *App) PrintWarning(format string, args ...any) {
	warnColor.Fprintf(a.Err, "! "+format+"\n", args...)
}

// PrintError prints err to the app's error output.
func (a *App) PrintError(err error) {
	errorColor.Fprintf(a.Err, "Error: %v\n", err)
}

// PrintTable renders rows under headers.
func (a *App) PrintTable(headers []string, rows [][]string) error {
	data := pterm.TableData{headers}
	data = append(data, rows...)
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.Out, out)
	return err
}
