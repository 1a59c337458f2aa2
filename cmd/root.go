package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ttedit",
	Short: "Edit timetable event series from the command line",
	Long: `ttedit is a client for the timetable backend's editable event
series. It expands a series (fetching its events lazily, exactly once),
applies field edits with the same consistency rules as the web panel, and
commits all events back in one batch save.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
