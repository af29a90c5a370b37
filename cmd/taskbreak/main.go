package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskbreak/taskbreak/cmd/taskbreak/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "taskbreak",
		Short: "AI-assisted goal decomposition and task tracking",
		Long:  "Break free-text goals into small executable tasks, track their completion, and keep everything in a local data directory",
	}

	rootCmd.AddCommand(commands.NewAddCmd())
	rootCmd.AddCommand(commands.NewListCmd())
	rootCmd.AddCommand(commands.NewShowCmd())
	rootCmd.AddCommand(commands.NewTaskCmd())
	rootCmd.AddCommand(commands.NewDeleteCmd())
	rootCmd.AddCommand(commands.NewClearCmd())
	rootCmd.AddCommand(commands.NewSettingsCmd())
	rootCmd.AddCommand(commands.NewExportCmd())
	rootCmd.AddCommand(commands.NewImportCmd())
	rootCmd.AddCommand(commands.NewRemindCmd())
	rootCmd.AddCommand(commands.NewTranscribeCmd())
	rootCmd.AddCommand(commands.NewCheckCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
