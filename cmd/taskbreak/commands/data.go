package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// NewExportCmd creates the data export command
func NewExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all goals and settings to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			data, err := app.store.ExportData()
			if err != nil {
				return fmt.Errorf("failed to export data: %w", err)
			}

			if output == "" {
				output = fmt.Sprintf("task-decomposition-data-%s.json", time.Now().Format("2006-01-02"))
			}
			if err := os.WriteFile(output, []byte(data), 0o600); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}
			fmt.Printf("Exported data to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default task-decomposition-data-YYYY-MM-DD.json)")

	return cmd
}

// NewImportCmd creates the data import command
func NewImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import goals and settings from an export file",
		Long:  "Replace the local goals and settings with the contents of a previously exported JSON file. The file is validated before anything is overwritten.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}
			if !app.store.ImportData(string(data)) {
				return fmt.Errorf("import failed: %s is not a valid export file", args[0])
			}

			fmt.Printf("Imported %d goals from %s\n", len(app.store.GetGoals()), args[0])
			return nil
		},
	}
}
