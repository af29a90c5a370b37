package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskbreak/taskbreak/internal/decompose"
)

// NewCheckCmd creates the configuration pre-flight command
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the decomposition provider configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			status := decompose.CheckConfiguration(app.cfg)
			if status.IsValid {
				fmt.Printf("Configuration OK (mode: %s)\n", app.cfg.APIMode)
				return nil
			}
			for _, msg := range status.Errors {
				fmt.Printf("- %s\n", msg)
			}
			return fmt.Errorf("configuration is not usable")
		},
	}
}
