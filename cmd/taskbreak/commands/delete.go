package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCmd creates the goal deletion command
func NewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <goal-id>",
		Short: "Delete a goal and all its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			if _, ok := app.store.GetGoal(args[0]); !ok {
				return fmt.Errorf("goal %s not found", args[0])
			}
			app.store.DeleteGoal(args[0])
			fmt.Printf("Deleted goal %s\n", args[0])
			return nil
		},
	}
}

// NewClearCmd creates the clear-all-data command
func NewClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all goals, settings and notification state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("this deletes all local data; pass --yes to confirm")
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			app.store.ClearAllData()
			fmt.Println("All local data cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion of all local data")

	return cmd
}
