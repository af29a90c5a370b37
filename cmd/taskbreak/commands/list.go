package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskbreak/taskbreak/internal/models"
)

// NewListCmd creates the goal overview command
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			goals := app.store.GetGoals()
			if len(goals) == 0 {
				fmt.Println("No goals yet. Add one with: taskbreak add \"your goal\"")
				return nil
			}
			renderGoals(goals, time.Now())
			return nil
		},
	}
}

// NewShowCmd creates the single-goal detail command
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <goal-id>",
		Short: "Show a goal and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			goal, ok := app.store.GetGoal(args[0])
			if !ok {
				return fmt.Errorf("goal %s not found", args[0])
			}

			fmt.Printf("%s (%s)\n", goal.Title, goal.Category)
			fmt.Printf("Progress: %d%%, remaining: %s\n",
				models.ProgressPercent(&goal), models.FormatDuration(models.RemainingTime(&goal)))
			renderTasks(&goal)
			return nil
		},
	}
}
