package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskbreak/taskbreak/internal/models"
	"github.com/taskbreak/taskbreak/internal/storage"
	"github.com/taskbreak/taskbreak/internal/validation"
)

// NewTaskCmd creates the task subcommand group
func NewTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Operate on a goal's tasks",
	}
	cmd.AddCommand(newTaskDoneCmd())
	cmd.AddCommand(newTaskUndoneCmd())
	cmd.AddCommand(newTaskEditCmd())
	return cmd
}

// findTask verifies that both the goal and the task exist before a mutation,
// so missing IDs produce an error instead of a silent no-op.
func findTask(store *storage.Store, goalID, taskID string) error {
	goal, ok := store.GetGoal(goalID)
	if !ok {
		return fmt.Errorf("goal %s not found", goalID)
	}
	for i := range goal.Tasks {
		if goal.Tasks[i].ID == taskID {
			return nil
		}
	}
	return fmt.Errorf("task %s not found in goal %s", taskID, goalID)
}

func newTaskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <goal-id> <task-id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			if err := findTask(app.store, args[0], args[1]); err != nil {
				return err
			}
			done := true
			app.store.UpdateTask(args[0], args[1], storage.TaskPatch{IsCompleted: &done})

			goal, _ := app.store.GetGoal(args[0])
			fmt.Printf("Task %s completed. Goal progress: %d%%\n", args[1], models.ProgressPercent(&goal))
			if goal.IsCompleted {
				fmt.Println("All tasks done, goal completed!")
			}
			return nil
		},
	}
}

func newTaskUndoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undone <goal-id> <task-id>",
		Short: "Mark a task as not completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			if err := findTask(app.store, args[0], args[1]); err != nil {
				return err
			}
			done := false
			app.store.UpdateTask(args[0], args[1], storage.TaskPatch{IsCompleted: &done})

			goal, _ := app.store.GetGoal(args[0])
			fmt.Printf("Task %s reopened. Goal progress: %d%%\n", args[1], models.ProgressPercent(&goal))
			return nil
		},
	}
}

func newTaskEditCmd() *cobra.Command {
	var title string
	var estimatedTime int
	var priority string

	cmd := &cobra.Command{
		Use:   "edit <goal-id> <task-id>",
		Short: "Edit a task's title, time estimate or priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			if err := findTask(app.store, args[0], args[1]); err != nil {
				return err
			}

			var patch storage.TaskPatch
			if cmd.Flags().Changed("title") {
				trimmed := validation.SanitizeText(title)
				if trimmed == "" {
					return fmt.Errorf("task title cannot be empty")
				}
				patch.Title = &trimmed
			}
			if cmd.Flags().Changed("time") {
				if estimatedTime <= 0 {
					return fmt.Errorf("estimated time must be a positive number of minutes")
				}
				patch.EstimatedTime = &estimatedTime
			}
			if cmd.Flags().Changed("priority") {
				if err := validation.ValidatePriority(priority); err != nil {
					return err
				}
				p := models.Priority(priority)
				patch.Priority = &p
			}
			if patch.Title == nil && patch.EstimatedTime == nil && patch.Priority == nil {
				return fmt.Errorf("nothing to change: pass --title, --time or --priority")
			}

			app.store.UpdateTask(args[0], args[1], patch)
			fmt.Printf("Task %s updated\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New task title")
	cmd.Flags().IntVar(&estimatedTime, "time", 0, "New time estimate in minutes")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority (low, medium, high)")

	return cmd
}
