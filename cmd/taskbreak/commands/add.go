package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskbreak/taskbreak/internal/models"
	"github.com/taskbreak/taskbreak/internal/validation"
)

// NewAddCmd creates the goal-decomposition command
func NewAddCmd() *cobra.Command {
	var category, fromAudio string

	cmd := &cobra.Command{
		Use:   "add [goal text]",
		Short: "Decompose a goal into tasks and save it",
		Long:  "Send a free-text goal to the configured decomposition provider, assemble the resulting task list into a goal, and save it locally",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			provider, err := app.provider()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var input string
			if len(args) == 1 {
				input = args[0]
			}

			if fromAudio != "" {
				audio, err := os.ReadFile(fromAudio)
				if err != nil {
					return fmt.Errorf("failed to read audio file: %w", err)
				}
				transcript, err := provider.TranscribeAudio(ctx, audio)
				if err != nil {
					return fmt.Errorf("failed to transcribe audio: %w", err)
				}
				fmt.Printf("Transcript: %s\n", transcript)
				input = transcript
			}

			input = validation.SanitizeText(input)
			if err := models.ValidateGoalInput(input); err != nil {
				return err
			}

			fmt.Println("Decomposing goal...")
			resp, err := provider.DecomposeGoal(ctx, models.DecompositionRequest{
				Goal:     input,
				Category: category,
			})
			if err != nil {
				return fmt.Errorf("failed to decompose goal: %w", err)
			}

			goal := models.NewGoalFromDecomposition(resp, time.Now())
			if category != "" {
				goal.Category = category
			}
			app.store.AddGoal(goal)

			fmt.Printf("Added goal %s with %d tasks (about %s total)\n",
				goal.ID, len(goal.Tasks), models.FormatDuration(models.TotalEstimatedTime(goal.Tasks)))
			renderTasks(&goal)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Override the goal category (work, study, life, health, other)")
	cmd.Flags().StringVar(&fromAudio, "from-audio", "", "Transcribe this audio file and use the transcript as the goal text")

	return cmd
}
