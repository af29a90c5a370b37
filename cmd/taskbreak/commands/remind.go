package commands

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskbreak/taskbreak/internal/models"
	"github.com/taskbreak/taskbreak/internal/notify"
)

// watchPollInterval is how often the watch loop re-evaluates due reminders.
// The per-goal cadence itself comes from the reminder-interval setting.
const watchPollInterval = time.Minute

// NewRemindCmd creates the reminder command
func NewRemindCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Print reminders for goals with unfinished tasks",
		Long:  "Print a reminder for every incomplete goal whose last reminder is older than the configured interval. With --watch, keep running and re-check every minute until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			if !watch {
				if printed := deliverReminders(app); printed == 0 {
					fmt.Println("Nothing to remind about")
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			deliverReminders(app)
			ticker := time.NewTicker(watchPollInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					fmt.Println("Reminder watch stopped")
					return nil
				case <-ticker.C:
					deliverReminders(app)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and deliver reminders as they come due")

	return cmd
}

// deliverReminders prints every due reminder and records the delivery. It
// returns the number of reminders printed.
func deliverReminders(app *app) int {
	goals := app.store.GetGoals()
	settings := app.store.GetSettings()
	state := app.store.GetNotificationState()

	due := notify.DueReminders(goals, settings, state, time.Now())
	for _, r := range due {
		fmt.Printf("Reminder: %q has %d pending tasks (about %s left)\n",
			r.GoalTitle, r.PendingTasks, models.FormatDuration(r.RemainingMinutes))
	}
	if len(due) > 0 {
		notify.MarkReminded(&state, due, time.Now())
		app.store.SaveNotificationState(state)
	}
	return len(due)
}
