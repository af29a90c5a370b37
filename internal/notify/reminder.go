// Package notify decides when the user should be nudged about unfinished
// goals. It is pure scheduling logic over the stored goals, settings and
// reminder bookkeeping; delivery (printing, watching) is the caller's job.
package notify

import (
	"time"

	"github.com/taskbreak/taskbreak/internal/models"
)

// Reminder is one due nudge about a goal with unfinished tasks
type Reminder struct {
	GoalID           string
	GoalTitle        string
	PendingTasks     int
	RemainingMinutes int
}

// DueReminders returns a reminder for every incomplete goal whose last
// reminder is at least the configured interval old. Notifications disabled in
// settings means nothing is ever due. A goal that was never reminded about is
// due immediately.
func DueReminders(goals []models.Goal, settings models.UserSettings, state models.NotificationState, now time.Time) []Reminder {
	if !settings.Notifications {
		return nil
	}
	interval := time.Duration(settings.ReminderInterval) * time.Minute

	var due []Reminder
	for i := range goals {
		goal := &goals[i]
		if goal.IsCompleted {
			continue
		}
		pending := 0
		for j := range goal.Tasks {
			if !goal.Tasks[j].IsCompleted {
				pending++
			}
		}
		if pending == 0 {
			continue
		}
		if last, ok := state.LastRemindedAt[goal.ID]; ok && now.Sub(last) < interval {
			continue
		}
		due = append(due, Reminder{
			GoalID:           goal.ID,
			GoalTitle:        goal.Title,
			PendingTasks:     pending,
			RemainingMinutes: models.RemainingTime(goal),
		})
	}
	return due
}

// MarkReminded records now as the last-reminded time for each delivered
// reminder.
func MarkReminded(state *models.NotificationState, delivered []Reminder, now time.Time) {
	if state.LastRemindedAt == nil {
		state.LastRemindedAt = map[string]time.Time{}
	}
	for _, r := range delivered {
		state.LastRemindedAt[r.GoalID] = now
	}
}
