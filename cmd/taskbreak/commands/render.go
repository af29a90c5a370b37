package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/taskbreak/taskbreak/internal/models"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	return t
}

// renderGoals prints the goal overview table
func renderGoals(goals []models.Goal, now time.Time) {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "Goal", "Category", "Progress", "Remaining", "Created", "Status"})

	for i := range goals {
		goal := &goals[i]
		status := text.FgYellow.Sprint("in progress")
		if goal.IsCompleted {
			status = text.FgGreen.Sprint("done")
		}
		t.AppendRow(table.Row{
			goal.ID,
			goal.Title,
			goal.Category,
			fmt.Sprintf("%d%%", models.ProgressPercent(goal)),
			models.FormatDuration(models.RemainingTime(goal)),
			models.FormatRelativeDate(goal.CreatedAt, now),
			status,
		})
	}
	t.Render()
}

// renderTasks prints a goal's task table
func renderTasks(goal *models.Goal) {
	t := newTable()
	t.AppendHeader(table.Row{"#", "ID", "Task", "Time", "Priority", "Status"})

	for i := range goal.Tasks {
		task := &goal.Tasks[i]
		status := text.FgYellow.Sprint("pending")
		if task.IsCompleted {
			status = text.FgGreen.Sprint("done")
		}
		t.AppendRow(table.Row{
			i + 1,
			task.ID,
			task.Title,
			models.FormatDuration(task.EstimatedTime),
			renderPriority(task.Priority),
			status,
		})
	}
	t.Render()
}

func renderPriority(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return text.FgHiRed.Sprint("high")
	case models.PriorityMedium:
		return text.FgYellow.Sprint("medium")
	case models.PriorityLow:
		return text.FgCyan.Sprint("low")
	default:
		return string(p)
	}
}
