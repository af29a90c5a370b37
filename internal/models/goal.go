package models

import (
	"time"
)

// Priority represents how urgent a task is
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Well-known goal categories. Category is free text; decomposition backends
// classify into one of these, but user-defined labels are accepted as-is.
const (
	CategoryWork   = "work"
	CategoryStudy  = "study"
	CategoryLife   = "life"
	CategoryHealth = "health"
	CategoryOther  = "other"
)

// Task is one concrete, time-boxed unit of work belonging to a Goal
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title" validate:"required"`
	Description   string     `json:"description,omitempty"`
	EstimatedTime int        `json:"estimatedTime" validate:"gt=0"` // minutes
	IsCompleted   bool       `json:"isCompleted"`
	CreatedAt     time.Time  `json:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	Priority      Priority   `json:"priority" validate:"priority"`
	Category      string     `json:"category,omitempty"`
}

// SetCompleted toggles the completion flag while keeping CompletedAt in sync:
// the timestamp is present iff the task is completed.
func (t *Task) SetCompleted(done bool, now time.Time) {
	if done && !t.IsCompleted {
		completedAt := now
		t.CompletedAt = &completedAt
	}
	if !done {
		t.CompletedAt = nil
	}
	t.IsCompleted = done
}

// Goal is a user's high-level objective, decomposed into Tasks.
// Task order is insertion order and is meaningful for display.
type Goal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description,omitempty"`
	Tasks       []Task     `json:"tasks" validate:"dive"`
	CreatedAt   time.Time  `json:"createdAt"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Category    string     `json:"category,omitempty"`
}

// RecomputeCompletion refreshes the cached IsCompleted flag from the task
// list. A goal counts as completed only when it has at least one task and
// every task is done. CompletedAt is stamped on the incomplete-to-complete
// transition and cleared when the goal falls back to incomplete.
func (g *Goal) RecomputeCompletion(now time.Time) {
	done := len(g.Tasks) > 0
	for i := range g.Tasks {
		if !g.Tasks[i].IsCompleted {
			done = false
			break
		}
	}
	if done && !g.IsCompleted {
		completedAt := now
		g.CompletedAt = &completedAt
	}
	if !done {
		g.CompletedAt = nil
	}
	g.IsCompleted = done
}
