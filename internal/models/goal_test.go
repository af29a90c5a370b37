package models

import (
	"testing"
	"time"
)

func TestTaskSetCompleted(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	task := Task{Title: "write outline", EstimatedTime: 15, Priority: PriorityMedium}

	task.SetCompleted(true, now)
	if !task.IsCompleted {
		t.Error("expected task to be completed")
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Errorf("expected CompletedAt %v, got %v", now, task.CompletedAt)
	}

	// Completing an already-completed task must not move the timestamp
	later := now.Add(time.Hour)
	task.SetCompleted(true, later)
	if !task.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt moved on repeated completion: %v", task.CompletedAt)
	}

	task.SetCompleted(false, later)
	if task.IsCompleted {
		t.Error("expected task to be incomplete")
	}
	if task.CompletedAt != nil {
		t.Errorf("expected CompletedAt cleared, got %v", task.CompletedAt)
	}
}

func TestGoalRecomputeCompletion(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("empty goal is never completed", func(t *testing.T) {
		t.Parallel()
		goal := Goal{Title: "empty"}
		goal.RecomputeCompletion(now)
		if goal.IsCompleted {
			t.Error("goal with no tasks must not be completed")
		}
	})

	t.Run("toggling all tasks completes the goal", func(t *testing.T) {
		t.Parallel()
		goal := Goal{
			Title: "two tasks",
			Tasks: []Task{
				{ID: "t1", Title: "first"},
				{ID: "t2", Title: "second"},
			},
		}

		goal.Tasks[0].SetCompleted(true, now)
		goal.RecomputeCompletion(now)
		if goal.IsCompleted {
			t.Error("goal must not be completed with one pending task")
		}

		goal.Tasks[1].SetCompleted(true, now)
		goal.RecomputeCompletion(now)
		if !goal.IsCompleted {
			t.Error("goal must be completed once every task is done")
		}
		if goal.CompletedAt == nil {
			t.Error("expected CompletedAt to be set on completion")
		}

		// Reopening any task reopens the goal
		goal.Tasks[0].SetCompleted(false, now)
		goal.RecomputeCompletion(now)
		if goal.IsCompleted {
			t.Error("goal must be incomplete after a task is reopened")
		}
		if goal.CompletedAt != nil {
			t.Error("expected CompletedAt cleared when goal reopens")
		}
	})
}

func TestNewGoalFromDecomposition(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	resp := &DecompositionResponse{
		Goal: "learn to cook",
		Tasks: []DecomposedTask{
			{Title: "pick a recipe", EstimatedTime: 10, Priority: PriorityHigh},
			{Title: "buy ingredients", Description: "local market", EstimatedTime: 30, Priority: PriorityMedium},
		},
		EstimatedTotalTime: 40,
		Category:           CategoryLife,
	}

	goal := NewGoalFromDecomposition(resp, now)

	if goal.ID == "" {
		t.Error("expected goal ID to be assigned")
	}
	if goal.Title != "learn to cook" {
		t.Errorf("unexpected title %q", goal.Title)
	}
	if goal.Category != CategoryLife {
		t.Errorf("unexpected category %q", goal.Category)
	}
	if !goal.CreatedAt.Equal(now) {
		t.Errorf("unexpected CreatedAt %v", goal.CreatedAt)
	}
	if goal.IsCompleted {
		t.Error("new goal must not be completed")
	}
	if len(goal.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(goal.Tasks))
	}
	for i, task := range goal.Tasks {
		if task.ID == "" {
			t.Errorf("task %d missing ID", i)
		}
		if task.IsCompleted || task.CompletedAt != nil {
			t.Errorf("task %d must start pending", i)
		}
		if !task.CreatedAt.Equal(now) {
			t.Errorf("task %d unexpected CreatedAt %v", i, task.CreatedAt)
		}
	}
	if goal.Tasks[0].Title != "pick a recipe" || goal.Tasks[1].Title != "buy ingredients" {
		t.Error("task order must match decomposition order")
	}
}
