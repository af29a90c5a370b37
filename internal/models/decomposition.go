package models

import "time"

// DecompositionRequest asks a backend to break a free-text goal into tasks
type DecompositionRequest struct {
	Goal               string `json:"goal"`
	Category           string `json:"category,omitempty"`
	EstimatedTotalTime int    `json:"estimatedTotalTime,omitempty"` // minutes
}

// DecomposedTask is a task suggestion as returned by a decomposition backend.
// IDs and completion state are assigned by the caller at Goal-construction time.
type DecomposedTask struct {
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	EstimatedTime int      `json:"estimatedTime"` // minutes
	Priority      Priority `json:"priority"`
}

// DecompositionResponse is the structured result of decomposing a goal
type DecompositionResponse struct {
	Goal               string           `json:"goal"`
	Tasks              []DecomposedTask `json:"tasks"`
	EstimatedTotalTime int              `json:"estimatedTotalTime"`
	Category           string           `json:"category,omitempty"`
}

// NewGoalFromDecomposition assembles a persistable Goal from a decomposition
// result: fresh identifiers, creation timestamps, every task pending.
func NewGoalFromDecomposition(resp *DecompositionResponse, now time.Time) Goal {
	goal := Goal{
		ID:        GenerateID(),
		Title:     resp.Goal,
		Tasks:     make([]Task, 0, len(resp.Tasks)),
		CreatedAt: now,
		Category:  resp.Category,
	}
	for _, dt := range resp.Tasks {
		goal.Tasks = append(goal.Tasks, Task{
			ID:            GenerateID(),
			Title:         dt.Title,
			Description:   dt.Description,
			EstimatedTime: dt.EstimatedTime,
			CreatedAt:     now,
			Priority:      dt.Priority,
		})
	}
	return goal
}
