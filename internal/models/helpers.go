package models

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MinGoalInputLength is the minimum length of a goal description
	MinGoalInputLength = 3
	// MaxGoalInputLength is the maximum length of a goal description
	MaxGoalInputLength = 500
)

var (
	// ErrGoalEmpty indicates the goal description is blank after trimming
	ErrGoalEmpty = errors.New("goal description is empty")
	// ErrGoalTooShort indicates the goal description is under the minimum length
	ErrGoalTooShort = fmt.Errorf("goal description must be at least %d characters", MinGoalInputLength)
	// ErrGoalTooLong indicates the goal description is over the maximum length
	ErrGoalTooLong = fmt.Errorf("goal description must be at most %d characters", MaxGoalInputLength)
)

// ValidateGoalInput checks a free-text goal description before it is sent for
// decomposition. Length limits count characters, not bytes.
func ValidateGoalInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return ErrGoalEmpty
	}
	length := utf8.RuneCountInString(input)
	if length < MinGoalInputLength {
		return ErrGoalTooShort
	}
	if length > MaxGoalInputLength {
		return ErrGoalTooLong
	}
	return nil
}

// GenerateID produces an identifier unique within the process's lifetime with
// overwhelming probability: the current millisecond timestamp plus a random
// component, both rendered in base 36. Collisions are not checked for.
func GenerateID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) +
		strconv.FormatUint(rand.Uint64(), 36)
}

// ProgressPercent returns the goal's completion percentage, rounded to the
// nearest integer. A goal with no tasks has zero progress.
func ProgressPercent(goal *Goal) int {
	if len(goal.Tasks) == 0 {
		return 0
	}
	completed := 0
	for i := range goal.Tasks {
		if goal.Tasks[i].IsCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(goal.Tasks)) * 100))
}

// TotalEstimatedTime sums the estimated minutes over the given tasks
func TotalEstimatedTime(tasks []Task) int {
	total := 0
	for i := range tasks {
		total += tasks[i].EstimatedTime
	}
	return total
}

// RemainingTime returns the estimated minutes left on the goal's
// not-yet-completed tasks.
func RemainingTime(goal *Goal) int {
	total := 0
	for i := range goal.Tasks {
		if !goal.Tasks[i].IsCompleted {
			total += goal.Tasks[i].EstimatedTime
		}
	}
	return total
}

// FormatDuration renders a minute count for display ("45m", "2h", "1h30m")
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	remaining := minutes % 60
	if remaining == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, remaining)
}

// FormatRelativeDate renders a date relative to now for recent dates
// ("today", "yesterday", "3 days ago") and falls back to the plain date for
// anything a week old or older.
func FormatRelativeDate(date, now time.Time) string {
	days := int(now.Sub(date).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return date.Format("2006-01-02")
	}
}
