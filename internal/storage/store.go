// Package storage owns durable persistence of Goals, UserSettings and
// reminder bookkeeping. The documents live as independent JSON files in a
// per-user data directory and every mutation is a whole-document
// read-modify-write. Read failures
// never propagate to callers: a missing or undecodable document degrades to
// "no data" plus a logged diagnostic, so a corrupt store cannot make the
// application unusable.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/taskbreak/taskbreak/internal/models"
	"github.com/taskbreak/taskbreak/internal/validation"
	"go.uber.org/zap"
)

// Document file names. These mirror the fixed keys of the original storage
// area.
const (
	goalsFile         = "task_decomposition_goals.json"
	settingsFile      = "task_decomposition_settings.json"
	notificationsFile = "task_decomposition_notifications.json"
	lockFileName      = "store.lock"
)

// GoalStore is the persistence-service interface the rest of the application
// depends on. Write operations are best effort: failures are logged, not
// returned, and callers must not assume a save succeeded.
type GoalStore interface {
	GetGoals() []models.Goal
	GetGoal(id string) (models.Goal, bool)
	SaveGoals(goals []models.Goal)
	AddGoal(goal models.Goal)
	UpdateGoal(id string, patch GoalPatch)
	DeleteGoal(id string)
	UpdateTask(goalID, taskID string, patch TaskPatch)
	GetSettings() models.UserSettings
	SaveSettings(settings models.UserSettings)
	GetNotificationState() models.NotificationState
	SaveNotificationState(state models.NotificationState)
	ClearAllData()
	ExportData() (string, error)
	ImportData(data string) bool
}

// GoalPatch is a partial update applied to a stored goal with shallow-merge
// semantics: nil fields leave the stored value untouched.
type GoalPatch struct {
	Title       *string
	Description *string
	Category    *string
	Tasks       []models.Task
}

// TaskPatch is a partial update applied to a stored task. Completion toggles
// keep the task's CompletedAt in sync.
type TaskPatch struct {
	Title         *string
	Description   *string
	Category      *string
	EstimatedTime *int
	Priority      *models.Priority
	IsCompleted   *bool
}

// Store is a file-backed GoalStore. An advisory file lock is held across
// each read-modify-write so that concurrent processes serialize instead of
// clobbering each other's updates; a mutex does the same for goroutines
// within one process.
type Store struct {
	dir      string
	logger   *zap.Logger
	mu       sync.Mutex
	fileLock *flock.Flock
	now      func() time.Time
}

var _ GoalStore = (*Store)(nil)

// New creates a Store rooted at dir, creating the directory if needed
func New(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{
		dir:      dir,
		logger:   logger,
		fileLock: flock.New(filepath.Join(dir, lockFileName)),
		now:      time.Now,
	}, nil
}

// lock serializes store access across goroutines and processes. The returned
// function releases both locks.
func (s *Store) lock() func() {
	s.mu.Lock()
	if err := s.fileLock.Lock(); err != nil {
		// Proceed without the file lock rather than failing the operation;
		// cross-process races then fall back to last-write-wins.
		s.logger.Warn("store_lock_failed", zap.Error(err))
	}
	return func() {
		if err := s.fileLock.Unlock(); err != nil {
			s.logger.Warn("store_unlock_failed", zap.Error(err))
		}
		s.mu.Unlock()
	}
}

// GetGoals returns all stored goals. A missing or undecodable goals document
// yields an empty slice, never an error.
func (s *Store) GetGoals() []models.Goal {
	defer s.lock()()
	return s.readGoals()
}

// GetGoal returns the goal with the given id, if present
func (s *Store) GetGoal(id string) (models.Goal, bool) {
	defer s.lock()()
	for _, goal := range s.readGoals() {
		if goal.ID == id {
			return goal, true
		}
	}
	return models.Goal{}, false
}

// SaveGoals overwrites the goals document with the given sequence
func (s *Store) SaveGoals(goals []models.Goal) {
	defer s.lock()()
	s.writeDocument(goalsFile, goals)
}

// AddGoal appends a goal to the end of the stored sequence
func (s *Store) AddGoal(goal models.Goal) {
	defer s.lock()()
	goal.RecomputeCompletion(s.now())
	goals := append(s.readGoals(), goal)
	s.writeDocument(goalsFile, goals)
}

// UpdateGoal shallow-merges the patch onto the goal with the given id and
// refreshes its completion state. An unknown id is a silent no-op.
func (s *Store) UpdateGoal(id string, patch GoalPatch) {
	defer s.lock()()
	goals := s.readGoals()
	for i := range goals {
		if goals[i].ID != id {
			continue
		}
		applyGoalPatch(&goals[i], patch)
		goals[i].RecomputeCompletion(s.now())
		s.writeDocument(goalsFile, goals)
		return
	}
}

// DeleteGoal removes the goal with the given id. Deleting an id that does
// not exist leaves the document unchanged.
func (s *Store) DeleteGoal(id string) {
	defer s.lock()()
	goals := s.readGoals()
	filtered := goals[:0]
	for _, goal := range goals {
		if goal.ID != id {
			filtered = append(filtered, goal)
		}
	}
	s.writeDocument(goalsFile, filtered)
}

// UpdateTask shallow-merges the patch onto a task nested inside a goal and
// refreshes the goal's completion state. Missing goal or task is a no-op.
func (s *Store) UpdateTask(goalID, taskID string, patch TaskPatch) {
	defer s.lock()()
	now := s.now()
	goals := s.readGoals()
	for i := range goals {
		if goals[i].ID != goalID {
			continue
		}
		for j := range goals[i].Tasks {
			if goals[i].Tasks[j].ID != taskID {
				continue
			}
			applyTaskPatch(&goals[i].Tasks[j], patch, now)
			goals[i].RecomputeCompletion(now)
			s.writeDocument(goalsFile, goals)
			return
		}
		return
	}
}

// GetSettings returns the stored settings, or the fixed defaults when the
// settings document is absent or undecodable.
func (s *Store) GetSettings() models.UserSettings {
	defer s.lock()()
	return s.readSettings()
}

// SaveSettings overwrites the settings document
func (s *Store) SaveSettings(settings models.UserSettings) {
	defer s.lock()()
	s.writeDocument(settingsFile, settings)
}

// GetNotificationState returns the stored reminder bookkeeping, or an empty
// state when the document is absent or undecodable.
func (s *Store) GetNotificationState() models.NotificationState {
	defer s.lock()()
	return s.readNotifications()
}

// SaveNotificationState overwrites the notification document, pruning entries
// for goals that no longer exist.
func (s *Store) SaveNotificationState(state models.NotificationState) {
	defer s.lock()()
	known := map[string]bool{}
	for _, goal := range s.readGoals() {
		known[goal.ID] = true
	}
	for id := range state.LastRemindedAt {
		if !known[id] {
			delete(state.LastRemindedAt, id)
		}
	}
	s.writeDocument(notificationsFile, state)
}

// ClearAllData removes all three storage documents unconditionally
func (s *Store) ClearAllData() {
	defer s.lock()()
	for _, name := range []string{goalsFile, settingsFile, notificationsFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Error("document_remove_failed", zap.String("document", name), zap.Error(err))
		}
	}
}

// exportDocument is the on-disk shape of an export file
type exportDocument struct {
	Goals      []models.Goal       `json:"goals"`
	Settings   models.UserSettings `json:"settings"`
	ExportDate string              `json:"exportDate"`
}

// importDocument mirrors the export shape. Only goals and settings are
// consulted; any other top-level fields are ignored.
type importDocument struct {
	Goals    *[]models.Goal       `json:"goals"`
	Settings *models.UserSettings `json:"settings"`
}

// ExportData produces a pretty-printed JSON snapshot of both documents plus
// the export timestamp. Read-only.
func (s *Store) ExportData() (string, error) {
	defer s.lock()()
	doc := exportDocument{
		Goals:      s.readGoals(),
		Settings:   s.readSettings(),
		ExportDate: s.now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export document: %w", err)
	}
	return string(data), nil
}

// ImportData replaces the goals and/or settings documents with the contents
// of an export file. The payload is validated in full before either document
// is touched, so a malformed file can never corrupt existing state; on any
// failure the method reports false and leaves the store unchanged.
func (s *Store) ImportData(data string) bool {
	var doc importDocument
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		s.logger.Error("import_parse_failed", zap.Error(err))
		return false
	}
	if doc.Goals != nil {
		for i := range *doc.Goals {
			if err := validation.Validate.Struct(&(*doc.Goals)[i]); err != nil {
				s.logger.Error("import_goal_invalid", zap.Int("index", i), zap.Error(err))
				return false
			}
		}
	}
	if doc.Settings != nil {
		if err := validation.Validate.Struct(doc.Settings); err != nil {
			s.logger.Error("import_settings_invalid", zap.Error(err))
			return false
		}
	}

	defer s.lock()()
	now := s.now()
	if doc.Goals != nil {
		goals := *doc.Goals
		for i := range goals {
			goals[i].RecomputeCompletion(now)
		}
		s.writeDocument(goalsFile, goals)
	}
	if doc.Settings != nil {
		s.writeDocument(settingsFile, *doc.Settings)
	}
	return true
}

// readGoals decodes the goals document. Callers must hold the lock.
func (s *Store) readGoals() []models.Goal {
	data, err := os.ReadFile(filepath.Join(s.dir, goalsFile))
	if errors.Is(err, os.ErrNotExist) {
		return []models.Goal{}
	}
	if err != nil {
		s.logger.Error("goals_read_failed", zap.Error(err))
		return []models.Goal{}
	}
	var goals []models.Goal
	if err := json.Unmarshal(data, &goals); err != nil {
		s.logger.Error("goals_decode_failed", zap.Error(err))
		return []models.Goal{}
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	return goals
}

// readSettings decodes the settings document. Callers must hold the lock.
func (s *Store) readSettings() models.UserSettings {
	data, err := os.ReadFile(filepath.Join(s.dir, settingsFile))
	if errors.Is(err, os.ErrNotExist) {
		return models.DefaultSettings()
	}
	if err != nil {
		s.logger.Error("settings_read_failed", zap.Error(err))
		return models.DefaultSettings()
	}
	var settings models.UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.logger.Error("settings_decode_failed", zap.Error(err))
		return models.DefaultSettings()
	}
	return settings
}

// readNotifications decodes the notification document. Callers must hold the
// lock.
func (s *Store) readNotifications() models.NotificationState {
	data, err := os.ReadFile(filepath.Join(s.dir, notificationsFile))
	if errors.Is(err, os.ErrNotExist) {
		return models.NewNotificationState()
	}
	if err != nil {
		s.logger.Error("notifications_read_failed", zap.Error(err))
		return models.NewNotificationState()
	}
	var state models.NotificationState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Error("notifications_decode_failed", zap.Error(err))
		return models.NewNotificationState()
	}
	if state.LastRemindedAt == nil {
		state.LastRemindedAt = map[string]time.Time{}
	}
	return state
}

// writeDocument serializes v and replaces the named document via a temp file
// rename, making each save a single atomic write. Failures are logged and
// swallowed; saves are best effort.
func (s *Store) writeDocument(name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("document_encode_failed", zap.String("document", name), zap.Error(err))
		return
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		s.logger.Error("document_write_failed", zap.String("document", name), zap.Error(err))
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		s.logger.Error("document_replace_failed", zap.String("document", name), zap.Error(err))
	}
}

func applyGoalPatch(goal *models.Goal, patch GoalPatch) {
	if patch.Title != nil {
		goal.Title = *patch.Title
	}
	if patch.Description != nil {
		goal.Description = *patch.Description
	}
	if patch.Category != nil {
		goal.Category = *patch.Category
	}
	if patch.Tasks != nil {
		goal.Tasks = patch.Tasks
	}
}

func applyTaskPatch(task *models.Task, patch TaskPatch, now time.Time) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.EstimatedTime != nil {
		task.EstimatedTime = *patch.EstimatedTime
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.IsCompleted != nil {
		task.SetCompleted(*patch.IsCompleted, now)
	}
}
