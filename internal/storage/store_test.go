package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/taskbreak/taskbreak/internal/models"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.now = func() time.Time { return testNow }
	return s
}

func sampleGoals() []models.Goal {
	completedAt := time.Date(2024, 6, 14, 9, 30, 0, 0, time.UTC)
	return []models.Goal{
		{
			ID:        "g1",
			Title:     "learn to cook",
			Category:  models.CategoryLife,
			CreatedAt: time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
			Tasks: []models.Task{
				{
					ID:            "t1",
					Title:         "pick a recipe",
					EstimatedTime: 10,
					IsCompleted:   true,
					CreatedAt:     time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
					CompletedAt:   &completedAt,
					Priority:      models.PriorityHigh,
				},
				{
					ID:            "t2",
					Title:         "buy ingredients",
					Description:   "local market",
					EstimatedTime: 30,
					CreatedAt:     time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
					Priority:      models.PriorityMedium,
				},
			},
		},
		{
			ID:        "g2",
			Title:     "write report",
			Category:  models.CategoryWork,
			CreatedAt: time.Date(2024, 6, 12, 14, 0, 0, 0, time.UTC),
			Tasks: []models.Task{
				{
					ID:            "t3",
					Title:         "outline sections",
					EstimatedTime: 20,
					CreatedAt:     time.Date(2024, 6, 12, 14, 0, 0, 0, time.UTC),
					Priority:      models.PriorityLow,
				},
			},
		},
	}
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func assertGoalsEqual(t *testing.T, got, want []models.Goal) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d goals, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Title != w.Title || g.Description != w.Description ||
			g.Category != w.Category || g.IsCompleted != w.IsCompleted {
			t.Errorf("goal %d mismatch: got %+v, want %+v", i, g, w)
		}
		if !g.CreatedAt.Equal(w.CreatedAt) || !timesEqual(g.CompletedAt, w.CompletedAt) {
			t.Errorf("goal %d timestamp mismatch: got %v/%v, want %v/%v",
				i, g.CreatedAt, g.CompletedAt, w.CreatedAt, w.CompletedAt)
		}
		if len(g.Tasks) != len(w.Tasks) {
			t.Fatalf("goal %d: got %d tasks, want %d", i, len(g.Tasks), len(w.Tasks))
		}
		for j := range w.Tasks {
			gt, wt := g.Tasks[j], w.Tasks[j]
			if gt.ID != wt.ID || gt.Title != wt.Title || gt.Description != wt.Description ||
				gt.EstimatedTime != wt.EstimatedTime || gt.IsCompleted != wt.IsCompleted ||
				gt.Priority != wt.Priority || gt.Category != wt.Category {
				t.Errorf("goal %d task %d mismatch: got %+v, want %+v", i, j, gt, wt)
			}
			if !gt.CreatedAt.Equal(wt.CreatedAt) || !timesEqual(gt.CompletedAt, wt.CompletedAt) {
				t.Errorf("goal %d task %d timestamp mismatch", i, j)
			}
		}
	}
}

func TestGetGoalsEmptyStore(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	goals := s.GetGoals()
	if goals == nil {
		t.Fatal("GetGoals must return an empty slice, not nil")
	}
	if len(goals) != 0 {
		t.Fatalf("expected empty store, got %d goals", len(goals))
	}
}

func TestSaveGoalsRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	want := sampleGoals()
	s.SaveGoals(want)
	assertGoalsEqual(t, s.GetGoals(), want)
}

func TestGetGoalsCorruptedDocument(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := os.WriteFile(filepath.Join(s.dir, goalsFile), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if goals := s.GetGoals(); len(goals) != 0 {
		t.Fatalf("corrupted document must degrade to no data, got %d goals", len(goals))
	}
}

func TestGetSettingsDefaults(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	got := s.GetSettings()
	want := models.UserSettings{
		Notifications:    true,
		ReminderInterval: 30,
		Theme:            models.ThemeLight,
		Language:         models.LanguageEnUS,
	}
	if got != want {
		t.Errorf("GetSettings on empty store = %+v, want %+v", got, want)
	}
}

func TestGetSettingsCorruptedDocument(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := os.WriteFile(filepath.Join(s.dir, settingsFile), []byte("]["), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := s.GetSettings(); got != models.DefaultSettings() {
		t.Errorf("corrupted settings must degrade to defaults, got %+v", got)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	want := models.UserSettings{
		Notifications:    false,
		ReminderInterval: 120,
		Theme:            models.ThemeDark,
		Language:         models.LanguageZhCN,
	}
	s.SaveSettings(want)
	if got := s.GetSettings(); got != want {
		t.Errorf("GetSettings = %+v, want %+v", got, want)
	}
}

func TestAddGoalAppends(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	goals := sampleGoals()
	s.AddGoal(goals[0])
	s.AddGoal(goals[1])

	got := s.GetGoals()
	if len(got) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(got))
	}
	if got[0].ID != "g1" || got[1].ID != "g2" {
		t.Errorf("goals out of insertion order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestDeleteGoal(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.SaveGoals(sampleGoals())

	s.DeleteGoal("g1")
	got := s.GetGoals()
	if len(got) != 1 || got[0].ID != "g2" {
		t.Fatalf("expected only g2 to remain, got %+v", got)
	}

	// Deleting an unknown id leaves the document unchanged
	s.DeleteGoal("missing")
	if got := s.GetGoals(); len(got) != 1 || got[0].ID != "g2" {
		t.Fatalf("delete of unknown id must be a no-op, got %+v", got)
	}
}

func TestUpdateGoalMergeSemantics(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	before := sampleGoals()
	s.SaveGoals(before)

	title := "learn to cook properly"
	s.UpdateGoal("g1", GoalPatch{Title: &title})

	got, ok := s.GetGoal("g1")
	if !ok {
		t.Fatal("g1 missing after update")
	}
	if got.Title != title {
		t.Errorf("title not updated: %q", got.Title)
	}
	if got.Category != before[0].Category {
		t.Errorf("category changed: %q", got.Category)
	}
	if !got.CreatedAt.Equal(before[0].CreatedAt) {
		t.Errorf("createdAt changed: %v", got.CreatedAt)
	}
	if len(got.Tasks) != len(before[0].Tasks) {
		t.Errorf("tasks changed: %d", len(got.Tasks))
	}
}

func TestUpdateGoalUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.SaveGoals(sampleGoals())

	title := "ghost"
	s.UpdateGoal("missing", GoalPatch{Title: &title})

	assertGoalsEqual(t, s.GetGoals(), sampleGoals())
}

func TestUpdateTaskCompletionInvariant(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.SaveGoals([]models.Goal{{
		ID:        "g1",
		Title:     "two step goal",
		CreatedAt: testNow,
		Tasks: []models.Task{
			{ID: "t1", Title: "first", EstimatedTime: 10, Priority: models.PriorityLow, CreatedAt: testNow},
			{ID: "t2", Title: "second", EstimatedTime: 10, Priority: models.PriorityLow, CreatedAt: testNow},
		},
	}})

	done := true
	s.UpdateTask("g1", "t1", TaskPatch{IsCompleted: &done})

	goal, _ := s.GetGoal("g1")
	if goal.IsCompleted {
		t.Error("goal must not be completed with one task pending")
	}
	if goal.Tasks[0].CompletedAt == nil {
		t.Error("completed task must carry CompletedAt")
	}

	s.UpdateTask("g1", "t2", TaskPatch{IsCompleted: &done})
	goal, _ = s.GetGoal("g1")
	if !goal.IsCompleted {
		t.Error("goal must be completed once both tasks are done")
	}
	if goal.CompletedAt == nil {
		t.Error("completed goal must carry CompletedAt")
	}

	undone := false
	s.UpdateTask("g1", "t1", TaskPatch{IsCompleted: &undone})
	goal, _ = s.GetGoal("g1")
	if goal.IsCompleted {
		t.Error("goal must reopen when a task is reopened")
	}
	if goal.CompletedAt != nil {
		t.Error("reopened goal must not carry CompletedAt")
	}
	if goal.Tasks[0].CompletedAt != nil {
		t.Error("reopened task must not carry CompletedAt")
	}
}

func TestUpdateTaskMissingGoalOrTaskIsNoOp(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.SaveGoals(sampleGoals())

	done := true
	s.UpdateTask("missing", "t1", TaskPatch{IsCompleted: &done})
	s.UpdateTask("g1", "missing", TaskPatch{IsCompleted: &done})

	assertGoalsEqual(t, s.GetGoals(), sampleGoals())
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.SaveGoals(sampleGoals())
	s.SaveSettings(models.UserSettings{
		Notifications:    false,
		ReminderInterval: 60,
		Theme:            models.ThemeAuto,
		Language:         models.LanguageZhCN,
	})

	goalsBefore := s.GetGoals()
	settingsBefore := s.GetSettings()

	exported, err := s.ExportData()
	if err != nil {
		t.Fatalf("ExportData: %v", err)
	}
	if !strings.Contains(exported, `"exportDate"`) {
		t.Error("export document missing exportDate")
	}

	if !s.ImportData(exported) {
		t.Fatal("ImportData of own export must succeed")
	}

	assertGoalsEqual(t, s.GetGoals(), goalsBefore)
	if got := s.GetSettings(); got != settingsBefore {
		t.Errorf("settings changed across round trip: %+v", got)
	}
}

func TestImportScenario(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	payload := `{"goals": [], "settings": {"notifications":false,"reminderInterval":60,"theme":"dark","language":"zh-CN"}}`
	if !s.ImportData(payload) {
		t.Fatal("import must succeed")
	}
	if goals := s.GetGoals(); len(goals) != 0 {
		t.Errorf("expected no goals, got %d", len(goals))
	}
	want := models.UserSettings{
		Notifications:    false,
		ReminderInterval: 60,
		Theme:            models.ThemeDark,
		Language:         models.LanguageZhCN,
	}
	if got := s.GetSettings(); got != want {
		t.Errorf("GetSettings = %+v, want %+v", got, want)
	}
}

func TestImportRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json at all", payload: "definitely not json"},
		{name: "goal missing title", payload: `{"goals":[{"id":"g1","tasks":[]}]}`},
		{
			name:    "task with non-positive time",
			payload: `{"goals":[{"id":"g1","title":"g","tasks":[{"id":"t1","title":"t","estimatedTime":0,"priority":"low"}]}]}`,
		},
		{
			name:    "task with unknown priority",
			payload: `{"goals":[{"id":"g1","title":"g","tasks":[{"id":"t1","title":"t","estimatedTime":5,"priority":"urgent"}]}]}`,
		},
		{
			name:    "settings with unknown theme",
			payload: `{"settings":{"notifications":true,"reminderInterval":30,"theme":"sepia","language":"en-US"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestStore(t)
			s.SaveGoals(sampleGoals())

			if s.ImportData(tt.payload) {
				t.Fatal("import of malformed payload must fail")
			}
			// Existing data must be left untouched
			assertGoalsEqual(t, s.GetGoals(), sampleGoals())
		})
	}
}

func TestImportIgnoresUnknownTopLevelFields(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	payload := `{"goals": [], "exportDate": "2024-06-15T12:00:00Z", "extra": {"nested": true}}`
	if !s.ImportData(payload) {
		t.Fatal("unknown top-level fields must be ignored")
	}
}

func TestImportRecomputesGoalCompletion(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	// isCompleted claims false although every task is done; the import path
	// must restore the canonical rule.
	payload := `{"goals":[{"id":"g1","title":"g","isCompleted":false,"createdAt":"2024-06-10T08:00:00Z","tasks":[{"id":"t1","title":"t","estimatedTime":5,"priority":"low","isCompleted":true,"createdAt":"2024-06-10T08:00:00Z","completedAt":"2024-06-11T08:00:00Z"}]}]}`
	if !s.ImportData(payload) {
		t.Fatal("import must succeed")
	}
	goal, ok := s.GetGoal("g1")
	if !ok {
		t.Fatal("g1 missing")
	}
	if !goal.IsCompleted {
		t.Error("import must recompute the completion flag")
	}
}

func TestClearAllData(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.SaveGoals(sampleGoals())
	s.SaveSettings(models.UserSettings{
		Notifications:    false,
		ReminderInterval: 15,
		Theme:            models.ThemeDark,
		Language:         models.LanguageEnUS,
	})

	s.ClearAllData()

	if goals := s.GetGoals(); len(goals) != 0 {
		t.Errorf("expected no goals after clear, got %d", len(goals))
	}
	if got := s.GetSettings(); got != models.DefaultSettings() {
		t.Errorf("expected default settings after clear, got %+v", got)
	}
}

func TestNotificationStateDefaultsToEmpty(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	state := s.GetNotificationState()
	if state.LastRemindedAt == nil {
		t.Fatal("expected a usable map, got nil")
	}
	if len(state.LastRemindedAt) != 0 {
		t.Errorf("expected empty state, got %+v", state.LastRemindedAt)
	}
}

func TestNotificationStateRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.SaveGoals(sampleGoals())

	state := models.NewNotificationState()
	state.LastRemindedAt[sampleGoals()[0].ID] = testNow

	s.SaveNotificationState(state)

	got := s.GetNotificationState()
	if len(got.LastRemindedAt) != 1 {
		t.Fatalf("expected one entry, got %+v", got.LastRemindedAt)
	}
	if !got.LastRemindedAt[sampleGoals()[0].ID].Equal(testNow) {
		t.Errorf("timestamp = %v, want %v", got.LastRemindedAt[sampleGoals()[0].ID], testNow)
	}
}

func TestSaveNotificationStatePrunesDeletedGoals(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.SaveGoals(sampleGoals())

	state := models.NewNotificationState()
	state.LastRemindedAt[sampleGoals()[0].ID] = testNow
	state.LastRemindedAt["gone-goal"] = testNow
	s.SaveNotificationState(state)

	got := s.GetNotificationState()
	if _, ok := got.LastRemindedAt["gone-goal"]; ok {
		t.Error("entry for a nonexistent goal survived the save")
	}
	if _, ok := got.LastRemindedAt[sampleGoals()[0].ID]; !ok {
		t.Error("entry for an existing goal was pruned")
	}
}

func TestNotificationStateCorruptDocument(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := os.WriteFile(filepath.Join(s.dir, notificationsFile), []byte("{nope"), 0o600); err != nil {
		t.Fatalf("write corrupt document: %v", err)
	}

	state := s.GetNotificationState()
	if state.LastRemindedAt == nil || len(state.LastRemindedAt) != 0 {
		t.Errorf("expected empty state for corrupt document, got %+v", state.LastRemindedAt)
	}
}
