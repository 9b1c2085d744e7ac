package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskboard/internal/models"
	"taskboard/internal/repository"
)

func setupTaskService(t *testing.T) (*TaskService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewTaskService(repository.NewTaskRepository(db)), db
}

func TestResolveOrder(t *testing.T) {
	cases := map[string]string{
		"-created_at":  "-created_at",
		"created_at":   "created_at",
		"priority":     "priority",
		"-priority":    "-priority",
		"title":        "title",
		"":             "-created_at",
		"default":      "-created_at",
		"-title":       "-created_at",
		"id; DROP":     "-created_at",
		"CREATED_AT":   "-created_at",
		"-updated_at":  "-created_at",
		" -created_at": "-created_at",
	}

	for input, want := range cases {
		assert.Equal(t, want, ResolveOrder(input), "order_by=%q", input)
	}
}

func TestValidateTaskForm_Normalizes(t *testing.T) {
	fields, err := validateTaskForm(TaskFormInput{
		Title:       "  Write report  ",
		Description: "numbers",
		DueDate:     "2026-09-01T12:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "Write report", fields.title)
	assert.Equal(t, models.TaskPriorityLow, fields.priority)
	assert.Equal(t, models.TaskStatusPending, fields.status)
	require.NotNil(t, fields.dueDate)
	assert.Equal(t, 2026, fields.dueDate.Year())
}

func TestValidateTaskForm_AccumulatesErrors(t *testing.T) {
	_, err := validateTaskForm(TaskFormInput{
		Title:    " ",
		Priority: "URGENT",
		Status:   "Pending", // enum match is case-sensitive
		DueDate:  "tomorrow",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Fields, 4)

	codes := map[string]string{}
	for _, f := range validationErr.Fields {
		codes[f.Field] = f.Code
	}
	assert.Equal(t, FieldErrMissing, codes["title"])
	assert.Equal(t, FieldErrInvalidEnum, codes["priority"])
	assert.Equal(t, FieldErrInvalidEnum, codes["status"])
	assert.Equal(t, FieldErrInvalidFormat, codes["due_date"])
}

func TestCreateTask_StampsOwnerAndTimestamps(t *testing.T) {
	svc, _ := setupTaskService(t)

	task, err := svc.CreateTask(42, TaskFormInput{Title: "Ship it", Priority: "high"})
	require.NoError(t, err)

	assert.Equal(t, uint64(42), task.UserID)
	assert.Equal(t, models.TaskPriorityHigh, task.Priority)
	assert.WithinDuration(t, task.CreatedAt, task.UpdatedAt, time.Second)
}

func TestGetTask_OwnershipMismatchIsNotFound(t *testing.T) {
	svc, _ := setupTaskService(t)

	task, err := svc.CreateTask(1, TaskFormInput{Title: "Mine"})
	require.NoError(t, err)

	_, errForeign := svc.GetTask(task.ID, 2)
	_, errMissing := svc.GetTask(99999, 2)

	assert.ErrorIs(t, errForeign, ErrTaskNotFound)
	assert.ErrorIs(t, errMissing, ErrTaskNotFound)
	// Same error value, no way to tell the cases apart
	assert.Equal(t, errMissing, errForeign)
}

func TestUpdateTask_PreservesOwnerAndCreatedAt(t *testing.T) {
	svc, db := setupTaskService(t)

	task, err := svc.CreateTask(7, TaskFormInput{Title: "Before"})
	require.NoError(t, err)
	createdAt := task.CreatedAt

	updated, err := svc.UpdateTask(task.ID, 7, TaskFormInput{
		Title:  "After",
		Status: "completed",
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(7), updated.UserID)
	assert.WithinDuration(t, createdAt, updated.CreatedAt, time.Second)
	assert.Equal(t, models.TaskStatusCompleted, updated.Status)

	var persisted models.Task
	require.NoError(t, db.First(&persisted, task.ID).Error)
	assert.Equal(t, "After", persisted.Title)
}

func TestUpdateTask_RejectsInvalidInputWithoutWriting(t *testing.T) {
	svc, db := setupTaskService(t)

	task, err := svc.CreateTask(7, TaskFormInput{Title: "Keep me"})
	require.NoError(t, err)

	_, err = svc.UpdateTask(task.ID, 7, TaskFormInput{Title: "   "})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	var persisted models.Task
	require.NoError(t, db.First(&persisted, task.ID).Error)
	assert.Equal(t, "Keep me", persisted.Title)
}

func TestToggleTaskStatus_Binary(t *testing.T) {
	svc, _ := setupTaskService(t)

	task, err := svc.CreateTask(1, TaskFormInput{Title: "Cycle", Status: "in_progress"})
	require.NoError(t, err)

	// in_progress toggles to completed, then reopens as pending:
	// toggling twice does not round-trip back to in_progress
	toggled, err := svc.ToggleTaskStatus(task.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, toggled.Status)

	toggled, err = svc.ToggleTaskStatus(task.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, toggled.Status)

	// pending and completed do round-trip
	toggled, err = svc.ToggleTaskStatus(task.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, toggled.Status)
}

func TestListTasks_FilteredIsSubsetOfUnfiltered(t *testing.T) {
	svc, _ := setupTaskService(t)

	for _, status := range []string{"pending", "completed", "pending", "in_progress"} {
		_, err := svc.CreateTask(3, TaskFormInput{Title: "Task " + status, Status: status})
		require.NoError(t, err)
	}

	all, _, err := svc.ListTasks(ListTasksInput{UserID: 3})
	require.NoError(t, err)

	pending, _, err := svc.ListTasks(ListTasksInput{UserID: 3, Status: "pending"})
	require.NoError(t, err)

	require.Len(t, pending, 2)
	allIDs := map[uint64]bool{}
	for _, task := range all {
		allIDs[task.ID] = true
	}
	for _, task := range pending {
		assert.Equal(t, models.TaskStatusPending, task.Status)
		assert.True(t, allIDs[task.ID])
	}
}

func TestListTasks_DefaultSentinelMeansUnfiltered(t *testing.T) {
	svc, _ := setupTaskService(t)

	_, err := svc.CreateTask(3, TaskFormInput{Title: "A", Status: "pending"})
	require.NoError(t, err)
	_, err = svc.CreateTask(3, TaskFormInput{Title: "B", Status: "completed"})
	require.NoError(t, err)

	tasks, _, err := svc.ListTasks(ListTasksInput{UserID: 3, Status: "default", Priority: "default"})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestGetDashboardStats(t *testing.T) {
	svc, _ := setupTaskService(t)

	for i := 0; i < 7; i++ {
		_, err := svc.CreateTask(5, TaskFormInput{Title: "Pending"})
		require.NoError(t, err)
	}
	_, err := svc.CreateTask(5, TaskFormInput{Title: "Done", Status: "completed"})
	require.NoError(t, err)
	_, err = svc.CreateTask(6, TaskFormInput{Title: "Other user"})
	require.NoError(t, err)

	stats, err := svc.GetDashboardStats(5)
	require.NoError(t, err)

	assert.Equal(t, int64(8), stats.Total)
	assert.Equal(t, int64(7), stats.Pending)
	assert.Equal(t, int64(0), stats.InProgress)
	assert.Equal(t, int64(1), stats.Completed)
	require.Len(t, stats.Recent, 5)
	assert.Equal(t, "Done", stats.Recent[0].Title)
}
