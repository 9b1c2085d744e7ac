package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	noDue := Task{Status: TaskStatusPending}
	assert.False(t, noDue.IsOverdue(now))

	pastDue := Task{Status: TaskStatusPending, DueDate: &past}
	assert.True(t, pastDue.IsOverdue(now))

	pastDueInProgress := Task{Status: TaskStatusInProgress, DueDate: &past}
	assert.True(t, pastDueInProgress.IsOverdue(now))

	// Completion clears overdue regardless of the due date
	pastDueCompleted := Task{Status: TaskStatusCompleted, DueDate: &past}
	assert.False(t, pastDueCompleted.IsOverdue(now))

	futureDue := Task{Status: TaskStatusPending, DueDate: &future}
	assert.False(t, futureDue.IsOverdue(now))

	// Comparison is strictly less-than
	exactlyNow := Task{Status: TaskStatusPending, DueDate: &now}
	assert.False(t, exactlyNow.IsOverdue(now))
}

func TestValidEnums(t *testing.T) {
	assert.True(t, ValidPriority(TaskPriorityHigh))
	assert.True(t, ValidStatus(TaskStatusInProgress))

	// Case-sensitive, no free text
	assert.False(t, ValidPriority("High"))
	assert.False(t, ValidPriority("urgent"))
	assert.False(t, ValidStatus("done"))
	assert.False(t, ValidStatus(""))
}
