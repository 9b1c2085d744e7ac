package repository

import (
	"taskboard/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByIDForOwner finds a task by ID scoped to its owner. A missing
	// row and a row owned by another user both return gorm.ErrRecordNotFound.
	FindByIDForOwner(id, userID uint64) (*models.Task, error)

	// List retrieves one page of tasks with filtering and sorting,
	// along with the total count of matching rows
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete permanently removes a task
	Delete(id uint64) error

	// CountByStatus returns the per-status task counts for a user
	CountByStatus(userID uint64) (map[models.TaskStatus]int64, error)

	// Recent returns the most recently created tasks for a user
	Recent(userID uint64, limit int) ([]models.Task, error)
}

// TaskFilter holds filtering, sorting and paging options for listing tasks.
// OrderBy must be a value already resolved against the sort allow-list;
// anything unrecognized falls back to newest-first.
type TaskFilter struct {
	UserID   uint64
	Title    string
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	OrderBy  string
	Page     int
	PageSize int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
