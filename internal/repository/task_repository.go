package repository

import (
	"gorm.io/gorm"

	"taskboard/internal/database"
	"taskboard/internal/models"
	"taskboard/internal/utils"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByIDForOwner finds a task by ID scoped to its owner. Missing row
// and ownership mismatch are indistinguishable: both surface as
// gorm.ErrRecordNotFound.
func (r *GormTaskRepository) FindByIDForOwner(id, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// orderClause maps an allow-listed order_by value to a deterministic
// ORDER BY clause. Ties break by id so page boundaries are stable.
func orderClause(orderBy string) string {
	switch orderBy {
	case "created_at":
		return "created_at ASC, id ASC"
	case "priority":
		return "priority ASC, id ASC"
	case "-priority":
		return "priority DESC, id DESC"
	case "title":
		return "title ASC, id ASC"
	default: // "-created_at"
		return "created_at DESC, id DESC"
	}
}

// List retrieves one page of tasks with filtering and sorting
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("user_id = ?", filter.UserID)

	// Apply filters
	if filter.Title != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+filter.Title+"%")
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order(orderClause(filter.OrderBy))

	if filter.PageSize > 0 {
		p := utils.NewPagination(filter.Page, total, filter.PageSize)
		listQuery = listQuery.Scopes(database.Paginate(p))
	}

	var tasks []models.Task
	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete permanently removes a task. The model carries no DeletedAt
// column, so this is a hard delete.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// CountByStatus returns the per-status task counts for a user in a
// single grouped query
func (r *GormTaskRepository) CountByStatus(userID uint64) (map[models.TaskStatus]int64, error) {
	var rows []struct {
		Status models.TaskStatus
		Count  int64
	}

	err := r.db.Model(&models.Task{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}

// Recent returns the most recently created tasks for a user
func (r *GormTaskRepository) Recent(userID uint64, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
