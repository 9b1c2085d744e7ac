package dto

import (
	"time"

	"taskboard/internal/models"
	"taskboard/internal/services"
	"taskboard/internal/utils"
)

// TaskDTO represents a task in API responses. IsOverdue is derived at
// serialization time and never stored.
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	Status      models.TaskStatus   `json:"status"`
	DueDate     *time.Time          `json:"due_date"`
	IsOverdue   bool                `json:"is_overdue"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TaskListFilters echoes the applied filters back to the client.
type TaskListFilters struct {
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// TaskListResponse represents a filtered, paginated list of tasks.
type TaskListResponse struct {
	Tasks        []TaskDTO        `json:"tasks"`
	Pagination   utils.Pagination `json:"pagination"`
	Filters      TaskListFilters  `json:"filters"`
	CurrentOrder string           `json:"current_order"`
}

// DashboardResponse represents the dashboard aggregates.
type DashboardResponse struct {
	TotalTasks      int64     `json:"total_tasks"`
	PendingTasks    int64     `json:"pending_tasks"`
	InProgressTasks int64     `json:"in_progress_tasks"`
	CompletedTasks  int64     `json:"completed_tasks"`
	RecentTasks     []TaskDTO `json:"recent_tasks"`
}

// ToTaskDTO converts a Task model to TaskDTO, computing overdue state
// against now.
func ToTaskDTO(task models.Task, now time.Time) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
		DueDate:     task.DueDate,
		IsOverdue:   task.IsOverdue(now),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks, sharing a single now reading.
func ToTaskDTOs(tasks []models.Task, now time.Time) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task, now)
	}
	return items
}

// ToTaskListResponse assembles the list view context.
func ToTaskListResponse(tasks []models.Task, pagination utils.Pagination, filters TaskListFilters, currentOrder string, now time.Time) TaskListResponse {
	return TaskListResponse{
		Tasks:        ToTaskDTOs(tasks, now),
		Pagination:   pagination,
		Filters:      filters,
		CurrentOrder: currentOrder,
	}
}

// ToDashboardResponse assembles the dashboard view context.
func ToDashboardResponse(stats *services.DashboardStats, now time.Time) DashboardResponse {
	return DashboardResponse{
		TotalTasks:      stats.Total,
		PendingTasks:    stats.Pending,
		InProgressTasks: stats.InProgress,
		CompletedTasks:  stats.Completed,
		RecentTasks:     ToTaskDTOs(stats.Recent, now),
	}
}
