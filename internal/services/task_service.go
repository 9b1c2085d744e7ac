package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/constants"
	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/internal/utils"
)

// ErrTaskNotFound is returned when a task does not exist or belongs to
// another user. The two cases are deliberately indistinguishable.
var ErrTaskNotFound = errors.New("task not found")

// Field error codes surfaced in validation failures.
const (
	FieldErrMissing       = "MISSING_FIELD"
	FieldErrInvalidEnum   = "INVALID_ENUM"
	FieldErrInvalidFormat = "INVALID_FORMAT"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError aggregates all field errors for a rejected write.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// validOrders is the allow-list of accepted order_by values. Anything
// else, including absent input, is coerced to newest-first.
var validOrders = map[string]bool{
	"-created_at": true,
	"created_at":  true,
	"priority":    true,
	"-priority":   true,
	"title":       true,
}

// ResolveOrder coerces an order_by value to a member of the allow-list.
func ResolveOrder(orderBy string) string {
	if validOrders[orderBy] {
		return orderBy
	}
	return constants.DefaultOrder
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ListTasksInput represents filters for listing tasks. Status and
// Priority carry raw query values; empty string and "default" mean
// unfiltered.
type ListTasksInput struct {
	UserID   uint64
	Title    string
	Status   string
	Priority string
	OrderBy  string
	Page     int
}

// TaskFormInput carries the raw submitted fields for a create or a
// full-replacement update. There is deliberately no owner field.
type TaskFormInput struct {
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     string
}

// DashboardStats aggregates a user's full task set for the dashboard.
type DashboardStats struct {
	Total      int64
	Pending    int64
	InProgress int64
	Completed  int64
	Recent     []models.Task
}

// ListTasks returns one page of the user's tasks plus page metadata.
// Malformed order_by and page values silently fall back to defaults.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, utils.Pagination, error) {
	filter := repository.TaskFilter{
		UserID:   input.UserID,
		Title:    input.Title,
		OrderBy:  ResolveOrder(input.OrderBy),
		Page:     input.Page,
		PageSize: constants.TasksPerPage,
	}

	if input.Status != "" && input.Status != "default" {
		status := models.TaskStatus(input.Status)
		filter.Status = &status
	}
	if input.Priority != "" && input.Priority != "default" {
		priority := models.TaskPriority(input.Priority)
		filter.Priority = &priority
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, utils.Pagination{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, utils.NewPagination(input.Page, total, constants.TasksPerPage), nil
}

// GetTask returns a task owned by the user
func (s *TaskService) GetTask(taskID, userID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDForOwner(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask validates the input and creates a task owned by userID
func (s *TaskService) CreateTask(userID uint64, input TaskFormInput) (*models.Task, error) {
	fields, err := validateTaskForm(input)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       fields.title,
		Description: fields.description,
		Priority:    fields.priority,
		Status:      fields.status,
		DueDate:     fields.dueDate,
		UserID:      userID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask replaces the mutable fields of a task owned by userID.
// Owner and creation timestamp are not part of the input and never change.
func (s *TaskService) UpdateTask(taskID, userID uint64, input TaskFormInput) (*models.Task, error) {
	task, err := s.GetTask(taskID, userID)
	if err != nil {
		return nil, err
	}

	fields, err := validateTaskForm(input)
	if err != nil {
		return nil, err
	}

	task.Title = fields.title
	task.Description = fields.description
	task.Priority = fields.priority
	task.Status = fields.status
	task.DueDate = fields.dueDate

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// ToggleTaskStatus flips a task between completed and pending: a
// completed task reopens as pending, anything else becomes completed.
func (s *TaskService) ToggleTaskStatus(taskID, userID uint64) (*models.Task, error) {
	task, err := s.GetTask(taskID, userID)
	if err != nil {
		return nil, err
	}

	if task.Status == models.TaskStatusCompleted {
		task.Status = models.TaskStatusPending
	} else {
		task.Status = models.TaskStatusCompleted
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to toggle status: %w", err)
	}

	return task, nil
}

// DeleteTask permanently removes a task owned by userID and returns the
// deleted task for the response message
func (s *TaskService) DeleteTask(taskID, userID uint64) (*models.Task, error) {
	task, err := s.GetTask(taskID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return task, nil
}

// GetDashboardStats computes per-status counts in one grouped query and
// fetches the most recent tasks. Always reflects the user's full task
// set, independent of any list filters.
func (s *TaskService) GetDashboardStats(userID uint64) (*DashboardStats, error) {
	counts, err := s.taskRepo.CountByStatus(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	recent, err := s.taskRepo.Recent(userID, constants.RecentTasksCount)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent tasks: %w", err)
	}

	stats := &DashboardStats{
		Pending:    counts[models.TaskStatusPending],
		InProgress: counts[models.TaskStatusInProgress],
		Completed:  counts[models.TaskStatusCompleted],
		Recent:     recent,
	}
	stats.Total = stats.Pending + stats.InProgress + stats.Completed

	return stats, nil
}

// taskFields holds normalized field values after validation.
type taskFields struct {
	title       string
	description string
	priority    models.TaskPriority
	status      models.TaskStatus
	dueDate     *time.Time
}

// validateTaskForm normalizes and validates raw form input, accumulating
// all field errors before rejecting the write.
func validateTaskForm(input TaskFormInput) (*taskFields, error) {
	var fieldErrs []FieldError

	title := strings.TrimSpace(input.Title)
	if title == "" {
		fieldErrs = append(fieldErrs, FieldError{
			Field:   "title",
			Code:    FieldErrMissing,
			Message: "Title is required and cannot be empty",
		})
	}

	priority := models.TaskPriorityLow
	if input.Priority != "" {
		priority = models.TaskPriority(input.Priority)
		if !models.ValidPriority(priority) {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   "priority",
				Code:    FieldErrInvalidEnum,
				Message: "Priority must be one of: high, medium, low",
			})
		}
	}

	status := models.TaskStatusPending
	if input.Status != "" {
		status = models.TaskStatus(input.Status)
		if !models.ValidStatus(status) {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   "status",
				Code:    FieldErrInvalidEnum,
				Message: "Status must be one of: pending, in_progress, completed",
			})
		}
	}

	var dueDate *time.Time
	if input.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, input.DueDate)
		if err != nil {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   "due_date",
				Code:    FieldErrInvalidFormat,
				Message: "Due date must be a valid RFC 3339 timestamp",
			})
		} else {
			dueDate = &parsed
		}
	}

	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	return &taskFields{
		title:       title,
		description: input.Description,
		priority:    priority,
		status:      status,
		dueDate:     dueDate,
	}, nil
}
