package services

import (
	"context"
	"time"

	"github.com/taskboard/backend/internal/core/ports"
	"github.com/taskboard/backend/internal/domain"
	"github.com/taskboard/backend/internal/infrastructure/logger"
)

type taskService struct {
	repo   ports.TaskRepository
	logger *logger.Logger
	clock  ports.Clock
}

type TaskServiceConfig struct {
	Repository ports.TaskRepository
	Logger     *logger.Logger
	Clock      ports.Clock
}

func NewTaskService(cfg TaskServiceConfig) ports.TaskService {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &taskService{
		repo:   cfg.Repository,
		logger: cfg.Logger,
		clock:  clock,
	}
}

// ValidateCreation checks a raw creation request against the task rules and
// returns the normalized draft: status pending, tenant null, due_at in UTC.
// Pure over its inputs and the supplied instant; nothing is persisted here.
func ValidateCreation(input ports.CreateTaskInput, now time.Time) (*domain.Task, error) {
	if input.RelatedID == "" || input.TaskType == "" || input.DueAt == "" {
		return nil, ErrTaskMissingFields
	}

	if !domain.ValidTaskType(input.TaskType) {
		return nil, ErrTaskInvalidType
	}

	dueAt, err := time.Parse(time.RFC3339, input.DueAt)
	if err != nil {
		return nil, ErrTaskInvalidDueDate
	}
	if !dueAt.After(now) {
		return nil, ErrTaskInvalidDueDate
	}

	return &domain.Task{
		RelatedID: input.RelatedID,
		TenantID:  nil,
		Type:      domain.TaskType(input.TaskType),
		Status:    domain.TaskStatusPending,
		DueAt:     dueAt.UTC(),
		Title:     input.Title,
	}, nil
}

func (s *taskService) CreateTask(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	draft, err := ValidateCreation(input, s.clock())
	if err != nil {
		s.logger.Warnw("task_create_validation_failed", "related_id", input.RelatedID, "type", input.TaskType, "error", err)
		return nil, err
	}

	if err := s.repo.Insert(ctx, draft); err != nil {
		s.logger.Errorw("task_create_insert_failed", "related_id", draft.RelatedID, "error", err)
		return nil, err
	}

	s.logger.Infow("task_create_success", "id", draft.ID, "related_id", draft.RelatedID, "type", draft.Type, "due_at", draft.DueAt)
	return draft, nil
}

// TasksDueToday selects every task due within the current UTC calendar day,
// pending and completed alike. The view layer tells them apart, not the query.
func (s *taskService) TasksDueToday(ctx context.Context) ([]domain.Task, error) {
	window := domain.DueWindowFor(s.clock())

	tasks, err := s.repo.DueBetween(ctx, window.Start, window.End)
	if err != nil {
		s.logger.Errorw("tasks_due_today_query_failed", "error", err)
		return nil, err
	}

	s.logger.Infow("tasks_due_today_success", "count", len(tasks), "window_start", window.Start, "window_end", window.End)
	return tasks, nil
}

// CompleteTask flips the task to completed. Repeating the call on an already
// completed task still matches the row and reports success.
func (s *taskService) CompleteTask(ctx context.Context, id string) error {
	matched, err := s.repo.UpdateStatus(ctx, id, domain.TaskStatusCompleted)
	if err != nil {
		s.logger.Errorw("task_complete_update_failed", "id", id, "error", err)
		return err
	}
	if !matched {
		s.logger.Warnw("task_complete_not_found", "id", id)
		return ErrTaskNotFound
	}

	s.logger.Infow("task_complete_success", "id", id)
	return nil
}
