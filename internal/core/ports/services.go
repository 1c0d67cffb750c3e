package ports

import (
	"context"
	"time"

	"github.com/taskboard/backend/internal/domain"
)

type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	TasksDueToday(ctx context.Context) ([]domain.Task, error)
	CompleteTask(ctx context.Context, id string) error
}

// CreateTaskInput carries the raw creation request. DueAt stays a string
// until validation parses and normalizes it.
type CreateTaskInput struct {
	RelatedID string
	TaskType  string
	DueAt     string
	Title     string
}

type DashboardService interface {
	Today(ctx context.Context) ([]domain.Task, error)
	Complete(ctx context.Context, taskID string) error
	Invalidate()
	Subscribe() (<-chan []domain.Task, func())
}

// Clock supplies the current instant. Injected so date-boundary behavior
// is deterministic under test.
type Clock func() time.Time
