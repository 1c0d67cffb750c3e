package ports

import (
	"context"
	"time"

	"github.com/taskboard/backend/internal/domain"
)

// TaskRepository is the store collaborator. The core only needs the three
// primitive operations insert/select/update; everything else layers on them.
type TaskRepository interface {
	Insert(ctx context.Context, task *domain.Task) error
	DueBetween(ctx context.Context, start, end time.Time) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (matched bool, err error)
}
