package db

import (
	"context"
	"time"

	"github.com/taskboard/backend/internal/core/ports"
	"github.com/taskboard/backend/internal/domain"
	"github.com/taskboard/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type taskRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepository(db *gorm.DB, log *logger.Logger) ports.TaskRepository {
	return &taskRepository{db: db, log: log}
}

func (r *taskRepository) Insert(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		r.log.Errorw("task_repo_insert_failed", "related_id", task.RelatedID, "error", err)
		return err
	}
	r.log.Infow("task_repo_insert_ok", "id", task.ID, "related_id", task.RelatedID)
	return nil
}

// DueBetween returns all tasks whose due_at falls in [start, end], both
// bounds inclusive. No status or tenant filter, no ordering contract.
func (r *taskRepository) DueBetween(ctx context.Context, start, end time.Time) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := r.db.WithContext(ctx).Where("due_at BETWEEN ? AND ?", start, end).Find(&tasks).Error; err != nil {
		r.log.Errorw("task_repo_due_between_failed", "error", err)
		return nil, err
	}
	r.log.Infow("task_repo_due_between_ok", "count", len(tasks))
	return tasks, nil
}

// UpdateStatus issues a single update-by-id; the store's row atomicity is
// what makes concurrent completions safe. matched is false when no row has
// the given id.
func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		r.log.Errorw("task_repo_update_status_failed", "id", id, "status", status, "error", result.Error)
		return false, result.Error
	}
	r.log.Infow("task_repo_update_status_ok", "id", id, "status", status, "matched", result.RowsAffected > 0)
	return result.RowsAffected > 0, nil
}
