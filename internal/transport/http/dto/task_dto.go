package dto

import (
	"time"

	"github.com/taskboard/backend/internal/core/ports"
	"github.com/taskboard/backend/internal/domain"
)

// CreateTaskRequest is the creation endpoint body. application_id maps to
// the task's related_id; due_at stays raw until validation parses it.
type CreateTaskRequest struct {
	ApplicationID string `json:"application_id"`
	TaskType      string `json:"task_type"`
	DueAt         string `json:"due_at"`
	Title         string `json:"title,omitempty"`
}

func (r *CreateTaskRequest) ToInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{
		RelatedID: r.ApplicationID,
		TaskType:  r.TaskType,
		DueAt:     r.DueAt,
		Title:     r.Title,
	}
}

type CreateTaskResponse struct {
	Success bool   `json:"success"`
	TaskID  string `json:"task_id"`
}

type TaskResponse struct {
	ID        string    `json:"id"`
	RelatedID string    `json:"related_id"`
	TenantID  *string   `json:"tenant_id"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	DueAt     time.Time `json:"due_at"`
	Title     string    `json:"title"`
}

func TaskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		RelatedID: task.RelatedID,
		TenantID:  task.TenantID,
		Type:      string(task.Type),
		Status:    string(task.Status),
		DueAt:     task.DueAt.UTC(),
		Title:     task.DisplayTitle(),
	}
}

func TasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, TaskToResponse(&tasks[i]))
	}
	return out
}

type TodayResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}
