package services

import "errors"

// Task errors
var (
	ErrTaskMissingFields  = errors.New("task: application_id, task_type, due_at required")
	ErrTaskInvalidType    = errors.New("task: invalid task_type")
	ErrTaskInvalidDueDate = errors.New("task: due_at must be a future datetime")
	ErrTaskNotFound       = errors.New("task: not found")
)

// Dashboard errors
var (
	ErrCompletionInFlight = errors.New("dashboard: completion already in flight for this task")
)
