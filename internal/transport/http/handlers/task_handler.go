package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/taskboard/backend/internal/core/ports"
	"github.com/taskboard/backend/internal/core/services"
	"github.com/taskboard/backend/internal/infrastructure/logger"
	"github.com/taskboard/backend/internal/transport/http/dto"
)

type TaskHandler struct {
	service ports.TaskService
	logger  *logger.Logger
}

func NewTaskHandler(service ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{service: service, logger: logger}
}

// CreateTask validates and persists a follow-up task. Exactly one record is
// written on success, none on any failure.
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warnw("task_create_body_parse_failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	h.logger.Infow("task_create_request", "application_id", req.ApplicationID, "task_type", req.TaskType, "due_at", req.DueAt)
	task, err := h.service.CreateTask(c.Context(), req.ToInput())
	if err != nil {
		if errors.Is(err, services.ErrTaskMissingFields) ||
			errors.Is(err, services.ErrTaskInvalidType) ||
			errors.Is(err, services.ErrTaskInvalidDueDate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(dto.CreateTaskResponse{
		Success: true,
		TaskID:  task.ID,
	})
}
