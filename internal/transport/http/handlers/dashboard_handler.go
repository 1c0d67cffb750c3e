package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/taskboard/backend/internal/core/ports"
	"github.com/taskboard/backend/internal/core/services"
	"github.com/taskboard/backend/internal/infrastructure/logger"
	"github.com/taskboard/backend/internal/transport/http/dto"
)

type DashboardHandler struct {
	dashboard ports.DashboardService
	logger    *logger.Logger
}

func NewDashboardHandler(dashboard ports.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// Today returns every task due within the current UTC calendar day, pending
// and completed alike. An empty list is a normal outcome.
func (h *DashboardHandler) Today(c *fiber.Ctx) error {
	tasks, err := h.dashboard.Today(c.Context())
	if err != nil {
		h.logger.Errorw("dashboard_today_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(dto.TodayResponse{Tasks: dto.TasksToResponse(tasks)})
}

// Complete marks one task completed and refreshes the cached view.
func (h *DashboardHandler) Complete(c *fiber.Ctx) error {
	taskID := c.Params("id")
	if taskID == "" {
		h.logger.Warnw("dashboard_complete_missing_id")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "task id is required",
		})
	}

	h.logger.Infow("dashboard_complete_request", "id", taskID)
	if err := h.dashboard.Complete(c.Context(), taskID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "task not found",
			})
		}
		if errors.Is(err, services.ErrCompletionInFlight) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		h.logger.Errorw("dashboard_complete_failed", "id", taskID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(dto.SuccessResponse{Message: "task completed"})
}

// Live streams the today view over a websocket: the current list on connect,
// then the refreshed list after every successful completion.
func (h *DashboardHandler) Live(c *websocket.Conn) {
	updates, cancel := h.dashboard.Subscribe()
	defer cancel()

	tasks, err := h.dashboard.Today(context.Background())
	if err != nil {
		h.logger.Errorw("dashboard_live_initial_fetch_failed", "error", err)
		_ = c.WriteJSON(dto.ErrorResponse{Error: err.Error()})
		_ = c.Close()
		return
	}
	if err := c.WriteJSON(dto.TodayResponse{Tasks: dto.TasksToResponse(tasks)}); err != nil {
		return
	}

	h.logger.Infow("dashboard_live_connected")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case refreshed, ok := <-updates:
			if !ok {
				return
			}
			if err := c.WriteJSON(dto.TodayResponse{Tasks: dto.TasksToResponse(refreshed)}); err != nil {
				h.logger.Warnw("dashboard_live_write_failed", "error", err)
				return
			}
		case <-closed:
			h.logger.Infow("dashboard_live_disconnected")
			return
		}
	}
}
