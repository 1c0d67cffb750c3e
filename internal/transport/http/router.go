package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/taskboard/backend/internal/config"
	"github.com/taskboard/backend/internal/core/ports"
	"github.com/taskboard/backend/internal/core/services"
	"github.com/taskboard/backend/internal/infrastructure/db"
	"github.com/taskboard/backend/internal/infrastructure/logger"
	"github.com/taskboard/backend/internal/transport/http/handlers"
	httpmw "github.com/taskboard/backend/internal/transport/http/middleware"
	"gorm.io/gorm"
)

type RouterConfig struct {
	DB     *gorm.DB
	Logger *logger.Logger
	Config *config.Config
	Clock  ports.Clock // nil means the system clock
}

func SetupRoutes(app *fiber.App, cfg RouterConfig) {
	// Initialize repositories
	taskRepo := db.NewTaskRepository(cfg.DB, cfg.Logger)

	// Initialize services
	taskService := services.NewTaskService(services.TaskServiceConfig{
		Repository: taskRepo,
		Logger:     cfg.Logger,
		Clock:      cfg.Clock,
	})
	dashboardService := services.NewDashboardService(services.DashboardServiceConfig{
		Tasks:  taskService,
		Logger: cfg.Logger,
	})

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(taskService, cfg.Logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, cfg.Logger)

	// Dashboard live feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws/dashboard", websocket.New(dashboardHandler.Live))

	// API v1 routes
	api := app.Group("/api/v1")

	// Task creation. Only POST is registered; any other verb on the path
	// gets 405 from the router before the body is touched.
	tasks := api.Group("/tasks", httpmw.AdminAuth(cfg.Config))
	tasks.Post("/", taskHandler.CreateTask)

	// Dashboard routes
	dashboard := api.Group("/dashboard", httpmw.AdminAuth(cfg.Config))
	dashboard.Get("/today", dashboardHandler.Today)
	dashboard.Post("/tasks/:id/complete", dashboardHandler.Complete)
}
