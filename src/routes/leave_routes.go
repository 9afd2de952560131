package routes

import (
	"attendance-backend/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func leaveRoutes(api fiber.Router, h *controllers.LeaveController) {
	leaves := api.Group("/leaves")
	leaves.Post("/", h.CreateLeave)
	leaves.Get("/", h.ListLeaves)
	leaves.Get("/monthly-days/:userId", h.MonthlyLeaveDays)
	leaves.Get("/:id", h.GetLeave)
	leaves.Patch("/:id/status", h.DecideLeave)
	leaves.Delete("/:id", h.DeleteLeave)
}

func jobRoutes(api fiber.Router, h *controllers.JobsController) {
	api.Post("/jobs/mark-absent", h.TriggerMarkAbsent)
}
