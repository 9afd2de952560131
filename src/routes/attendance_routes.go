package routes

import (
	"attendance-backend/src/controllers"
	"attendance-backend/src/middleware"
	"attendance-backend/src/models"

	"github.com/gofiber/fiber/v2"
)

func attendanceRoutes(app *fiber.App, h *controllers.AttendanceController) {
	app.Post("/checkin", middleware.AuthJWT, h.CheckIn)
	app.Post("/checkout", middleware.AuthJWT, h.CheckOut)
}

// historyRoutes current-month ต้องลงทะเบียนก่อน /:userId
func historyRoutes(api fiber.Router, h *controllers.AttendanceController) {
	checkins := api.Group("/checkins")
	checkins.Get("/current-month/:userId", h.CurrentMonth)
	checkins.Get("/:userId", h.History(models.KindCheckIn))
	checkins.Patch("/:id/status", h.SetStatus(models.KindCheckIn))

	checkouts := api.Group("/checkouts")
	checkouts.Get("/:userId", h.History(models.KindCheckOut))
	checkouts.Patch("/:id/status", h.SetStatus(models.KindCheckOut))
}
