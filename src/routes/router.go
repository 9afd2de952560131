package routes

import (
	"attendance-backend/src/controllers"
	"attendance-backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers controller ทั้งหมดที่ main ประกอบไว้แล้ว
type Handlers struct {
	Auth       *controllers.AuthController
	Attendance *controllers.AttendanceController
	Leaves     *controllers.LeaveController
	Jobs       *controllers.JobsController
}

func InitRoutes(app *fiber.App, h Handlers) {
	authRoutes(app, h.Auth)
	attendanceRoutes(app, h.Attendance)

	api := app.Group("/api", middleware.AuthJWT)
	historyRoutes(api, h.Attendance)
	leaveRoutes(api, h.Leaves)
	jobRoutes(api, h.Jobs)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Server is running")
	})
}
