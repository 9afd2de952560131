package routes

import (
	"attendance-backend/src/controllers"
	"attendance-backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func authRoutes(app *fiber.App, h *controllers.AuthController) {
	app.Post("/signup", h.Signup)
	app.Post("/login", h.Login)
	app.Get("/getUser/:userId", middleware.AuthJWT, h.GetUser)
}
