package middleware

import (
	"strings"

	"attendance-backend/src/models"
	"attendance-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

func AuthJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.HandleAppError(c, &models.AppError{
			Kind: models.KindUnauthorized, Code: "MISSING_TOKEN", Message: "Missing or invalid Authorization header",
		})
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return utils.HandleAppError(c, &models.AppError{
			Kind: models.KindUnauthorized, Code: "INVALID_TOKEN", Message: "Invalid or expired token",
		})
	}

	c.Locals("userId", claims.UserID)
	c.Locals("email", claims.Email)

	return c.Next()
}
