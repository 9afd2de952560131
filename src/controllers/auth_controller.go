package controllers

import (
	"attendance-backend/src/models"
	"attendance-backend/src/services/accounts"
	"attendance-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	svc *accounts.Service
}

func NewAuthController(svc *accounts.Service) *AuthController {
	return &AuthController{svc: svc}
}

// Signup godoc
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.SignupRequest true "New user"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /signup [post]
func (h *AuthController) Signup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleAppError(c, models.NewValidationError("INVALID_REQUEST", "Invalid request format"))
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleAppError(c, err)
	}

	user, err := h.svc.Signup(c.UserContext(), req)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.LoginRequest true "Credentials"
// @Success      200  {object}  models.LoginResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /login [post]
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleAppError(c, models.NewValidationError("INVALID_REQUEST", "Invalid request format"))
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleAppError(c, err)
	}

	user, token, err := h.svc.Login(c.UserContext(), req)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(models.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// GetUser godoc
// @Summary      Get a user with check-in state
// @Tags         users
// @Produce      json
// @Param        userId  path  string  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  models.ErrorResponse
// @Router       /getUser/{userId} [get]
func (h *AuthController) GetUser(c *fiber.Ctx) error {
	user, err := h.svc.GetUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(user)
}
