package controllers

import (
	"attendance-backend/src/models"
	"attendance-backend/src/services/leaves"
	"attendance-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type LeaveController struct {
	svc *leaves.Service
}

func NewLeaveController(svc *leaves.Service) *LeaveController {
	return &LeaveController{svc: svc}
}

// CreateLeave godoc
// @Summary      Request leave
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Param        body body models.LeaveCreateRequest true "Leave request"
// @Success      201  {object}  models.LeaveRequest
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/leaves [post]
func (h *LeaveController) CreateLeave(c *fiber.Ctx) error {
	var req models.LeaveCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleAppError(c, models.NewValidationError("INVALID_REQUEST", "Invalid input: "+err.Error()))
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleAppError(c, err)
	}
	leave, err := h.svc.Create(c.UserContext(), req)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(leave)
}

// ListLeaves godoc
// @Summary      List a user's leave requests
// @Tags         leaves
// @Produce      json
// @Param        userId  query  string  true   "User ID"
// @Param        status  query  string  false  "pending | approved | rejected"
// @Success      200  {array}   models.LeaveRequest
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/leaves [get]
func (h *LeaveController) ListLeaves(c *fiber.Ctx) error {
	var q models.LeaveListQuery
	if err := c.QueryParser(&q); err != nil {
		return utils.HandleAppError(c, models.NewValidationError("INVALID_REQUEST", "Invalid query: "+err.Error()))
	}
	list, err := h.svc.ListByUser(c.UserContext(), q.UserID, models.LeaveStatus(q.Status))
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(list)
}

// GetLeave godoc
// @Summary      Get a leave request
// @Tags         leaves
// @Produce      json
// @Param        id  path  string  true  "Leave request ID"
// @Success      200  {object}  models.LeaveRequest
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/leaves/{id} [get]
func (h *LeaveController) GetLeave(c *fiber.Ctx) error {
	leave, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(leave)
}

// DecideLeave godoc
// @Summary      Approve or reject a leave request
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Leave request ID"
// @Param        body  body  models.LeaveStatusRequest  true  "Decision"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /api/leaves/{id}/status [patch]
func (h *LeaveController) DecideLeave(c *fiber.Ctx) error {
	var req models.LeaveStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleAppError(c, models.NewValidationError("INVALID_REQUEST", "Invalid input: "+err.Error()))
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleAppError(c, err)
	}
	if err := h.svc.Decide(c.UserContext(), c.Params("id"), req.Status); err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Leave request " + string(req.Status)})
}

// DeleteLeave godoc
// @Summary      Delete a leave request
// @Tags         leaves
// @Param        id  path  string  true  "Leave request ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/leaves/{id} [delete]
func (h *LeaveController) DeleteLeave(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Leave request deleted"})
}

// MonthlyLeaveDays godoc
// @Summary      Approved leave days in a month
// @Tags         leaves
// @Produce      json
// @Param        userId  path   string  true  "User ID"
// @Param        month   query  int     true  "1-12"
// @Param        year    query  int     true  "Year"
// @Success      200  {object}  models.MonthlyLeaveDaysResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/leaves/monthly-days/{userId} [get]
func (h *LeaveController) MonthlyLeaveDays(c *fiber.Ctx) error {
	userID := c.Params("userId")
	month := c.QueryInt("month")
	year := c.QueryInt("year")

	days, err := h.svc.MonthlyLeaveDays(c.UserContext(), userID, month, year)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(models.MonthlyLeaveDaysResponse{
		UserID:    userID,
		Month:     month,
		Year:      year,
		LeaveDays: days,
	})
}
