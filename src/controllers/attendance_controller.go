package controllers

import (
	"attendance-backend/src/models"
	"attendance-backend/src/services/attendance"
	"attendance-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AttendanceController struct {
	svc *attendance.Service
}

func NewAttendanceController(svc *attendance.Service) *AttendanceController {
	return &AttendanceController{svc: svc}
}

// CheckIn godoc
// @Summary      Check in
// @Description  Records a check-in. Rejected when the user already checked in on the same date.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body body models.AttendanceRequest true "Check-in"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /checkin [post]
func (h *AttendanceController) CheckIn(c *fiber.Ctx) error {
	req, err := parseAttendance(c)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	ev, err := h.svc.CheckIn(c.UserContext(), req)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Check-in successful", "data": ev})
}

// CheckOut godoc
// @Summary      Check out
// @Description  Records a check-out. Only allowed while the user is checked in.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body body models.AttendanceRequest true "Check-out"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /checkout [post]
func (h *AttendanceController) CheckOut(c *fiber.Ctx) error {
	req, err := parseAttendance(c)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	ev, err := h.svc.CheckOut(c.UserContext(), req)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Check-out successful", "data": ev})
}

// History godoc
// @Summary      Attendance history
// @Description  Check-ins or check-outs of a user for a day (date) or a month (month + year).
// @Tags         attendance
// @Produce      json
// @Param        userId  path   string  true   "User ID"
// @Param        date    query  string  false  "YYYY-MM-DD"
// @Param        month   query  int     false  "1-12"
// @Param        year    query  int     false  "Year"
// @Success      200  {array}   models.AttendanceEvent
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/checkins/{userId} [get]
// @Router       /api/checkouts/{userId} [get]
func (h *AttendanceController) History(kind models.EventKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q models.HistoryQuery
		if err := c.QueryParser(&q); err != nil {
			return utils.HandleAppError(c, models.NewValidationError("INVALID_REQUEST", "Invalid query: "+err.Error()))
		}
		events, err := h.svc.Query(c.UserContext(), c.Params("userId"), kind, q)
		if err != nil {
			return utils.HandleAppError(c, err)
		}
		return c.JSON(events)
	}
}

// CurrentMonth godoc
// @Summary      Check-ins of the current month
// @Tags         attendance
// @Produce      json
// @Param        userId  path  string  true  "User ID"
// @Success      200  {array}   models.AttendanceEvent
// @Router       /api/checkins/current-month/{userId} [get]
func (h *AttendanceController) CurrentMonth(c *fiber.Ctx) error {
	events, err := h.svc.CurrentMonth(c.UserContext(), c.Params("userId"), models.KindCheckIn)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(events)
}

// SetStatus godoc
// @Summary      Update attendance status
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Event ID"
// @Param        body  body  models.EventStatusRequest  true  "Status"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/checkins/{id}/status [patch]
// @Router       /api/checkouts/{id}/status [patch]
func (h *AttendanceController) SetStatus(kind models.EventKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.EventStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.HandleAppError(c, models.NewValidationError("INVALID_REQUEST", "Invalid input: "+err.Error()))
		}
		if err := utils.ValidateStruct(req); err != nil {
			return utils.HandleAppError(c, err)
		}
		if err := h.svc.SetEventStatus(c.UserContext(), kind, c.Params("id"), req.Status); err != nil {
			return utils.HandleAppError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Status updated"})
	}
}

func parseAttendance(c *fiber.Ctx) (models.AttendanceRequest, error) {
	var req models.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return req, models.NewValidationError("INVALID_REQUEST", "Invalid input: "+err.Error())
	}
	if err := utils.ValidateStruct(req); err != nil {
		return req, err
	}
	return req, nil
}
