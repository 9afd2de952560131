package controllers

import (
	"attendance-backend/src/jobs"
	"attendance-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

type JobsController struct {
	client *asynq.Client
	marker *jobs.AbsenceMarker
}

// NewJobsController client เป็น nil ได้ (ไม่มี Redis) จะรันงานทันทีแทนการเข้าคิว
func NewJobsController(client *asynq.Client, marker *jobs.AbsenceMarker) *JobsController {
	return &JobsController{client: client, marker: marker}
}

// TriggerMarkAbsent godoc
// @Summary      Mark absent users for a date
// @Description  Enqueues the mark-absent job (or runs it inline when Redis is not configured).
// @Tags         jobs
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD, defaults to today"
// @Success      200  {object}  map[string]interface{}
// @Success      202  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/jobs/mark-absent [post]
func (h *JobsController) TriggerMarkAbsent(c *fiber.Ctx) error {
	date := c.Query("date")
	queued, marked, err := jobs.EnqueueMarkAbsent(c.UserContext(), h.client, h.marker, date)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	if queued {
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Mark-absent job enqueued", "date": date})
	}
	return c.JSON(fiber.Map{"message": "Mark-absent job completed", "date": date, "marked": marked})
}
