package leaves

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"attendance-backend/src/models"
)

type LeaveStore interface {
	Insert(ctx context.Context, leave *models.LeaveRequest) error
	FindByID(ctx context.Context, id string) (*models.LeaveRequest, error)
	ListByUser(ctx context.Context, userID string, status models.LeaveStatus) ([]models.LeaveRequest, error)
	Decide(ctx context.Context, id string, status models.LeaveStatus, at time.Time) error
	Delete(ctx context.Context, id string) error
	FindApprovedOverlapping(ctx context.Context, userID string, from, to time.Time) ([]models.LeaveRequest, error)
}

type UserLookup interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
}

type Service struct {
	leaves LeaveStore
	users  UserLookup
	now    func() time.Time
}

func NewService(leaves LeaveStore, users UserLookup) *Service {
	return &Service{leaves: leaves, users: users, now: time.Now}
}

// Create คำขอใหม่เป็น pending เสมอ ถ้าไม่ระบุวันสิ้นสุดให้เท่ากับวันเริ่ม
func (s *Service) Create(ctx context.Context, req models.LeaveCreateRequest) (*models.LeaveRequest, error) {
	start, err := parseDate("leaveStartDate", req.LeaveStartDate)
	if err != nil {
		return nil, err
	}
	end := start
	if req.LeaveEndDate != "" {
		if end, err = parseDate("leaveEndDate", req.LeaveEndDate); err != nil {
			return nil, err
		}
	}
	if start.After(end) {
		return nil, models.ErrInvalidLeaveRange
	}

	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		return nil, wrap("Error creating leave request", err)
	}

	leave := &models.LeaveRequest{
		UserID:         req.UserID,
		LeaveStartDate: start,
		LeaveEndDate:   end,
		Reason:         req.Reason,
		Status:         models.LeaveStatusPending,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.leaves.Insert(ctx, leave); err != nil {
		return nil, wrap("Error creating leave request", err)
	}
	return leave, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.LeaveRequest, error) {
	leave, err := s.leaves.FindByID(ctx, id)
	if err != nil {
		return nil, wrap("Error fetching leave request", err)
	}
	return leave, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string, status models.LeaveStatus) ([]models.LeaveRequest, error) {
	if userID == "" {
		return nil, models.NewValidationError("MISSING_USER_ID", "userId is required")
	}
	switch status {
	case "", models.LeaveStatusPending, models.LeaveStatusApproved, models.LeaveStatusRejected:
	default:
		return nil, models.NewValidationError("INVALID_STATUS", fmt.Sprintf("unknown status %q", status))
	}
	leaves, err := s.leaves.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, wrap("Error fetching leave requests", err)
	}
	return leaves, nil
}

// Decide อนุมัติหรือปฏิเสธได้ครั้งเดียวจาก pending
func (s *Service) Decide(ctx context.Context, id string, status models.LeaveStatus) error {
	if status != models.LeaveStatusApproved && status != models.LeaveStatusRejected {
		return models.NewValidationError("INVALID_STATUS", fmt.Sprintf("status must be approved or rejected, got %q", status))
	}
	if err := s.leaves.Decide(ctx, id, status, s.now().UTC()); err != nil {
		return wrap("Error updating leave request", err)
	}
	log.Printf("✅ leave request %s %s", id, status)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.leaves.Delete(ctx, id); err != nil {
		return wrap("Error deleting leave request", err)
	}
	return nil
}

// MonthlyLeaveDays จำนวนวันลาที่อนุมัติแล้วของผู้ใช้ในเดือน/ปีที่ระบุ
func (s *Service) MonthlyLeaveDays(ctx context.Context, userID string, month, year int) (int, error) {
	if userID == "" {
		return 0, models.NewValidationError("MISSING_USER_ID", "userId is required")
	}
	if month < 1 || month > 12 {
		return 0, models.NewValidationError("INVALID_MONTH", fmt.Sprintf("month %d must be between 1 and 12", month))
	}
	if year < 1 || year > 9999 {
		return 0, models.NewValidationError("INVALID_YEAR", fmt.Sprintf("year %d is out of range", year))
	}

	from, to := MonthRange(year, time.Month(month))
	requests, err := s.leaves.FindApprovedOverlapping(ctx, userID, from, to)
	if err != nil {
		return 0, wrap("Error counting leave days", err)
	}
	return CountLeaveDays(requests, year, time.Month(month)), nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, models.NewValidationError("INVALID_DATE", fmt.Sprintf("%s %q must be YYYY-MM-DD", field, value))
	}
	return t, nil
}

func wrap(message string, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return models.NewInternalError(message, err)
}
