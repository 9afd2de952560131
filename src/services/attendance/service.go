package attendance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"attendance-backend/src/models"
)

// Service ควบคุม state machine ของการเช็คอิน/เช็คเอาท์ และการค้นประวัติ
type Service struct {
	users     UserStore
	checkins  EventStore
	checkouts EventStore
	resolver  LocationResolver
	locker    Locker
	loc       *time.Location
	now       func() time.Time
}

type Option func(*Service)

// WithClock ใช้ในเทสต์เพื่อกำหนดเวลาปัจจุบัน
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewService(users UserStore, checkins, checkouts EventStore, resolver LocationResolver, locker Locker, opts ...Option) *Service {
	if locker == nil {
		locker = NewKeyedMutex()
	}
	s := &Service{
		users:     users,
		checkins:  checkins,
		checkouts: checkouts,
		resolver:  resolver,
		locker:    locker,
		loc:       time.Local,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckIn ตรวจตามลำดับ: เช็คอินซ้ำในวันเดียวกัน -> ผู้ใช้มีอยู่จริง -> ยังไม่ได้เช็คอินค้างไว้
func (s *Service) CheckIn(ctx context.Context, req models.AttendanceRequest) (*models.AttendanceEvent, error) {
	unlock, err := s.locker.Lock(ctx, "attendance:"+req.UserID)
	if err != nil {
		return nil, models.NewInternalError("Could not acquire attendance lock", err)
	}
	defer unlock()

	exists, err := s.checkins.ExistsOnDate(ctx, req.UserID, req.Date)
	if err != nil {
		return nil, models.NewInternalError("Error during check-in", err)
	}
	if exists {
		return nil, models.ErrDuplicateCheckIn
	}

	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, wrapStoreError("Error during check-in", err)
	}
	if user.CheckIn {
		return nil, models.ErrAlreadyCheckedIn
	}

	ev := s.newEvent(ctx, req)
	if err := s.checkins.Insert(ctx, ev); err != nil {
		return nil, wrapStoreError("Error during check-in", err)
	}

	if err := s.users.SetCheckedIn(ctx, req.UserID, req.Time); err != nil {
		s.rollback(s.checkins, ev)
		return nil, wrapStoreError("Error during check-in", err)
	}

	log.Printf("✅ check-in user=%s date=%s", req.UserID, req.Date)
	return ev, nil
}

// CheckOut ไม่ตรวจซ้ำรายวัน ตรวจแค่ว่ากำลังเช็คอินอยู่
func (s *Service) CheckOut(ctx context.Context, req models.AttendanceRequest) (*models.AttendanceEvent, error) {
	unlock, err := s.locker.Lock(ctx, "attendance:"+req.UserID)
	if err != nil {
		return nil, models.NewInternalError("Could not acquire attendance lock", err)
	}
	defer unlock()

	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, wrapStoreError("Check-out error", err)
	}
	if !user.CheckIn {
		return nil, models.ErrNotCheckedIn
	}

	ev := s.newEvent(ctx, req)
	if err := s.checkouts.Insert(ctx, ev); err != nil {
		return nil, wrapStoreError("Check-out error", err)
	}

	if err := s.users.SetCheckedOut(ctx, req.UserID); err != nil {
		s.rollback(s.checkouts, ev)
		return nil, wrapStoreError("Check-out error", err)
	}

	log.Printf("✅ check-out user=%s date=%s", req.UserID, req.Date)
	return ev, nil
}

// SetEventStatus ใช้โดยผู้ตรวจสอบ เปลี่ยนได้เฉพาะ status
func (s *Service) SetEventStatus(ctx context.Context, kind models.EventKind, eventID, status string) error {
	store, err := s.store(kind)
	if err != nil {
		return err
	}
	switch status {
	case models.EventStatusPending, models.EventStatusApproved, models.EventStatusOvertime, models.EventStatusAbsent:
	default:
		return models.NewValidationError("INVALID_STATUS", fmt.Sprintf("unknown status %q", status))
	}
	if err := store.UpdateStatus(ctx, eventID, status); err != nil {
		return wrapStoreError("Error updating status", err)
	}
	return nil
}

func (s *Service) newEvent(ctx context.Context, req models.AttendanceRequest) *models.AttendanceEvent {
	status := req.Status
	if status == "" {
		status = models.EventStatusPending
	}
	location := models.UnknownLocation
	if s.resolver != nil {
		location = s.resolver.Resolve(ctx, req.Location)
	}
	return &models.AttendanceEvent{
		UserID:      req.UserID,
		Note:        req.Note,
		Image:       req.Image,
		Time:        req.Time,
		Date:        req.Date,
		Location:    location,
		Coordinates: req.Location.Coordinates(),
		Status:      status,
	}
}

// rollback ลบ event ที่เพิ่งบันทึกเมื่ออัปเดตสถานะผู้ใช้ไม่สำเร็จ
func (s *Service) rollback(store EventStore, ev *models.AttendanceEvent) {
	if ev.ID.IsZero() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Delete(ctx, ev.ID); err != nil {
		log.Printf("❌ rollback of event %s failed: %v", ev.ID.Hex(), err)
	}
}

func (s *Service) store(kind models.EventKind) (EventStore, error) {
	switch kind {
	case models.KindCheckIn:
		return s.checkins, nil
	case models.KindCheckOut:
		return s.checkouts, nil
	}
	return nil, models.NewValidationError("INVALID_KIND", fmt.Sprintf("unknown event kind %q", kind))
}

func wrapStoreError(message string, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return models.NewInternalError(message, err)
}
