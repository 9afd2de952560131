package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"attendance-backend/src/models"

	"github.com/hibiken/asynq"
)

type UserLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

type CheckinWriter interface {
	ExistsOnDate(ctx context.Context, userID, date string) (bool, error)
	Insert(ctx context.Context, ev *models.AttendanceEvent) error
}

// AbsenceMarker บันทึก absent ให้ผู้ใช้ที่ไม่มีเช็คอินในวันนั้น
type AbsenceMarker struct {
	users    UserLister
	checkins CheckinWriter
	loc      *time.Location
	now      func() time.Time
}

func NewAbsenceMarker(users UserLister, checkins CheckinWriter, loc *time.Location) *AbsenceMarker {
	if loc == nil {
		loc = time.Local
	}
	return &AbsenceMarker{users: users, checkins: checkins, loc: loc, now: time.Now}
}

// MarkAbsent คืนจำนวนผู้ใช้ที่ถูกบันทึกว่าขาด
func (m *AbsenceMarker) MarkAbsent(ctx context.Context, date string) (int, error) {
	if date == "" {
		date = m.now().In(m.loc).Format(models.DateLayout)
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return 0, models.NewValidationError("INVALID_DATE", fmt.Sprintf("date %q must be YYYY-MM-DD", date))
	}

	ids, err := m.users.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, id := range ids {
		exists, err := m.checkins.ExistsOnDate(ctx, id, date)
		if err != nil {
			return marked, err
		}
		if exists {
			continue
		}

		ev := &models.AttendanceEvent{
			UserID:   id,
			Note:     "Marked absent",
			Time:     date + " 23:59:59",
			Date:     date,
			Location: models.UnknownLocation,
			Status:   models.EventStatusAbsent,
		}
		if err := m.checkins.Insert(ctx, ev); err != nil {
			// ผู้ใช้เช็คอินเข้ามาระหว่างที่งานกำลังทำ
			if errors.Is(err, models.ErrDuplicateCheckIn) {
				continue
			}
			return marked, err
		}
		marked++
	}
	return marked, nil
}

// HandleMarkAbsentTask handler ของ asynq
func (m *AbsenceMarker) HandleMarkAbsentTask(ctx context.Context, t *asynq.Task) error {
	var payload MarkAbsentPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	marked, err := m.MarkAbsent(ctx, payload.Date)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Kind == models.KindValidation {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		log.Println("❌ Failed to mark absent:", err)
		return err
	}

	log.Printf("✅ Marked %d user(s) absent for %s", marked, displayDate(payload.Date))
	return nil
}

func displayDate(date string) string {
	if date == "" {
		return "today"
	}
	return date
}
