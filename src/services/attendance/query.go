package attendance

import (
	"context"
	"fmt"
	"time"

	"attendance-backend/src/models"
)

// TimeWindow ช่วงเวลาแบบรวมขอบทั้งสองด้าน ในรูปแบบ "2006-01-02 15:04:05"
type TimeWindow struct {
	From string
	To   string
}

// DayWindow 00:00:00 ถึง 23:59:59 ของวันนั้น
func DayWindow(date string) (TimeWindow, error) {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return TimeWindow{}, models.NewValidationError("INVALID_DATE", fmt.Sprintf("date %q must be YYYY-MM-DD", date))
	}
	return TimeWindow{
		From: d.Format(models.DateLayout) + " 00:00:00",
		To:   d.Format(models.DateLayout) + " 23:59:59",
	}, nil
}

// MonthWindow วันแรกของเดือน ถึงวันสุดท้าย (บวกหนึ่งเดือนแล้วลบหนึ่งวัน)
func MonthWindow(year int, month time.Month) (TimeWindow, error) {
	if month < time.January || month > time.December {
		return TimeWindow{}, models.NewValidationError("INVALID_MONTH", fmt.Sprintf("month %d must be between 1 and 12", month))
	}
	if year < 1 || year > 9999 {
		return TimeWindow{}, models.NewValidationError("INVALID_YEAR", fmt.Sprintf("year %d is out of range", year))
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return TimeWindow{
		From: first.Format(models.DateLayout) + " 00:00:00",
		To:   last.Format(models.DateLayout) + " 23:59:59",
	}, nil
}

// ResolveWindow date มาก่อน month/year ถ้าไม่มีทั้งคู่ถือว่าไม่ระบุช่วงเวลา
func ResolveWindow(q models.HistoryQuery) (TimeWindow, error) {
	if q.Date != "" {
		return DayWindow(q.Date)
	}
	if q.Month != 0 && q.Year != 0 {
		return MonthWindow(q.Year, time.Month(q.Month))
	}
	return TimeWindow{}, models.ErrMissingTimeFilter
}

// Query ประวัติ check-in หรือ check-out ของผู้ใช้ในช่วงเวลา ตามลำดับที่บันทึก
func (s *Service) Query(ctx context.Context, userID string, kind models.EventKind, q models.HistoryQuery) ([]models.AttendanceEvent, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	window, err := ResolveWindow(q)
	if err != nil {
		return nil, err
	}
	events, err := store.FindInRange(ctx, userID, window.From, window.To)
	if err != nil {
		return nil, wrapStoreError("Server error", err)
	}
	return events, nil
}

// CurrentMonth ประวัติของเดือนปัจจุบันตาม time zone ของระบบ
func (s *Service) CurrentMonth(ctx context.Context, userID string, kind models.EventKind) ([]models.AttendanceEvent, error) {
	now := s.now().In(s.loc)
	return s.Query(ctx, userID, kind, models.HistoryQuery{Month: int(now.Month()), Year: now.Year()})
}
