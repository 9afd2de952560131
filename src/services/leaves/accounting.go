package leaves

import (
	"time"

	"attendance-backend/src/models"
)

const oneDay = 24 * time.Hour

// MonthRange วันแรก (เที่ยงคืน UTC) และวันสุดท้ายของเดือน
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// Overlaps ช่วงลา [start, end] คาบเกี่ยว [from, to] หรือไม่ (รวมขอบ)
func Overlaps(leave models.LeaveRequest, from, to time.Time) bool {
	return !leave.LeaveStartDate.After(to) && !leave.LeaveEndDate.Before(from)
}

// ClippedDays จำนวนวันเต็มของคำขอลาที่อยู่ใน [from, to] ไม่ติดลบ
func ClippedDays(leave models.LeaveRequest, from, to time.Time) int {
	start := leave.LeaveStartDate
	if start.Before(from) {
		start = from
	}
	end := leave.LeaveEndDate
	if end.After(to) {
		end = to
	}
	days := int(end.Sub(start)/oneDay) + 1
	if end.Before(start) || days < 0 {
		return 0
	}
	return days
}

// CountLeaveDays รวมวันลาที่อนุมัติแล้วในเดือนนั้น
// คำขอที่ซ้อนกันจะถูกนับซ้ำ ไม่ได้ merge ช่วงก่อนรวม
func CountLeaveDays(requests []models.LeaveRequest, year int, month time.Month) int {
	from, to := MonthRange(year, month)
	total := 0
	for _, r := range requests {
		if r.Status != models.LeaveStatusApproved || !Overlaps(r, from, to) {
			continue
		}
		total += ClippedDays(r, from, to)
	}
	return total
}
