package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeMarkAbsent = "attendance:mark-absent"

// MarkAbsentPayload date ว่าง = วันนี้ตาม time zone ของระบบ ณ เวลาที่ task ทำงาน
type MarkAbsentPayload struct {
	Date string `json:"date"`
}

func NewMarkAbsentTask(date string) (*asynq.Task, error) {
	payload, err := json.Marshal(MarkAbsentPayload{Date: date})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeMarkAbsent, payload), nil
}
