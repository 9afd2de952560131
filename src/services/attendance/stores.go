package attendance

import (
	"context"

	"attendance-backend/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore สถานะเช็คอินของผู้ใช้
type UserStore interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
	SetCheckedIn(ctx context.Context, userID, at string) error
	SetCheckedOut(ctx context.Context, userID string) error
}

// EventStore บันทึก check-in หรือ check-out (หนึ่ง store ต่อหนึ่ง collection)
type EventStore interface {
	ExistsOnDate(ctx context.Context, userID, date string) (bool, error)
	Insert(ctx context.Context, ev *models.AttendanceEvent) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindInRange(ctx context.Context, userID, from, to string) ([]models.AttendanceEvent, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// LocationResolver แปลงพิกัดเป็นชื่อสถานที่ ต้องไม่คืน error
type LocationResolver interface {
	Resolve(ctx context.Context, in models.LocationInput) string
}

// Locker ทำให้การเช็คอิน/เช็คเอาท์ของผู้ใช้คนเดียวกันทำทีละคำขอ
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
