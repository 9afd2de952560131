package models

import (
	"bytes"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TimeLayout = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
)

// EventKind แยก collection ของ check-in และ check-out
type EventKind string

const (
	KindCheckIn  EventKind = "checkin"
	KindCheckOut EventKind = "checkout"
)

func (k EventKind) Valid() bool {
	return k == KindCheckIn || k == KindCheckOut
}

// สถานะของ event
const (
	EventStatusPending  = "pending"
	EventStatusApproved = "approved"
	EventStatusOvertime = "overtime"
	EventStatusAbsent   = "absent"
)

// UnknownLocation ใช้เมื่อแปลงพิกัดเป็นชื่อสถานที่ไม่ได้
const UnknownLocation = "Unknown location"

type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// AttendanceEvent บันทึกการเช็คอิน/เช็คเอาท์ 1 ครั้ง
type AttendanceEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Note        string             `bson:"note" json:"note"`
	Image       string             `bson:"image" json:"image"`
	Time        string             `bson:"time" json:"time"`
	Date        string             `bson:"date" json:"date"`
	Location    string             `bson:"location" json:"location"`
	Coordinates *Coordinates       `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Status      string             `bson:"status" json:"status"`
}

// LocationInput รับได้ทั้งชื่อสถานที่ (string) หรือ object พิกัด
type LocationInput struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	Address   string   `json:"address"`
}

func (l *LocationInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = LocationInput{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = LocationInput{Address: s}
		return nil
	}
	type plain LocationInput
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*l = LocationInput(p)
	return nil
}

// HasCoordinates true เมื่อส่งพิกัดมาครบทั้งคู่
func (l LocationInput) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

func (l LocationInput) Coordinates() *Coordinates {
	if !l.HasCoordinates() {
		return nil
	}
	return &Coordinates{Latitude: *l.Latitude, Longitude: *l.Longitude}
}

// AttendanceRequest body ของ /checkin และ /checkout
type AttendanceRequest struct {
	UserID   string        `json:"userId" validate:"required"`
	Note     string        `json:"note"`
	Image    string        `json:"image"`
	Time     string        `json:"time" validate:"required,datetime=2006-01-02 15:04:05"`
	Date     string        `json:"date" validate:"required,datetime=2006-01-02"`
	Location LocationInput `json:"location"`
	Status   string        `json:"status" validate:"omitempty,oneof=pending approved overtime absent"`
}

// HistoryQuery ตัวกรองช่วงเวลา ต้องมี date หรือ month+year
type HistoryQuery struct {
	Date  string `query:"date"`
	Month int    `query:"month"`
	Year  int    `query:"year"`
}

type EventStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved overtime absent"`
}
