package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// LeaveRequest คำขอลา วันที่เก็บเป็นเที่ยงคืน UTC และรวมวันสุดท้าย
type LeaveRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"userId" json:"userId"`
	LeaveStartDate time.Time          `bson:"leaveStartDate" json:"leaveStartDate"`
	LeaveEndDate   time.Time          `bson:"leaveEndDate" json:"leaveEndDate"`
	Reason         string             `bson:"reason" json:"reason"`
	Status         LeaveStatus        `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	DecidedAt      *time.Time         `bson:"decidedAt,omitempty" json:"decidedAt,omitempty"`
}

type LeaveCreateRequest struct {
	UserID         string `json:"userId" validate:"required"`
	LeaveStartDate string `json:"leaveStartDate" validate:"required,datetime=2006-01-02"`
	LeaveEndDate   string `json:"leaveEndDate" validate:"omitempty,datetime=2006-01-02"`
	Reason         string `json:"reason" validate:"max=500"`
}

type LeaveStatusRequest struct {
	Status LeaveStatus `json:"status" validate:"required,oneof=approved rejected"`
}

type LeaveListQuery struct {
	UserID string `query:"userId"`
	Status string `query:"status"`
}

type MonthlyLeaveDaysResponse struct {
	UserID    string `json:"userId"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	LeaveDays int    `json:"leaveDays"`
}
