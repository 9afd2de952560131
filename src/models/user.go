package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User พนักงาน พร้อมสถานะการเช็คอินปัจจุบัน
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password,omitempty" json:"-"`
	Name          string             `bson:"name" json:"name"`
	Number        string             `bson:"number" json:"number"`
	CheckIn       bool               `bson:"checkIn" json:"checkIn"`
	LastCheckedIn string             `bson:"lastCheckedIn" json:"lastCheckedIn"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// SignupRequest ข้อมูลสมัครสมาชิก
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Number   string `json:"number"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse ส่งกลับหลัง login สำเร็จ
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}
