package models

import (
	"errors"
	"fmt"
)

// ErrorKind กลุ่มของ error ใช้ map เป็น HTTP status ที่ controller
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindValidation   ErrorKind = "VALIDATION_ERROR"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindUpstream     ErrorKind = "UPSTREAM_UNAVAILABLE"
	KindInternal     ErrorKind = "INTERNAL_ERROR"
)

// AppError error ของระบบ เทียบกันด้วย Code ผ่าน errors.Is
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrUserNotFound  = &AppError{Kind: KindNotFound, Code: "USER_NOT_FOUND", Message: "User not found"}
	ErrEventNotFound = &AppError{Kind: KindNotFound, Code: "EVENT_NOT_FOUND", Message: "Attendance record not found"}
	ErrLeaveNotFound = &AppError{Kind: KindNotFound, Code: "LEAVE_NOT_FOUND", Message: "Leave request not found"}

	ErrDuplicateCheckIn    = &AppError{Kind: KindConflict, Code: "DUPLICATE_CHECK_IN", Message: "You have already checked in on this date"}
	ErrAlreadyCheckedIn    = &AppError{Kind: KindConflict, Code: "ALREADY_CHECKED_IN", Message: "You are already checked in. Please check out first."}
	ErrNotCheckedIn        = &AppError{Kind: KindConflict, Code: "NOT_CHECKED_IN", Message: "You are not checked in. Please check in first."}
	ErrLeaveAlreadyDecided = &AppError{Kind: KindConflict, Code: "LEAVE_ALREADY_DECIDED", Message: "Leave request has already been approved or rejected"}
	ErrUserExists          = &AppError{Kind: KindConflict, Code: "USER_EXISTS", Message: "User already exists!"}

	ErrMissingTimeFilter = &AppError{Kind: KindValidation, Code: "MISSING_TIME_FILTER", Message: "date or month and year is required"}
	ErrInvalidLeaveRange = &AppError{Kind: KindValidation, Code: "INVALID_LEAVE_RANGE", Message: "leaveStartDate must not be after leaveEndDate"}

	ErrInvalidCredentials = &AppError{Kind: KindUnauthorized, Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}

	ErrLocationUnavailable = &AppError{Kind: KindUpstream, Code: "LOCATION_UNAVAILABLE", Message: "Location lookup unavailable"}
)

func NewValidationError(code, message string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message}
}

// NewInternalError ห่อ error จาก persistence ที่ไม่ใช่ AppError
func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: message, Err: err}
}

// AsAppError คืน AppError ถ้ามีอยู่ใน chain ไม่งั้นห่อเป็น internal
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("Internal server error", err)
}
