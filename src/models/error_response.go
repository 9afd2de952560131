package models

// ErrorResponse โครงสร้างมาตรฐานสำหรับการส่ง Error
type ErrorResponse struct {
	Status  int    `json:"status"`         // HTTP Status Code
	Code    string `json:"code,omitempty"` // รหัส error สำหรับ client
	Message string `json:"message"`        // รายละเอียดของ Error
}
