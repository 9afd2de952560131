package utils

import (
	"errors"
	"fmt"
	"strings"

	"attendance-backend/src/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct คืน AppError ประเภท validation พร้อมรายชื่อ field ที่ผิด
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return models.NewValidationError("INVALID_REQUEST", err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
		}
	}
	return models.NewValidationError("INVALID_REQUEST", strings.Join(msgs, "; "))
}
