package sessionapimodels

import (
	"strings"

	"expense-claims-front/models"
)

type LoginRequest struct {
	EmpCode string `json:"emp_code"` // табельный номер сотрудника
}

// Validate проверяет номер локально, пустой номер до бекенда не доходит
func (r LoginRequest) Validate() error {
	if len(strings.TrimSpace(r.EmpCode)) == 0 {
		return models.NewValidationError("укажите табельный номер")
	}
	return nil
}

func (r LoginRequest) GetEmpCode() string {
	return strings.TrimSpace(r.EmpCode)
}

type UserView struct {
	EmpCode  string `json:"emp_code"`
	EmpName  string `json:"emp_name"`
	DeptName string `json:"dept_name"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}
