package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
)

type Employee struct {
	ID           int64
	TeamID       *int64
	FirstName    string
	LastName     string
	Username     string
	PasswordHash string
	NationalCode string
	PhoneNumber  string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployeeResponse is the only shape employees leave the service in.
// It has no credential field.
type EmployeeResponse struct {
	ID           int64     `json:"id"`
	TeamID       *int64    `json:"team_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Username     string    `json:"username"`
	NationalCode string    `json:"national_code"`
	PhoneNumber  string    `json:"phone_number"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (e *Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		TeamID:       e.TeamID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Username:     e.Username,
		NationalCode: e.NationalCode,
		PhoneNumber:  e.PhoneNumber,
		Address:      e.Address,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:           e.ID,
		TeamID:       e.TeamID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Username:     e.Username,
		PasswordHash: e.PasswordHash,
		NationalCode: e.NationalCode,
		PhoneNumber:  e.PhoneNumber,
		Address:      e.Address,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:           e.ID,
		TeamID:       e.TeamID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Username:     e.Username,
		PasswordHash: e.PasswordHash,
		NationalCode: e.NationalCode,
		PhoneNumber:  e.PhoneNumber,
		Address:      e.Address,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
