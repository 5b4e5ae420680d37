package employee

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

type CreateEmployeeDTO struct {
	TeamID       int64  `json:"team_id" validate:"required,gt=0"`
	FirstName    string `json:"first_name" validate:"required,max=50"`
	LastName     string `json:"last_name" validate:"required,max=50"`
	Username     string `json:"username" validate:"required,max=50"`
	Password     string `json:"password" validate:"required,max=72"`
	NationalCode string `json:"national_code" validate:"omitempty,numeric,max=10"`
	PhoneNumber  string `json:"phone_number" validate:"omitempty,numeric,max=11"`
	Address      string `json:"address" validate:"max=255"`
}

// UpdateEmployeeDTO changes profile fields only. Nil fields are left alone;
// team changes go through AssignTeamDTO.
type UpdateEmployeeDTO struct {
	FirstName    *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
	LastName     *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=50"`
	Username     *string `json:"username,omitempty" validate:"omitempty,min=1,max=50"`
	Password     *string `json:"password,omitempty" validate:"omitempty,min=1,max=72"`
	NationalCode *string `json:"national_code,omitempty" validate:"omitempty,numeric,max=10"`
	PhoneNumber  *string `json:"phone_number,omitempty" validate:"omitempty,numeric,max=11"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

type AssignTeamDTO struct {
	TeamID int64 `json:"team_id" validate:"required,gt=0"`
}

type ListQuery struct {
	Skip  int `json:"skip" validate:"gte=0"`
	Limit int `json:"limit" validate:"gte=1,lte=500"`
}

type CreateEmployeeResponse struct {
	ID int64 `json:"id"`
}

type EmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

type DeleteEmployeeResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
