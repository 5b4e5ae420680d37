package admin

import (
	"time"

	adminDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/admin"
)

type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type AdminResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Admin) ToResponse() AdminResponse {
	return AdminResponse{ID: a.ID, Username: a.Username, CreatedAt: a.CreatedAt}
}

func FromDataModel(a *adminDatamodel.Admin) *Admin {
	return &Admin{
		ID:           a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}
}
