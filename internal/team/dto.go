package team

import "github.com/frahmantamala/hr-management/internal/membership"

type CreateTeamDTO struct {
	Name string `json:"name" validate:"required,max=50"`
	// TotalMembers seeds the counter. Omitted means zero.
	TotalMembers *int `json:"total_members,omitempty" validate:"omitempty,gte=0"`
}

type UpdateTeamDTO struct {
	Name string `json:"name" validate:"required,max=50"`
}

type TeamsResponse struct {
	Teams []*Team `json:"teams"`
}

type DeleteTeamResponse struct {
	ID                int64 `json:"id"`
	DetachedEmployees int64 `json:"detached_employees"`
}

type AuditResponse = membership.AuditReport
