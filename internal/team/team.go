package team

import (
	"time"

	teamDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/team"
)

type Team struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	TotalMembers int       `json:"total_members"`
	MemberSeed   int       `json:"member_seed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewTeam(name string, seed int) *Team {
	return &Team{
		Name:         name,
		TotalMembers: seed,
		MemberSeed:   seed,
	}
}

func ToDataModel(t *Team) *teamDatamodel.Team {
	return &teamDatamodel.Team{
		ID:           t.ID,
		Name:         t.Name,
		TotalMembers: t.TotalMembers,
		MemberSeed:   t.MemberSeed,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func FromDataModel(t *teamDatamodel.Team) *Team {
	return &Team{
		ID:           t.ID,
		Name:         t.Name,
		TotalMembers: t.TotalMembers,
		MemberSeed:   t.MemberSeed,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
