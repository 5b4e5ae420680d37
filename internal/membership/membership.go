// Package membership keeps teams.total_members in step with the employees
// that reference each team. Every operation runs in one transaction.
package membership

import (
	"context"

	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	teamDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/team"
)

// RepositoryAPI is implemented on gorm. Every method must use the
// transaction carried by ctx when there is one.
type RepositoryAPI interface {
	// LockTeam returns the team row locked for update, or nil when absent.
	LockTeam(ctx context.Context, teamID int64) (*teamDatamodel.Team, error)
	// LockEmployee returns the employee row locked for update, or nil when
	// absent. It is taken before any team lock.
	LockEmployee(ctx context.Context, employeeID int64) (*employeeDatamodel.Employee, error)
	// LockTeamMembers locks every employee row referencing teamID.
	LockTeamMembers(ctx context.Context, teamID int64) error
	CreateEmployee(ctx context.Context, employee *employeeDatamodel.Employee) error
	// SetEmployeeTeam returns internal.ErrEmployeeNotFound when no row matched.
	SetEmployeeTeam(ctx context.Context, employeeID int64, teamID *int64) error
	DetachTeamMembers(ctx context.Context, teamID int64) (int64, error)
	DeleteEmployeeRecords(ctx context.Context, employeeID int64) error
	DeleteEmployee(ctx context.Context, employeeID int64) error
	DeleteTeam(ctx context.Context, teamID int64) error
	IncrementMembers(ctx context.Context, teamID int64) error
	// DecrementMembers never takes the counter below zero. It reports false
	// when the counter was already zero.
	DecrementMembers(ctx context.Context, teamID int64) (bool, error)
	CountMembers(ctx context.Context, teamID int64) (int64, error)
	SetMembers(ctx context.Context, teamID int64, total int64) error
}

// AuditRepositoryAPI reads stored and live counts for every team.
type AuditRepositoryAPI interface {
	Audit(ctx context.Context) ([]TeamAudit, error)
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(context.Context) error) error
}

// TeamAudit compares a team's stored counter with its creation seed plus
// the employees currently referencing it.
type TeamAudit struct {
	TeamID        int64  `db:"team_id" json:"team_id"`
	Name          string `db:"name" json:"name"`
	StoredMembers int64  `db:"stored_members" json:"stored_members"`
	SeedMembers   int64  `db:"seed_members" json:"seed_members"`
	LiveMembers   int64  `db:"live_members" json:"live_members"`
}

func (a TeamAudit) Expected() int64 {
	return a.SeedMembers + a.LiveMembers
}

func (a TeamAudit) Drift() int64 {
	return a.StoredMembers - a.Expected()
}

func (a TeamAudit) Consistent() bool {
	return a.Drift() == 0
}

type AuditReport struct {
	Teams        []TeamAudit `json:"teams"`
	Inconsistent int         `json:"inconsistent"`
}
