package cmd

import (
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/admin"
	adminPostgres "github.com/frahmantamala/hr-management/internal/admin/postgres"
	"github.com/frahmantamala/hr-management/internal/attendance"
	attendancePostgres "github.com/frahmantamala/hr-management/internal/attendance/postgres"
	"github.com/frahmantamala/hr-management/internal/auth"
	authPostgres "github.com/frahmantamala/hr-management/internal/auth/postgres"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/database"
	"github.com/frahmantamala/hr-management/internal/employee"
	employeePostgres "github.com/frahmantamala/hr-management/internal/employee/postgres"
	"github.com/frahmantamala/hr-management/internal/leave"
	leavePostgres "github.com/frahmantamala/hr-management/internal/leave/postgres"
	"github.com/frahmantamala/hr-management/internal/membership"
	membershipPostgres "github.com/frahmantamala/hr-management/internal/membership/postgres"
	"github.com/frahmantamala/hr-management/internal/team"
	teamPostgres "github.com/frahmantamala/hr-management/internal/team/postgres"
)

type services struct {
	Auth       *auth.Service
	Admin      *admin.Service
	Team       *team.Service
	Employee   *employee.Service
	Attendance *attendance.Service
	Leave      *leave.Service
	Membership *membership.Manager
}

// newServices wires repositories and services over one database handle.
// bus may be nil when no subscribers are interested in membership events.
func newServices(cfg *internal.Config, db *database.DB, bus events.Publisher, logger *slog.Logger) *services {
	tokenGen := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.AccessTokenDuration, auth.SystemClock{})
	authService := auth.NewService(authPostgres.NewRepository(db.Gorm), tokenGen, cfg.Security.BCryptCost, logger)

	manager := membership.NewManager(
		membershipPostgres.NewMembershipRepository(db.Gorm),
		membershipPostgres.NewAuditRepository(db.SQL),
		database.NewTransactionManager(db.Gorm),
		bus,
		logger,
	)

	return &services{
		Auth:       authService,
		Admin:      admin.NewService(adminPostgres.NewAdminRepository(db.Gorm), authService, logger),
		Team:       team.NewService(teamPostgres.NewTeamRepository(db.Gorm), manager, logger),
		Employee:   employee.NewService(employeePostgres.NewEmployeeRepository(db.Gorm), manager, authService, logger),
		Attendance: attendance.NewService(attendancePostgres.NewAttendanceRepository(db.Gorm), logger),
		Leave:      leave.NewService(leavePostgres.NewLeaveRepository(db.Gorm), logger),
		Membership: manager,
	}
}
