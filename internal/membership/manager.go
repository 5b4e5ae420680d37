package membership

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/core/events"
)

type Manager struct {
	repo      RepositoryAPI
	audit     AuditRepositoryAPI
	tx        Transactor
	publisher events.Publisher
	logger    *slog.Logger
}

func NewManager(repo RepositoryAPI, audit AuditRepositoryAPI, tx Transactor, publisher events.Publisher, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		repo:      repo,
		audit:     audit,
		tx:        tx,
		publisher: publisher,
		logger:    logger,
	}
}

// OnEmployeeCreate inserts employee and counts it against its team. The team
// row is locked first, so a missing team aborts before anything is written.
func (m *Manager) OnEmployeeCreate(ctx context.Context, employee *employeeDatamodel.Employee) error {
	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if employee.TeamID != nil {
			team, err := m.repo.LockTeam(ctx, *employee.TeamID)
			if err != nil {
				return err
			}
			if team == nil {
				return internal.ErrTeamNotFound
			}
		}

		if err := m.repo.CreateEmployee(ctx, employee); err != nil {
			return err
		}

		if employee.TeamID != nil {
			return m.repo.IncrementMembers(ctx, *employee.TeamID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info("employee created", "employee_id", employee.ID, "team_id", employee.TeamID)
	m.publish(ctx, events.NewEmployeeCreatedEvent(employee.ID, employee.TeamID))
	return nil
}

// Assign moves an employee to newTeamID. Assigning the current team is a no-op.
func (m *Manager) Assign(ctx context.Context, employeeID, newTeamID int64) (*employeeDatamodel.Employee, error) {
	var (
		employee *employeeDatamodel.Employee
		previous *int64
		changed  bool
	)

	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		// the employee row is locked before any team so a concurrent move or
		// delete of the same employee waits and then sees the committed team
		employee, err = m.repo.LockEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return internal.ErrEmployeeNotFound
		}

		if employee.TeamID != nil && *employee.TeamID == newTeamID {
			team, err := m.repo.LockTeam(ctx, newTeamID)
			if err != nil {
				return err
			}
			if team == nil {
				return internal.ErrTeamNotFound
			}
			return nil
		}

		// lock both rows in id order so opposite moves cannot deadlock
		locked, err := m.lockTeams(ctx, newTeamID, employee.TeamID)
		if err != nil {
			return err
		}
		if !locked[newTeamID] {
			return internal.ErrTeamNotFound
		}

		previous = employee.TeamID
		if previous != nil && locked[*previous] {
			if err := m.decrement(ctx, *previous); err != nil {
				return err
			}
		}

		if err := m.repo.SetEmployeeTeam(ctx, employeeID, &newTeamID); err != nil {
			return err
		}
		if err := m.repo.IncrementMembers(ctx, newTeamID); err != nil {
			return err
		}

		employee.TeamID = &newTeamID
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		m.logger.Info("employee team changed", "employee_id", employeeID, "from_team_id", previous, "to_team_id", newTeamID)
		m.publish(ctx, events.NewEmployeeTeamChangedEvent(employeeID, previous, newTeamID))
	}
	return employee, nil
}

// OnEmployeeDelete removes an employee, its attendance and leave records,
// and its contribution to its team's counter.
func (m *Manager) OnEmployeeDelete(ctx context.Context, employeeID int64) error {
	var teamID *int64

	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		employee, err := m.repo.LockEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return internal.ErrEmployeeNotFound
		}
		teamID = employee.TeamID

		if teamID != nil {
			if err := m.lockAndDecrement(ctx, *teamID); err != nil {
				return err
			}
		}

		if err := m.repo.DeleteEmployeeRecords(ctx, employeeID); err != nil {
			return err
		}
		return m.repo.DeleteEmployee(ctx, employeeID)
	})
	if err != nil {
		return err
	}

	m.logger.Info("employee deleted", "employee_id", employeeID, "team_id", teamID)
	m.publish(ctx, events.NewEmployeeDeletedEvent(employeeID, teamID))
	return nil
}

// OnTeamDelete detaches the team's employees and deletes the team. It returns
// how many employees were detached.
func (m *Manager) OnTeamDelete(ctx context.Context, teamID int64) (int64, error) {
	var detached int64

	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// employees before team, the same order Assign and OnEmployeeDelete use
		if err := m.repo.LockTeamMembers(ctx, teamID); err != nil {
			return err
		}
		team, err := m.repo.LockTeam(ctx, teamID)
		if err != nil {
			return err
		}
		if team == nil {
			return internal.ErrTeamNotFound
		}

		detached, err = m.repo.DetachTeamMembers(ctx, teamID)
		if err != nil {
			return err
		}
		return m.repo.DeleteTeam(ctx, teamID)
	})
	if err != nil {
		return 0, err
	}

	m.logger.Info("team deleted", "team_id", teamID, "detached_employees", detached)
	return detached, nil
}

func (m *Manager) Audit(ctx context.Context) (*AuditReport, error) {
	teams, err := m.audit.Audit(ctx)
	if err != nil {
		return nil, err
	}

	report := &AuditReport{Teams: teams}
	for _, t := range teams {
		if !t.Consistent() {
			report.Inconsistent++
			m.logger.Warn("team member counter drifted",
				"team_id", t.TeamID,
				"stored_members", t.StoredMembers,
				"seed_members", t.SeedMembers,
				"live_members", t.LiveMembers)
		}
	}
	return report, nil
}

// Reconcile overwrites a team's counter with its seed plus its live employee
// count.
func (m *Manager) Reconcile(ctx context.Context, teamID int64) (*TeamAudit, error) {
	var result TeamAudit

	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		team, err := m.repo.LockTeam(ctx, teamID)
		if err != nil {
			return err
		}
		if team == nil {
			return internal.ErrTeamNotFound
		}

		live, err := m.repo.CountMembers(ctx, teamID)
		if err != nil {
			return err
		}
		seed := int64(team.MemberSeed)
		if err := m.repo.SetMembers(ctx, teamID, seed+live); err != nil {
			return err
		}

		result = TeamAudit{
			TeamID:        team.ID,
			Name:          team.Name,
			StoredMembers: seed + live,
			SeedMembers:   seed,
			LiveMembers:   live,
		}
		if int64(team.TotalMembers) != result.StoredMembers {
			m.logger.Warn("team member counter reconciled",
				"team_id", teamID,
				"previous", team.TotalMembers,
				"seed_members", seed,
				"live_members", live)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// lockTeams locks newTeamID and, when set, previous in ascending id order.
// The result marks which of them exist.
func (m *Manager) lockTeams(ctx context.Context, newTeamID int64, previous *int64) (map[int64]bool, error) {
	ids := []int64{newTeamID}
	if previous != nil {
		ids = append(ids, *previous)
		if ids[1] < ids[0] {
			ids[0], ids[1] = ids[1], ids[0]
		}
	}

	locked := make(map[int64]bool, len(ids))
	for _, id := range ids {
		team, err := m.repo.LockTeam(ctx, id)
		if err != nil {
			return nil, err
		}
		if team == nil && id != newTeamID {
			// the FK nulls team_id when a team goes away, so this is only
			// reachable when a team delete raced the employee read
			m.logger.Warn("employee references a missing team", "team_id", id)
		}
		locked[id] = team != nil
	}
	return locked, nil
}

func (m *Manager) lockAndDecrement(ctx context.Context, teamID int64) error {
	team, err := m.repo.LockTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		m.logger.Warn("employee references a missing team", "team_id", teamID)
		return nil
	}
	return m.decrement(ctx, teamID)
}

func (m *Manager) decrement(ctx context.Context, teamID int64) error {
	ok, err := m.repo.DecrementMembers(ctx, teamID)
	if err != nil {
		return err
	}
	if !ok {
		m.logger.Warn("team member counter already at zero", "team_id", teamID)
	}
	return nil
}

func (m *Manager) publish(ctx context.Context, event events.Event) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, event); err != nil {
		m.logger.Error("failed to publish membership event", "event_type", event.EventType(), "error", err)
	}
}
