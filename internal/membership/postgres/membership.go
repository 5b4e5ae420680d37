package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/hr-management/internal"
	attendanceDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/attendance"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	leaveDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/leave"
	teamDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/team"
	"github.com/frahmantamala/hr-management/internal/database"
	"github.com/frahmantamala/hr-management/internal/membership"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) membership.RepositoryAPI {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db)
}

func (r *MembershipRepository) LockTeam(ctx context.Context, teamID int64) (*teamDatamodel.Team, error) {
	var team teamDatamodel.Team
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", teamID).
		Take(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *MembershipRepository) LockEmployee(ctx context.Context, employeeID int64) (*employeeDatamodel.Employee, error) {
	var employee employeeDatamodel.Employee
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", employeeID).
		Take(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func (r *MembershipRepository) CreateEmployee(ctx context.Context, employee *employeeDatamodel.Employee) error {
	err := r.conn(ctx).Omit(clause.Associations).Create(employee).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrUsernameTaken
	}
	return err
}

func (r *MembershipRepository) LockTeamMembers(ctx context.Context, teamID int64) error {
	var ids []int64
	return r.conn(ctx).
		Model(&employeeDatamodel.Employee{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("team_id = ?", teamID).
		Order("id").
		Pluck("id", &ids).Error
}

func (r *MembershipRepository) SetEmployeeTeam(ctx context.Context, employeeID int64, teamID *int64) error {
	result := r.conn(ctx).
		Model(&employeeDatamodel.Employee{}).
		Where("id = ?", employeeID).
		Update("team_id", teamID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}

func (r *MembershipRepository) DetachTeamMembers(ctx context.Context, teamID int64) (int64, error) {
	result := r.conn(ctx).
		Model(&employeeDatamodel.Employee{}).
		Where("team_id = ?", teamID).
		Update("team_id", nil)
	return result.RowsAffected, result.Error
}

func (r *MembershipRepository) DeleteEmployeeRecords(ctx context.Context, employeeID int64) error {
	db := r.conn(ctx)
	if err := db.Where("employee_id = ?", employeeID).Delete(&attendanceDatamodel.AttendanceLog{}).Error; err != nil {
		return err
	}
	if err := db.Where("employee_id = ?", employeeID).Delete(&leaveDatamodel.DailyLeaveRecord{}).Error; err != nil {
		return err
	}
	return db.Where("employee_id = ?", employeeID).Delete(&leaveDatamodel.HourlyLeaveRecord{}).Error
}

func (r *MembershipRepository) DeleteEmployee(ctx context.Context, employeeID int64) error {
	result := r.conn(ctx).Where("id = ?", employeeID).Delete(&employeeDatamodel.Employee{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}

func (r *MembershipRepository) DeleteTeam(ctx context.Context, teamID int64) error {
	return r.conn(ctx).Where("id = ?", teamID).Delete(&teamDatamodel.Team{}).Error
}

func (r *MembershipRepository) IncrementMembers(ctx context.Context, teamID int64) error {
	return r.conn(ctx).
		Model(&teamDatamodel.Team{}).
		Where("id = ?", teamID).
		Update("total_members", gorm.Expr("total_members + ?", 1)).Error
}

func (r *MembershipRepository) DecrementMembers(ctx context.Context, teamID int64) (bool, error) {
	result := r.conn(ctx).
		Model(&teamDatamodel.Team{}).
		Where("id = ? AND total_members > 0", teamID).
		Update("total_members", gorm.Expr("total_members - ?", 1))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *MembershipRepository) CountMembers(ctx context.Context, teamID int64) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&employeeDatamodel.Employee{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}

func (r *MembershipRepository) SetMembers(ctx context.Context, teamID int64, total int64) error {
	return r.conn(ctx).
		Model(&teamDatamodel.Team{}).
		Where("id = ?", teamID).
		Update("total_members", total).Error
}
