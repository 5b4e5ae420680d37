package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	leaveDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/hr-management/internal/database"
	"github.com/frahmantamala/hr-management/internal/leave"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.RepositoryAPI {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) CreateDaily(ctx context.Context, record *leaveDatamodel.DailyLeaveRecord) error {
	return translateCreateError(database.Conn(ctx, r.db).Omit(clause.Associations).Create(record).Error)
}

func (r *LeaveRepository) GetDailyInRange(ctx context.Context, start, end time.Time) ([]*leaveDatamodel.DailyLeaveRecord, error) {
	var records []*leaveDatamodel.DailyLeaveRecord
	err := database.Conn(ctx, r.db).
		Where("time_started >= ? AND time_end <= ?", datatypes.Date(start), datatypes.Date(end)).
		Order("time_started ASC").
		Find(&records).Error
	return records, err
}

func (r *LeaveRepository) CreateHourly(ctx context.Context, record *leaveDatamodel.HourlyLeaveRecord) error {
	return translateCreateError(database.Conn(ctx, r.db).Omit(clause.Associations).Create(record).Error)
}

func (r *LeaveRepository) GetHourlyInRange(ctx context.Context, start, end time.Time) ([]*leaveDatamodel.HourlyLeaveRecord, error) {
	var records []*leaveDatamodel.HourlyLeaveRecord
	err := database.Conn(ctx, r.db).
		Where("time_started >= ? AND time_end <= ?", start, end).
		Order("time_started ASC").
		Find(&records).Error
	return records, err
}

func (r *LeaveRepository) EmployeeExists(ctx context.Context, employeeID int64) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).
		Model(&employeeDatamodel.Employee{}).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

// translateCreateError maps a foreign key failure to the missing employee it
// means here.
func translateCreateError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return internal.ErrEmployeeNotFound
	}
	return err
}
