package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/attendance"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.RepositoryAPI {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(ctx context.Context, log *attendanceDatamodel.AttendanceLog) error {
	err := database.Conn(ctx, r.db).Omit(clause.Associations).Create(log).Error
	// the employee can be deleted between the existence check and the insert
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return internal.ErrEmployeeNotFound
	}
	return err
}

func (r *AttendanceRepository) GetInRange(ctx context.Context, start, end time.Time) ([]*attendanceDatamodel.AttendanceLog, error) {
	var logs []*attendanceDatamodel.AttendanceLog
	err := database.Conn(ctx, r.db).
		Where("time_entry >= ? AND time_leave <= ?", start, end).
		Order("time_entry ASC").
		Find(&logs).Error
	return logs, err
}

func (r *AttendanceRepository) GetByEmployee(ctx context.Context, employeeID int64) ([]*attendanceDatamodel.AttendanceLog, error) {
	var logs []*attendanceDatamodel.AttendanceLog
	err := database.Conn(ctx, r.db).
		Where("employee_id = ?", employeeID).
		Order("time_entry ASC").
		Find(&logs).Error
	return logs, err
}

func (r *AttendanceRepository) EmployeeExists(ctx context.Context, employeeID int64) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).
		Model(&employeeDatamodel.Employee{}).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
