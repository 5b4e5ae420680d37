package leave

import (
	"time"

	"github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"gorm.io/datatypes"
)

// DailyLeaveRecord spans whole days; both ends are dates without a clock part.
type DailyLeaveRecord struct {
	ID          int64              `gorm:"primaryKey"`
	TimeStarted datatypes.Date     `gorm:"column:time_started;not null;index"`
	TimeEnd     datatypes.Date     `gorm:"column:time_end;not null"`
	EmployeeID  int64              `gorm:"column:employee_id;not null;index"`
	Employee    *employee.Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

func (DailyLeaveRecord) TableName() string {
	return "employee_daily_leave_records"
}

type HourlyLeaveRecord struct {
	ID          int64              `gorm:"primaryKey"`
	TimeStarted time.Time          `gorm:"column:time_started;not null;index"`
	TimeEnd     time.Time          `gorm:"column:time_end;not null"`
	EmployeeID  int64              `gorm:"column:employee_id;not null;index"`
	Employee    *employee.Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

func (HourlyLeaveRecord) TableName() string {
	return "employee_hourly_leave_records"
}
