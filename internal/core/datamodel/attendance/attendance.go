package attendance

import (
	"time"

	"github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
)

type AttendanceLog struct {
	ID         int64              `gorm:"primaryKey"`
	TimeEntry  time.Time          `gorm:"column:time_entry;not null;index"`
	TimeLeave  time.Time          `gorm:"column:time_leave;not null"`
	EmployeeID int64              `gorm:"column:employee_id;not null;index"`
	Employee   *employee.Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

func (AttendanceLog) TableName() string {
	return "employee_attendance_logs"
}
