package attendance

import (
	"time"

	attendanceDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/attendance"
)

type AttendanceLog struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	TimeEntry  time.Time `json:"time_entry"`
	TimeLeave  time.Time `json:"time_leave"`
}

func (a *AttendanceLog) Duration() time.Duration {
	return a.TimeLeave.Sub(a.TimeEntry)
}

func ToDataModel(a *AttendanceLog) *attendanceDatamodel.AttendanceLog {
	return &attendanceDatamodel.AttendanceLog{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		TimeEntry:  a.TimeEntry.UTC(),
		TimeLeave:  a.TimeLeave.UTC(),
	}
}

func FromDataModel(a *attendanceDatamodel.AttendanceLog) *AttendanceLog {
	return &AttendanceLog{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		TimeEntry:  a.TimeEntry.UTC(),
		TimeLeave:  a.TimeLeave.UTC(),
	}
}
