package attendance

import "time"

type CreateAttendanceLogDTO struct {
	EmployeeID int64     `json:"employee_id" validate:"required,gt=0"`
	TimeEntry  time.Time `json:"time_entry" validate:"required"`
	TimeLeave  time.Time `json:"time_leave" validate:"required"`
}

type AttendanceLogsResponse struct {
	AttendanceLogs []*AttendanceLog `json:"attendance_logs"`
}
