package leave

import "time"

type CreateDailyLeaveDTO struct {
	EmployeeID  int64  `json:"employee_id" validate:"required,gt=0"`
	TimeStarted string `json:"time_started" validate:"required,datetime=2006-01-02"`
	TimeEnd     string `json:"time_end" validate:"required,datetime=2006-01-02"`
}

type CreateHourlyLeaveDTO struct {
	EmployeeID  int64     `json:"employee_id" validate:"required,gt=0"`
	TimeStarted time.Time `json:"time_started" validate:"required"`
	TimeEnd     time.Time `json:"time_end" validate:"required"`
}

type DailyLeaveRecordsResponse struct {
	DailyLeaveRecords []*DailyLeaveRecord `json:"daily_leave_records"`
}

type HourlyLeaveRecordsResponse struct {
	HourlyLeaveRecords []*HourlyLeaveRecord `json:"hourly_leave_records"`
}
