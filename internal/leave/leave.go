package leave

import (
	"time"

	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	leaveDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/leave"
	"gorm.io/datatypes"
)

// DailyLeaveRecord covers whole days. Both bounds are YYYY-MM-DD and inclusive.
type DailyLeaveRecord struct {
	ID          int64  `json:"id"`
	EmployeeID  int64  `json:"employee_id"`
	TimeStarted string `json:"time_started"`
	TimeEnd     string `json:"time_end"`
}

// Days counts the calendar days covered, both bounds included.
func (d *DailyLeaveRecord) Days() int {
	start, err := time.Parse(validation.DateLayout, d.TimeStarted)
	if err != nil {
		return 0
	}
	end, err := time.Parse(validation.DateLayout, d.TimeEnd)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

type HourlyLeaveRecord struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employee_id"`
	TimeStarted time.Time `json:"time_started"`
	TimeEnd     time.Time `json:"time_end"`
}

func (h *HourlyLeaveRecord) Duration() time.Duration {
	return h.TimeEnd.Sub(h.TimeStarted)
}

func dailyFromDataModel(r *leaveDatamodel.DailyLeaveRecord) *DailyLeaveRecord {
	return &DailyLeaveRecord{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		TimeStarted: time.Time(r.TimeStarted).Format(validation.DateLayout),
		TimeEnd:     time.Time(r.TimeEnd).Format(validation.DateLayout),
	}
}

func dailyToDataModel(employeeID int64, start, end time.Time) *leaveDatamodel.DailyLeaveRecord {
	return &leaveDatamodel.DailyLeaveRecord{
		EmployeeID:  employeeID,
		TimeStarted: datatypes.Date(start),
		TimeEnd:     datatypes.Date(end),
	}
}

func hourlyFromDataModel(r *leaveDatamodel.HourlyLeaveRecord) *HourlyLeaveRecord {
	return &HourlyLeaveRecord{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		TimeStarted: r.TimeStarted.UTC(),
		TimeEnd:     r.TimeEnd.UTC(),
	}
}
