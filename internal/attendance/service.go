package attendance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	attendanceDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/attendance"
)

type RepositoryAPI interface {
	Create(ctx context.Context, log *attendanceDatamodel.AttendanceLog) error
	// GetInRange returns logs with time_entry >= start and time_leave <= end.
	GetInRange(ctx context.Context, start, end time.Time) ([]*attendanceDatamodel.AttendanceLog, error)
	GetByEmployee(ctx context.Context, employeeID int64) ([]*attendanceDatamodel.AttendanceLog, error)
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// CreateAttendanceLog stores a log for dto.EmployeeID. Employees may only
// log for themselves; admins may log for anyone.
func (s *Service) CreateAttendanceLog(ctx context.Context, principal *internal.Principal, dto CreateAttendanceLogDTO) (*AttendanceLog, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}
	if !principal.CanActFor(dto.EmployeeID) {
		return nil, internal.ErrForeignEmployee
	}
	if verr := validation.TimeRange("time_entry", "time_leave", dto.TimeEntry, dto.TimeLeave); verr != nil {
		return nil, verr
	}

	if err := s.ensureEmployee(ctx, dto.EmployeeID); err != nil {
		return nil, err
	}

	row := ToDataModel(&AttendanceLog{
		EmployeeID: dto.EmployeeID,
		TimeEntry:  dto.TimeEntry,
		TimeLeave:  dto.TimeLeave,
	})
	if err := s.repo.Create(ctx, row); err != nil {
		if errors.Is(err, internal.ErrEmployeeNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		s.logger.Error("failed to create attendance log", "employee_id", dto.EmployeeID, "error", err)
		return nil, internal.NewInternalError("failed to create attendance log", err)
	}

	s.logger.Info("attendance log created", "attendance_log_id", row.ID, "employee_id", row.EmployeeID)
	return FromDataModel(row), nil
}

func (s *Service) GetAttendanceInRange(ctx context.Context, start, end time.Time) ([]*AttendanceLog, error) {
	if verr := validation.TimeRange("start_date", "end_date", start, end); verr != nil {
		return nil, verr
	}

	rows, err := s.repo.GetInRange(ctx, start.UTC(), end.UTC())
	if err != nil {
		return nil, internal.NewInternalError("failed to query attendance logs", err)
	}
	return toLogs(rows)
}

func (s *Service) GetEmployeeAttendance(ctx context.Context, employeeID int64) ([]*AttendanceLog, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	rows, err := s.repo.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, internal.NewInternalError("failed to query attendance logs", err)
	}
	return toLogs(rows)
}

func (s *Service) ensureEmployee(ctx context.Context, employeeID int64) error {
	exists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		return internal.NewInternalError("failed to check employee", err)
	}
	if !exists {
		return internal.ErrEmployeeNotFound
	}
	return nil
}

func toLogs(rows []*attendanceDatamodel.AttendanceLog) ([]*AttendanceLog, error) {
	if len(rows) == 0 {
		return nil, internal.NewNoRecordsError("attendance logs")
	}
	logs := make([]*AttendanceLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, FromDataModel(row))
	}
	return logs, nil
}
