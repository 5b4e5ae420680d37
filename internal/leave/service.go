package leave

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	leaveDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/leave"
)

type RepositoryAPI interface {
	CreateDaily(ctx context.Context, record *leaveDatamodel.DailyLeaveRecord) error
	// GetDailyInRange matches time_started >= start AND time_end <= end, compared as dates.
	GetDailyInRange(ctx context.Context, start, end time.Time) ([]*leaveDatamodel.DailyLeaveRecord, error)
	CreateHourly(ctx context.Context, record *leaveDatamodel.HourlyLeaveRecord) error
	GetHourlyInRange(ctx context.Context, start, end time.Time) ([]*leaveDatamodel.HourlyLeaveRecord, error)
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

func (s *Service) CreateDailyLeave(ctx context.Context, principal *internal.Principal, dto CreateDailyLeaveDTO) (*DailyLeaveRecord, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}
	if !principal.CanActFor(dto.EmployeeID) {
		return nil, internal.ErrForeignEmployee
	}

	start, verr := validation.ParseDate("time_started", dto.TimeStarted)
	if verr != nil {
		return nil, verr
	}
	end, verr := validation.ParseDate("time_end", dto.TimeEnd)
	if verr != nil {
		return nil, verr
	}
	if verr := validation.TimeRange("time_started", "time_end", start, end); verr != nil {
		return nil, verr
	}

	if err := s.ensureEmployee(ctx, dto.EmployeeID); err != nil {
		return nil, err
	}

	row := dailyToDataModel(dto.EmployeeID, start, end)
	if err := s.repo.CreateDaily(ctx, row); err != nil {
		if errors.Is(err, internal.ErrEmployeeNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		s.logger.Error("failed to create daily leave record", "employee_id", dto.EmployeeID, "error", err)
		return nil, internal.NewInternalError("failed to create daily leave record", err)
	}

	s.logger.Info("daily leave recorded", "record_id", row.ID, "employee_id", row.EmployeeID)
	return dailyFromDataModel(row), nil
}

func (s *Service) GetDailyLeaveInRange(ctx context.Context, start, end time.Time) ([]*DailyLeaveRecord, error) {
	if verr := validation.TimeRange("start_date", "end_date", start, end); verr != nil {
		return nil, verr
	}

	rows, err := s.repo.GetDailyInRange(ctx, truncateDay(start), truncateDay(end))
	if err != nil {
		return nil, internal.NewInternalError("failed to query daily leave records", err)
	}
	if len(rows) == 0 {
		return nil, internal.NewNoRecordsError("daily leave records")
	}

	records := make([]*DailyLeaveRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, dailyFromDataModel(row))
	}
	return records, nil
}

func (s *Service) CreateHourlyLeave(ctx context.Context, principal *internal.Principal, dto CreateHourlyLeaveDTO) (*HourlyLeaveRecord, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}
	if !principal.CanActFor(dto.EmployeeID) {
		return nil, internal.ErrForeignEmployee
	}
	if verr := validation.TimeRange("time_started", "time_end", dto.TimeStarted, dto.TimeEnd); verr != nil {
		return nil, verr
	}

	if err := s.ensureEmployee(ctx, dto.EmployeeID); err != nil {
		return nil, err
	}

	row := &leaveDatamodel.HourlyLeaveRecord{
		EmployeeID:  dto.EmployeeID,
		TimeStarted: dto.TimeStarted.UTC(),
		TimeEnd:     dto.TimeEnd.UTC(),
	}
	if err := s.repo.CreateHourly(ctx, row); err != nil {
		if errors.Is(err, internal.ErrEmployeeNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		s.logger.Error("failed to create hourly leave record", "employee_id", dto.EmployeeID, "error", err)
		return nil, internal.NewInternalError("failed to create hourly leave record", err)
	}

	s.logger.Info("hourly leave recorded", "record_id", row.ID, "employee_id", row.EmployeeID)
	return hourlyFromDataModel(row), nil
}

func (s *Service) GetHourlyLeaveInRange(ctx context.Context, start, end time.Time) ([]*HourlyLeaveRecord, error) {
	if verr := validation.TimeRange("start_date", "end_date", start, end); verr != nil {
		return nil, verr
	}

	rows, err := s.repo.GetHourlyInRange(ctx, start.UTC(), end.UTC())
	if err != nil {
		return nil, internal.NewInternalError("failed to query hourly leave records", err)
	}
	if len(rows) == 0 {
		return nil, internal.NewNoRecordsError("hourly leave records")
	}

	records := make([]*HourlyLeaveRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, hourlyFromDataModel(row))
	}
	return records, nil
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

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
