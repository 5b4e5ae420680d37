package employee

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context, skip, limit int) ([]*employeeDatamodel.Employee, error)
	GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error)
	GetByUsername(ctx context.Context, username string) (*employeeDatamodel.Employee, error)
	UpdateProfile(ctx context.Context, id int64, fields map[string]interface{}) error
}

// MembershipAPI is the part of membership.Manager that touches team counters.
type MembershipAPI interface {
	OnEmployeeCreate(ctx context.Context, employee *employeeDatamodel.Employee) error
	Assign(ctx context.Context, employeeID, newTeamID int64) (*employeeDatamodel.Employee, error)
	OnEmployeeDelete(ctx context.Context, employeeID int64) error
}

type PasswordHasher interface {
	HashPassword(plaintext string) (string, error)
}

type Service struct {
	repo       RepositoryAPI
	membership MembershipAPI
	hasher     PasswordHasher
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, membership MembershipAPI, hasher PasswordHasher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		membership: membership,
		hasher:     hasher,
		logger:     logger,
	}
}

func (s *Service) ListEmployees(ctx context.Context, query ListQuery) ([]EmployeeResponse, error) {
	if verr := validation.Struct(query); verr != nil {
		return nil, verr
	}

	rows, err := s.repo.GetAll(ctx, query.Skip, query.Limit)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}
	if len(rows) == 0 {
		return nil, internal.NewNoRecordsError("employees")
	}

	out := make([]EmployeeResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row).ToResponse())
	}
	return out, nil
}

func (s *Service) GetEmployee(ctx context.Context, id int64) (*EmployeeResponse, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := e.ToResponse()
	return &resp, nil
}

// CreateEmployee hashes the password, stores the employee and counts it
// against its team. It returns the new id.
func (s *Service) CreateEmployee(ctx context.Context, dto CreateEmployeeDTO) (int64, error) {
	if verr := validation.Struct(dto); verr != nil {
		return 0, verr
	}

	if err := s.ensureUsernameFree(ctx, dto.Username, 0); err != nil {
		return 0, err
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return 0, internal.NewInternalError("failed to hash password", err)
	}

	teamID := dto.TeamID
	row := ToDataModel(&Employee{
		TeamID:       &teamID,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Username:     dto.Username,
		PasswordHash: hash,
		NationalCode: dto.NationalCode,
		PhoneNumber:  dto.PhoneNumber,
		Address:      dto.Address,
	})

	if err := s.membership.OnEmployeeCreate(ctx, row); err != nil {
		s.logger.Warn("failed to create employee", "username", dto.Username, "team_id", dto.TeamID, "error", err)
		return 0, wrap("failed to create employee", err)
	}
	return row.ID, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, id int64, dto UpdateEmployeeDTO) (*EmployeeResponse, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	set := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}
	set("first_name", dto.FirstName)
	set("last_name", dto.LastName)
	set("national_code", dto.NationalCode)
	set("phone_number", dto.PhoneNumber)
	set("address", dto.Address)

	if dto.Username != nil {
		if err := s.ensureUsernameFree(ctx, *dto.Username, id); err != nil {
			return nil, err
		}
		fields["username"] = *dto.Username
	}
	if dto.Password != nil {
		hash, err := s.hasher.HashPassword(*dto.Password)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		fields["password_hash"] = hash
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateProfile(ctx, id, fields); err != nil {
			return nil, wrap("failed to update employee", err)
		}
		s.logger.Info("employee updated", "employee_id", id, "fields", len(fields))
	}
	return s.GetEmployee(ctx, id)
}

func (s *Service) AssignTeam(ctx context.Context, id int64, dto AssignTeamDTO) (*EmployeeResponse, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}

	row, err := s.membership.Assign(ctx, id, dto.TeamID)
	if err != nil {
		return nil, wrap("failed to assign team", err)
	}
	resp := FromDataModel(row).ToResponse()
	return &resp, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	if err := s.membership.OnEmployeeDelete(ctx, id); err != nil {
		return wrap("failed to delete employee", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*Employee, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load employee", err)
	}
	if row == nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return FromDataModel(row), nil
}

// ensureUsernameFree allows the username when it belongs to self.
func (s *Service) ensureUsernameFree(ctx context.Context, username string, self int64) error {
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return internal.NewInternalError("failed to check username", err)
	}
	if existing != nil && existing.ID != self {
		return internal.ErrUsernameTaken
	}
	return nil
}

func wrap(message string, err error) error {
	if _, ok := internal.IsAppError(err); ok {
		return err
	}
	return internal.NewInternalError(message, err)
}
