package admin

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	adminDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/admin"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*adminDatamodel.Admin, error)
	GetByUsername(ctx context.Context, username string) (*adminDatamodel.Admin, error)
	Create(ctx context.Context, admin *adminDatamodel.Admin) error
}

type PasswordHasher interface {
	HashPassword(plaintext string) (string, error)
}

type Service struct {
	repo   RepositoryAPI
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, hasher: hasher, logger: logger}
}

func (s *Service) CreateAdmin(ctx context.Context, dto CreateAdminDTO) (*AdminResponse, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}

	existing, err := s.repo.GetByUsername(ctx, dto.Username)
	if err != nil {
		return nil, internal.NewInternalError("failed to check username", err)
	}
	if existing != nil {
		return nil, internal.ErrUsernameTaken
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	row := &adminDatamodel.Admin{Username: dto.Username, PasswordHash: hash}
	if err := s.repo.Create(ctx, row); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		return nil, internal.NewInternalError("failed to create admin", err)
	}

	s.logger.Info("admin created", "admin_id", row.ID, "username", row.Username)
	resp := FromDataModel(row).ToResponse()
	return &resp, nil
}

// EnsureAdmin creates the admin unless the username already exists. It
// reports whether a row was written.
func (s *Service) EnsureAdmin(ctx context.Context, dto CreateAdminDTO) (bool, error) {
	_, err := s.CreateAdmin(ctx, dto)
	if err == nil {
		return true, nil
	}
	if appErr, ok := internal.IsAppError(err); ok && appErr.Code == internal.ErrCodeUsernameTaken {
		return false, nil
	}
	return false, err
}

func (s *Service) GetAdmin(ctx context.Context, id int64) (*AdminResponse, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load admin", err)
	}
	if row == nil {
		return nil, internal.ErrAdminNotFound
	}
	resp := FromDataModel(row).ToResponse()
	return &resp, nil
}
