package team

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	teamDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/team"
	"github.com/frahmantamala/hr-management/internal/membership"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*teamDatamodel.Team, error)
	GetByID(ctx context.Context, id int64) (*teamDatamodel.Team, error)
	Create(ctx context.Context, team *teamDatamodel.Team) error
	UpdateName(ctx context.Context, id int64, name string) error
}

// MembershipAPI is the part of membership.Manager that teams need.
type MembershipAPI interface {
	OnTeamDelete(ctx context.Context, teamID int64) (int64, error)
	Audit(ctx context.Context) (*membership.AuditReport, error)
	Reconcile(ctx context.Context, teamID int64) (*membership.TeamAudit, error)
}

type Service struct {
	repo       RepositoryAPI
	membership MembershipAPI
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, membership MembershipAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		membership: membership,
		logger:     logger,
	}
}

func (s *Service) ListTeams(ctx context.Context) ([]*Team, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list teams", "error", err)
		return nil, internal.NewInternalError("failed to list teams", err)
	}
	if len(rows) == 0 {
		return nil, internal.NewNoRecordsError("teams")
	}

	teams := make([]*Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, FromDataModel(row))
	}
	s.logger.Info("retrieved teams", "count", len(teams))
	return teams, nil
}

func (s *Service) GetTeam(ctx context.Context, id int64) (*Team, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load team", err)
	}
	if row == nil {
		return nil, internal.ErrTeamNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateTeam(ctx context.Context, dto CreateTeamDTO) (*Team, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}

	seed := 0
	if dto.TotalMembers != nil {
		seed = *dto.TotalMembers
	}

	row := ToDataModel(NewTeam(dto.Name, seed))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create team", "name", dto.Name, "error", err)
		return nil, internal.NewInternalError("failed to create team", err)
	}

	s.logger.Info("team created", "team_id", row.ID, "name", row.Name, "total_members", row.TotalMembers, "member_seed", row.MemberSeed)
	return FromDataModel(row), nil
}

func (s *Service) RenameTeam(ctx context.Context, id int64, dto UpdateTeamDTO) (*Team, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}
	if _, err := s.GetTeam(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateName(ctx, id, dto.Name); err != nil {
		return nil, internal.NewInternalError("failed to update team", err)
	}
	return s.GetTeam(ctx, id)
}

func (s *Service) DeleteTeam(ctx context.Context, id int64) (*DeleteTeamResponse, error) {
	detached, err := s.membership.OnTeamDelete(ctx, id)
	if err != nil {
		return nil, wrap("failed to delete team", err)
	}
	return &DeleteTeamResponse{ID: id, DetachedEmployees: detached}, nil
}

func (s *Service) Audit(ctx context.Context) (*AuditResponse, error) {
	report, err := s.membership.Audit(ctx)
	if err != nil {
		return nil, wrap("failed to audit teams", err)
	}
	return report, nil
}

func (s *Service) Reconcile(ctx context.Context, id int64) (*membership.TeamAudit, error) {
	result, err := s.membership.Reconcile(ctx, id)
	if err != nil {
		return nil, wrap("failed to reconcile team", err)
	}
	return result, nil
}

// wrap passes AppErrors through and turns anything else into a 500.
func wrap(message string, err error) error {
	if _, ok := internal.IsAppError(err); ok {
		return err
	}
	return internal.NewInternalError(message, err)
}
