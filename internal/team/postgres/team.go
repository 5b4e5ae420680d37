package postgres

import (
	"context"
	"errors"

	teamDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/team"
	"github.com/frahmantamala/hr-management/internal/database"
	"github.com/frahmantamala/hr-management/internal/team"
	"gorm.io/gorm"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) team.RepositoryAPI {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetAll(ctx context.Context) ([]*teamDatamodel.Team, error) {
	var teams []*teamDatamodel.Team
	err := database.Conn(ctx, r.db).Order("id ASC").Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*teamDatamodel.Team, error) {
	var t teamDatamodel.Team
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) Create(ctx context.Context, t *teamDatamodel.Team) error {
	return database.Conn(ctx, r.db).Create(t).Error
}

func (r *TeamRepository) UpdateName(ctx context.Context, id int64, name string) error {
	return database.Conn(ctx, r.db).
		Model(&teamDatamodel.Team{}).
		Where("id = ?", id).
		Update("name", name).Error
}
