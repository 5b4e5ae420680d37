package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/admin"
	adminDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/admin"
	"github.com/frahmantamala/hr-management/internal/database"
	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) admin.RepositoryAPI {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*adminDatamodel.Admin, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*adminDatamodel.Admin, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *AdminRepository) first(ctx context.Context, query string, arg interface{}) (*adminDatamodel.Admin, error) {
	var a adminDatamodel.Admin
	err := database.Conn(ctx, r.db).Where(query, arg).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) Create(ctx context.Context, a *adminDatamodel.Admin) error {
	err := database.Conn(ctx, r.db).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrUsernameTaken
	}
	return err
}
