package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/database"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func tableFor(role internal.Role) (string, error) {
	switch role {
	case internal.RoleAdmin:
		return "admins", nil
	case internal.RoleEmployee:
		return "employees", nil
	default:
		return "", fmt.Errorf("unknown role %q", role)
	}
}

func (r *Repository) GetByUsername(ctx context.Context, role internal.Role, username string) (*auth.Subject, error) {
	return r.first(ctx, role, "username = ?", username)
}

func (r *Repository) GetByID(ctx context.Context, role internal.Role, id int64) (*auth.Subject, error) {
	return r.first(ctx, role, "id = ?", id)
}

func (r *Repository) first(ctx context.Context, role internal.Role, query string, arg interface{}) (*auth.Subject, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}

	var subject auth.Subject
	err = database.Conn(ctx, r.db).
		Table(table).
		Select("id", "username", "password_hash").
		Where(query, arg).
		Take(&subject).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subject, nil
}
