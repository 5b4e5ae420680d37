package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/hr-management/internal"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/database"
	"github.com/frahmantamala/hr-management/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetAll(ctx context.Context, skip, limit int) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := database.Conn(ctx, r.db).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *EmployeeRepository) GetByUsername(ctx context.Context, username string) (*employeeDatamodel.Employee, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *EmployeeRepository) first(ctx context.Context, query string, arg interface{}) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := database.Conn(ctx, r.db).Where(query, arg).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) UpdateProfile(ctx context.Context, id int64, fields map[string]interface{}) error {
	err := database.Conn(ctx, r.db).
		Model(&employeeDatamodel.Employee{}).
		Where("id = ?", id).
		Updates(fields).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrUsernameTaken
	}
	return err
}
