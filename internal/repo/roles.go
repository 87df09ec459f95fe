package repo

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/dietcoach/backend/internal/models"
)

var DefaultRoles = []models.Role{
	{RoleName: models.RoleUser, Description: "Regular user"},
	{RoleName: models.RoleAdmin, Description: "Administrator"},
	{RoleName: models.RoleTrainer, Description: "Fitness trainer"},
}

func (r *GormRepo) SeedRoles(ctx context.Context) error {
	for _, role := range DefaultRoles {
		if _, err := r.EnsureRole(ctx, role.RoleName, role.Description); err != nil {
			return err
		}
	}
	return nil
}

// EnsureRole inserts the role unless it exists and returns the stored row.
// Concurrent callers race on the unique index, never on a read-then-write.
func (r *GormRepo) EnsureRole(ctx context.Context, name, description string) (*models.Role, error) {
	role := models.Role{RoleName: name, Description: description}
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "role_name"}}, DoNothing: true}).
		Create(&role).Error
	if err != nil {
		return nil, translate(err)
	}
	return r.RoleByName(ctx, name)
}

func (r *GormRepo) RoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := r.DB.WithContext(ctx).Where("role_name = ?", name).First(&role).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *GormRepo) RoleByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := r.DB.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *GormRepo) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := r.DB.WithContext(ctx).Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
