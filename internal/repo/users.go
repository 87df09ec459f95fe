package repo

import (
	"context"
	"strings"

	"github.com/dietcoach/backend/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	if err := r.DB.WithContext(ctx).Omit("Role").Create(u).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *GormRepo) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Preload("Role").First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UsernameTaken ignores the row with id excludeID; pass 0 to check all rows.
func (r *GormRepo) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB.WithContext(ctx).Model(&models.User{}).Where("username = ?", username)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveUser writes the mutable columns of u.
func (r *GormRepo) SaveUser(ctx context.Context, u *models.User) error {
	err := r.DB.WithContext(ctx).Model(u).
		Select("username", "mobile_number", "password_hash", "role_id").
		Updates(u).Error
	return translate(err)
}

func (r *GormRepo) ListUsers(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	var (
		users []models.User
		total int64
	)
	db := r.DB.WithContext(ctx)
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("Role").
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SearchUsers matches q case-insensitively against username and email.
func (r *GormRepo) SearchUsers(ctx context.Context, q string, limit int) ([]models.User, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	var users []models.User
	err := r.DB.WithContext(ctx).Preload("Role").
		Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Order("id").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UsersByIDs keeps the order of ids and skips ids that no longer exist.
func (r *GormRepo) UsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []models.User
	if err := r.DB.WithContext(ctx).Preload("Role").Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	out := make([]models.User, 0, len(found))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *GormRepo) CountUsersWithRole(ctx context.Context, roleName string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.role_name = ?", roleName).
		Count(&count).Error
	return count, err
}

// DeleteUser removes the user together with their plans and chat history.
// Call it inside Transaction.
func (r *GormRepo) DeleteUser(ctx context.Context, id uint) error {
	db := r.DB.WithContext(ctx)
	for _, owned := range []any{&models.DietPlan{}, &models.ExercisePlan{}, &models.ChatbotQuery{}} {
		if err := db.Where("user_id = ?", id).Delete(owned).Error; err != nil {
			return err
		}
	}
	res := db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
