package repo

import (
	"context"

	"github.com/dietcoach/backend/internal/models"
)

func (r *GormRepo) CreatePlan(ctx context.Context, p *models.DietPlan) error {
	return translate(r.DB.WithContext(ctx).Create(p).Error)
}

// PlanByID only finds plans owned by userID.
func (r *GormRepo) PlanByID(ctx context.Context, userID, id uint) (*models.DietPlan, error) {
	var plan models.DietPlan
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&plan).Error; err != nil {
		return nil, translate(err)
	}
	return &plan, nil
}

func (r *GormRepo) LatestPlan(ctx context.Context, userID uint) (*models.DietPlan, error) {
	var plan models.DietPlan
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		First(&plan).Error
	if err != nil {
		return nil, translate(err)
	}
	return &plan, nil
}

func (r *GormRepo) ListPlans(ctx context.Context, userID uint, offset, limit int) ([]models.DietPlan, int64, error) {
	var (
		plans []models.DietPlan
		total int64
	)
	db := r.DB.WithContext(ctx)
	if err := db.Model(&models.DietPlan{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&plans).Error; err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func (r *GormRepo) SavePlan(ctx context.Context, p *models.DietPlan) error {
	err := r.DB.WithContext(ctx).Model(p).
		Select("diet_plan", "goal", "diet_type", "duration").
		Updates(p).Error
	return translate(err)
}

func (r *GormRepo) DeletePlan(ctx context.Context, userID, id uint) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.DietPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) CountPlans(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.DietPlan{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *GormRepo) PlanCountsByGoal(ctx context.Context, userID uint) (map[string]int64, error) {
	return r.planCountsBy(ctx, userID, "goal")
}

func (r *GormRepo) PlanCountsByDietType(ctx context.Context, userID uint) (map[string]int64, error) {
	return r.planCountsBy(ctx, userID, "diet_type")
}

func (r *GormRepo) planCountsBy(ctx context.Context, userID uint, column string) (map[string]int64, error) {
	var rows []labelCount
	err := r.DB.WithContext(ctx).Model(&models.DietPlan{}).
		Select(column+" AS label, COUNT(*) AS n").
		Where("user_id = ?", userID).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toMap(rows), nil
}
