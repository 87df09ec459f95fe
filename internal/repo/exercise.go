package repo

import (
	"context"

	"github.com/dietcoach/backend/internal/models"
)

func (r *GormRepo) CreateExercisePlan(ctx context.Context, p *models.ExercisePlan) error {
	return translate(r.DB.WithContext(ctx).Create(p).Error)
}

// ExercisePlanByID only finds plans owned by userID.
func (r *GormRepo) ExercisePlanByID(ctx context.Context, userID, id uint) (*models.ExercisePlan, error) {
	var plan models.ExercisePlan
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&plan).Error; err != nil {
		return nil, translate(err)
	}
	return &plan, nil
}

func (r *GormRepo) LatestExercisePlan(ctx context.Context, userID uint) (*models.ExercisePlan, error) {
	var plan models.ExercisePlan
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		First(&plan).Error
	if err != nil {
		return nil, translate(err)
	}
	return &plan, nil
}

func (r *GormRepo) ListExercisePlans(ctx context.Context, userID uint, offset, limit int) ([]models.ExercisePlan, int64, error) {
	var (
		plans []models.ExercisePlan
		total int64
	)
	db := r.DB.WithContext(ctx)
	if err := db.Model(&models.ExercisePlan{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
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

func (r *GormRepo) SaveExercisePlan(ctx context.Context, p *models.ExercisePlan) error {
	err := r.DB.WithContext(ctx).Model(p).
		Select("exercise_plan", "goal", "difficulty_level", "duration_weeks").
		Updates(p).Error
	return translate(err)
}

func (r *GormRepo) DeleteExercisePlan(ctx context.Context, userID, id uint) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.ExercisePlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) CountExercisePlans(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.ExercisePlan{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
