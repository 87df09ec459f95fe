package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/dietcoach/backend/internal/models"
)

// CatalogFilter narrows workout and yoga listings. Empty fields match everything.
type CatalogFilter struct {
	Category   string
	Difficulty string
	Search     string
}

func (f CatalogFilter) apply(q *gorm.DB, nameCol, descCol string) *gorm.DB {
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty_level = ?", f.Difficulty)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER("+nameCol+") LIKE ? OR LOWER("+descCol+") LIKE ?", pattern, pattern)
	}
	return q
}

// listCatalog counts q and returns one page of it ordered by name, then id.
func listCatalog[T any](q *gorm.DB, nameCol string, offset, limit int) ([]T, int64, error) {
	var (
		items []T
		total int64
	)
	q = q.Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order(nameCol).Order("id").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func deleteByID(db *gorm.DB, model any, id uint) error {
	res := db.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) CreateWorkout(ctx context.Context, w *models.Workout) error {
	return translate(r.DB.WithContext(ctx).Create(w).Error)
}

func (r *GormRepo) WorkoutByID(ctx context.Context, id uint) (*models.Workout, error) {
	var w models.Workout
	if err := r.DB.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (r *GormRepo) ListWorkouts(ctx context.Context, f CatalogFilter, offset, limit int) ([]models.Workout, int64, error) {
	db := r.DB.WithContext(ctx)
	q := f.apply(db.Model(&models.Workout{}), "workout_name", "workout_description")
	return listCatalog[models.Workout](q, "workout_name", offset, limit)
}

func (r *GormRepo) SaveWorkout(ctx context.Context, w *models.Workout) error {
	return translate(r.DB.WithContext(ctx).Save(w).Error)
}

func (r *GormRepo) DeleteWorkout(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &models.Workout{}, id)
}

func (r *GormRepo) CreateYoga(ctx context.Context, y *models.Yoga) error {
	return translate(r.DB.WithContext(ctx).Create(y).Error)
}

func (r *GormRepo) YogaByID(ctx context.Context, id uint) (*models.Yoga, error) {
	var y models.Yoga
	if err := r.DB.WithContext(ctx).First(&y, id).Error; err != nil {
		return nil, translate(err)
	}
	return &y, nil
}

// ListYoga ignores f.Category; poses have no category.
func (r *GormRepo) ListYoga(ctx context.Context, f CatalogFilter, offset, limit int) ([]models.Yoga, int64, error) {
	f.Category = ""
	db := r.DB.WithContext(ctx)
	q := f.apply(db.Model(&models.Yoga{}), "yoga_name", "yoga_description")
	return listCatalog[models.Yoga](q, "yoga_name", offset, limit)
}

func (r *GormRepo) YogaByDifficulty(ctx context.Context, level string) ([]models.Yoga, error) {
	var poses []models.Yoga
	err := r.DB.WithContext(ctx).Where("difficulty_level = ?", level).
		Order("yoga_name").Order("id").
		Find(&poses).Error
	if err != nil {
		return nil, err
	}
	return poses, nil
}

func (r *GormRepo) SaveYoga(ctx context.Context, y *models.Yoga) error {
	return translate(r.DB.WithContext(ctx).Save(y).Error)
}

func (r *GormRepo) DeleteYoga(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &models.Yoga{}, id)
}
