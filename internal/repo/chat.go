package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dietcoach/backend/internal/models"
)

type QueryFilter struct {
	UserID    uint
	QueryType string
	Since     time.Time
}

func (r *GormRepo) CreateQuery(ctx context.Context, q *models.ChatbotQuery) error {
	return translate(r.DB.WithContext(ctx).Create(q).Error)
}

func (r *GormRepo) QueryByID(ctx context.Context, userID, id uint) (*models.ChatbotQuery, error) {
	var q models.ChatbotQuery
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&q).Error; err != nil {
		return nil, translate(err)
	}
	return &q, nil
}

func (r *GormRepo) ListQueries(ctx context.Context, f QueryFilter, offset, limit int) ([]models.ChatbotQuery, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.ChatbotQuery{}).Where("user_id = ?", f.UserID)
	if f.QueryType != "" {
		q = q.Where("query_type = ?", f.QueryType)
	}
	if !f.Since.IsZero() {
		q = q.Where("created_at >= ?", f.Since)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.ChatbotQuery
	if err := q.Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *GormRepo) DeleteQuery(ctx context.Context, userID, id uint) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.ChatbotQuery{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearQueries deletes the user's history, limited to queryType when set.
func (r *GormRepo) ClearQueries(ctx context.Context, userID uint, queryType string) (int64, error) {
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if queryType != "" {
		q = q.Where("query_type = ?", queryType)
	}
	res := q.Delete(&models.ChatbotQuery{})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) CountQueries(ctx context.Context, userID uint, since time.Time) (int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.ChatbotQuery{}).Where("user_id = ?", userID)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *GormRepo) QueryCountsByType(ctx context.Context, userID uint) (map[string]int64, error) {
	var rows []labelCount
	err := r.DB.WithContext(ctx).Model(&models.ChatbotQuery{}).
		Select("query_type AS label, COUNT(*) AS n").
		Where("user_id = ?", userID).
		Group("query_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toMap(rows), nil
}

func (r *GormRepo) LatestQuery(ctx context.Context, userID uint) (*models.ChatbotQuery, error) {
	var q models.ChatbotQuery
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		First(&q).Error
	if err != nil {
		return nil, translate(err)
	}
	return &q, nil
}
