package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dietcoach/backend/internal/models"
	"github.com/dietcoach/backend/internal/repo"
	"github.com/dietcoach/backend/internal/util"
	"github.com/dietcoach/backend/pkg/logging"
)

const (
	defaultWorkoutCategory = "strength"
	maxCatalogNameLen      = 100
	maxPhotoURLLen         = 500
)

// CatalogService manages the shared workout and yoga catalogs. Writes are
// admin only; the router enforces that.
type CatalogService struct {
	Repo *repo.GormRepo
}

type CatalogQuery struct {
	Page       int
	PerPage    int
	Category   string
	Difficulty string
	Search     string
}

// WorkoutInput holds optional fields; nil means unset on create and
// unchanged on update.
type WorkoutInput struct {
	Name            *string
	Description     *string
	Category        *string
	DifficultyLevel *string
	DurationMinutes *int
	CaloriesBurned  *int
	EquipmentNeeded *string
	PhotoURL        *string
}

type YogaInput struct {
	Name            *string
	Description     *string
	DifficultyLevel *string
	DurationMinutes *int
	Benefits        *string
	PhotoURL        *string
}

func checkCatalogName(name *string, msg string) error {
	if name == nil {
		return nil
	}
	if strings.TrimSpace(*name) == "" {
		return invalid(msg)
	}
	return maxChars("Name", strings.TrimSpace(*name), maxCatalogNameLen)
}

func checkCommon(level *string, minutes *int, photo *string) error {
	if level != nil {
		if err := checkDifficulty(*level); err != nil {
			return err
		}
	}
	if minutes != nil && *minutes < 0 {
		return invalid("duration_minutes cannot be negative")
	}
	if photo != nil {
		if err := maxChars("photo_url", *photo, maxPhotoURLLen); err != nil {
			return err
		}
	}
	return nil
}

func (in WorkoutInput) validate() error {
	if err := checkCatalogName(in.Name, "Workout name is required"); err != nil {
		return err
	}
	if in.Category != nil {
		if err := maxChars("category", *in.Category, maxLabelLen); err != nil {
			return err
		}
	}
	if in.CaloriesBurned != nil && *in.CaloriesBurned < 0 {
		return invalid("calories_burned cannot be negative")
	}
	return checkCommon(in.DifficultyLevel, in.DurationMinutes, in.PhotoURL)
}

func (in YogaInput) validate() error {
	if err := checkCatalogName(in.Name, "Yoga name is required"); err != nil {
		return err
	}
	return checkCommon(in.DifficultyLevel, in.DurationMinutes, in.PhotoURL)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// setPhoto stores an empty URL as NULL so the unique index ignores it.
func setPhoto(dst **string, v *string) {
	if v == nil {
		return
	}
	if u := strings.TrimSpace(*v); u != "" {
		*dst = &u
		return
	}
	*dst = nil
}

func (in WorkoutInput) apply(w *models.Workout) {
	setString(&w.WorkoutName, in.Name)
	setString(&w.Description, in.Description)
	setString(&w.Category, in.Category)
	setString(&w.DifficultyLevel, in.DifficultyLevel)
	setInt(&w.DurationMinutes, in.DurationMinutes)
	setInt(&w.CaloriesBurned, in.CaloriesBurned)
	setString(&w.EquipmentNeeded, in.EquipmentNeeded)
	setPhoto(&w.PhotoURL, in.PhotoURL)
}

func (in YogaInput) apply(y *models.Yoga) {
	setString(&y.YogaName, in.Name)
	setString(&y.Description, in.Description)
	setString(&y.DifficultyLevel, in.DifficultyLevel)
	setInt(&y.DurationMinutes, in.DurationMinutes)
	setString(&y.Benefits, in.Benefits)
	setPhoto(&y.PhotoURL, in.PhotoURL)
}

func catalogErr(err error, op string) error {
	var se *Error
	switch {
	case errors.As(err, &se):
		return se
	case errors.Is(err, repo.ErrDuplicate):
		return conflict("Photo URL already in use")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (s *CatalogService) CreateWorkout(ctx context.Context, in WorkoutInput) (*models.Workout, error) {
	if in.Name == nil {
		return nil, invalid("Workout name is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	w := &models.Workout{Category: defaultWorkoutCategory, DifficultyLevel: models.DifficultyBeginner}
	in.apply(w)
	if err := s.Repo.CreateWorkout(ctx, w); err != nil {
		return nil, catalogErr(err, "create workout")
	}
	logging.FromContext(ctx).Info("workout_created", "workout_id", w.ID)
	return w, nil
}

func (s *CatalogService) ListWorkouts(ctx context.Context, q CatalogQuery) (*Paged[models.Workout], error) {
	p := util.NewPage(q.Page, q.PerPage, 10)
	f := repo.CatalogFilter{Category: q.Category, Difficulty: q.Difficulty, Search: q.Search}
	items, total, err := s.Repo.ListWorkouts(ctx, f, p.Offset(), p.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return &Paged[models.Workout]{Items: items, Total: total, Page: p.Page, PerPage: p.PerPage, Pages: p.Pages(total)}, nil
}

func (s *CatalogService) Workout(ctx context.Context, id uint) (*models.Workout, error) {
	w, err := s.Repo.WorkoutByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("Workout not found")
		}
		return nil, fmt.Errorf("load workout: %w", err)
	}
	return w, nil
}

func (s *CatalogService) UpdateWorkout(ctx context.Context, id uint, in WorkoutInput) (*models.Workout, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var w *models.Workout
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		if w, err = tx.WorkoutByID(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("Workout not found")
			}
			return err
		}
		in.apply(w)
		return tx.SaveWorkout(ctx, w)
	})
	if err != nil {
		return nil, catalogErr(err, "update workout")
	}
	return w, nil
}

func (s *CatalogService) DeleteWorkout(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteWorkout(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Workout not found")
		}
		return fmt.Errorf("delete workout: %w", err)
	}
	logging.FromContext(ctx).Info("workout_deleted", "workout_id", id)
	return nil
}

func (s *CatalogService) CreateYoga(ctx context.Context, in YogaInput) (*models.Yoga, error) {
	if in.Name == nil {
		return nil, invalid("Yoga name is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	y := &models.Yoga{DifficultyLevel: models.DifficultyBeginner}
	in.apply(y)
	if err := s.Repo.CreateYoga(ctx, y); err != nil {
		return nil, catalogErr(err, "create yoga pose")
	}
	logging.FromContext(ctx).Info("yoga_created", "yoga_id", y.ID)
	return y, nil
}

func (s *CatalogService) ListYoga(ctx context.Context, q CatalogQuery) (*Paged[models.Yoga], error) {
	p := util.NewPage(q.Page, q.PerPage, 10)
	f := repo.CatalogFilter{Difficulty: q.Difficulty, Search: q.Search}
	items, total, err := s.Repo.ListYoga(ctx, f, p.Offset(), p.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list yoga poses: %w", err)
	}
	return &Paged[models.Yoga]{Items: items, Total: total, Page: p.Page, PerPage: p.PerPage, Pages: p.Pages(total)}, nil
}

func (s *CatalogService) YogaByDifficulty(ctx context.Context, level string) ([]models.Yoga, error) {
	if err := checkDifficulty(level); err != nil {
		return nil, err
	}
	poses, err := s.Repo.YogaByDifficulty(ctx, level)
	if err != nil {
		return nil, fmt.Errorf("yoga by difficulty: %w", err)
	}
	return poses, nil
}

func (s *CatalogService) Yoga(ctx context.Context, id uint) (*models.Yoga, error) {
	y, err := s.Repo.YogaByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("Yoga pose not found")
		}
		return nil, fmt.Errorf("load yoga pose: %w", err)
	}
	return y, nil
}

func (s *CatalogService) UpdateYoga(ctx context.Context, id uint, in YogaInput) (*models.Yoga, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var y *models.Yoga
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		if y, err = tx.YogaByID(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("Yoga pose not found")
			}
			return err
		}
		in.apply(y)
		return tx.SaveYoga(ctx, y)
	})
	if err != nil {
		return nil, catalogErr(err, "update yoga pose")
	}
	return y, nil
}

func (s *CatalogService) DeleteYoga(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteYoga(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Yoga pose not found")
		}
		return fmt.Errorf("delete yoga pose: %w", err)
	}
	logging.FromContext(ctx).Info("yoga_deleted", "yoga_id", id)
	return nil
}
