package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/dietcoach/backend/internal/models"
	"github.com/dietcoach/backend/internal/repo"
	"github.com/dietcoach/backend/internal/util"
	"github.com/dietcoach/backend/pkg/events"
	"github.com/dietcoach/backend/pkg/logging"
)

const (
	defaultDurationWeeks = 4
	maxDurationWeeks     = 52
)

var weeklySchedules = map[string][]models.ExerciseItem{
	models.DifficultyBeginner: {
		{Name: "Push-ups", Reps: "10-15", Sets: 3},
		{Name: "Squats", Reps: "15-20", Sets: 3},
		{Name: "Plank", Duration: "30 sec", Sets: 3},
		{Name: "Walking", Duration: "20 min", Sets: 1},
	},
	models.DifficultyIntermediate: {
		{Name: "Push-ups", Reps: "20-25", Sets: 4},
		{Name: "Squats", Reps: "25-30", Sets: 4},
		{Name: "Burpees", Reps: "10-15", Sets: 3},
		{Name: "Running", Duration: "25 min", Sets: 1},
	},
	models.DifficultyAdvanced: {
		{Name: "Push-ups", Reps: "30-40", Sets: 5},
		{Name: "Jump Squats", Reps: "20-25", Sets: 4},
		{Name: "Burpees", Reps: "20-25", Sets: 4},
		{Name: "HIIT Training", Duration: "30 min", Sets: 1},
	},
}

type ExerciseService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// ExerciseInput is a generation request. Weight is in kg, height in cm.
type ExerciseInput struct {
	Weight          *float64
	Height          *float64
	Goal            string
	DifficultyLevel string
	DurationWeeks   *int
}

type ExerciseUpdate struct {
	Goal            *string
	DifficultyLevel *string
	DurationWeeks   *int
	Plan            *models.ExerciseDocument
}

func checkDifficulty(level string) error {
	if !models.ValidDifficulty(level) {
		return invalid("Invalid difficulty level")
	}
	return nil
}

func checkDurationWeeks(weeks int) error {
	if weeks < 1 || weeks > maxDurationWeeks {
		return invalid(fmt.Sprintf("duration_weeks must be between 1 and %d", maxDurationWeeks))
	}
	return nil
}

func (in *ExerciseInput) validate() error {
	switch {
	case in.Weight == nil:
		return invalid("Missing required field: weight")
	case in.Height == nil:
		return invalid("Missing required field: height")
	case strings.TrimSpace(in.Goal) == "":
		return invalid("Missing required field: goal")
	case strings.TrimSpace(in.DifficultyLevel) == "":
		return invalid("Missing required field: difficulty_level")
	}
	if *in.Weight <= 0 || *in.Height <= 0 {
		return invalid("Weight and height must be positive")
	}
	if err := maxChars("goal", strings.TrimSpace(in.Goal), maxLabelLen); err != nil {
		return err
	}
	if err := checkDifficulty(strings.TrimSpace(in.DifficultyLevel)); err != nil {
		return err
	}
	if in.DurationWeeks != nil {
		return checkDurationWeeks(*in.DurationWeeks)
	}
	return nil
}

func (u ExerciseUpdate) validate() error {
	if u.Goal != nil {
		if err := maxChars("goal", *u.Goal, maxLabelLen); err != nil {
			return err
		}
	}
	if u.DifficultyLevel != nil {
		if err := checkDifficulty(*u.DifficultyLevel); err != nil {
			return err
		}
	}
	if u.DurationWeeks != nil {
		return checkDurationWeeks(*u.DurationWeeks)
	}
	return nil
}

// bmi rounds to two decimals.
func bmi(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*100) / 100
}

func buildExercisePlan(weight, height float64, goal, level string) models.ExerciseDocument {
	return models.ExerciseDocument{
		Goal:           goal,
		Difficulty:     level,
		BMI:            bmi(weight, height),
		WeeklySchedule: slices.Clone(weeklySchedules[level]),
	}
}

func (s *ExerciseService) Generate(ctx context.Context, userID uint, in ExerciseInput) (*models.ExercisePlan, error) {
	l := logging.FromContext(ctx).With("svc", "exercise.generate", "user_id", userID)

	if err := in.validate(); err != nil {
		return nil, err
	}
	goal := strings.TrimSpace(in.Goal)
	level := strings.TrimSpace(in.DifficultyLevel)
	weeks := defaultDurationWeeks
	if in.DurationWeeks != nil {
		weeks = *in.DurationWeeks
	}

	plan := &models.ExercisePlan{
		UserID:          userID,
		Plan:            buildExercisePlan(*in.Weight, *in.Height, goal, level),
		Goal:            goal,
		DifficultyLevel: level,
		DurationWeeks:   weeks,
	}
	if err := s.Repo.CreateExercisePlan(ctx, plan); err != nil {
		l.Error("exercise_plan_save_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("save exercise plan: %w", err)
	}

	l.Info("exercise_plan_generated", "plan_id", plan.ID)
	publish(ctx, s.Events, events.TopicExercise, events.Event{Type: "exercise_plan_generated", UserID: userID, EntityID: plan.ID})
	return plan, nil
}

func (s *ExerciseService) List(ctx context.Context, userID uint, page, perPage int) (*Paged[models.ExercisePlan], error) {
	p := util.NewPage(page, perPage, 10)
	plans, total, err := s.Repo.ListExercisePlans(ctx, userID, p.Offset(), p.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list exercise plans: %w", err)
	}
	return &Paged[models.ExercisePlan]{Items: plans, Total: total, Page: p.Page, PerPage: p.PerPage, Pages: p.Pages(total)}, nil
}

func (s *ExerciseService) Get(ctx context.Context, userID, id uint) (*models.ExercisePlan, error) {
	plan, err := s.Repo.ExercisePlanByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("Exercise plan not found")
		}
		return nil, fmt.Errorf("load exercise plan: %w", err)
	}
	return plan, nil
}

func (s *ExerciseService) Update(ctx context.Context, userID, id uint, upd ExerciseUpdate) (*models.ExercisePlan, error) {
	if err := upd.validate(); err != nil {
		return nil, err
	}

	var plan *models.ExercisePlan
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		plan, err = tx.ExercisePlanByID(ctx, userID, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("Exercise plan not found")
			}
			return err
		}
		if upd.Goal != nil {
			plan.Goal = *upd.Goal
		}
		if upd.DifficultyLevel != nil {
			plan.DifficultyLevel = *upd.DifficultyLevel
		}
		if upd.DurationWeeks != nil {
			plan.DurationWeeks = *upd.DurationWeeks
		}
		if upd.Plan != nil {
			plan.Plan = *upd.Plan
		}
		return tx.SaveExercisePlan(ctx, plan)
	})
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, fmt.Errorf("update exercise plan: %w", err)
	}
	return plan, nil
}

func (s *ExerciseService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.Repo.DeleteExercisePlan(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Exercise plan not found")
		}
		return fmt.Errorf("delete exercise plan: %w", err)
	}
	publish(ctx, s.Events, events.TopicExercise, events.Event{Type: "exercise_plan_deleted", UserID: userID, EntityID: id})
	return nil
}
