package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dietcoach/backend/internal/models"
	"github.com/dietcoach/backend/internal/repo"
	"github.com/dietcoach/backend/internal/util"
	"github.com/dietcoach/backend/pkg/events"
	"github.com/dietcoach/backend/pkg/genai"
	"github.com/dietcoach/backend/pkg/logging"
)

const (
	defaultDuration = "1_month"
	generatedBy     = "gemini-ai"
)

var dietRequiredFields = []string{"age", "gender", "weight", "height", "activity_level", "goal", "diet_type"}

type DietService struct {
	Repo      *repo.GormRepo
	AI        genai.Generator
	Events    events.Publisher
	AITimeout time.Duration
}

// DietRequest is the user's profile as posted. It is stored verbatim as
// user_info in the plan document.
type DietRequest map[string]any

type PlanUpdate struct {
	Goal     *string
	DietType *string
	Duration *string
	Plan     *models.PlanDocument
}

type DietStats struct {
	TotalPlans int64
	Goals      map[string]int64
	DietTypes  map[string]int64
}

func (r DietRequest) str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

func (r DietRequest) validate() error {
	for _, key := range dietRequiredFields {
		if r.str(key) == "" {
			return invalid("Missing required field: " + key)
		}
	}
	for _, key := range []string{"goal", "diet_type", "duration"} {
		if err := maxChars(key, r.str(key), maxLabelLen); err != nil {
			return err
		}
	}
	return nil
}

func (u PlanUpdate) validate() error {
	labels := []struct {
		name  string
		value *string
	}{
		{"goal", u.Goal},
		{"diet_type", u.DietType},
		{"duration", u.Duration},
	}
	for _, l := range labels {
		if l.value == nil {
			continue
		}
		if err := maxChars(l.name, *l.value, maxLabelLen); err != nil {
			return err
		}
	}
	return nil
}

func dietPrompt(r DietRequest) string {
	conditions := "[]"
	if v, ok := r["health_conditions"]; ok && v != nil {
		conditions = fmt.Sprint(v)
	}

	var b strings.Builder
	b.WriteString("Create a detailed diet plan for:\n")
	fmt.Fprintf(&b, "Age: %s\n", r.str("age"))
	fmt.Fprintf(&b, "Gender: %s\n", r.str("gender"))
	fmt.Fprintf(&b, "Weight: %s kg\n", r.str("weight"))
	fmt.Fprintf(&b, "Height: %s cm\n", r.str("height"))
	fmt.Fprintf(&b, "Activity Level: %s\n", r.str("activity_level"))
	fmt.Fprintf(&b, "Goal: %s\n", r.str("goal"))
	fmt.Fprintf(&b, "Diet Type: %s\n", r.str("diet_type"))
	fmt.Fprintf(&b, "Health Conditions: %s\n\n", conditions)
	b.WriteString("Provide a complete daily meal plan with breakfast, lunch, snack, and dinner.\n")
	b.WriteString("Include calorie counts and nutritional information.\n")
	return b.String()
}

// generate calls the AI under the configured timeout. The real cause is
// logged; callers only see ErrUpstream.
func generate(ctx context.Context, ai genai.Generator, timeout time.Duration, prompt, op string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	text, err := ai.Generate(ctx, prompt)
	if err != nil {
		logging.FromContext(ctx).Error("ai_generate_failed", "op", op, "status", 502, "error", err)
		return "", upstream("AI service unavailable")
	}
	return text, nil
}

func (s *DietService) Generate(ctx context.Context, userID uint, req DietRequest) (*models.DietPlan, error) {
	l := logging.FromContext(ctx).With("svc", "diet.generate", "user_id", userID)

	if err := req.validate(); err != nil {
		return nil, err
	}

	mealPlan, err := generate(ctx, s.AI, s.AITimeout, dietPrompt(req), "diet_plan")
	if err != nil {
		return nil, err
	}

	duration := req.str("duration")
	if duration == "" {
		duration = defaultDuration
	}
	plan := &models.DietPlan{
		UserID:   userID,
		Goal:     req.str("goal"),
		DietType: req.str("diet_type"),
		Duration: duration,
		Plan: models.PlanDocument{
			UserInfo:    req,
			MealPlan:    mealPlan,
			GeneratedBy: generatedBy,
		},
	}
	if err := s.Repo.CreatePlan(ctx, plan); err != nil {
		l.Error("diet_plan_save_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("save plan: %w", err)
	}

	l.Info("diet_plan_generated", "plan_id", plan.ID)
	publish(ctx, s.Events, events.TopicDiet, events.Event{Type: "diet_plan_generated", UserID: userID, EntityID: plan.ID})
	return plan, nil
}

func (s *DietService) List(ctx context.Context, userID uint, page, perPage int) (*Paged[models.DietPlan], error) {
	p := util.NewPage(page, perPage, 10)
	plans, total, err := s.Repo.ListPlans(ctx, userID, p.Offset(), p.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return &Paged[models.DietPlan]{Items: plans, Total: total, Page: p.Page, PerPage: p.PerPage, Pages: p.Pages(total)}, nil
}

func (s *DietService) Get(ctx context.Context, userID, id uint) (*models.DietPlan, error) {
	plan, err := s.Repo.PlanByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("Diet plan not found")
		}
		return nil, fmt.Errorf("load plan: %w", err)
	}
	return plan, nil
}

func (s *DietService) Latest(ctx context.Context, userID uint) (*models.DietPlan, error) {
	plan, err := s.Repo.LatestPlan(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("No diet plans found")
		}
		return nil, fmt.Errorf("load plan: %w", err)
	}
	return plan, nil
}

func (s *DietService) Update(ctx context.Context, userID, id uint, upd PlanUpdate) (*models.DietPlan, error) {
	if err := upd.validate(); err != nil {
		return nil, err
	}

	var plan *models.DietPlan
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		plan, err = tx.PlanByID(ctx, userID, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("Diet plan not found")
			}
			return err
		}
		if upd.Goal != nil {
			plan.Goal = *upd.Goal
		}
		if upd.DietType != nil {
			plan.DietType = *upd.DietType
		}
		if upd.Duration != nil {
			plan.Duration = *upd.Duration
		}
		if upd.Plan != nil {
			plan.Plan = *upd.Plan
		}
		return tx.SavePlan(ctx, plan)
	})
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, fmt.Errorf("update plan: %w", err)
	}
	return plan, nil
}

func (s *DietService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.Repo.DeletePlan(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Diet plan not found")
		}
		return fmt.Errorf("delete plan: %w", err)
	}
	publish(ctx, s.Events, events.TopicDiet, events.Event{Type: "diet_plan_deleted", UserID: userID, EntityID: id})
	return nil
}

func (s *DietService) Statistics(ctx context.Context, userID uint) (*DietStats, error) {
	total, err := s.Repo.CountPlans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count plans: %w", err)
	}
	goals, err := s.Repo.PlanCountsByGoal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count goals: %w", err)
	}
	types, err := s.Repo.PlanCountsByDietType(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count diet types: %w", err)
	}
	return &DietStats{TotalPlans: total, Goals: goals, DietTypes: types}, nil
}
