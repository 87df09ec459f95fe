package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dietcoach/backend/internal/models"
)

func validDietRequest() DietRequest {
	return DietRequest{
		"age":            30,
		"gender":         "female",
		"weight":         62.5,
		"height":         168,
		"activity_level": "moderate",
		"goal":           "weight_loss",
		"diet_type":      "vegetarian",
	}
}

func TestDietService_Generate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice").User

	plan, err := env.diet.Generate(ctx, user.ID, validDietRequest())
	require.NoError(t, err)
	assert.NotZero(t, plan.ID)
	assert.Equal(t, "weight_loss", plan.Goal)
	assert.Equal(t, "vegetarian", plan.DietType)
	assert.Equal(t, "1_month", plan.Duration)
	assert.Equal(t, "gemini-ai", plan.Plan.GeneratedBy)
	assert.Contains(t, plan.Plan.MealPlan, "lentils")

	prompt := env.lastPrompt()
	assert.Contains(t, prompt, "Weight: 62.5 kg")
	assert.Contains(t, prompt, "Diet Type: vegetarian")
	assert.Contains(t, prompt, "Health Conditions: []")

	stored, err := env.diet.Get(ctx, user.ID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.Plan.MealPlan, stored.Plan.MealPlan)
	assert.Equal(t, "female", stored.Plan.UserInfo["gender"])

	assert.Contains(t, env.pub.types(), "diet_plan_generated")
}

func TestDietService_Generate_MissingField(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice").User

	for _, key := range dietRequiredFields {
		req := validDietRequest()
		delete(req, key)

		_, err := env.diet.Generate(ctx, user.ID, req)
		require.Error(t, err, key)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "Missing required field: "+key, err.Error())
	}
}

func TestDietService_LabelLength(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice").User
	long := strings.Repeat("g", 51)

	for _, key := range []string{"goal", "diet_type", "duration"} {
		req := validDietRequest()
		req[key] = long

		_, err := env.diet.Generate(ctx, user.ID, req)
		require.Error(t, err, key)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, key+" must be at most 50 characters", err.Error())
	}

	plan, err := env.diet.Generate(ctx, user.ID, validDietRequest())
	require.NoError(t, err)

	_, err = env.diet.Update(ctx, user.ID, plan.ID, PlanUpdate{DietType: &long})
	assert.ErrorIs(t, err, ErrValidation)

	stored, err := env.diet.Get(ctx, user.ID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "vegetarian", stored.DietType)
}

func TestDietService_Generate_AIFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice").User
	env.failAI(errors.New("quota exceeded"))

	_, err := env.diet.Generate(ctx, user.ID, validDietRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, "AI service unavailable", err.Error())

	n, err := env.repo.CountPlans(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDietService_OwnerScopedCRUD(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice").User
	bob := env.register(t, "bob").User

	first, err := env.diet.Generate(ctx, alice.ID, validDietRequest())
	require.NoError(t, err)
	req := validDietRequest()
	req["goal"] = "muscle_gain"
	req["duration"] = "3_months"
	second, err := env.diet.Generate(ctx, alice.ID, req)
	require.NoError(t, err)

	_, err = env.diet.Get(ctx, bob.ID, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, env.diet.Delete(ctx, bob.ID, first.ID), ErrNotFound)
	_, err = env.diet.Update(ctx, bob.ID, first.ID, PlanUpdate{Goal: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	latest, err := env.diet.Latest(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, "3_months", latest.Duration)

	_, err = env.diet.Latest(ctx, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	page, err := env.diet.List(ctx, alice.ID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.Pages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, second.ID, page.Items[0].ID)

	updated, err := env.diet.Update(ctx, alice.ID, first.ID, PlanUpdate{
		DietType: strPtr("vegan"),
		Plan:     &models.PlanDocument{MealPlan: "custom"},
	})
	require.NoError(t, err)
	assert.Equal(t, "vegan", updated.DietType)
	assert.Equal(t, "weight_loss", updated.Goal)
	assert.Equal(t, "custom", updated.Plan.MealPlan)

	stats, err := env.diet.Statistics(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalPlans)
	assert.Equal(t, map[string]int64{"weight_loss": 1, "muscle_gain": 1}, stats.Goals)
	assert.Equal(t, map[string]int64{"vegan": 1, "vegetarian": 1}, stats.DietTypes)

	require.NoError(t, env.diet.Delete(ctx, alice.ID, first.ID))
	_, err = env.diet.Get(ctx, alice.ID, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
