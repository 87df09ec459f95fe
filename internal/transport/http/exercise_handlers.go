package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dietcoach/backend/internal/service"
	"github.com/dietcoach/backend/internal/transport"
)

type ExerciseHandler struct {
	Svc *service.ExerciseService
}

func (h *ExerciseHandler) Generate(c echo.Context) error {
	var req transport.ExerciseRequest
	if err := bindJSON(c, &req, "GenerateExercise"); err != nil {
		return err
	}

	plan, err := h.Svc.Generate(c.Request().Context(), currentUser(c).ID, service.ExerciseInput{
		Weight:          req.Weight,
		Height:          req.Height,
		Goal:            req.Goal,
		DifficultyLevel: req.DifficultyLevel,
		DurationWeeks:   req.DurationWeeks,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Exercise plan generated",
		"plan":    transport.ExercisePlanViewFrom(plan),
	})
}

func (h *ExerciseHandler) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	perPage := parseIntDefault(c.QueryParam("per_page"), 0)

	res, err := h.Svc.List(c.Request().Context(), currentUser(c).ID, page, perPage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("plans", res, transport.ExercisePlanViews))
}

func (h *ExerciseHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	plan, err := h.Svc.Get(c.Request().Context(), currentUser(c).ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.ExercisePlanViewFrom(plan))
}

func (h *ExerciseHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req transport.ExerciseUpdateRequest
	if err := bindJSON(c, &req, "UpdateExercise"); err != nil {
		return err
	}

	plan, err := h.Svc.Update(c.Request().Context(), currentUser(c).ID, id, service.ExerciseUpdate{
		Goal:            req.Goal,
		DifficultyLevel: req.DifficultyLevel,
		DurationWeeks:   req.DurationWeeks,
		Plan:            req.ExercisePlan,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Plan updated successfully",
		"plan":    transport.ExercisePlanViewFrom(plan),
	})
}

func (h *ExerciseHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), currentUser(c).ID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Plan deleted successfully"))
}
