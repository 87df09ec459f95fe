package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dietcoach/backend/internal/service"
	"github.com/dietcoach/backend/internal/transport"
)

type CatalogHandler struct {
	Svc *service.CatalogService
}

func catalogQuery(c echo.Context, difficultyParam string) service.CatalogQuery {
	return service.CatalogQuery{
		Page:       parseIntDefault(c.QueryParam("page"), 1),
		PerPage:    parseIntDefault(c.QueryParam("per_page"), 0),
		Category:   c.QueryParam("category"),
		Difficulty: c.QueryParam(difficultyParam),
		Search:     c.QueryParam("search"),
	}
}

func workoutInput(req transport.WorkoutRequest) service.WorkoutInput {
	return service.WorkoutInput{
		Name:            req.WorkoutName,
		Description:     req.WorkoutDescription,
		Category:        req.Category,
		DifficultyLevel: req.DifficultyLevel,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		EquipmentNeeded: req.EquipmentNeeded,
		PhotoURL:        req.PhotoURL,
	}
}

func yogaInput(req transport.YogaRequest) service.YogaInput {
	return service.YogaInput{
		Name:            req.YogaName,
		Description:     req.YogaDescription,
		DifficultyLevel: req.DifficultyLevel,
		DurationMinutes: req.DurationMinutes,
		Benefits:        req.Benefits,
		PhotoURL:        req.PhotoURL,
	}
}

func (h *CatalogHandler) CreateWorkout(c echo.Context) error {
	var req transport.WorkoutRequest
	if err := bindJSON(c, &req, "CreateWorkout"); err != nil {
		return err
	}
	w, err := h.Svc.CreateWorkout(c.Request().Context(), workoutInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Workout created successfully",
		"workout": transport.WorkoutViewFrom(w),
	})
}

func (h *CatalogHandler) ListWorkouts(c echo.Context) error {
	res, err := h.Svc.ListWorkouts(c.Request().Context(), catalogQuery(c, "difficulty"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("workouts", res, transport.WorkoutViews))
}

func (h *CatalogHandler) GetWorkout(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	w, err := h.Svc.Workout(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.WorkoutViewFrom(w))
}

func (h *CatalogHandler) UpdateWorkout(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req transport.WorkoutRequest
	if err := bindJSON(c, &req, "UpdateWorkout"); err != nil {
		return err
	}
	w, err := h.Svc.UpdateWorkout(c.Request().Context(), id, workoutInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Workout updated successfully",
		"workout": transport.WorkoutViewFrom(w),
	})
}

func (h *CatalogHandler) DeleteWorkout(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteWorkout(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Workout deleted successfully"))
}

func (h *CatalogHandler) CreateYoga(c echo.Context) error {
	var req transport.YogaRequest
	if err := bindJSON(c, &req, "CreateYoga"); err != nil {
		return err
	}
	y, err := h.Svc.CreateYoga(c.Request().Context(), yogaInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Yoga pose created successfully",
		"yoga":    transport.YogaViewFrom(y),
	})
}

func (h *CatalogHandler) ListYoga(c echo.Context) error {
	res, err := h.Svc.ListYoga(c.Request().Context(), catalogQuery(c, "difficulty_level"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("yoga_poses", res, transport.YogaViews))
}

func (h *CatalogHandler) YogaByDifficulty(c echo.Context) error {
	level := c.Param("level")
	poses, err := h.Svc.YogaByDifficulty(c.Request().Context(), level)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"difficulty_level": level,
		"count":            len(poses),
		"yoga_poses":       transport.YogaViews(poses),
	})
}

func (h *CatalogHandler) GetYoga(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	y, err := h.Svc.Yoga(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.YogaViewFrom(y))
}

func (h *CatalogHandler) UpdateYoga(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req transport.YogaRequest
	if err := bindJSON(c, &req, "UpdateYoga"); err != nil {
		return err
	}
	y, err := h.Svc.UpdateYoga(c.Request().Context(), id, yogaInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Yoga pose updated successfully",
		"yoga":    transport.YogaViewFrom(y),
	})
}

func (h *CatalogHandler) DeleteYoga(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteYoga(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Yoga pose deleted successfully"))
}
