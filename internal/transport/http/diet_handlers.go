package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dietcoach/backend/internal/service"
	"github.com/dietcoach/backend/internal/transport"
)

type DietHandler struct {
	Svc *service.DietService
}

func (h *DietHandler) Generate(c echo.Context) error {
	var req service.DietRequest
	if err := bindJSON(c, &req, "GenerateDiet"); err != nil {
		return err
	}

	plan, err := h.Svc.Generate(c.Request().Context(), currentUser(c).ID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":   "Diet plan generated successfully",
		"diet_plan": transport.PlanViewFrom(plan),
	})
}

func (h *DietHandler) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	perPage := parseIntDefault(c.QueryParam("per_page"), 0)

	res, err := h.Svc.List(c.Request().Context(), currentUser(c).ID, page, perPage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("diet_plans", res, transport.PlanViews))
}

func (h *DietHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	plan, err := h.Svc.Get(c.Request().Context(), currentUser(c).ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.PlanViewFrom(plan))
}

func (h *DietHandler) Latest(c echo.Context) error {
	plan, err := h.Svc.Latest(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.PlanViewFrom(plan))
}

func (h *DietHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req transport.PlanUpdateRequest
	if err := bindJSON(c, &req, "UpdateDiet"); err != nil {
		return err
	}

	plan, err := h.Svc.Update(c.Request().Context(), currentUser(c).ID, id, service.PlanUpdate{
		Goal:     req.Goal,
		DietType: req.DietType,
		Duration: req.Duration,
		Plan:     req.DietPlan,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":   "Diet plan updated successfully",
		"diet_plan": transport.PlanViewFrom(plan),
	})
}

func (h *DietHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), currentUser(c).ID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Diet plan deleted successfully"))
}

func (h *DietHandler) Statistics(c echo.Context) error {
	stats, err := h.Svc.Statistics(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"total_plans": stats.TotalPlans,
		"goals":       stats.Goals,
		"diet_types":  stats.DietTypes,
	})
}
