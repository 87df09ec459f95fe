package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dietcoach/backend/internal/service"
	"github.com/dietcoach/backend/internal/transport"
)

type UserHandler struct {
	Svc *service.UserService
}

func (h *UserHandler) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	perPage := parseIntDefault(c.QueryParam("per_page"), 0)

	res, err := h.Svc.List(c.Request().Context(), page, perPage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("users", res, transport.UserViews))
}

func (h *UserHandler) Search(c echo.Context) error {
	users, err := h.Svc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"results": transport.UserSummaries(users)})
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	u, err := h.Svc.Get(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.UserViewFrom(u))
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req transport.UserUpdateRequest
	if err := bindJSON(c, &req, "UpdateUser"); err != nil {
		return err
	}

	u, err := h.Svc.Update(c.Request().Context(), currentUser(c), id, service.UserUpdate{
		Username: req.Username,
		Mobile:   req.MobileNumber,
		Password: req.Password,
		RoleID:   req.RoleID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    transport.UserViewFrom(u),
	})
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("User deleted successfully"))
}

func (h *UserHandler) Stats(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	stats, err := h.Svc.Stats(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return err
	}

	var latestPlan, latestExercise any
	if p := stats.LatestDietPlan; p != nil {
		latestPlan = map[string]any{
			"id":         p.ID,
			"goal":       p.Goal,
			"created_at": p.CreatedAt,
		}
	}
	if p := stats.LatestExercisePlan; p != nil {
		latestExercise = map[string]any{
			"id":         p.ID,
			"goal":       p.Goal,
			"created_at": p.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user": map[string]any{
			"id":       stats.User.ID,
			"username": stats.User.Username,
			"email":    stats.User.Email,
			"joined":   stats.User.CreatedAt,
		},
		"statistics": map[string]any{
			"total_diet_plans":      stats.TotalDietPlans,
			"total_exercise_plans":  stats.TotalExercisePlans,
			"total_chatbot_queries": stats.TotalChatbotQueries,
		},
		"latest_activity": map[string]any{
			"diet_plan":     latestPlan,
			"exercise_plan": latestExercise,
		},
	})
}
