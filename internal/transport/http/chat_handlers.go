package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dietcoach/backend/internal/service"
	"github.com/dietcoach/backend/internal/transport"
)

type ChatHandler struct {
	Svc *service.ChatService
}

func (h *ChatHandler) Query(c echo.Context) error {
	var req transport.ChatRequest
	if err := bindJSON(c, &req, "ChatQuery"); err != nil {
		return err
	}

	q, err := h.Svc.Ask(c.Request().Context(), currentUser(c).ID, req.Question, req.QueryType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.QueryViewFrom(q))
}

func (h *ChatHandler) QuickAsk(c echo.Context) error {
	var req transport.ChatRequest
	if err := bindJSON(c, &req, "QuickAsk"); err != nil {
		return err
	}

	question, answer, err := h.Svc.QuickAsk(c.Request().Context(), req.Question)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"question": question,
		"answer":   answer,
		"saved":    false,
	})
}

func (h *ChatHandler) History(c echo.Context) error {
	res, err := h.Svc.History(c.Request().Context(), currentUser(c).ID, service.HistoryFilter{
		Page:      parseIntDefault(c.QueryParam("page"), 1),
		PerPage:   parseIntDefault(c.QueryParam("per_page"), 0),
		QueryType: c.QueryParam("query_type"),
		Days:      parseIntDefault(c.QueryParam("days"), 0),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Page("queries", res, transport.QueryViews))
}

func (h *ChatHandler) ClearHistory(c echo.Context) error {
	n, err := h.Svc.ClearHistory(c.Request().Context(), currentUser(c).ID, c.QueryParam("query_type"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Chat history cleared successfully",
		"deleted": n,
	})
}

func (h *ChatHandler) Statistics(c echo.Context) error {
	stats, err := h.Svc.Statistics(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}

	var latest any
	if q := stats.LatestQuery; q != nil {
		latest = map[string]any{
			"id":         q.ID,
			"question":   q.Question,
			"created_at": q.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"total_queries":   stats.TotalQueries,
		"queries_by_type": stats.QueriesByType,
		"today_queries":   stats.TodayQueries,
		"latest_query":    latest,
	})
}

func (h *ChatHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	q, err := h.Svc.Get(c.Request().Context(), currentUser(c).ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.QueryViewFrom(q))
}

func (h *ChatHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), currentUser(c).ID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Query deleted successfully"))
}
