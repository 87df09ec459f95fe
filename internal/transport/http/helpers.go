package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dietcoach/backend/internal/service"
	"github.com/dietcoach/backend/pkg/logging"
)

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, service.NewError(service.ErrValidation, "Invalid id")
	}
	return uint(id), nil
}

func bindJSON(c echo.Context, dst any, handler string) error {
	if err := c.Bind(dst); err != nil {
		logging.FromContext(c.Request().Context()).Warn("bind_failed",
			"handler", handler, "status", 400, "reason", "bad_json", "error", err)
		return errBadJSON
	}
	return nil
}

func message(msg string) map[string]any {
	return map[string]any{"message": msg}
}
