package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dietcoach/backend/internal/service"
	"github.com/dietcoach/backend/internal/transport"
	"github.com/dietcoach/backend/pkg/logging"
	"github.com/dietcoach/backend/pkg/tokens"
)

var errBadJSON = service.NewError(service.ErrValidation, "Invalid JSON body")

var kindStatus = []struct {
	kind   error
	status int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrUpstream, http.StatusBadGateway},
}

var tokenCodes = []struct {
	err  error
	code string
}{
	{tokens.ErrTokenMissing, "token_missing"},
	{tokens.ErrTokenInvalid, "token_invalid"},
	{tokens.ErrTokenExpired, "token_expired"},
	{tokens.ErrTokenRevoked, "token_revoked"},
}

// ErrorHandler renders every error as a JSON body with an "error" field.
// Unclassified errors are logged and answered with a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := renderError(c, err)
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("error_response_failed", "error", err)
	}
}

func renderError(c echo.Context, err error) (int, transport.ErrorResponse) {
	var se *service.Error
	if errors.As(err, &se) {
		for _, ks := range kindStatus {
			if errors.Is(se.Kind, ks.kind) {
				return ks.status, transport.ErrorResponse{Error: se.Msg, Message: se.Detail}
			}
		}
	}

	for _, tc := range tokenCodes {
		if errors.Is(err, tc.err) {
			return http.StatusUnauthorized, transport.ErrorResponse{Error: "Authentication failed", Code: tc.code}
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, transport.ErrorResponse{Error: msg}
	}

	logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", http.StatusInternalServerError, "error", err)
	return http.StatusInternalServerError, transport.ErrorResponse{Error: "Internal server error"}
}
