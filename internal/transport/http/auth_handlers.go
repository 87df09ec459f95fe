package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dietcoach/backend/internal/service"
	"github.com/dietcoach/backend/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := bindJSON(c, &req, "Register"); err != nil {
		return err
	}

	res, err := h.Svc.Register(c.Request().Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Mobile:   req.MobileNumber,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, transport.AuthResponse{
		Message:     "User registered successfully",
		User:        transport.UserSummaryFrom(res.User),
		AccessToken: res.Token,
		ExpiresAt:   res.ExpiresAt,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := bindJSON(c, &req, "Login"); err != nil {
		return err
	}

	res, err := h.Svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, transport.AuthResponse{
		Message:     "Login successful",
		User:        transport.UserSummaryFrom(res.User),
		AccessToken: res.Token,
		ExpiresAt:   res.ExpiresAt,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Svc.Logout(c.Request().Context(), currentClaims(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Logout successful"))
}

func (h *AuthHandler) GetProfile(c echo.Context) error {
	u, err := h.Svc.GetProfile(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.UserViewFrom(u))
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req transport.ProfileRequest
	if err := bindJSON(c, &req, "UpdateProfile"); err != nil {
		return err
	}

	u, err := h.Svc.UpdateProfile(c.Request().Context(), currentUser(c).ID, service.ProfileUpdate{
		Username: req.Username,
		Mobile:   req.MobileNumber,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    transport.UserViewFrom(u),
	})
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req transport.ChangePasswordRequest
	if err := bindJSON(c, &req, "ChangePassword"); err != nil {
		return err
	}

	if err := h.Svc.ChangePassword(c.Request().Context(), currentUser(c).ID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Password changed successfully"))
}

func (h *AuthHandler) Verify(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"valid": true,
		"user":  transport.UserSummaryFrom(currentUser(c)),
	})
}
