package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/baseapi/user-api/internal/core/ports"
)

// AuthHandler handles the login route.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates email/password credentials and returns a JWT token.
//
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      423   {object}  map[string]any
// @Router       /auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tok, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, remoteIP(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Token: tok,
		User:  toUserSummary(user),
	})
}
