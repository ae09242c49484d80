package api

import (
	"errors"
	"net/http"

	"helpdesk/auth"

	"github.com/labstack/echo/v4"
)

// userResponse is the Identity-shaped wire representation of an account.
type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

func toUserResponse(u auth.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
	}
}

func (s *Server) handleLogin(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid login payload")
	}

	user, err := s.auth.Authenticate(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Warn("failed login attempt", "email", req.Email)
			return fail(c, http.StatusUnauthorized, "Incorrect email or password")
		}
		s.logger.Error("authenticate", "error", err)
		return fail(c, http.StatusInternalServerError, "Login failed")
	}

	token, err := s.auth.IssueSessionToken(user)
	if err != nil {
		s.logger.Error("issue session token", "error", err)
		return fail(c, http.StatusInternalServerError, "Login failed")
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.logger.Info("successful login", "email", user.Email, "user_id", user.ID)
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) handleCreateUser(c echo.Context) error {
	var req auth.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid registration payload")
	}

	user, err := s.auth.Register(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateEmail):
			return fail(c, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, auth.ErrWeakPassword):
			return fail(c, http.StatusBadRequest, "Password must be at least 8 characters")
		default:
			return fail(c, http.StatusBadRequest, err.Error())
		}
	}

	return c.JSON(http.StatusOK, toUserResponse(*user))
}

func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.auth.ListUsers(c.Request().Context(), 100)
	if err != nil {
		s.logger.Error("list users", "error", err)
		return fail(c, http.StatusInternalServerError, "Could not list users")
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}
