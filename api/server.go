// Package api exposes the helpdesk backend over HTTP: login and account
// management under /users, classification under /issues. Callers are
// authenticated by a signed session cookie set at login. All error bodies
// use the {"detail": "..."} shape the chat client expects.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"helpdesk/auth"
	"helpdesk/issue"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// AuthService is the slice of auth.Service the handlers need.
type AuthService interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.User, error)
	Authenticate(ctx context.Context, req auth.LoginRequest) (auth.User, error)
	ListUsers(ctx context.Context, limit int) ([]auth.User, error)
	IssueSessionToken(user auth.User) (string, error)
	VerifySessionToken(token string) (string, error)
}

// IssueService is the slice of issue.Service the handlers need.
type IssueService interface {
	Classify(ctx context.Context, userID, query string) (issue.Issue, error)
	ListByUser(ctx context.Context, userID string) ([]issue.Issue, error)
}

// Config carries HTTP-surface settings.
type Config struct {
	// AllowOrigin is the browser origin allowed to call the API with
	// credentials (the frontend dev server in local setups).
	AllowOrigin string
}

// Server wires HTTP routes to the auth and issue services.
type Server struct {
	auth   AuthService
	issues IssueService
	logger *slog.Logger
}

// New builds the echo engine with all routes and middleware registered.
func New(authSvc AuthService, issueSvc IssueService, cfg Config) *echo.Echo {
	s := &Server{
		auth:   authSvc,
		issues: issueSvc,
		logger: slog.Default(),
	}

	e := echo.New()
	e.HideBanner = true

	if cfg.AllowOrigin != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{cfg.AllowOrigin},
			AllowCredentials: true,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{echo.HeaderContentType, "X-User-ID"},
		}))
	}

	e.GET("/", s.handleRoot)

	users := e.Group("/users")
	users.POST("/login", s.handleLogin)
	users.POST("/", s.handleCreateUser)
	users.GET("/", s.handleListUsers)

	issues := e.Group("/issues")
	issues.POST("/classify/", s.handleClassify)
	issues.GET("/user/:userID", s.handleUserIssues)

	return e
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Backend is running"})
}

// errorBody is the wire shape for all API failures.
type errorBody struct {
	Detail string `json:"detail"`
}

func fail(c echo.Context, status int, detail string) error {
	return c.JSON(status, errorBody{Detail: detail})
}
