package api

import (
	"errors"
	"net/http"
	"time"

	"helpdesk/issue"

	"github.com/labstack/echo/v4"
)

type classifyRequest struct {
	Query string `json:"query"`
}

type classifyResponse struct {
	Query       string    `json:"query"`
	Response    string    `json:"response"`
	ProductCode int       `json:"product_code"`
	ProductName string    `json:"product_name"`
	IssueID     string    `json:"issue_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type issueResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Query       string    `json:"query"`
	Response    string    `json:"response"`
	ProductCode int       `json:"product_code"`
	ProductName string    `json:"product_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// sessionUserID resolves the caller from the session cookie. The X-User-ID
// header some clients attach is advisory only; the signed cookie is the
// authority.
func (s *Server) sessionUserID(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	userID, err := s.auth.VerifySessionToken(cookie.Value)
	if err != nil {
		return "", false
	}
	return userID, true
}

func (s *Server) handleClassify(c echo.Context) error {
	userID, ok := s.sessionUserID(c)
	if !ok {
		s.logger.Warn("classify rejected: no valid session")
		return fail(c, http.StatusUnauthorized, "Please log in to use the chatbot")
	}

	var req classifyRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid classify payload")
	}

	iss, err := s.issues.Classify(c.Request().Context(), userID, req.Query)
	if err != nil {
		if errors.Is(err, issue.ErrUnknownUser) {
			return fail(c, http.StatusUnauthorized, "Please log in to use the chatbot")
		}
		s.logger.Error("classify", "error", err, "user_id", userID)
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	s.logger.Info("classified query", "user_id", userID, "product", iss.ProductName, "issue_id", iss.ID)
	return c.JSON(http.StatusOK, classifyResponse{
		Query:       iss.Query,
		Response:    iss.Response,
		ProductCode: iss.ProductCode,
		ProductName: iss.ProductName,
		IssueID:     iss.ID,
		CreatedAt:   iss.CreatedAt,
	})
}

func (s *Server) handleUserIssues(c echo.Context) error {
	userID := c.Param("userID")

	issues, err := s.issues.ListByUser(c.Request().Context(), userID)
	if err != nil {
		s.logger.Error("list user issues", "error", err, "user_id", userID)
		return fail(c, http.StatusInternalServerError, "Could not list issues")
	}

	out := make([]issueResponse, 0, len(issues))
	for _, iss := range issues {
		out = append(out, issueResponse{
			ID:          iss.ID,
			UserID:      iss.UserID,
			Query:       iss.Query,
			Response:    iss.Response,
			ProductCode: iss.ProductCode,
			ProductName: iss.ProductName,
			CreatedAt:   iss.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}
