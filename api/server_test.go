package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"helpdesk/auth"
	"helpdesk/issue"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	registerUser *auth.User
	registerErr  error
	authUser     auth.User
	authErr      error
	listUsers    []auth.User
	listErr      error
	token        string
	tokenErr     error
	verifyUserID string
	verifyErr    error
}

func (s *stubAuthService) Register(_ context.Context, _ auth.RegisterRequest) (*auth.User, error) {
	return s.registerUser, s.registerErr
}

func (s *stubAuthService) Authenticate(_ context.Context, _ auth.LoginRequest) (auth.User, error) {
	return s.authUser, s.authErr
}

func (s *stubAuthService) ListUsers(_ context.Context, _ int) ([]auth.User, error) {
	return s.listUsers, s.listErr
}

func (s *stubAuthService) IssueSessionToken(_ auth.User) (string, error) {
	return s.token, s.tokenErr
}

func (s *stubAuthService) VerifySessionToken(_ string) (string, error) {
	return s.verifyUserID, s.verifyErr
}

type stubIssueService struct {
	classified  issue.Issue
	classifyErr error
	listIssues  []issue.Issue
	listErr     error

	gotUserID string
	gotQuery  string
}

func (s *stubIssueService) Classify(_ context.Context, userID, query string) (issue.Issue, error) {
	s.gotUserID = userID
	s.gotQuery = query
	return s.classified, s.classifyErr
}

func (s *stubIssueService) ListByUser(_ context.Context, _ string) ([]issue.Issue, error) {
	return s.listIssues, s.listErr
}

func decodeDetail(t *testing.T, body []byte) string {
	t.Helper()
	var eb errorBody
	require.NoError(t, json.Unmarshal(body, &eb))
	return eb.Detail
}

func TestHandleLogin_Success(t *testing.T) {
	authSvc := &stubAuthService{
		authUser: auth.User{
			ID:          "u1",
			Email:       "alice@example.com",
			FullName:    "Alice Admin",
			IsActive:    true,
			IsSuperuser: true,
		},
		token: "signed-token",
	}
	e := New(authSvc, &stubIssueService{}, Config{})

	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(`{"email":"alice@example.com","password":"supersafe"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.ID)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.True(t, resp.IsActive)
	assert.True(t, resp.IsSuperuser)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	authSvc := &stubAuthService{authErr: auth.ErrInvalidCredentials}
	e := New(authSvc, &stubIssueService{}, Config{})

	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(`{"email":"a@x.com","password":"bad"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect email or password", decodeDetail(t, rec.Body.Bytes()))
	assert.Empty(t, rec.Result().Cookies())
}

func TestHandleCreateUser_DuplicateEmail(t *testing.T) {
	authSvc := &stubAuthService{registerErr: auth.ErrDuplicateEmail}
	e := New(authSvc, &stubIssueService{}, Config{})

	req := httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(`{"email":"a@x.com","password":"strongpassword","full_name":"A"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", decodeDetail(t, rec.Body.Bytes()))
}

func TestHandleListUsers(t *testing.T) {
	authSvc := &stubAuthService{
		listUsers: []auth.User{
			{ID: "u1", Email: "alice@example.com", FullName: "Alice", IsActive: true, IsSuperuser: true},
			{ID: "u2", Email: "bob@example.com", FullName: "Bob", IsActive: true},
		},
	}
	e := New(authSvc, &stubIssueService{}, Config{})

	req := httptest.NewRequest(http.MethodGet, "/users/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "alice@example.com", resp[0].Email)
	assert.False(t, resp[1].IsSuperuser)
}

func TestHandleClassify_RequiresSession(t *testing.T) {
	e := New(&stubAuthService{verifyErr: errors.New("auth: invalid session token")}, &stubIssueService{}, Config{})

	// No cookie at all.
	req := httptest.NewRequest(http.MethodPost, "/issues/classify/", strings.NewReader(`{"query":"order status?"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Please log in to use the chatbot", decodeDetail(t, rec.Body.Bytes()))

	// Cookie present but the token does not verify.
	req = httptest.NewRequest(http.MethodPost, "/issues/classify/", strings.NewReader(`{"query":"order status?"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleClassify_Success(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	issueSvc := &stubIssueService{
		classified: issue.Issue{
			ID:          "iss-1",
			UserID:      "u1",
			Query:       "printer jam",
			Response:    "This appears to be a Printer related issue",
			ProductCode: 0,
			ProductName: "Printer",
			CreatedAt:   now,
		},
	}
	e := New(&stubAuthService{verifyUserID: "u1"}, issueSvc, Config{})

	req := httptest.NewRequest(http.MethodPost, "/issues/classify/", strings.NewReader(`{"query":"printer jam"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "valid"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", issueSvc.gotUserID)
	assert.Equal(t, "printer jam", issueSvc.gotQuery)

	var resp classifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "iss-1", resp.IssueID)
	assert.Equal(t, "Printer", resp.ProductName)
	assert.Equal(t, 0, resp.ProductCode)
	assert.Equal(t, now, resp.CreatedAt)
}

func TestHandleClassify_ServiceFailure(t *testing.T) {
	issueSvc := &stubIssueService{classifyErr: errors.New("issue: create issue: connection refused")}
	e := New(&stubAuthService{verifyUserID: "u1"}, issueSvc, Config{})

	req := httptest.NewRequest(http.MethodPost, "/issues/classify/", strings.NewReader(`{"query":"printer jam"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "valid"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "issue: create issue: connection refused", decodeDetail(t, rec.Body.Bytes()))
}

func TestHandleUserIssues(t *testing.T) {
	issueSvc := &stubIssueService{
		listIssues: []issue.Issue{
			{ID: "iss-1", UserID: "u1", Query: "printer jam", Response: "This appears to be a Printer related issue", ProductName: "Printer"},
			{ID: "iss-2", UserID: "u1", Query: "scanner feeder", Response: "This appears to be a Scanner related issue", ProductCode: 1, ProductName: "Scanner"},
		},
	}
	e := New(&stubAuthService{}, issueSvc, Config{})

	req := httptest.NewRequest(http.MethodGet, "/issues/user/u1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []issueResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "iss-1", resp[0].ID)
	assert.Equal(t, "Scanner", resp[1].ProductName)
}

func TestHandleRoot(t *testing.T) {
	e := New(&stubAuthService{}, &stubIssueService{}, Config{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Backend is running"}`, rec.Body.String())
}
