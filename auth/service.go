package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials signals wrong email or password.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrWeakPassword signals password doesn't meet requirements.
	ErrWeakPassword = errors.New("auth: password must be at least 8 characters")
)

// SessionTTL bounds how long an issued session token remains valid.
const SessionTTL = time.Hour

// Service handles authentication business logic.
type Service struct {
	repo          Repository
	sessionSecret []byte
}

// NewService creates a new authentication service.
func NewService(repo Repository, sessionSecret string) *Service {
	return &Service{
		repo:          repo,
		sessionSecret: []byte(sessionSecret),
	}
}

// Register creates a new user account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if len(req.Password) < 8 {
		return nil, ErrWeakPassword
	}

	if req.Email == "" || req.FullName == "" {
		return nil, fmt.Errorf("auth: email and full_name are required")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	// New accounts default to active, non-superuser; explicit flags win.
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	isSuperuser := false
	if req.IsSuperuser != nil {
		isSuperuser = *req.IsSuperuser
	}

	user, err := s.repo.CreateUser(ctx, CreateUserParams{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(passwordHash),
		IsActive:     isActive,
		IsSuperuser:  isSuperuser,
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate verifies the credential pair and returns the matching user.
// Inactive accounts still authenticate; the caller decides what an inactive
// login is allowed to reach.
func (s *Service) Authenticate(ctx context.Context, req LoginRequest) (User, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID retrieves user information by ID.
func (s *Service) GetUserByID(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns up to limit registered users.
func (s *Service) ListUsers(ctx context.Context, limit int) ([]User, error) {
	return s.repo.ListUsers(ctx, limit)
}

// IssueSessionToken creates the signed token carried by the session cookie.
func (s *Service) IssueSessionToken(user User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(SessionTTL).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.sessionSecret)
	if err != nil {
		return "", fmt.Errorf("auth: sign session token: %w", err)
	}

	return tokenString, nil
}

// VerifySessionToken validates a session token and returns the user ID.
func (s *Service) VerifySessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.sessionSecret, nil
	})

	if err != nil {
		return "", fmt.Errorf("auth: parse session token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			return "", fmt.Errorf("auth: invalid user_id in session token")
		}
		return userID, nil
	}

	return "", fmt.Errorf("auth: invalid session token")
}
