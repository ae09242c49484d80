package issue

import (
	"context"
	"fmt"
	"strings"
)

// Classifier produces a product verdict for a query.
type Classifier interface {
	Classify(query string) (code int, name string)
}

// Service classifies incoming queries and records the verdict.
type Service struct {
	repo       Repository
	classifier Classifier
}

// NewService creates a new issue service.
func NewService(repo Repository, classifier Classifier) *Service {
	return &Service{
		repo:       repo,
		classifier: classifier,
	}
}

// Classify runs the classifier over the query and persists the resulting
// issue for the user. The stored response is the canonical verdict sentence
// returned to the chat client.
func (s *Service) Classify(ctx context.Context, userID, query string) (Issue, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Issue{}, fmt.Errorf("issue: query must not be empty")
	}
	if userID == "" {
		return Issue{}, fmt.Errorf("issue: user id is required")
	}

	code, name := s.classifier.Classify(query)
	response := fmt.Sprintf("This appears to be a %s related issue", name)

	iss, err := s.repo.CreateIssue(ctx, CreateIssueParams{
		UserID:      userID,
		Query:       query,
		Response:    response,
		ProductCode: code,
		ProductName: name,
	})
	if err != nil {
		return Issue{}, err
	}

	return iss, nil
}

// ListByUser returns the issues previously recorded for a user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Issue, error) {
	if userID == "" {
		return nil, fmt.Errorf("issue: user id is required")
	}
	return s.repo.ListByUser(ctx, userID)
}
