package issue

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestService_ClassifyPersistsVerdict(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, fixedClassifier{code: 6, name: "Projector"})

	iss, err := svc.Classify(context.Background(), "user-1", "  projector bulb burned out  ")
	if err != nil {
		t.Fatalf("classify: unexpected error: %v", err)
	}

	if iss.Query != "projector bulb burned out" {
		t.Fatalf("expected trimmed query, got %q", iss.Query)
	}
	if iss.ProductCode != 6 || iss.ProductName != "Projector" {
		t.Fatalf("unexpected verdict: %d %q", iss.ProductCode, iss.ProductName)
	}
	if want := "This appears to be a Projector related issue"; iss.Response != want {
		t.Fatalf("expected response %q, got %q", want, iss.Response)
	}
	if len(repo.issues) != 1 {
		t.Fatalf("expected 1 persisted issue, got %d", len(repo.issues))
	}
}

func TestService_ClassifyValidation(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, fixedClassifier{})

	if _, err := svc.Classify(context.Background(), "user-1", "   "); err == nil {
		t.Fatal("expected error for blank query")
	}
	if _, err := svc.Classify(context.Background(), "", "printer jam"); err == nil {
		t.Fatal("expected error for missing user id")
	}
	if len(repo.issues) != 0 {
		t.Fatalf("expected no persisted issues, got %d", len(repo.issues))
	}
}

func TestService_ClassifyRepositoryFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.createErr = ErrUnknownUser
	svc := NewService(repo, fixedClassifier{code: 0, name: "Printer"})

	_, err := svc.Classify(context.Background(), "ghost", "printer jam")
	if !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestService_ListByUser(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, fixedClassifier{code: 0, name: "Printer"})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := svc.Classify(ctx, "user-1", fmt.Sprintf("printer jam %d", i)); err != nil {
			t.Fatalf("classify %d: %v", i, err)
		}
	}
	if _, err := svc.Classify(ctx, "user-2", "printer jam"); err != nil {
		t.Fatalf("classify other user: %v", err)
	}

	issues, err := svc.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues for user-1, got %d", len(issues))
	}
	for i, iss := range issues {
		if want := fmt.Sprintf("printer jam %d", i); iss.Query != want {
			t.Fatalf("expected submission order preserved, got %q at %d", iss.Query, i)
		}
	}

	if _, err := svc.ListByUser(ctx, ""); err == nil {
		t.Fatal("expected error for missing user id")
	}
}

type fixedClassifier struct {
	code int
	name string
}

func (f fixedClassifier) Classify(string) (int, string) { return f.code, f.name }

type fakeRepository struct {
	issues    []Issue
	createErr error
	nextID    int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1}
}

func (f *fakeRepository) CreateIssue(ctx context.Context, params CreateIssueParams) (Issue, error) {
	if f.createErr != nil {
		return Issue{}, f.createErr
	}

	iss := Issue{
		ID:          fmt.Sprintf("issue-%d", f.nextID),
		UserID:      params.UserID,
		Query:       params.Query,
		Response:    params.Response,
		ProductCode: params.ProductCode,
		ProductName: params.ProductName,
		CreatedAt:   time.Now().UTC(),
	}
	f.nextID++
	f.issues = append(f.issues, iss)
	return iss, nil
}

func (f *fakeRepository) ListByUser(ctx context.Context, userID string) ([]Issue, error) {
	out := make([]Issue, 0)
	for _, iss := range f.issues {
		if iss.UserID == userID {
			out = append(out, iss)
		}
	}
	return out, nil
}
