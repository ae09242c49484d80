package issue

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUnknownUser signals that the issue references a user that does not exist.
var ErrUnknownUser = errors.New("issue: unknown user")

// Repository handles data access for classified issues.
type Repository interface {
	CreateIssue(ctx context.Context, params CreateIssueParams) (Issue, error)
	ListByUser(ctx context.Context, userID string) ([]Issue, error)
}

// CreateIssueParams contains write parameters for recording an issue.
type CreateIssueParams struct {
	UserID      string
	Query       string
	Response    string
	ProductCode int
	ProductName string
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed issue repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// CreateIssue inserts a classified issue for a user.
func (r *PGRepository) CreateIssue(ctx context.Context, params CreateIssueParams) (Issue, error) {
	const insertSQL = `
		INSERT INTO issues (user_id, query, response, product_code, product_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, query, response, product_code, product_name, created_at
	`

	iss, err := scanIssue(r.pool.QueryRow(ctx, insertSQL, params.UserID, params.Query, params.Response, params.ProductCode, params.ProductName))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Issue{}, ErrUnknownUser
		}
		return Issue{}, fmt.Errorf("issue: create issue: %w", err)
	}

	return iss, nil
}

// ListByUser fetches all issues recorded for a user in submission order.
func (r *PGRepository) ListByUser(ctx context.Context, userID string) ([]Issue, error) {
	const selectSQL = `
		SELECT id, user_id, query, response, product_code, product_name, created_at
		FROM issues
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, selectSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("issue: list by user: %w", err)
	}
	defer rows.Close()

	issues := make([]Issue, 0)
	for rows.Next() {
		iss, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("issue: scan issue: %w", err)
		}
		issues = append(issues, iss)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("issue: iterate issues: %w", err)
	}

	return issues, nil
}

func scanIssue(row pgx.Row) (Issue, error) {
	var iss Issue
	err := row.Scan(
		&iss.ID,
		&iss.UserID,
		&iss.Query,
		&iss.Response,
		&iss.ProductCode,
		&iss.ProductName,
		&iss.CreatedAt,
	)
	if err != nil {
		return Issue{}, err
	}
	return iss, nil
}
