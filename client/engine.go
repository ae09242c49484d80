package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyQuery is returned by Submit when the query is empty after trimming.
var ErrEmptyQuery = errors.New("client: empty query")

// ExchangeStatus tracks an exchange through its round trip.
type ExchangeStatus string

const (
	StatusPending   ExchangeStatus = "pending"
	StatusFulfilled ExchangeStatus = "fulfilled"
	StatusFailed    ExchangeStatus = "failed"
)

// Exchange is one query/response pair in the conversation. Response and the
// verdict fields stay nil until the backend answers.
type Exchange struct {
	ID          string
	Query       string
	Response    *string
	ProductCode *int
	ProductName *string
	IssueID     *string
	Timestamp   *time.Time
	Status      ExchangeStatus
}

// Engine runs the conversation: it appends a pending exchange per submitted
// query, calls the classify endpoint, and resolves the same exchange with
// the verdict or a failure. History order is submission order regardless of
// which response arrives first.
type Engine struct {
	client *Client

	mu        sync.Mutex
	exchanges []*Exchange
	lastErr   *Error
}

// NewEngine creates an Engine on top of an authenticated-or-not client.
func NewEngine(c *Client) *Engine {
	return &Engine{client: c}
}

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

// Submit sends query to the classify endpoint. The pending exchange is
// visible in History before the call returns; it is resolved in place when
// the response or failure lands. Submit returns a snapshot of the resolved
// exchange along with the failure, if any.
func (e *Engine) Submit(ctx context.Context, query string) (Exchange, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Exchange{}, ErrEmptyQuery
	}

	ex := &Exchange{
		ID:     uuid.NewString(),
		Query:  query,
		Status: StatusPending,
	}
	e.mu.Lock()
	e.exchanges = append(e.exchanges, ex)
	e.mu.Unlock()

	verdict, callErr := e.classify(ctx, query)

	e.mu.Lock()
	defer e.mu.Unlock()
	if callErr != nil {
		ex.Status = StatusFailed
		e.lastErr = callErr
		return *ex, callErr
	}

	ex.Status = StatusFulfilled
	ex.Response = &verdict.Response
	ex.ProductCode = &verdict.ProductCode
	ex.ProductName = &verdict.ProductName
	ex.IssueID = &verdict.IssueID
	ts := verdict.CreatedAt
	ex.Timestamp = &ts
	e.lastErr = nil
	return *ex, nil
}

func (e *Engine) classify(ctx context.Context, query string) (*classifyResponse, *Error) {
	var header http.Header
	if id, ok := e.client.store.Get(); ok {
		header = http.Header{"X-User-ID": []string{id.ID}}
	}

	status, body, err := e.client.postJSON(ctx, "/issues/classify/", classifyRequest{Query: query}, header)
	if err != nil {
		return nil, &Error{Kind: KindUnreachable, Message: msgChatFailed, cause: err}
	}

	switch status {
	case http.StatusOK:
		var out classifyResponse
		if err := json.Unmarshal(body, &out); err != nil || out.Response == "" {
			return nil, &Error{Kind: KindUnexpected, Message: msgChatFailed, cause: err}
		}
		return &out, nil
	case http.StatusUnauthorized:
		return nil, &Error{Kind: KindUnauthorized, Message: msgMustLogIn}
	default:
		return nil, &Error{Kind: KindServiceError, Message: detailOr(body, msgChatFailed)}
	}
}

// History returns the conversation in submission order. Entries are copies;
// mutating them does not affect the engine.
func (e *Engine) History() []Exchange {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Exchange, len(e.exchanges))
	for i, ex := range e.exchanges {
		out[i] = *ex
	}
	return out
}

// Err reports the failure from the most recent Submit, or nil if it
// succeeded. A successful Submit clears a prior failure.
func (e *Engine) Err() *Error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}
