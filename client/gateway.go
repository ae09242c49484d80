package client

import (
	"context"
	"encoding/json"
	"net/http"

	"helpdesk/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Login authenticates against the backend and, on success, persists the
// returned identity in the session store. A rejected credential pair leaves
// the store untouched, so a still-valid prior session survives a mistyped
// password.
func (c *Client) Login(ctx context.Context, email, password string) (session.Identity, error) {
	status, body, err := c.postJSON(ctx, "/users/login", loginRequest{Email: email, Password: password}, nil)
	if err != nil {
		return session.Identity{}, &Error{Kind: KindUnreachable, Message: msgUnexpected, cause: err}
	}

	switch status {
	case http.StatusOK:
		var id session.Identity
		if err := json.Unmarshal(body, &id); err != nil || id.ID == "" {
			return session.Identity{}, &Error{Kind: KindUnexpected, Message: msgUnexpected, cause: err}
		}
		if err := c.store.Set(id); err != nil {
			return session.Identity{}, &Error{Kind: KindUnexpected, Message: msgUnexpected, cause: err}
		}
		return id, nil
	case http.StatusUnauthorized:
		return session.Identity{}, &Error{Kind: KindInvalidCredentials, Message: detailOr(body, msgUnexpected)}
	default:
		return session.Identity{}, &Error{Kind: KindUnexpected, Message: detailOr(body, msgUnexpected)}
	}
}

// Register creates a new account. The backend's detail message is surfaced
// verbatim on validation failure, matching what the signup form shows.
func (c *Client) Register(ctx context.Context, email, password, fullName string) (session.Identity, error) {
	status, body, err := c.postJSON(ctx, "/users/", registerRequest{Email: email, Password: password, FullName: fullName}, nil)
	if err != nil {
		return session.Identity{}, &Error{Kind: KindUnreachable, Message: msgUnexpected, cause: err}
	}

	switch status {
	case http.StatusOK, http.StatusCreated:
		var id session.Identity
		if err := json.Unmarshal(body, &id); err != nil || id.ID == "" {
			return session.Identity{}, &Error{Kind: KindUnexpected, Message: msgUnexpected, cause: err}
		}
		return id, nil
	case http.StatusBadRequest:
		return session.Identity{}, &Error{Kind: KindServiceError, Message: detailOr(body, msgUnexpected)}
	default:
		return session.Identity{}, &Error{Kind: KindUnexpected, Message: detailOr(body, msgUnexpected)}
	}
}

// Logout clears the locally stored identity. The backend session cookie is
// left to expire on its own.
func (c *Client) Logout() error {
	return c.store.Clear()
}
