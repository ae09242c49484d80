package issue

import "time"

// Issue mirrors the issues table: one classified support query submitted by
// a user. No JSON annotations here; presentation shapes live with the API
// layer.
type Issue struct {
	ID          string
	UserID      string
	Query       string
	Response    string
	ProductCode int
	ProductName string
	CreatedAt   time.Time
}
