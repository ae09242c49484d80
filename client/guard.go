package client

import "helpdesk/session"

// Route identifies a client view.
type Route string

const (
	RouteRoot           Route = "/"
	RouteLogin          Route = "/login"
	RouteChat           Route = "/chatbot"
	RouteAdminDashboard Route = "/adminDashboard"
)

// Decision is the guard's verdict for a navigation attempt. Redirect is true
// when the requested route was refused and Route holds the destination
// instead.
type Decision struct {
	Route    Route
	Redirect bool
}

// Decide resolves a navigation attempt against the stored identity. Only an
// active identity may reach the chat, and the admin dashboard additionally
// requires the superuser flag. No network call is made; the stored flags are
// the authority. An inactive identity is treated the same as no identity.
func Decide(requested Route, id *session.Identity) Decision {
	authorized := id != nil && id.IsActive

	switch requested {
	case RouteLogin:
		return Decision{Route: RouteLogin}
	case RouteChat:
		if !authorized {
			return Decision{Route: RouteLogin, Redirect: true}
		}
		return Decision{Route: RouteChat}
	case RouteAdminDashboard:
		if !authorized || !id.IsSuperuser {
			return Decision{Route: RouteLogin, Redirect: true}
		}
		return Decision{Route: RouteAdminDashboard}
	default:
		// Root and anything unrecognized funnel through login.
		return Decision{Route: RouteLogin, Redirect: true}
	}
}

// RouteAfterLogin picks the landing route for a freshly authenticated
// identity: inactive accounts go back to login, superusers land on the
// admin dashboard, everyone else on the chat.
func RouteAfterLogin(id session.Identity) Route {
	if !id.IsActive {
		return RouteLogin
	}
	if id.IsSuperuser {
		return RouteAdminDashboard
	}
	return RouteChat
}
