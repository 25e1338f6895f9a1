package session

// Route describes a navigation target for the guard.
type Route struct {
	Path         string
	RequiresAuth bool
}

// Decision is the guard's verdict for a navigation attempt.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Allow is the verdict that lets the navigation proceed.
var Allow = Decision{Allowed: true}

// Redirect builds a verdict that sends the user to path instead.
func Redirect(path string) Decision {
	return Decision{RedirectTo: path}
}

// anonymousOnly lists routes that make no sense for a signed-in user.
var anonymousOnly = map[string]bool{
	"/login":           true,
	"/register":        true,
	"/forgot-password": true,
}

// Decide gates a navigation attempt against the current session. It is
// pure and must be called on every attempt; session state can change
// between navigations. Anonymous users are sent to the login page for
// protected routes, and signed-in users are kept off the anonymous-only
// pages.
func (s *Session) Decide(route Route) Decision {
	user := s.User()

	if route.RequiresAuth && user == nil {
		return Redirect("/login")
	}
	if anonymousOnly[route.Path] && user != nil {
		return Redirect("/dashboard")
	}
	return Allow
}
