// README: Session state and pure reducers for login, profile merge, and logout.
package session

import "keepify/internal/modules/user"

// State mirrors the session store: the authenticated user plus a login flag.
type State struct {
	User    *user.User
	IsLogin bool
}

func Initial() State {
	return State{User: nil, IsLogin: false}
}

// SetUser marks the session authenticated and stores the user record.
func SetUser(_ State, u user.User) State {
	return State{User: &u, IsLogin: true}
}

// UpdateUser merges non-nil fields into the current user without touching the
// login flag. Callers supply already-validated data; no shape checks here.
func UpdateUser(s State, upd user.Update) State {
	if s.User == nil {
		return s
	}
	merged := *s.User
	if upd.FirstName != nil {
		merged.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		merged.LastName = *upd.LastName
	}
	if upd.Email != nil {
		merged.Email = *upd.Email
	}
	if upd.Photo != nil {
		merged.Photo = *upd.Photo
	}
	return State{User: &merged, IsLogin: s.IsLogin}
}

// Logout resets to the unauthenticated initial state.
func Logout(_ State) State {
	return Initial()
}
