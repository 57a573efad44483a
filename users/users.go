package users

// User is the identity record returned by the backend's authentication
// endpoints. Fields mirror the backend's user response (snake_case JSON).
type User struct {
	ID        string `json:"id"`         // Unique identifier for the user
	Email     string `json:"email"`      // User's email address
	Username  string `json:"username"`   // Unique username
	FirstName string `json:"first_name"` // First name of the user
	LastName  string `json:"last_name"`  // Last name of the user
	IsActive  bool   `json:"is_active"`  // Whether the account is active
}

// Update is a partial identity record. Nil fields are left untouched when
// applied, so callers can patch individual fields without re-sending the
// whole record.
type Update struct {
	Email     *string `json:"email,omitempty"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// Apply merges the update into a copy of the user and returns it. The ID is
// never changed by an update.
func (u Update) Apply(user User) User {
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.Username != nil {
		user.Username = *u.Username
	}
	if u.FirstName != nil {
		user.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		user.LastName = *u.LastName
	}
	if u.IsActive != nil {
		user.IsActive = *u.IsActive
	}
	return user
}

// String returns a pointer to s, for building Update literals.
func String(s string) *string {
	return &s
}

// Bool returns a pointer to b, for building Update literals.
func Bool(b bool) *bool {
	return &b
}
