package models

// User is the authenticated identity returned by the task API on login.
type User struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
}

// Valid reports whether u looks like a user the API issued.
func (u User) Valid() bool {
	return u.ID != 0 && u.Username != ""
}
