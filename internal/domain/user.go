package domain

// User represents an account on the marketplace.
//
// The backend stores a password alongside these fields but never returns
// it, so the client-side record carries only the identity fields.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
