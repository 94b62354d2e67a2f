package auth

// Identity is what a signed session token asserts about its holder. It is
// embedded in the token, cached against it, and returned by check-auth.
type Identity struct {
	ID       string `json:"id"`       // users._id as hex
	Username string `json:"username"` // display name at login time
	Email    string `json:"email"`
}
