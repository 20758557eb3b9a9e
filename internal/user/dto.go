package user

import "strings"

// SignupRequest is the payload for creating an account.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the signup payload and returns a human-readable message
// when it is unusable.
func (r *SignupRequest) Validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	switch {
	case r.Name == "":
		return "name is required"
	case r.Email == "" || !strings.Contains(r.Email, "@"):
		return "a valid email is required"
	case len(r.Password) < 8:
		return "password must be at least 8 characters"
	}
	return ""
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
