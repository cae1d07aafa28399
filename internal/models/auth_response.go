package models

// UserResponse is the public view of a user. It never carries the password hash.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// AuthResponse is returned by register, login and provider sign-in
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
