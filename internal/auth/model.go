package auth

// RegisterRequest is the request body for registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the request body for login. Users log in by name, not email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisteredUser is the public subset of a created account. The password hash
// never leaves the server through this path.
type RegisteredUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RegisterResponse struct {
	Message string         `json:"message"`
	User    RegisteredUser `json:"user"`
}

// LoginResponse carries the minimal descriptor the caller retains client-side.
// There is no token and no server-side session.
type LoginResponse struct {
	Message  string `json:"message"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
