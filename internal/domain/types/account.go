package types

// User is the identity returned by the profile endpoint.
type User struct {
	ID       int64    `json:"id,omitempty"`
	Username Username `json:"username"`
	Email    string   `json:"email"`
}

// TokenPair is returned by login. Refresh omits Refresh unless the server
// rotates refresh tokens.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	Username Username `json:"username" validate:"required,max=150"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
}

// LoginInput is the body of a login request.
type LoginInput struct {
	Username Username `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
}
