// Package entity defines the request and response bodies of the todoapp web layer.
package entity

// ErrorResponse is the body of every failed API call. Detail is a string, or
// a list of field errors for validation failures.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginForm is the OAuth2 password-flow form posted to /auth/token.
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// PasswordChangeRequest is the body of PUT /user/password.
type PasswordChangeRequest struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// IDParam binds the {id} path segment.
type IDParam struct {
	ID int `uri:"id" binding:"required,gt=0"`
}

// PhoneParam binds the {phone} path segment.
type PhoneParam struct {
	Phone string `uri:"phone" binding:"required"`
}
