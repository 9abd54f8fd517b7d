package identity

import (
	"time"

	"github.com/chatu326/Stationary-Manager/internal/domain/identity"
)

// RegisterRequest represents the request to register a new user
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=4,max=72"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the request to refresh an access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CredentialResponse represents a registered credential in API responses.
// The password hash is never exposed.
type CredentialResponse struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenPairResponse represents an issued access/refresh token pair
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// ToCredentialResponse converts a domain credential to a response DTO
func ToCredentialResponse(c *identity.Credential) CredentialResponse {
	return CredentialResponse{
		Username:  c.Username,
		CreatedAt: c.CreatedAt,
	}
}
