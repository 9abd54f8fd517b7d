package identity

import (
	"strings"
	"time"

	"github.com/chatu326/Stationary-Manager/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

const maxUsernameLength = 100

// Credential represents a registered user's login credential.
// Credentials are immutable after creation and are never deleted.
type Credential struct {
	Username     string `gorm:"primaryKey;type:varchar(100)"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (Credential) TableName() string {
	return "credentials"
}

// NewCredential creates a credential for a new user. The password is stored
// only as a one-way bcrypt hash, never as plaintext.
func NewCredential(username, password string) (*Credential, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) > maxUsernameLength {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}
	if password == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &Credential{
		Username:     username,
		PasswordHash: string(hash),
	}, nil
}

// VerifyPassword verifies if the provided password matches the stored hash
func (c *Credential) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
	return err == nil
}
