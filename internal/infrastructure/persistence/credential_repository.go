package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/chatu326/Stationary-Manager/internal/domain/identity"
	"github.com/chatu326/Stationary-Manager/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCredentialRepository implements CredentialRepository using GORM
type GormCredentialRepository struct {
	db *gorm.DB
}

// NewGormCredentialRepository creates a new GormCredentialRepository
func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

// Create persists a new credential
func (r *GormCredentialRepository) Create(ctx context.Context, credential *identity.Credential) error {
	if err := r.db.WithContext(ctx).Create(credential).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByUsername finds a credential by username
func (r *GormCredentialRepository) FindByUsername(ctx context.Context, username string) (*identity.Credential, error) {
	var cred identity.Credential
	if err := r.db.WithContext(ctx).First(&cred, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cred, nil
}

// Count returns the number of registered credentials
func (r *GormCredentialRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.Credential{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// isUniqueViolation detects driver-specific unique constraint errors that
// GORM does not translate.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// Ensure GormCredentialRepository implements CredentialRepository
var _ identity.CredentialRepository = (*GormCredentialRepository)(nil)
