package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/chatu326/Stationary-Manager/internal/domain/identity"
	"github.com/chatu326/Stationary-Manager/internal/domain/shared"
)

// TokenIssuer issues and validates signed token pairs for authenticated users
type TokenIssuer interface {
	// GenerateTokenPair issues an access/refresh token pair for the username
	GenerateTokenPair(username string) (accessToken, refreshToken string, expiresIn int64, err error)
	// ValidateRefreshToken validates a refresh token and returns its username
	ValidateRefreshToken(tokenString string) (string, error)
}

// ChangeNotifier is told after any durable write so the data file can be
// mirrored off the box
type ChangeNotifier interface {
	Notify()
}

// AuthService handles registration and login
type AuthService struct {
	credentialRepo identity.CredentialRepository
	tokens         TokenIssuer
	notifier       ChangeNotifier
}

// NewAuthService creates a new AuthService
func NewAuthService(credentialRepo identity.CredentialRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		credentialRepo: credentialRepo,
		tokens:         tokens,
	}
}

// SetChangeNotifier sets the notifier invoked after writes (optional)
func (s *AuthService) SetChangeNotifier(notifier ChangeNotifier) {
	s.notifier = notifier
}

// Register creates a new user credential. The username must not already be
// taken; the comparison is case-insensitive because usernames are stored
// lowercased.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*CredentialResponse, error) {
	cred, err := identity.NewCredential(req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	if _, err := s.credentialRepo.FindByUsername(ctx, cred.Username); err == nil {
		return nil, shared.ErrUsernameTaken
	}

	if err := s.credentialRepo.Create(ctx, cred); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.ErrAlreadyExists.Code {
			return nil, shared.ErrUsernameTaken
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify()
	}

	response := ToCredentialResponse(cred)
	return &response, nil
}

// Login verifies a username/password pair and issues a token pair.
// A missing user and a wrong password produce the same error so callers
// cannot probe for registered usernames.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenPairResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	cred, err := s.credentialRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !cred.VerifyPassword(req.Password) {
		return nil, shared.ErrInvalidCredentials
	}

	return s.issueTokens(cred.Username)
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenPairResponse, error) {
	username, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	// The credential may have been removed from the store since the token was
	// issued; refuse to mint new tokens for it.
	if _, err := s.credentialRepo.FindByUsername(ctx, username); err != nil {
		return nil, shared.ErrUnauthorized
	}

	return s.issueTokens(username)
}

func (s *AuthService) issueTokens(username string) (*TokenPairResponse, error) {
	access, refresh, expiresIn, err := s.tokens.GenerateTokenPair(username)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_ISSUE_ERROR", "Failed to issue tokens")
	}
	return &TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	}, nil
}
