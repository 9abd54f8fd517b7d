package identity

import (
	"context"
	"errors"
	"testing"

	domainidentity "github.com/chatu326/Stationary-Manager/internal/domain/identity"
	"github.com/chatu326/Stationary-Manager/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentialRepo struct {
	creds map[string]*domainidentity.Credential
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{creds: make(map[string]*domainidentity.Credential)}
}

func (r *fakeCredentialRepo) Create(_ context.Context, credential *domainidentity.Credential) error {
	if _, ok := r.creds[credential.Username]; ok {
		return shared.ErrAlreadyExists
	}
	r.creds[credential.Username] = credential
	return nil
}

func (r *fakeCredentialRepo) FindByUsername(_ context.Context, username string) (*domainidentity.Credential, error) {
	cred, ok := r.creds[username]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cred, nil
}

func (r *fakeCredentialRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.creds)), nil
}

type fakeTokenIssuer struct {
	refreshUsername string
	refreshErr      error
}

func (t *fakeTokenIssuer) GenerateTokenPair(username string) (string, string, int64, error) {
	return "access-" + username, "refresh-" + username, 900, nil
}

func (t *fakeTokenIssuer) ValidateRefreshToken(string) (string, error) {
	if t.refreshErr != nil {
		return "", t.refreshErr
	}
	return t.refreshUsername, nil
}

type changeCounter struct {
	count int
}

func (c *changeCounter) Notify() {
	c.count++
}

func newAuthService(repo *fakeCredentialRepo, tokens *fakeTokenIssuer) *AuthService {
	return NewAuthService(repo, tokens)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new user", func(t *testing.T) {
		repo := newFakeCredentialRepo()
		service := newAuthService(repo, &fakeTokenIssuer{})

		resp, err := service.Register(ctx, RegisterRequest{Username: "Alice", Password: "s3cret"})

		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)
		assert.Len(t, repo.creds, 1)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		repo := newFakeCredentialRepo()
		service := newAuthService(repo, &fakeTokenIssuer{})

		_, err := service.Register(ctx, RegisterRequest{Username: "alice", Password: "s3cret"})
		require.NoError(t, err)

		_, err = service.Register(ctx, RegisterRequest{Username: "alice", Password: "other"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "USERNAME_TAKEN", domainErr.Code)
	})

	t.Run("username comparison is case-insensitive", func(t *testing.T) {
		repo := newFakeCredentialRepo()
		service := newAuthService(repo, &fakeTokenIssuer{})

		_, err := service.Register(ctx, RegisterRequest{Username: "alice", Password: "s3cret"})
		require.NoError(t, err)

		_, err = service.Register(ctx, RegisterRequest{Username: "ALICE", Password: "other"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "USERNAME_TAKEN", domainErr.Code)
	})

	t.Run("notifies after a successful registration", func(t *testing.T) {
		repo := newFakeCredentialRepo()
		service := newAuthService(repo, &fakeTokenIssuer{})
		counter := &changeCounter{}
		service.SetChangeNotifier(counter)

		_, err := service.Register(ctx, RegisterRequest{Username: "alice", Password: "s3cret"})
		require.NoError(t, err)
		assert.Equal(t, 1, counter.count)

		// A rejected duplicate writes nothing, so it must not notify
		_, err = service.Register(ctx, RegisterRequest{Username: "alice", Password: "other"})
		require.Error(t, err)
		assert.Equal(t, 1, counter.count)
	})

	t.Run("rejects an empty username", func(t *testing.T) {
		service := newAuthService(newFakeCredentialRepo(), &fakeTokenIssuer{})

		_, err := service.Register(ctx, RegisterRequest{Username: "  ", Password: "s3cret"})

		require.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*AuthService, *fakeCredentialRepo) {
		t.Helper()
		repo := newFakeCredentialRepo()
		service := newAuthService(repo, &fakeTokenIssuer{})
		_, err := service.Register(ctx, RegisterRequest{Username: "alice", Password: "s3cret"})
		require.NoError(t, err)
		return service, repo
	}

	t.Run("issues tokens for valid credentials", func(t *testing.T) {
		service, _ := setup(t)

		resp, err := service.Login(ctx, LoginRequest{Username: "alice", Password: "s3cret"})

		require.NoError(t, err)
		assert.Equal(t, "access-alice", resp.AccessToken)
		assert.Equal(t, "refresh-alice", resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, int64(900), resp.ExpiresIn)
	})

	t.Run("accepts username in any case", func(t *testing.T) {
		service, _ := setup(t)

		_, err := service.Login(ctx, LoginRequest{Username: " ALICE ", Password: "s3cret"})

		require.NoError(t, err)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		service, _ := setup(t)

		_, err := service.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("unknown user yields the same error as a wrong password", func(t *testing.T) {
		service, _ := setup(t)

		_, err := service.Login(ctx, LoginRequest{Username: "mallory", Password: "s3cret"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a new pair for a valid refresh token", func(t *testing.T) {
		repo := newFakeCredentialRepo()
		tokens := &fakeTokenIssuer{refreshUsername: "alice"}
		service := newAuthService(repo, tokens)
		_, err := service.Register(ctx, RegisterRequest{Username: "alice", Password: "s3cret"})
		require.NoError(t, err)

		resp, err := service.Refresh(ctx, RefreshRequest{RefreshToken: "refresh-alice"})

		require.NoError(t, err)
		assert.Equal(t, "access-alice", resp.AccessToken)
	})

	t.Run("rejects an invalid refresh token", func(t *testing.T) {
		tokens := &fakeTokenIssuer{refreshErr: errors.New("bad token")}
		service := newAuthService(newFakeCredentialRepo(), tokens)

		_, err := service.Refresh(ctx, RefreshRequest{RefreshToken: "garbage"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("rejects a token for a user that no longer exists", func(t *testing.T) {
		tokens := &fakeTokenIssuer{refreshUsername: "ghost"}
		service := newAuthService(newFakeCredentialRepo(), tokens)

		_, err := service.Refresh(ctx, RefreshRequest{RefreshToken: "refresh-ghost"})

		require.Error(t, err)
	})
}
