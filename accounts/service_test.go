package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xompass/gradebook-api/token"
)

func newTestService(t *testing.T) (*Service, *MemoryUserStore) {
	t.Helper()

	codec, err := token.NewCodec([]byte("test-secret"))
	require.NoError(t, err)

	store := NewMemoryUserStore()
	return NewService(store, codec, time.Hour), store
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to student role", func(t *testing.T) {
		service, _ := newTestService(t)

		user, err := service.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "alice@school.edu",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "STUDENT", user.Role)
		assert.NotEmpty(t, user.ID)
	})

	t.Run("normalizes role case", func(t *testing.T) {
		service, _ := newTestService(t)

		user, err := service.Register(ctx, RegisterInput{
			Username: "bob",
			Email:    "bob@school.edu",
			Password: "password123",
			Role:     "teacher",
		})
		require.NoError(t, err)
		assert.Equal(t, "TEACHER", user.Role)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.Register(ctx, RegisterInput{
			Username: "carol",
			Email:    "carol@school.edu",
			Password: "password123",
			Role:     "ADMIN",
		})
		assert.Error(t, err)
	})

	t.Run("stores a hash, never the password", func(t *testing.T) {
		service, store := newTestService(t)

		_, err := service.Register(ctx, RegisterInput{
			Username: "dave",
			Email:    "dave@school.edu",
			Password: "password123",
		})
		require.NoError(t, err)

		stored, err := store.FindByUsername(ctx, "dave")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEqual(t, "password123", stored.Password)
		assert.NotContains(t, stored.Password, "password123")
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.Register(ctx, RegisterInput{Username: "erin", Email: "erin@school.edu", Password: "password123"})
		require.NoError(t, err)

		_, err = service.Register(ctx, RegisterInput{Username: "erin", Email: "other@school.edu", Password: "password123"})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.Register(ctx, RegisterInput{Username: "frank", Email: "frank@school.edu", Password: "password123"})
		require.NoError(t, err)

		_, err = service.Register(ctx, RegisterInput{Username: "frank2", Email: "frank@school.edu", Password: "password123"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token and public identity", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "alice@school.edu",
			Password: "password123",
			Role:     "TEACHER",
		})
		require.NoError(t, err)

		result, err := service.Login(ctx, "alice", "password123")
		require.NoError(t, err)

		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "alice", result.Username)
		assert.Equal(t, "alice@school.edu", result.Email)
		assert.Equal(t, "TEACHER", result.Role)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "alice@school.edu",
			Password: "password123",
		})
		require.NoError(t, err)

		_, unknownErr := service.Login(ctx, "ghost", "whatever")
		_, wrongPassErr := service.Login(ctx, "alice", "wrongpass")

		assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
	})

	t.Run("token verifies and carries the user role", func(t *testing.T) {
		codec, err := token.NewCodec([]byte("test-secret"))
		require.NoError(t, err)

		service := NewService(NewMemoryUserStore(), codec, time.Hour)

		_, err = service.Register(ctx, RegisterInput{
			Username: "bob",
			Email:    "bob@school.edu",
			Password: "password123",
		})
		require.NoError(t, err)

		result, err := service.Login(ctx, "bob", "password123")
		require.NoError(t, err)

		claims, err := codec.Verify(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "bob", claims.Subject)
		assert.Equal(t, []string{"STUDENT"}, claims.Roles)
	})
}
