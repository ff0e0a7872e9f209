package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/xompass/gradebook-api/authz"
	"github.com/xompass/gradebook-api/http_errors"
	"github.com/xompass/gradebook-api/models"
	"github.com/xompass/gradebook-api/token"
	"golang.org/x/crypto/bcrypt"
)

// Error codes for account operations
const (
	INVALID_CREDENTIALS = "INVALID_CREDENTIALS"
	USERNAME_IN_USE     = "USERNAME_IN_USE"
	EMAIL_IN_USE        = "EMAIL_IN_USE"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two cases are deliberately indistinguishable so a caller
	// cannot enumerate registered usernames.
	ErrInvalidCredentials = http_errors.UnauthorizedErrorWithCode(INVALID_CREDENTIALS, "invalid username or password")

	ErrUsernameTaken = http_errors.ConflictErrorWithCode(USERNAME_IN_USE, "the username is already in use")
	ErrEmailTaken    = http_errors.ConflictErrorWithCode(EMAIL_IN_USE, "the email is already registered")
)

// Service orchestrates login and registration. It verifies passwords against
// the stored bcrypt hash and mints session tokens; it never logs or returns
// a password in any form.
type Service struct {
	users    UserStore
	codec    *token.Codec
	tokenTTL time.Duration
}

func NewService(users UserStore, codec *token.Codec, tokenTTL time.Duration) *Service {
	return &Service{
		users:    users,
		codec:    codec,
		tokenTTL: tokenTTL,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
} // @name LoginResponse

// Login verifies the password and returns a freshly signed token along with
// the user's public identity.
func (s *Service) Login(ctx context.Context, username string, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	claims := token.NewClaims(user.Username, []string{user.Role}, time.Now(), s.tokenTTL)
	signed, err := s.codec.Sign(claims)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    signed,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}

// Register creates a new account. Username and email must be unique; the
// role is normalized to the closed role set and defaults to STUDENT.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	exists, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	exists, err = s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	role, err := authz.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		Role:     string(role),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// A concurrent registration can slip past the exists checks; the
		// store's unique index reports it as a conflict.
		var response *http_errors.ErrorResponse
		if errors.As(err, &response) && response.Code == 409 {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return created, nil
}

// FindByUsername exposes the store lookup for collaborators that resolve
// usernames (grade ownership assignment).
func (s *Service) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.users.FindByUsername(ctx, username)
}
