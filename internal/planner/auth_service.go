package planner

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/parthselarka/focusmate/internal/model"
	"github.com/parthselarka/focusmate/internal/repository"
)

const (
	bcryptCost     = 10
	minPasswordLen = 8
	resetTokenTTL  = time.Hour
)

// ErrInvalidCredentials is deliberately opaque: login failures never say
// whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService is the credential-store collaborator: it turns session
// tokens into owner ids for the HTTP layer and handles signup, login and
// password reset. Core task/timer operations never see a missing owner.
type AuthService struct {
	users      *repository.UserRepository
	sessionTTL time.Duration

	now func() time.Time
}

func NewAuthService(users *repository.UserRepository, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}
	return &AuthService{users: users, sessionTTL: sessionTTL, now: time.Now}
}

// SignUp registers a new account. Email is lowercased before storage so
// lookups are case-insensitive.
func (s *AuthService) SignUp(ctx context.Context, username, email, password, confirm string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, invalidf("email, username, and password are required")
	}
	if len(password) < minPasswordLen {
		return nil, invalidf("password must be at least %d characters long", minPasswordLen)
	}
	if password != confirm {
		return nil, invalidf("passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalidf("email or username already in use")
		}
		return nil, storeErr(err)
	}
	return &user, nil
}

// LogIn verifies credentials and issues a session token.
func (s *AuthService) LogIn(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", storeErr(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	session := model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.users.CreateSession(ctx, &session); err != nil {
		return "", storeErr(err)
	}
	return session.Token, nil
}

// Authenticate resolves a session token to an owner id. Unknown and
// expired tokens both report ErrNotFound.
func (s *AuthService) Authenticate(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, ErrNotFound
	}
	session, err := s.users.FindSession(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, storeErr(err)
	}
	if !session.ExpiresAt.After(s.now()) {
		return 0, ErrNotFound
	}
	return session.UserID, nil
}

// LogOut discards the session. Unknown tokens are a no-op.
func (s *AuthService) LogOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.users.DeleteSession(ctx, token); err != nil {
		return storeErr(err)
	}
	return nil
}

// RequestPasswordReset issues a reset token for the account. An unknown
// email returns an empty token and no error, so callers cannot probe
// which addresses are registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", invalidf("email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", storeErr(err)
	}

	token := uuid.NewString()
	if err := s.users.SetResetToken(ctx, user.ID, token, s.now().Add(resetTokenTTL)); err != nil {
		return "", storeErr(err)
	}
	return token, nil
}

// ResetPassword redeems a valid reset token and replaces the password.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return invalidf("token and new password are required")
	}
	if len(password) < minPasswordLen {
		return invalidf("password must be at least %d characters long", minPasswordLen)
	}

	user, err := s.users.FindByResetToken(ctx, token, s.now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invalidf("invalid or expired token")
	}
	if err != nil {
		return storeErr(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return storeErr(err)
	}
	return nil
}
