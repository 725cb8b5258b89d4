package planner

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSignUpLogInAuthenticate_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.SignUp(ctx, "alice", "Alice@Example.com", "correcthorse", "correcthorse")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email not lowercased: %q", user.Email)
	}

	token, err := env.auth.LogIn(ctx, "alice", "correcthorse")
	if err != nil {
		t.Fatalf("LogIn: %v", err)
	}

	ownerID, err := env.auth.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if ownerID != user.ID {
		t.Errorf("authenticated owner = %d, want %d", ownerID, user.ID)
	}
}

func TestSignUp_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name                               string
		username, email, password, confirm string
	}{
		{"missing email", "alice", "", "correcthorse", "correcthorse"},
		{"short password", "alice", "a@example.com", "short", "short"},
		{"mismatched confirmation", "alice", "a@example.com", "correcthorse", "wronghorse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := env.auth.SignUp(ctx, tc.username, tc.email, tc.password, tc.confirm); !IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.auth.SignUp(ctx, "alice", "a@example.com", "correcthorse", "correcthorse"); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	if _, err := env.auth.SignUp(ctx, "alice2", "a@example.com", "correcthorse", "correcthorse"); !IsValidation(err) {
		t.Fatalf("expected ValidationError on duplicate email, got %v", err)
	}
}

func TestLogIn_InvalidCredentialsAreOpaque(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.auth.SignUp(ctx, "alice", "a@example.com", "correcthorse", "correcthorse"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if _, err := env.auth.LogIn(ctx, "nobody", "correcthorse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := env.auth.LogIn(ctx, "alice", "wronghorse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticate_ExpiredSessionRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.auth.SignUp(ctx, "alice", "a@example.com", "correcthorse", "correcthorse"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	token, err := env.auth.LogIn(ctx, "alice", "correcthorse")
	if err != nil {
		t.Fatalf("LogIn: %v", err)
	}

	env.auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := env.auth.Authenticate(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired session: got %v, want ErrNotFound", err)
	}
}

func TestLogOut_InvalidatesSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.auth.SignUp(ctx, "alice", "a@example.com", "correcthorse", "correcthorse"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	token, err := env.auth.LogIn(ctx, "alice", "correcthorse")
	if err != nil {
		t.Fatalf("LogIn: %v", err)
	}

	if err := env.auth.LogOut(ctx, token); err != nil {
		t.Fatalf("LogOut: %v", err)
	}
	if _, err := env.auth.Authenticate(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Errorf("logged-out session: got %v, want ErrNotFound", err)
	}
}

func TestPasswordReset_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.auth.SignUp(ctx, "alice", "a@example.com", "correcthorse", "correcthorse"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	token, err := env.auth.RequestPasswordReset(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if token == "" {
		t.Fatal("expected a reset token for a known email")
	}

	if err := env.auth.ResetPassword(ctx, token, "batterystaple"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := env.auth.LogIn(ctx, "alice", "correcthorse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password still accepted after reset")
	}
	if _, err := env.auth.LogIn(ctx, "alice", "batterystaple"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}

	// A redeemed token cannot be replayed.
	if err := env.auth.ResetPassword(ctx, token, "thirdpassword"); !IsValidation(err) {
		t.Errorf("replayed token: got %v, want ValidationError", err)
	}
}

func TestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	env := newTestEnv(t)

	token, err := env.auth.RequestPasswordReset(context.Background(), "ghost@example.com")
	if err != nil {
		t.Fatalf("unknown email should not error: %v", err)
	}
	if token != "" {
		t.Error("unknown email should yield no token")
	}
}
