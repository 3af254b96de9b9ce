package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/voltrack/voltrack/internal/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals plaintext")
	}
	if !auth.CheckPassword(hash, "s3cret") {
		t.Error("correct password rejected")
	}
	if auth.CheckPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := auth.NewResetToken(secret, 42, time.Now())
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}

	userID, err := auth.VerifyResetToken(secret, token)
	if err != nil {
		t.Fatalf("VerifyResetToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestResetTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	issued := time.Now().Add(-auth.ResetTokenTTL - time.Minute)
	token, err := auth.NewResetToken(secret, 42, issued)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := auth.VerifyResetToken(secret, token); !errors.Is(err, auth.ErrBadToken) {
		t.Errorf("expired token err = %v, want ErrBadToken", err)
	}
}

func TestResetTokenWrongSecret(t *testing.T) {
	token, err := auth.NewResetToken([]byte("secret-a"), 42, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := auth.VerifyResetToken([]byte("secret-b"), token); !errors.Is(err, auth.ErrBadToken) {
		t.Errorf("wrong-secret token err = %v, want ErrBadToken", err)
	}
}

func TestResetTokenGarbage(t *testing.T) {
	if _, err := auth.VerifyResetToken([]byte("s"), "not.a.token"); !errors.Is(err, auth.ErrBadToken) {
		t.Errorf("garbage token err = %v, want ErrBadToken", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	sessions := auth.NewSessions(time.Hour)
	token := sessions.Start(7)

	userID, ok := sessions.UserID(token)
	if !ok || userID != 7 {
		t.Fatalf("UserID = (%d, %v), want (7, true)", userID, ok)
	}

	sessions.End(token)
	if _, ok := sessions.UserID(token); ok {
		t.Error("session still valid after End")
	}
}

func TestSessionExpiry(t *testing.T) {
	sessions := auth.NewSessions(time.Millisecond)
	token := sessions.Start(7)
	time.Sleep(5 * time.Millisecond)
	if _, ok := sessions.UserID(token); ok {
		t.Error("expired session still valid")
	}
}

func TestSessionEndAllFor(t *testing.T) {
	sessions := auth.NewSessions(time.Hour)
	t1 := sessions.Start(7)
	t2 := sessions.Start(7)
	t3 := sessions.Start(8)

	sessions.EndAllFor(7)
	if _, ok := sessions.UserID(t1); ok {
		t.Error("first session for user 7 survived")
	}
	if _, ok := sessions.UserID(t2); ok {
		t.Error("second session for user 7 survived")
	}
	if _, ok := sessions.UserID(t3); !ok {
		t.Error("unrelated session was terminated")
	}
}
