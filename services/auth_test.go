package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"calendar-admin-server/storage"

	"golang.org/x/crypto/bcrypt"
)

func newStaticGate(t *testing.T) *StaticGate {
	t.Helper()
	return &StaticGate{
		File:     storage.OpenLocalFile(filepath.Join(t.TempDir(), "calendar.json")),
		Email:    "admin@example.com",
		Password: "hemmelig",
	}
}

func TestStaticGateAuthenticate(t *testing.T) {
	gate := newStaticGate(t)
	ctx := context.Background()

	session, err := gate.Authenticate(ctx, "admin@example.com", "hemmelig")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if session == nil || session.Email != "admin@example.com" {
		t.Fatalf("session = %+v", session)
	}
	if !gate.File.AdminFlag() {
		t.Fatal("admin flag not persisted after login")
	}
}

func TestStaticGateEmailIsCaseInsensitive(t *testing.T) {
	gate := newStaticGate(t)

	if _, err := gate.Authenticate(context.Background(), "Admin@Example.COM", "hemmelig"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
}

func TestStaticGateRejectsBadCredentials(t *testing.T) {
	gate := newStaticGate(t)
	ctx := context.Background()

	for _, tt := range []struct{ email, password string }{
		{"admin@example.com", "wrong"},
		{"other@example.com", "hemmelig"},
		{"", ""},
	} {
		if _, err := gate.Authenticate(ctx, tt.email, tt.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate(%q, %q) = %v, want ErrInvalidCredentials", tt.email, tt.password, err)
		}
	}
	if gate.File.AdminFlag() {
		t.Fatal("failed logins must not set the admin flag")
	}
}

func TestStaticGateHashedPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hemmelig"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	gate := newStaticGate(t)
	gate.Password = ""
	gate.PasswordHash = string(hash)

	if _, err := gate.Authenticate(context.Background(), "admin@example.com", "hemmelig"); err != nil {
		t.Fatalf("Authenticate with hash: %v", err)
	}
	if _, err := gate.Authenticate(context.Background(), "admin@example.com", "feil"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
}

func TestStaticGateSessionRestoreAndLogout(t *testing.T) {
	gate := newStaticGate(t)
	ctx := context.Background()

	// No session before login
	if _, err := gate.VerifyAdmin(ctx, 1); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("VerifyAdmin before login: %v", err)
	}

	if _, err := gate.Authenticate(ctx, "admin@example.com", "hemmelig"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if _, err := gate.VerifyAdmin(ctx, 1); err != nil {
		t.Fatalf("VerifyAdmin after login: %v", err)
	}
	// The flag survives a process restart
	if _, err := (&StaticGate{File: gate.File, Email: gate.Email, Password: "hemmelig"}).VerifyAdmin(ctx, 1); err != nil {
		t.Fatalf("VerifyAdmin on fresh gate: %v", err)
	}

	if err := gate.Logout(ctx, 1); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := gate.VerifyAdmin(ctx, 1); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("VerifyAdmin after logout: %v", err)
	}
}
