package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"calendar-admin-server/models"
	"calendar-admin-server/storage"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAdmin           = errors.New("not an admin user")
)

// AdminSession is the proof of admin authorization. Only a present session
// unlocks the edit surface.
type AdminSession struct {
	UserID   uint   `json:"userID"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// AuthGate abstracts the two credential backends so the calendar and edit
// logic never know which one is running.
type AuthGate interface {
	// Authenticate checks credentials and returns a session only for admin
	// identities. A valid non-admin login is rejected with ErrNotAdmin and
	// never produces a session.
	Authenticate(ctx context.Context, email, password string) (*AdminSession, error)
	// VerifyAdmin re-checks that a previously authenticated identity still
	// carries the admin attribute. Used for session restore.
	VerifyAdmin(ctx context.Context, userID uint) (*AdminSession, error)
	// Logout clears whatever session state the gate itself holds. Token
	// revocation is the transport layer's job.
	Logout(ctx context.Context, userID uint) error
}

// DatabaseGate authenticates against the users table. Admin status is a
// stored attribute, not merely "login succeeded".
type DatabaseGate struct {
	DB *gorm.DB
}

func (g *DatabaseGate) Authenticate(ctx context.Context, email, password string) (*AdminSession, error) {
	var user models.User
	result := g.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).Limit(1).Find(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrInvalidCredentials
	}

	if user.SocialLogin {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsAdmin {
		return nil, ErrNotAdmin
	}

	return &AdminSession{UserID: user.ID, Email: user.Email, Username: user.Username}, nil
}

func (g *DatabaseGate) VerifyAdmin(ctx context.Context, userID uint) (*AdminSession, error) {
	var user models.User
	result := g.DB.WithContext(ctx).Limit(1).Find(&user, userID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || !user.IsAdmin {
		return nil, ErrNotAdmin
	}
	return &AdminSession{UserID: user.ID, Email: user.Email, Username: user.Username}, nil
}

func (g *DatabaseGate) Logout(ctx context.Context, userID uint) error {
	return nil
}

// StaticGate compares against a fixed credential pair and keeps the admin
// flag in the local state file. This gates the edit UI only; it is not a real
// security boundary and must never be treated as one.
type StaticGate struct {
	File *storage.LocalFile

	Email string
	// PasswordHash is a bcrypt hash when set; otherwise Password is compared
	// directly in constant time.
	Password     string
	PasswordHash string
}

// The file backend has exactly one admin, so the session carries a fixed ID.
const staticAdminID uint = 1

func (g *StaticGate) checkPassword(password string) bool {
	if g.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(g.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(g.Password), []byte(password)) == 1
}

func (g *StaticGate) Authenticate(ctx context.Context, email, password string) (*AdminSession, error) {
	emailMatch := subtle.ConstantTimeCompare([]byte(strings.ToLower(email)), []byte(strings.ToLower(g.Email))) == 1
	passMatch := g.checkPassword(password)

	if !emailMatch || !passMatch {
		return nil, ErrInvalidCredentials
	}

	if err := g.File.SetAdminFlag(true); err != nil {
		return nil, err
	}
	return &AdminSession{UserID: staticAdminID, Email: g.Email, Username: g.Email}, nil
}

func (g *StaticGate) VerifyAdmin(ctx context.Context, userID uint) (*AdminSession, error) {
	if userID != staticAdminID || !g.File.AdminFlag() {
		return nil, ErrNotAdmin
	}
	return &AdminSession{UserID: staticAdminID, Email: g.Email, Username: g.Email}, nil
}

func (g *StaticGate) Logout(ctx context.Context, userID uint) error {
	return g.File.SetAdminFlag(false)
}
