// Package auth keeps track of who is signed in. There is no password check
// or server behind it; a session is just a stored name and email.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/pantry/internal/persist"
	"github.com/Makepad-fr/pantry/internal/store"
)

const (
	EnvEmail = "PANTRY_USER_EMAIL"
	EnvName  = "PANTRY_USER_NAME"
)

var ErrEmailRequired = errors.New("email is required")

type User struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Source   string    `json:"-"`                   // "env" | "store"
	LoggedIn time.Time `json:"logged_in,omitempty"` // when the session was saved
}

// Sessions reads and writes the signed-in user.
type Sessions struct {
	kv  store.Store
	log *zap.Logger
}

func NewSessions(kv store.Store, log *zap.Logger) *Sessions {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sessions{kv: kv, log: log}
}

// Current returns the signed-in user, or nil when nobody is.
// PANTRY_USER_EMAIL overrides whatever is stored.
func (s *Sessions) Current(ctx context.Context) (*User, error) {
	// 1) env override
	if email := strings.TrimSpace(os.Getenv(EnvEmail)); email != "" {
		return &User{Name: displayName(os.Getenv(EnvName), email), Email: email, Source: "env"}, nil
	}

	// 2) stored session
	b, ok, err := s.kv.Get(ctx, persist.UserKey)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil, nil // not logged in
	}
	var u User
	if err := json.Unmarshal(b, &u); err != nil || strings.TrimSpace(u.Email) == "" {
		s.log.Warn("discarding corrupted session", zap.Error(err))
		if err := s.kv.Delete(ctx, persist.UserKey); err != nil {
			return nil, fmt.Errorf("remove session: %w", err)
		}
		return nil, nil
	}
	u.Source = "store"
	return &u, nil
}

// Login stores a session. Without a name the local part of the email is used.
func (s *Sessions) Login(ctx context.Context, name, email string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	u := User{
		Name:     displayName(name, email),
		Email:    email,
		Source:   "store",
		LoggedIn: time.Now().UTC(),
	}
	b, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	if err := s.kv.Set(ctx, persist.UserKey, b); err != nil {
		return nil, fmt.Errorf("write session: %w", err)
	}
	s.log.Info("logged in", zap.String("email", u.Email))
	return &u, nil
}

// Logout removes the stored session; logging out twice is fine.
func (s *Sessions) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, persist.UserKey); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func displayName(name, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}
