// Package auth carries the caller identity that admin operations receive explicitly.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// SystemUserID identifies maintenance jobs run from the command line.
var SystemUserID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

type Context struct {
	UserID       uuid.UUID
	Email        string
	SessionToken string
	ExpiresAt    time.Time
}

func Anonymous() Context {
	return Context{}
}

// System is the caller of operator commands. It never expires.
func System() Context {
	return Context{
		UserID:       SystemUserID,
		Email:        "system",
		SessionToken: "system",
	}
}

// Authenticated reports whether the context was resolved from a live session.
func (c Context) Authenticated() bool {
	if c.UserID == uuid.Nil || c.SessionToken == "" {
		return false
	}
	return c.ExpiresAt.IsZero() || time.Now().Before(c.ExpiresAt)
}
