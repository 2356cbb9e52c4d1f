package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// TokenStore is the persistence contract for bearer tokens.
//
// FindAndDeleteMailToken must be atomic: find and delete are one indivisible
// operation so that of two concurrent calls with the same token exactly one
// observes the record. Both lookups return (nil, nil) when no record exists;
// an error always means infrastructure failure, never a missing row.
type TokenStore interface {
	FindAndDeleteMailToken(ctx context.Context, token string) (*MailToken, error)
	FindAccessToken(ctx context.Context, token string) (*AccessToken, error)
}

// PrincipalStore resolves users and clients.
//
// GetUser returns (nil, nil) for an unknown id. AuthenticateClient owns the
// secret comparison; it returns ErrClientNotFound or
// ErrMismatchedHashAndPassword for the expected rejection paths, and the
// strategies collapse both into the same rejected outcome.
type PrincipalStore interface {
	GetUser(ctx context.Context, id string) (*User, error)
	AuthenticateClient(ctx context.Context, username, password string) (*Client, error)
}

// Mailer delivers the login link. Transport and templating stay outside this
// package.
type Mailer interface {
	SendLoginLink(ctx context.Context, user *User, token *MailToken) error
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetContextKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetSuccessRedirect() string
	GetFailureRedirect() string
	GetLoginRoute() string
	GetRejectedRouteKey() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
