package auth

import (
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

const (
	TextCodeCredentialInvalid   = "auth_credential_invalid"
	TextCodePrincipalMissing    = "auth_principal_missing"
	TextCodeStoreFailure        = "auth_store_failure"
	TextCodeAuthorizationDenied = "auth_authorization_denied"
	TextCodeUnknownStrategy     = "auth_unknown_strategy"
)

// ErrCredentialInvalid is the rejection for a token or secret that does not
// resolve. Consumed, expired, and never-issued tokens all surface this same
// error so a caller cannot distinguish replay from a bad guess.
var ErrCredentialInvalid = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeCredentialInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrClientNotFound is returned by principal stores for an unknown client id.
// Strategies treat it exactly like a bad secret.
var ErrClientNotFound = errors.New("client not found", errors.CategoryAuth).
	WithTextCode(TextCodeCredentialInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is returned when a client secret does not
// match its stored hash.
var ErrMismatchedHashAndPassword = errors.New("secret does not match", errors.CategoryAuth).
	WithTextCode(TextCodeCredentialInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrPrincipalMissing means a token resolved but the user it references is
// gone. The dispatcher reports it to callers as a plain rejection.
var ErrPrincipalMissing = errors.New("principal no longer exists", errors.CategoryAuth).
	WithTextCode(TextCodePrincipalMissing).
	WithCode(errors.CodeUnauthorized)

// ErrAuthorizationDenied is the scope gate denial. It is a 403 and must stay
// distinguishable from the 401 authentication failures above.
var ErrAuthorizationDenied = errors.New("no authorization to see this page", errors.CategoryAuthz).
	WithTextCode(TextCodeAuthorizationDenied).
	WithCode(errors.CodeForbidden)

// ErrUnknownStrategy means a route asked for a strategy name the registry
// does not hold. This is a wiring bug, not a request failure.
var ErrUnknownStrategy = errors.New("unknown authentication strategy", errors.CategoryInternal).
	WithTextCode(TextCodeUnknownStrategy).
	WithCode(errors.CodeInternal)

// ErrNoEmptyString guards hashing of empty secrets.
var ErrNoEmptyString = errors.New("value cannot be an empty string", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrUnableToFindSession is the error when the request has no session cookie
var ErrUnableToFindSession = errors.New("unable to find session", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrUnableToDecodeSession unable to decode JWT from session cookie
var ErrUnableToDecodeSession = errors.New("unable to decode session", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// IsRejection reports whether err is one of the expected rejection paths, as
// opposed to an infrastructure failure.
func IsRejection(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrCredentialInvalid) ||
		errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrMismatchedHashAndPassword) ||
		errors.Is(err, ErrPrincipalMissing)
}

// isNotFound distinguishes "no such row" from real store failures across
// the repository layers.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.IsNotFound(err) ||
		repository.IsRecordNotFound(err) ||
		errors.Is(err, sql.ErrNoRows)
}

// WrapStoreFailure marks err as a collaborator failure that must surface as
// a 5xx, never be swallowed as a rejection.
func WrapStoreFailure(err error, msg string) error {
	return errors.Wrap(err, errors.CategoryInternal, msg).
		WithTextCode(TextCodeStoreFailure).
		WithCode(errors.CodeInternal)
}
