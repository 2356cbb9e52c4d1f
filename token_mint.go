package auth

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// tokenEntropyBytes makes tokens unguessable; 32 bytes yields a 43
	// character url-safe string.
	tokenEntropyBytes = 32

	defaultMailTokenTTL = time.Hour
)

// MailTokenOptions controls how MintMailToken issues one-time tokens.
type MailTokenOptions struct {
	// TTL overrides the default one hour expiry.
	TTL time.Duration
	// IssuedAt overrides the issuance time. Zero uses time.Now().
	IssuedAt time.Time
}

// MintMailToken issues a fresh single-use token for the given user. The
// record still has to be persisted through the MailTokens store before the
// link goes out.
func MintMailToken(user *User, opts MailTokenOptions) (*MailToken, error) {
	if user == nil {
		return nil, goerrors.New("user is required", goerrors.CategoryBadInput)
	}

	if opts.TTL < 0 {
		return nil, goerrors.New("token TTL must be non-negative", goerrors.CategoryBadInput)
	}

	ttl := opts.TTL
	if ttl == 0 {
		ttl = defaultMailTokenTTL
	}

	issuedAt := opts.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	return &MailToken{
		Token:     token,
		UserID:    user.ID,
		CreatedAt: &issuedAt,
		ExpiresAt: issuedAt.Add(ttl),
	}, nil
}

// MintAccessToken issues a bearer token authorizing client to act for user
// within the given scopes. Scopes are fixed at issuance.
func MintAccessToken(client *Client, user *User, scopes []string) (*AccessToken, error) {
	if client == nil {
		return nil, goerrors.New("client is required", goerrors.CategoryBadInput)
	}
	if user == nil {
		return nil, goerrors.New("user is required", goerrors.CategoryBadInput)
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()

	return &AccessToken{
		Token:     token,
		UserID:    user.ID,
		ClientID:  client.ID,
		Scope:     append([]string(nil), scopes...),
		CreatedAt: &now,
	}, nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate token")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
