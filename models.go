package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the end-user model. Accounts are created and destroyed by the
// signup service; this package only ever reads them.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Client is an OAuth2 client application. SecretHash is a bcrypt hash; the
// cleartext secret never touches storage.
type Client struct {
	bun.BaseModel `bun:"table:clients,alias:cli"`
	ID            string     `bun:"id,pk" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	SecretHash    string     `bun:"secret_hash,notnull" json:"-"`
	RedirectURI   string     `bun:"redirect_uri" json:"redirect_uri,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// MailToken is the one-time capability mailed to a user. It grants a session
// without a password and is deleted in the same operation that finds it.
type MailToken struct {
	bun.BaseModel `bun:"table:mail_tokens,alias:mtk"`
	Token         string     `bun:"token,pk" json:"token,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	ExpiresAt     time.Time  `bun:"expires_at,notnull" json:"expires_at,omitempty"`
}

// Expired reports whether the token is past its expiry at the given time.
func (t *MailToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// AccessToken is the bearer credential a client obtained through the token
// exchange. Scope is immutable once issued and lookups never consume the
// token; revocation and expiry belong to the store.
type AccessToken struct {
	bun.BaseModel `bun:"table:access_tokens,alias:atk"`
	Token         string     `bun:"token,pk" json:"token,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	ClientID      string     `bun:"client_id,notnull" json:"client_id,omitempty"`
	Scope         []string   `bun:"scope,type:jsonb" json:"scope,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	ExpiresAt     *time.Time `bun:"expires_at,nullzero" json:"expires_at,omitempty"`
}
