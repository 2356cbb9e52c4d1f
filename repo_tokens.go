package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// MailTokens persists one-time login tokens. FindAndDelete is the
// consumption contract the mail_auth strategy relies on.
type MailTokens interface {
	Create(ctx context.Context, token *MailToken) (*MailToken, error)
	CreateTx(ctx context.Context, tx bun.IDB, token *MailToken) (*MailToken, error)
	FindAndDelete(ctx context.Context, token string) (*MailToken, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// AccessTokens persists the bearer tokens issued through the token
// exchange. Find never mutates the record.
type AccessTokens interface {
	Create(ctx context.Context, token *AccessToken) (*AccessToken, error)
	Find(ctx context.Context, token string) (*AccessToken, error)
	Revoke(ctx context.Context, token string) error
}

type mailTokens struct {
	db *bun.DB
}

var _ MailTokens = (*mailTokens)(nil)

func NewMailTokensRepository(db *bun.DB) MailTokens {
	return &mailTokens{db: db}
}

func (r *mailTokens) Create(ctx context.Context, token *MailToken) (*MailToken, error) {
	return r.CreateTx(ctx, r.db, token)
}

func (r *mailTokens) CreateTx(ctx context.Context, tx bun.IDB, token *MailToken) (*MailToken, error) {
	if _, err := tx.NewInsert().Model(token).Exec(ctx); err != nil {
		return nil, err
	}
	return token, nil
}

// FindAndDelete consumes the token in a single DELETE ... RETURNING
// statement. The database makes it atomic: of two concurrent calls with the
// same token exactly one gets the row back, the other sees nothing. An
// expired row is deleted too but reported as not found, so expired and
// never-issued tokens are observably identical.
func (r *mailTokens) FindAndDelete(ctx context.Context, token string) (*MailToken, error) {
	record := &MailToken{}
	res, err := r.db.NewDelete().
		Model(record).
		Where("token = ?", token).
		Returning("*").
		Exec(ctx, record)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, nil
	}

	if record.Expired(time.Now()) {
		return nil, nil
	}

	return record, nil
}

func (r *mailTokens) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*MailToken)(nil)).
		Where("expires_at <= ?", time.Now()).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

type accessTokens struct {
	db *bun.DB
}

var _ AccessTokens = (*accessTokens)(nil)

func NewAccessTokensRepository(db *bun.DB) AccessTokens {
	return &accessTokens{db: db}
}

func (r *accessTokens) Create(ctx context.Context, token *AccessToken) (*AccessToken, error) {
	if _, err := r.db.NewInsert().Model(token).Exec(ctx); err != nil {
		return nil, err
	}
	return token, nil
}

// Find is a pure read; the same token keeps authenticating until Revoke or
// expiry removes it.
func (r *accessTokens) Find(ctx context.Context, token string) (*AccessToken, error) {
	record := &AccessToken{}
	err := r.db.NewSelect().
		Model(record).
		Where("atk.token = ?", token).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if record.ExpiresAt != nil && time.Now().After(*record.ExpiresAt) {
		return nil, nil
	}

	return record, nil
}

func (r *accessTokens) Revoke(ctx context.Context, token string) error {
	_, err := r.db.NewDelete().
		Model((*AccessToken)(nil)).
		Where("token = ?", token).
		Exec(ctx)
	return err
}
