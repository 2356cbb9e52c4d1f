package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// Clients persists OAuth2 client applications. Authenticate owns the secret
// comparison so cleartext secrets never leave this layer.
type Clients interface {
	Get(ctx context.Context, id string) (*Client, error)
	Create(ctx context.Context, client *Client) (*Client, error)
	Delete(ctx context.Context, id string) error
	Authenticate(ctx context.Context, id, secret string) (*Client, error)
}

type clients struct {
	db *bun.DB
}

var _ Clients = (*clients)(nil)

func NewClientsRepository(db *bun.DB) Clients {
	return &clients{db: db}
}

func (r *clients) Get(ctx context.Context, id string) (*Client, error) {
	record := &Client{}
	err := r.db.NewSelect().Model(record).Where("cli.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (r *clients) Create(ctx context.Context, client *Client) (*Client, error) {
	if _, err := r.db.NewInsert().Model(client).Exec(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clients) Delete(ctx context.Context, id string) error {
	_, err := r.db.NewDelete().
		Model((*Client)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// Authenticate resolves the client and compares the secret against its
// stored hash. Unknown client and bad secret come back as distinct errors;
// the strategies collapse both into the same rejection.
func (r *clients) Authenticate(ctx context.Context, id, secret string) (*Client, error) {
	client, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if client == nil {
		return nil, ErrClientNotFound
	}

	if err := CompareSecretAndHash(secret, client.SecretHash); err != nil {
		return nil, err
	}

	return client, nil
}
