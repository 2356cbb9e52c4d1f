package auth

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryStores adapts the bun repositories to the narrow TokenStore and
// PrincipalStore contracts the strategies verify against.
type RepositoryStores struct {
	repo RepositoryManager
}

var (
	_ TokenStore     = (*RepositoryStores)(nil)
	_ PrincipalStore = (*RepositoryStores)(nil)
)

// NewRepositoryStores returns the store adapter for the given repositories.
func NewRepositoryStores(repo RepositoryManager) *RepositoryStores {
	return &RepositoryStores{repo: repo}
}

func (s *RepositoryStores) FindAndDeleteMailToken(ctx context.Context, token string) (*MailToken, error) {
	return s.repo.MailTokens().FindAndDelete(ctx, token)
}

func (s *RepositoryStores) FindAccessToken(ctx context.Context, token string) (*AccessToken, error) {
	return s.repo.AccessTokens().Find(ctx, token)
}

func (s *RepositoryStores) GetUser(ctx context.Context, id string) (*User, error) {
	// A malformed id cannot reference a row; same outcome as a missing user.
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	user, err := s.repo.Users().GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (s *RepositoryStores) AuthenticateClient(ctx context.Context, username, password string) (*Client, error) {
	return s.repo.Clients().Authenticate(ctx, username, password)
}
