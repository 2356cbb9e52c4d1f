package auth

import (
	"context"
)

/*
 * mail_auth authenticates the end user on the website, generally because a
 * client redirected her here. She gives her email address on a form and
 * receives a message with a link carrying the token this strategy redeems.
 */
type mailAuthStrategy struct {
	tokens     TokenStore
	principals PrincipalStore
	logger     Logger
}

func (s *mailAuthStrategy) Name() StrategyName { return StrategyMailAuth }

func (s *mailAuthStrategy) Authenticate(ctx context.Context, creds Credentials) Outcome {
	// Find and delete are one store operation; after this call the token is
	// gone whatever else happens, and we never re-attempt the deletion.
	mailToken, err := s.tokens.FindAndDeleteMailToken(ctx, creds.Token)
	if err != nil {
		return Fail(WrapStoreFailure(err, "mail token lookup failed"))
	}

	if mailToken == nil {
		// Unknown, expired, and already-consumed tokens are deliberately
		// indistinguishable here.
		return Reject()
	}

	user, err := s.principals.GetUser(ctx, mailToken.UserID.String())
	if err != nil {
		return Fail(WrapStoreFailure(err, "user lookup failed"))
	}

	if user == nil {
		// The account vanished between issuance and redemption. Callers see
		// a plain rejection, but keep a trace of the inconsistency.
		s.logger.Info("mail token for missing user", "user_id", mailToken.UserID)
		return Reject()
	}

	return Resolve(UserPrincipal(user, AuthContext{Direct: true}))
}

/*
 * client_basic and client_body are used by clients during the token exchange
 * step of the OAuth2 process. They share one verifier; only where the
 * credentials come from differs, and the dispatcher owns that extraction.
 */
type clientCredentialsStrategy struct {
	name       StrategyName
	principals PrincipalStore
}

func (s *clientCredentialsStrategy) Name() StrategyName { return s.name }

func (s *clientCredentialsStrategy) Authenticate(ctx context.Context, creds Credentials) Outcome {
	client, err := s.principals.AuthenticateClient(ctx, creds.Username, creds.Password)
	if err != nil {
		if IsRejection(err) {
			return Reject()
		}
		return Fail(WrapStoreFailure(err, "client authentication failed"))
	}

	if client == nil {
		return Reject()
	}

	return Resolve(ClientPrincipal(client))
}

/*
 * client_api is used by clients acting on behalf of the user, with the
 * access token they obtained through OAuth2.
 */
type clientAPIStrategy struct {
	tokens     TokenStore
	principals PrincipalStore
	logger     Logger
}

func (s *clientAPIStrategy) Name() StrategyName { return StrategyClientAPI }

func (s *clientAPIStrategy) Authenticate(ctx context.Context, creds Credentials) Outcome {
	accessToken, err := s.tokens.FindAccessToken(ctx, creds.Token)
	if err != nil {
		// Short-circuit before touching the principal store.
		return Fail(WrapStoreFailure(err, "access token lookup failed"))
	}

	if accessToken == nil {
		return Reject()
	}

	user, err := s.principals.GetUser(ctx, accessToken.UserID.String())
	if err != nil {
		return Fail(WrapStoreFailure(err, "user lookup failed"))
	}

	if user == nil {
		s.logger.Info("access token for missing user", "user_id", accessToken.UserID)
		return Reject()
	}

	return Resolve(UserPrincipal(user, AuthContext{Scopes: accessToken.Scope}))
}
