package auth

import "context"

// StrategyName identifies a registered strategy. The set is finite and
// enumerated here; routes select one of these, never an arbitrary string.
type StrategyName string

const (
	// StrategyMailAuth redeems the one-time token from a login email.
	StrategyMailAuth StrategyName = "mail_auth"
	// StrategyClientBasic authenticates a client from the Basic auth header.
	StrategyClientBasic StrategyName = "client_basic"
	// StrategyClientBody authenticates a client from request body fields.
	StrategyClientBody StrategyName = "client_body"
	// StrategyClientAPI authenticates a client acting for a user via an
	// access token.
	StrategyClientAPI StrategyName = "client_api"
)

// Credentials is the raw material a strategy verifies. Bearer strategies use
// Token; the client strategies use the Username/Password pair.
type Credentials struct {
	Token    string
	Username string
	Password string
}

// AuthContext is the authorization metadata a strategy attaches to the
// principal it resolves. It is the only state threaded from authentication
// into the scope gate and route handlers.
type AuthContext struct {
	// Direct is set when the user authenticated in person via a mail link
	// rather than through a client.
	Direct bool `json:"direct,omitempty"`
	// Scopes are the capabilities granted to the access token used, nil for
	// strategies that carry none.
	Scopes []string `json:"scopes,omitempty"`
}

// HasScopes reports whether every required scope was granted. Extra granted
// scopes are irrelevant; an empty requirement always passes.
func (a AuthContext) HasScopes(required ...string) bool {
	for _, req := range required {
		found := false
		for _, s := range a.Scopes {
			if s == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Principal is the authenticated identity resolved from credential material,
// either a User or a Client.
type Principal struct {
	User    *User
	Client  *Client
	Context AuthContext
}

// UserPrincipal builds a principal for an end user.
func UserPrincipal(user *User, authCtx AuthContext) *Principal {
	return &Principal{User: user, Context: authCtx}
}

// ClientPrincipal builds a principal for a client application.
func ClientPrincipal(client *Client) *Principal {
	return &Principal{Client: client}
}

// ID returns the stable identifier used to persist the principal between
// requests.
func (p *Principal) ID() string {
	if p == nil {
		return ""
	}
	if p.User != nil {
		return p.User.ID.String()
	}
	if p.Client != nil {
		return p.Client.ID
	}
	return ""
}

// IsUser reports whether the principal is an end user.
func (p *Principal) IsUser() bool {
	return p != nil && p.User != nil
}

type outcomeStatus int

const (
	statusRejected outcomeStatus = iota
	statusResolved
	statusFailed
)

// Outcome is the tagged result of a strategy: exactly one of resolved,
// rejected, or failed. Expected rejections (bad token, bad secret, vanished
// user) are encoded here, never as errors; Err is set only for genuine
// infrastructure failures.
type Outcome struct {
	status    outcomeStatus
	principal *Principal
	err       error
}

// Resolve builds a successful outcome carrying the principal.
func Resolve(p *Principal) Outcome {
	return Outcome{status: statusResolved, principal: p}
}

// Reject builds the rejection outcome. It carries no detail on purpose: a
// consumed token and a never-issued one must look identical to the caller.
func Reject() Outcome {
	return Outcome{status: statusRejected}
}

// Fail builds the outcome for a collaborator failure.
func Fail(err error) Outcome {
	return Outcome{status: statusFailed, err: err}
}

// Resolved reports whether a principal was authenticated.
func (o Outcome) Resolved() bool { return o.status == statusResolved }

// Rejected reports whether the credentials were rejected.
func (o Outcome) Rejected() bool { return o.status == statusRejected }

// Failed reports whether a store failed while verifying.
func (o Outcome) Failed() bool { return o.status == statusFailed }

// Principal returns the resolved principal, nil unless Resolved.
func (o Outcome) Principal() *Principal { return o.principal }

// Err returns the failure cause, nil unless Failed.
func (o Outcome) Err() error { return o.err }

// Strategy verifies one kind of credential material and resolves a principal
// or rejects. Implementations must be safe for concurrent use; the only one
// with a side effect is mail_auth, whose token consumption the store makes
// atomic.
type Strategy interface {
	Name() StrategyName
	Authenticate(ctx context.Context, creds Credentials) Outcome
}
