package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// SessionObject is the minimal state persisted between requests: the
// principal's stable identifier plus issuance metadata. Everything else is
// rehydrated from the principal store on demand.
type SessionObject struct {
	UserID   string     `json:"user_id,omitempty"`
	Issuer   string     `json:"issuer,omitempty"`
	IssuedAt *time.Time `json:"issued_at,omitempty"`
	Direct   bool       `json:"direct,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

// Sessions serializes principals into signed session tokens and rehydrates
// them. The token carries only the user id; a lookup failure during
// rehydration is an error to the caller, never a silent "no session".
type Sessions struct {
	principals PrincipalStore
	signingKey []byte
	issuer     string
	expiration time.Duration
	logger     Logger
}

func NewSessions(principals PrincipalStore, cfg Config) *Sessions {
	expiration := 24 * time.Hour
	if cfg.GetTokenExpiration() > 0 {
		expiration = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	return &Sessions{
		principals: principals,
		signingKey: []byte(cfg.GetSigningKey()),
		issuer:     cfg.GetIssuer(),
		expiration: expiration,
		logger:     defLogger{},
	}
}

func (s *Sessions) WithLogger(logger Logger) *Sessions {
	if logger != nil {
		s.logger = logger
	}
	return s
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Direct bool `json:"direct,omitempty"`
}

// SerializePrincipal reduces the principal to its stable identifier wrapped
// in a signed token suitable for a session cookie.
func (s *Sessions) SerializePrincipal(principal *Principal) (string, error) {
	if principal == nil || principal.ID() == "" {
		return "", errors.New("cannot serialize empty principal", errors.CategoryBadInput)
	}

	now := time.Now()
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
		Direct: principal.Context.Direct,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign session token")
	}

	return signed, nil
}

// SessionFromToken decodes and validates a serialized session.
func (s *Sessions) SessionFromToken(token string) (*SessionObject, error) {
	claims := &sessionClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnableToDecodeSession
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrUnableToDecodeSession
	}

	session := &SessionObject{
		UserID: claims.Subject,
		Issuer: claims.Issuer,
		Direct: claims.Direct,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = &claims.IssuedAt.Time
	}

	return session, nil
}

// PrincipalFromSession rehydrates the principal the session identifies.
func (s *Sessions) PrincipalFromSession(ctx context.Context, session *SessionObject) (*Principal, error) {
	if session == nil || session.UserID == "" {
		return nil, ErrUnableToFindSession
	}

	user, err := s.principals.GetUser(ctx, session.UserID)
	if err != nil {
		return nil, WrapStoreFailure(err, "session user lookup failed")
	}

	if user == nil {
		s.logger.Info("session references missing user", "user_id", session.UserID)
		return nil, ErrPrincipalMissing
	}

	return UserPrincipal(user, AuthContext{Direct: session.Direct}), nil
}
