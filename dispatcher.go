package auth

import (
	"encoding/base64"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

const (
	bearerScheme = "Bearer"
	basicScheme  = "Basic"

	// query fallback so emailed links stay plain GETs
	bearerQueryParam = "access_token"

	clientIDField     = "client_id"
	clientSecretField = "client_secret"
)

// Dispatcher turns registered strategies into route middleware. It extracts
// the credential material each strategy expects, runs the strategy, and
// adapts the outcome to the HTTP channel: resolved principals land in the
// request context, rejections are 401s, store failures are 5xxs.
type Dispatcher struct {
	registry     *Registry
	Logger       Logger
	ErrorHandler func(c router.Context, err error) error
}

func NewDispatcher(registry *Registry) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		Logger:   defLogger{},
	}
	d.ErrorHandler = d.defaultErrHandler
	return d
}

func (d *Dispatcher) WithLogger(logger Logger) *Dispatcher {
	if logger != nil {
		d.Logger = logger
	}
	return d
}

// Middleware authenticates the request with the named strategy before the
// route handler runs.
func (d *Dispatcher) Middleware(name StrategyName) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			outcome := d.Authenticate(ctx, name)

			switch {
			case outcome.Resolved():
				principal := outcome.Principal()
				ctx.Locals(PrincipalLocalsKey, principal)
				ctx.SetContext(WithPrincipalContext(ctx.Context(), principal))
				return hf(ctx)
			case outcome.Failed():
				return d.ErrorHandler(ctx, outcome.Err())
			default:
				return unauthorized(ctx)
			}
		}
	}
}

// Authenticate extracts credentials for the named strategy from the request
// and verifies them. Requests carrying no usable credential material are
// rejected without ever reaching a store.
func (d *Dispatcher) Authenticate(ctx router.Context, name StrategyName) Outcome {
	creds, ok := extractCredentials(ctx, name)
	if !ok {
		return Reject()
	}
	return d.registry.Authenticate(ctx.Context(), name, creds)
}

func (d *Dispatcher) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	d.Logger.Error(
		"Authentication dispatch error",
		"error", richErr.Message,
		"category", richErr.Category,
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	return c.JSON(richErr.Code, map[string]any{
		"status":  richErr.Code,
		"message": "An unexpected server error occurred",
	})
}

func unauthorized(c router.Context) error {
	return c.JSON(router.StatusUnauthorized, map[string]any{
		"status":  router.StatusUnauthorized,
		"message": "Authentication required",
	})
}

func extractCredentials(ctx router.Context, name StrategyName) (Credentials, bool) {
	switch name {
	case StrategyMailAuth, StrategyClientAPI:
		token, ok := bearerToken(ctx)
		return Credentials{Token: token}, ok
	case StrategyClientBasic:
		username, password, ok := basicCredentials(ctx)
		return Credentials{Username: username, Password: password}, ok
	case StrategyClientBody:
		username := ctx.FormValue(clientIDField)
		password := ctx.FormValue(clientSecretField)
		if username == "" || password == "" {
			return Credentials{}, false
		}
		return Credentials{Username: username, Password: password}, true
	}
	return Credentials{}, false
}

// bearerToken extracts the token from the Authorization header, falling back
// to the access_token query parameter so emailed links stay plain GETs.
func bearerToken(ctx router.Context) (string, bool) {
	header := ctx.Header(router.HeaderAuthorization)
	l := len(bearerScheme)
	if len(header) > l+1 && strings.EqualFold(header[:l], bearerScheme) {
		token := strings.TrimSpace(header[l:])
		if token != "" {
			return token, true
		}
	}

	if token := ctx.Query(bearerQueryParam, ""); token != "" {
		return token, true
	}

	return "", false
}

func basicCredentials(ctx router.Context) (string, string, bool) {
	header := ctx.Header(router.HeaderAuthorization)
	l := len(basicScheme)
	if len(header) <= l+1 || !strings.EqualFold(header[:l], basicScheme) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[l:]))
	if err != nil {
		return "", "", false
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found || username == "" {
		return "", "", false
	}

	return username, password, true
}
