package auth

import (
	"net/http"
	"time"

	"github.com/goliatone/go-router"
)

// RegisterFlowRoutes mounts the login and logout endpoints.
func RegisterFlowRoutes[T any](app router.Router[T], flow *FlowAuthenticator) {
	app.Get("/connect", flow.Connect).SetName("connect.get")
	app.Get("/disconnect", flow.Disconnect).SetName("disconnect.get")
}

// FlowAuthenticator binds the mail_auth strategy to the login and logout
// routes: Connect redeems the emailed link and establishes a session,
// Disconnect tears it down. Both are thin glue over the dispatcher and the
// session serializer.
type FlowAuthenticator struct {
	dispatcher     *Dispatcher
	sessions       *Sessions
	cfg            Config
	cookieDuration time.Duration
	Logger         Logger
}

func NewFlowAuthenticator(dispatcher *Dispatcher, sessions *Sessions, cfg Config) (*FlowAuthenticator, error) {
	cookieDuration := 24 * time.Hour
	if cfg.GetTokenExpiration() > 0 {
		cookieDuration = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	return &FlowAuthenticator{
		dispatcher:     dispatcher,
		sessions:       sessions,
		cfg:            cfg,
		cookieDuration: cookieDuration,
		Logger:         defLogger{},
	}, nil
}

func (a *FlowAuthenticator) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

// Connect drives mail_auth for the inbound request. Success establishes a
// session and redirects to the recorded pre-auth destination or the
// configured success path; a rejected link redirects to the invalid-link
// page.
func (a *FlowAuthenticator) Connect(ctx router.Context) error {
	outcome := a.dispatcher.Authenticate(ctx, StrategyMailAuth)

	if outcome.Failed() {
		return a.dispatcher.ErrorHandler(ctx, outcome.Err())
	}

	if outcome.Rejected() {
		return ctx.Redirect(a.cfg.GetFailureRedirect(), http.StatusFound)
	}

	token, err := a.sessions.SerializePrincipal(outcome.Principal())
	if err != nil {
		a.Logger.Error("Connect session serialization error", "error", err)
		return a.dispatcher.ErrorHandler(ctx, err)
	}

	a.setCookieToken(ctx, token, a.cookieDuration)

	return ctx.Redirect(a.GetRedirect(ctx, a.cfg.GetSuccessRedirect()), http.StatusFound)
}

// Disconnect destroys the current session and sends the user back to the
// login entry point.
func (a *FlowAuthenticator) Disconnect(ctx router.Context) error {
	a.cookieDel(ctx, a.cfg.GetContextKey())
	return ctx.Redirect(a.cfg.GetLoginRoute(), http.StatusFound)
}

// SetRedirect records the original destination so Connect can return the
// user there after the link round-trip.
func (a *FlowAuthenticator) SetRedirect(ctx router.Context) {
	rejectedRoute := a.cfg.GetRejectedRouteKey()

	ctx.Cookie(&router.Cookie{
		Name:     rejectedRoute,
		Value:    ctx.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *FlowAuthenticator) GetRedirect(ctx router.Context, def ...string) string {
	rejectedRoute := a.cfg.GetRejectedRouteKey()
	r := ctx.Cookies(rejectedRoute)
	if r == "" {
		return def[0]
	}
	a.cookieDel(ctx, rejectedRoute)
	return r
}

func (a *FlowAuthenticator) setCookieToken(c router.Context, val string, duration time.Duration) {
	c.Cookie(&router.Cookie{
		Name:     a.cfg.GetContextKey(),
		Value:    val,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *FlowAuthenticator) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
