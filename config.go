package auth

// ConfigObject is a plain value implementation of Config. Zero fields fall
// back to the defaults the login flow shipped with.
type ConfigObject struct {
	SigningKey       string `json:"signing_key,omitempty"`
	ContextKey       string `json:"context_key,omitempty"`
	TokenExpiration  int    `json:"token_expiration,omitempty"`
	Issuer           string `json:"issuer,omitempty"`
	SuccessRedirect  string `json:"success_redirect,omitempty"`
	FailureRedirect  string `json:"failure_redirect,omitempty"`
	LoginRoute       string `json:"login_route,omitempty"`
	RejectedRouteKey string `json:"rejected_route_key,omitempty"`
}

var _ Config = ConfigObject{}

func (c ConfigObject) GetSigningKey() string { return c.SigningKey }

func (c ConfigObject) GetContextKey() string {
	if c.ContextKey == "" {
		return "jwt"
	}
	return c.ContextKey
}

func (c ConfigObject) GetTokenExpiration() int { return c.TokenExpiration }

func (c ConfigObject) GetIssuer() string { return c.Issuer }

func (c ConfigObject) GetSuccessRedirect() string {
	if c.SuccessRedirect == "" {
		return "/succes"
	}
	return c.SuccessRedirect
}

func (c ConfigObject) GetFailureRedirect() string {
	if c.FailureRedirect == "" {
		return "/lien_incorrect"
	}
	return c.FailureRedirect
}

func (c ConfigObject) GetLoginRoute() string {
	if c.LoginRoute == "" {
		return "/email"
	}
	return c.LoginRoute
}

func (c ConfigObject) GetRejectedRouteKey() string {
	if c.RejectedRouteKey == "" {
		return "redirect_to"
	}
	return c.RejectedRouteKey
}
