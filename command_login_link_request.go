package auth

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// LoginLinkRequestMessage asks for a one-time login link to be mailed to the
// given address.
type LoginLinkRequestMessage struct {
	Email      string `json:"email" example:"pepe.rone@example.com" doc:"Address to send the login link to."`
	OnResponse func(resp *LoginLinkRequestResponse)
}

func (m LoginLinkRequestMessage) Type() string { return "user.login_link_request" }

func (m LoginLinkRequestMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(
			&m.Email,
			validation.Required,
			is.Email,
		),
	)
}

type LoginLinkRequestResponse struct {
	// Accepted is true whenever the request was well formed, whether or not
	// an account exists. The response must not reveal which addresses have
	// accounts.
	Accepted bool
	Errors   []string
}

// LoginLinkRequestHandler mints a MailToken for the account behind the
// address and hands the link to the mailer. Delivery itself stays outside
// this package.
type LoginLinkRequestHandler struct {
	repo     RepositoryManager
	mailer   Mailer
	tokenTTL time.Duration
	logger   Logger
}

func NewLoginLinkRequestHandler(repo RepositoryManager, mailer Mailer, tokenTTL time.Duration) *LoginLinkRequestHandler {
	if tokenTTL <= 0 {
		tokenTTL = defaultMailTokenTTL
	}
	return &LoginLinkRequestHandler{
		repo:     repo,
		mailer:   mailer,
		tokenTTL: tokenTTL,
		logger:   defLogger{},
	}
}

func (h *LoginLinkRequestHandler) WithLogger(logger Logger) *LoginLinkRequestHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *LoginLinkRequestHandler) Execute(ctx context.Context, event LoginLinkRequestMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during login link request")
	default:
		return h.execute(ctx, event)
	}
}

func (h *LoginLinkRequestHandler) execute(ctx context.Context, event LoginLinkRequestMessage) error {
	resp := &LoginLinkRequestResponse{}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := event.Validate(); err != nil {
		resp.Errors = append(resp.Errors, err.Error())
		h.respond(event, resp)
		return nil
	}

	var user *User
	var mailToken *MailToken

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		user, err = h.repo.Users().GetByEmailTx(ctx, tx, event.Email)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up account")
		}

		if user == nil {
			// Complete without signal so the response cannot be used to
			// enumerate accounts.
			return nil
		}

		mailToken, err = MintMailToken(user, MailTokenOptions{TTL: h.tokenTTL})
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to mint mail token")
		}

		if _, err = h.repo.MailTokens().CreateTx(ctx, tx, mailToken); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store mail token")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to execute login link request")
	}

	if user != nil && mailToken != nil {
		if err := h.mailer.SendLoginLink(ctx, user, mailToken); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to send login link")
		}
	}

	resp.Accepted = true
	h.respond(event, resp)

	return nil
}

func (h *LoginLinkRequestHandler) respond(event LoginLinkRequestMessage, resp *LoginLinkRequestResponse) {
	if event.OnResponse != nil {
		event.OnResponse(resp)
	}
}
