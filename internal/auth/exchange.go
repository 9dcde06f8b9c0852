package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/talekeeper/keeper/internal/api"
	"github.com/talekeeper/keeper/internal/session"
)

// GenericFailureMessage is shown when the server gave no message.
const GenericFailureMessage = "An error occurred"

// MinInterests is the number of declared interests that sends a user
// straight to the dashboard instead of genre selection.
const MinInterests = 3

// Route is the view the user is sent to after a successful exchange.
type Route int

const (
	// RouteDashboard is chosen when the profile has at least MinInterests interests.
	RouteDashboard Route = iota
	// RouteGenreSelection asks the user to pick interests first.
	RouteGenreSelection
)

// String returns the route's view name.
func (r Route) String() string {
	if r == RouteGenreSelection {
		return "genres"
	}
	return "dashboard"
}

// Authenticator is the part of the backend client used for the exchange.
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
	Signup(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
}

// Compile-time interface check.
var _ Authenticator = (*api.Client)(nil)

// Result describes a successful exchange.
type Result struct {
	Session *session.Session
	Message string // server greeting, may be empty
	Route   Route
	UserID  string // carried to the genre selection view
}

// FailureError is a credential exchange failure. Message is what the user
// sees: the server's message, or GenericFailureMessage.
type FailureError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FailureError) Error() string {
	return e.Message
}

// Unwrap returns the underlying transport or status error.
func (e *FailureError) Unwrap() error {
	return e.Err
}

// Exchanger submits credential forms.
type Exchanger struct {
	client Authenticator
	store  session.Store
	logger *slog.Logger
}

// NewExchanger wires an Exchanger. A nil logger discards output.
func NewExchanger(client Authenticator, store session.Store, logger *slog.Logger) *Exchanger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Exchanger{client: client, store: store, logger: logger}
}

// Submit validates the form, posts it to the endpoint of its mode and on
// success overwrites the stored session. The form is never modified, so
// the caller can resubmit it after a failure. There is no retry.
func (e *Exchanger) Submit(ctx context.Context, form Form) (*Result, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	log := e.logger.With("mode", form.Mode.String(), "username", form.Username)

	var (
		resp *api.AuthResponse
		err  error
	)
	if form.Mode == ModeSignUp {
		resp, err = e.client.Signup(ctx, form.Credentials())
	} else {
		resp, err = e.client.Login(ctx, form.Credentials())
	}
	if err != nil {
		log.Warn("credential exchange failed", "error", err)
		msg := api.ServerMessage(err)
		if msg == "" {
			msg = GenericFailureMessage
		}
		return nil, &FailureError{Message: msg, Err: err}
	}
	if resp.Token == "" {
		log.Warn("credential exchange returned no token")
		msg := resp.Message
		if msg == "" {
			msg = GenericFailureMessage
		}
		return nil, &FailureError{Message: msg, Err: errors.New("auth: response carried no token")}
	}

	sess := &session.Session{
		Token: resp.Token,
		User: session.Profile{
			ID:        resp.User.ID,
			Username:  resp.User.Username,
			Name:      resp.User.Name,
			Email:     resp.User.Email,
			Interests: resp.User.Interests,
		},
	}
	if sess.User.Username == "" {
		sess.User.Username = form.Username
	}
	if err := e.store.Save(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	route := RouteFor(sess.User)
	log.Info("credential exchange succeeded", "user_id", sess.User.ID, "route", route.String())

	return &Result{
		Session: sess,
		Message: resp.Message,
		Route:   route,
		UserID:  sess.User.ID,
	}, nil
}

// Logout forgets the stored session.
func (e *Exchanger) Logout() error {
	if err := e.store.Delete(); err != nil {
		return err
	}
	e.logger.Info("signed out")
	return nil
}

// RouteFor picks the post-login view for a profile.
func RouteFor(p session.Profile) Route {
	if len(p.Interests) >= MinInterests {
		return RouteDashboard
	}
	return RouteGenreSelection
}
