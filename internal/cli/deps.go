// Package cli provides the Cobra command tree and dependency injection
// wiring for the keeper CLI. This file defines the Dependencies struct
// (Composition Root) that wires the domain packages together.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/talekeeper/keeper/internal/api"
	"github.com/talekeeper/keeper/internal/chat"
	"github.com/talekeeper/keeper/internal/config"
	"github.com/talekeeper/keeper/internal/intent"
	"github.com/talekeeper/keeper/internal/logging"
	"github.com/talekeeper/keeper/internal/session"
	"github.com/talekeeper/keeper/internal/ui"
)

// Dependencies holds all services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Config   *config.Manager
	Sessions session.Store
	Session  *session.Session // nil when signed out
	Client   *api.Client
	Headless *ui.HeadlessManager
	Theme    *ui.Theme
	Logger   *slog.Logger

	// ConfigDir overrides config.ResolveDir when set.
	ConfigDir string
	// HTTPClient overrides the client built from the api config.
	HTTPClient *http.Client

	logCloser io.Closer
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates the dependencies that need no configuration.
// Everything else is initialized lazily by the Ensure methods once flags
// have been parsed.
func InitDependencies() {
	deps = &Dependencies{
		Config:   config.NewManager(),
		Headless: ui.NewHeadlessManager(),
		Logger:   logging.Discard(),
	}
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// EnsureConfig loads the configuration and everything derived from it:
// the theme, the headless override and the session store.
// Subsequent calls are no-ops.
func (d *Dependencies) EnsureConfig() error {
	if d.Config == nil {
		d.Config = config.NewManager()
	}
	if d.Config.Get() == nil {
		if _, err := d.Config.Load(d.ConfigDir); err != nil {
			return err
		}
	}
	cfg := d.Config.Get()

	if d.Theme == nil {
		d.Theme = ui.NewTheme(cfg.System.NoColor)
	}
	if d.Headless == nil {
		d.Headless = ui.NewHeadlessManager()
	}
	if cfg.System.NonInteractive {
		d.Headless.ForceHeadless(true)
	}
	if d.Sessions == nil {
		d.Sessions = session.NewFileStore(d.Config.Dir())
	}
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	return nil
}

// EnsureLogger opens the log file named by the configuration.
// Subsequent calls are no-ops.
func (d *Dependencies) EnsureLogger() error {
	if d.logCloser != nil {
		return nil
	}
	if err := d.EnsureConfig(); err != nil {
		return err
	}
	logger, closer, err := logging.Open(d.Config.Get().System, d.Config.Dir())
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	d.Logger = logger
	d.logCloser = closer
	return nil
}

// EnsureClient builds the backend client, carrying the stored session
// token when somebody is signed in. Subsequent calls are no-ops.
func (d *Dependencies) EnsureClient() error {
	if d.Client != nil {
		return nil
	}
	if err := d.EnsureConfig(); err != nil {
		return err
	}
	cfg := d.Config.Get()

	sess, err := d.Sessions.Load()
	switch {
	case errors.Is(err, session.ErrNoSession):
		sess = nil
	case err != nil:
		return fmt.Errorf("load session: %w", err)
	}
	d.Session = sess

	httpClient := d.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.API.Timeout()}
	}
	client := api.NewClient(cfg.API.BaseURL, httpClient)
	if sess != nil {
		client = client.WithToken(sess.Token)
	}
	d.Client = client
	return nil
}

// Vocabulary returns the classifier vocabulary from the configuration.
func (d *Dependencies) Vocabulary() intent.Vocabulary {
	if cfg := d.Config.Get(); cfg != nil {
		return intent.NewVocabulary(cfg.Chat.Genres, cfg.Chat.Authors)
	}
	return intent.DefaultVocabulary()
}

// NewRouter creates a chat router over the backend client. Messages are
// persisted only when a session token is available. The caller must
// Close the router.
func (d *Dependencies) NewRouter() (*chat.Router, error) {
	if err := d.EnsureClient(); err != nil {
		return nil, err
	}
	return chat.NewRouter(d.Client, chat.Options{
		Vocabulary: d.Vocabulary(),
		Persist:    d.Client.HasToken(),
		Logger:     d.Logger,
	}), nil
}

// Close releases the log file.
func (d *Dependencies) Close() error {
	if d.logCloser == nil {
		return nil
	}
	err := d.logCloser.Close()
	d.logCloser = nil
	return err
}
