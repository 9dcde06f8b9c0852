package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talekeeper/keeper/internal/auth"
	"github.com/talekeeper/keeper/internal/session"
	"github.com/talekeeper/keeper/internal/ui"
)

// routeLabels names the post-login views.
var routeLabels = map[auth.Route]string{
	auth.RouteDashboard:      "Dashboard",
	auth.RouteGenreSelection: "Genre selection",
}

func newLoginCmd() *cobra.Command {
	var (
		signup bool
		fields = map[string]*string{}
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in, or create an account with --signup",
		Long: `Sign in to the Keeper of Tales backend and store the session token.

In a terminal a form asks for the missing fields. Without one (or with
--non-interactive) the values come from the flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := requireDeps()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			// Flag values prefill the interactive form too.
			form := auth.Form{
				Name:     *fields["name"],
				Email:    *fields["email"],
				Username: *fields["username"],
				Password: *fields["password"],
			}
			if signup {
				form.Mode = auth.ModeSignUp
			}
			defaults := make(map[string]string, len(fields))
			for name, value := range fields {
				if *value != "" {
					defaults[name] = *value
				}
			}
			d.Headless.SetDefaults(defaults)

			prompt := ui.NewCredentialPrompt(d.Theme, d.Headless)
			if err := prompt.Fill(cmd.Context(), &form); err != nil {
				if errors.Is(err, ui.ErrCancelled) {
					_, _ = fmt.Fprintln(out, "Cancelled.")
					return nil
				}
				return err
			}

			if err := d.EnsureClient(); err != nil {
				return err
			}
			sp := ui.NewSpinner(d.Theme, d.Headless, cmd.ErrOrStderr(), form.Mode.String()+"...")
			res, err := auth.NewExchanger(d.Client, d.Sessions, d.Logger).Submit(cmd.Context(), form)
			sp.Stop()

			var failure *auth.FailureError
			if errors.As(err, &failure) {
				_, _ = fmt.Fprintln(out, d.Theme.ErrorCard(form.Mode.String()+" failed", failure.Message))
				return &reportedError{err: err}
			}
			if err != nil {
				return err
			}

			// Later commands in this process use the new token.
			d.Session = res.Session
			d.Client = d.Client.WithToken(res.Session.Token)

			title := res.Message
			if title == "" {
				title = "Signed in as " + res.Session.User.Username
			}
			_, _ = fmt.Fprintln(out, d.Theme.SuccessCard(title,
				d.Theme.KeyValue("User", res.Session.User.Username),
				d.Theme.KeyValue("User ID", res.UserID),
				d.Theme.KeyValue("Next", routeLabels[res.Route]),
			))
			if res.Route == auth.RouteGenreSelection {
				_, _ = fmt.Fprintf(out, "Pick at least %d favourite genres to unlock the dashboard.\n", auth.MinInterests)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&signup, "signup", false, "create a new account")
	for _, name := range []string{"name", "email", "username", "password"} {
		fields[name] = f.String(name, "", name+" for the form")
	}
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := requireDeps()
			if err != nil {
				return err
			}
			if err := auth.NewExchanger(nil, d.Sessions, d.Logger).Logout(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			d.Session = nil
			d.Client = nil
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.Theme.SuccessCard("Signed out"))
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := requireDeps()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			sess, err := d.Sessions.Load()
			if errors.Is(err, session.ErrNoSession) {
				_, _ = fmt.Fprintln(out, "Not signed in. Run 'keeper login' first.")
				return nil
			}
			if err != nil {
				return err
			}

			interests := "none"
			if len(sess.User.Interests) > 0 {
				interests = strings.Join(sess.User.Interests, ", ")
			}
			lines := []string{
				d.Theme.KeyValue("User", sess.User.Username),
				d.Theme.KeyValue("User ID", sess.User.ID),
			}
			if sess.User.Email != "" {
				lines = append(lines, d.Theme.KeyValue("Email", sess.User.Email))
			}
			lines = append(lines,
				d.Theme.KeyValue("Interests", interests),
				d.Theme.KeyValue("Home", routeLabels[auth.RouteFor(sess.User)]),
			)
			_, _ = fmt.Fprintln(out, d.Theme.Card("Signed in", strings.Join(lines, "\n")))
			return nil
		},
	}
}
