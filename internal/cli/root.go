package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/talekeeper/keeper/internal/ui"
	"github.com/talekeeper/keeper/pkg/version"
)

// errNotInitialized is returned when a command runs before InitDependencies.
var errNotInitialized = errors.New("dependencies not initialized")

// reportedError marks an error the command has already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// rootFlags are the persistent flags shared by every command.
var rootFlags struct {
	configDir      string
	noColor        bool
	nonInteractive bool
}

var rootCmd = &cobra.Command{
	Use:   "keeper",
	Short: "Keeper of Tales: book recommendations in your terminal",
	Long: `keeper is a terminal client for the Keeper of Tales book assistant.

Sign in, then chat with the keeper about books: ask for titles similar to
one you loved, books by an author, recommendations in a genre, or the most
popular books and authors. Conversations are saved to your account.`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepareDeps,
}

// Execute initializes dependencies and runs the root command.
func Execute() error {
	InitDependencies()
	defer func() { _ = deps.Close() }()

	err := rootCmd.Execute()
	reportError(rootCmd.ErrOrStderr(), err)
	return err
}

// reportError prints err unless the command already showed it.
func reportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var shown *reportedError
	if errors.As(err, &shown) {
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

// prepareDeps applies the persistent flags and opens the log before any
// command runs. Commands annotated with skipDeps run without configuration.
func prepareDeps(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations["skipDeps"] == "true" {
		return nil
	}
	if deps == nil {
		return errNotInitialized
	}
	if rootFlags.configDir != "" {
		deps.ConfigDir = rootFlags.configDir
	}
	if err := deps.EnsureConfig(); err != nil {
		return err
	}
	if rootFlags.noColor {
		deps.Theme = ui.NewTheme(true)
	}
	if rootFlags.nonInteractive {
		deps.Headless.ForceHeadless(true)
	}
	return deps.EnsureLogger()
}

// requireDeps returns the loaded dependencies for a command.
func requireDeps() (*Dependencies, error) {
	if deps == nil {
		return nil, errNotInitialized
	}
	if err := deps.EnsureConfig(); err != nil {
		return nil, err
	}
	return deps, nil
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("keeper %s\n", version.GetVersion()))

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configDir, "config-dir", "", "configuration directory (default ~/.keeper)")
	pf.BoolVar(&rootFlags.noColor, "no-color", false, "disable colors")
	pf.BoolVar(&rootFlags.nonInteractive, "non-interactive", false, "never prompt; read input from flags and stdin")

	rootCmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newChatCmd(),
		newAskCmd(),
		newClassifyCmd(),
		newDevServerCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
}
