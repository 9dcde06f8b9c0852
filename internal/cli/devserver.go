package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talekeeper/keeper/internal/api"
	"github.com/talekeeper/keeper/internal/devapi"
	"github.com/talekeeper/keeper/internal/logging"
)

// demoUser is the account seeded by devserver --seed.
var demoUser = api.Credentials{
	Name:     "Demo Reader",
	Email:    "demo@example.com",
	Username: "demo",
	Password: "demo",
}

var demoInterests = []string{"Fantasy", "Science Fiction", "Mystery"}

func newDevServerCmd() *cobra.Command {
	var (
		addr string
		seed bool
	)
	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local stub of the recommendation backend",
		Long: `Serve the backend API from an in-memory catalog, for trying keeper
without the real service. Accounts and chats live until the process exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := requireDeps()
			if err != nil {
				return err
			}
			cfg := d.Config.Get()
			if addr == "" {
				addr = cfg.Dev.Addr
			}

			// The server has no UI, so it logs to stderr.
			logger := slog.New(logging.NewHandler(cmd.ErrOrStderr(), cfg.System))
			store := devapi.NewStore(devapi.DefaultCatalog())
			if seed {
				if _, err := store.AddUser(demoUser, demoInterests); err != nil {
					return fmt.Errorf("seed demo user: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ready := make(chan string, 1)
			go announce(ctx, cmd, ready, seed)
			return devapi.Serve(ctx, addr, devapi.New(store, logger), logger, ready)
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", "", "listen address (default from dev.addr)")
	f.BoolVar(&seed, "seed", false, "create the demo/demo account")
	return cmd
}

func announce(ctx context.Context, cmd *cobra.Command, ready <-chan string, seeded bool) {
	select {
	case <-ctx.Done():
		return
	case bound := <-ready:
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "Dev backend listening on http://%s\n", bound)
		_, _ = fmt.Fprintf(out, "Point keeper at it: keeper config set api.base_url http://%s\n", bound)
		if seeded {
			_, _ = fmt.Fprintf(out, "Demo account: %s / %s\n", demoUser.Username, demoUser.Password)
		}
	}
}
