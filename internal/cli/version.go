package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talekeeper/keeper/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipDeps": "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "keeper %s\n", version.GetFullVersion())
		},
	}
}
