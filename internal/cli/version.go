package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/reqmaster/pkg/reqmaster"
)

const modulePath = "github.com/mesh-intelligence/reqmaster"

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the reqmaster version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.stdout, "reqmaster v%s\nmodule: %s\n", reqmaster.Version, modulePath)
			return nil
		},
	}
}
