package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vkngwrapper/extmem/extmem"
)

func newKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the external memory handle kinds",
		Long: `List every handle kind a case can use, the family it belongs to, and
whether it can be used on this platform.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "KIND\tFAMILY\tPLATFORM")
			for _, kind := range extmem.AllHandleKinds {
				platform := "no"
				if kind.IsSupportedOnPlatform() {
					platform = "yes"
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\n", kind.Name(), kind.Family(), platform)
			}
			return writer.Flush()
		},
	}
}
