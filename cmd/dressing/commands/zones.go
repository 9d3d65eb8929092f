package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dressing-calculator/utils"
)

func zonesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List transport zones and their fees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tariff := engine.Tariff()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tZONE\tFEE")
			for _, zone := range tariff.Zones {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", zone.ID, zone.Label, utils.FormatAmount(zone.Fee, tariff.Currency))
			}
			return tw.Flush()
		},
	}
	return cmd
}
