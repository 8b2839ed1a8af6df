package cli

import "github.com/spf13/cobra"

var getCmd = &cobra.Command{
	Use:   "get <load-id>",
	Short: "Show a single shipment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := client().GetShipment(args[0])
		if err != nil {
			return err
		}
		printLoad(l)
		return nil
	},
}
