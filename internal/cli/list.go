package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

var listFlags struct {
	status         string
	equipment      string
	commodity      string
	origin         string
	destination    string
	query          string
	assignedViaURL string
	sortBy         string
	sortOrder      string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List shipments",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		set := func(k, v string) {
			if v != "" {
				q.Set(k, v)
			}
		}
		set("status", listFlags.status)
		set("equipment_type", listFlags.equipment)
		set("commodity_type", listFlags.commodity)
		set("origin", listFlags.origin)
		set("destination", listFlags.destination)
		set("q", listFlags.query)
		set("assigned_via_url", listFlags.assignedViaURL)
		set("sort_by", listFlags.sortBy)
		set("sort_order", listFlags.sortOrder)

		ls, err := client().ListShipments(q)
		if err != nil {
			return err
		}
		printLoadTable(ls)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFlags.status, "status", "", "filter by status (pending|agreed)")
	listCmd.Flags().StringVar(&listFlags.equipment, "equipment", "", "filter by equipment type")
	listCmd.Flags().StringVar(&listFlags.commodity, "commodity", "", "filter by commodity type")
	listCmd.Flags().StringVar(&listFlags.origin, "origin", "", "filter by origin substring")
	listCmd.Flags().StringVar(&listFlags.destination, "destination", "", "filter by destination substring")
	listCmd.Flags().StringVarP(&listFlags.query, "query", "q", "", "free-text search")
	listCmd.Flags().StringVar(&listFlags.assignedViaURL, "assigned-via-url", "", "filter by assignment channel (true|false)")
	listCmd.Flags().StringVar(&listFlags.sortBy, "sort-by", "", "sort field (created_at|pickup_datetime|delivery_datetime|loadboard_rate|miles)")
	listCmd.Flags().StringVar(&listFlags.sortOrder, "sort-order", "", "sort order (asc|desc)")
}
