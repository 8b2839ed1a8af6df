package cli

import (
	"fmt"
	"net/url"

	"loadboard/internal/loads"
	"loadboard/internal/reporting"

	"github.com/spf13/cobra"
)

var statsFlags struct {
	status    string
	equipment string
	commodity string
	query     string
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show assignment-channel statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if statsFlags.status != "" {
			q.Set("status", statsFlags.status)
		}
		if statsFlags.equipment != "" {
			q.Set("equipment_type", statsFlags.equipment)
		}
		if statsFlags.commodity != "" {
			q.Set("commodity_type", statsFlags.commodity)
		}
		if statsFlags.query != "" {
			q.Set("q", statsFlags.query)
		}

		stats, err := client().Stats(q)
		if err != nil {
			return err
		}
		printChannelSummary("manual", stats.Manual)
		fmt.Println()
		printChannelSummary("url_api", stats.URLAPI)
		return nil
	},
}

func printChannelSummary(name string, s reporting.ChannelSummary) {
	fmt.Println(titleStyle.Render(name))
	fmt.Printf("  loads:                  %d\n", s.Count)
	fmt.Printf("  total agreed price:     $%.2f\n", s.TotalAgreedPrice)
	fmt.Printf("  agreed minus loadboard: $%.2f\n", s.TotalAgreedMinusLoadboard)
	fmt.Printf("  avg time per call:      %.1fs\n", s.AvgTimePerCallSeconds)
	for _, ct := range []loads.CallType{loads.CallTypeManual, loads.CallTypeAgent} {
		cs, ok := s.PhoneCalls[ct]
		if !ok {
			continue
		}
		fmt.Printf("  %s calls: %d (%d agreed, %.0fs total; +%d =%d -%d)\n",
			ct, cs.Count, cs.AgreedCount, cs.TotalSeconds,
			cs.Sentiment.Positive, cs.Sentiment.Neutral, cs.Sentiment.Negative)
	}
}

func init() {
	statsCmd.Flags().StringVar(&statsFlags.status, "status", "", "filter by status (pending|agreed)")
	statsCmd.Flags().StringVar(&statsFlags.equipment, "equipment", "", "filter by equipment type")
	statsCmd.Flags().StringVar(&statsFlags.commodity, "commodity", "", "filter by commodity type")
	statsCmd.Flags().StringVarP(&statsFlags.query, "query", "q", "", "free-text search")
}
