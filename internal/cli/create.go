package cli

import (
	"fmt"
	"time"

	"loadboard/internal/loads"

	"github.com/spf13/cobra"
)

var createFlags struct {
	loadID      string
	origin      string
	destination string
	pickup      string
	delivery    string
	equipment   string
	commodity   string
	rate        float64
	weight      float64
	miles       float64
	pieces      int
	dimensions  string
	notes       string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a shipment",
	RunE: func(cmd *cobra.Command, args []string) error {
		pickup, err := parseTimestamp(createFlags.pickup)
		if err != nil {
			return fmt.Errorf("invalid --pickup: %w", err)
		}
		delivery, err := parseTimestamp(createFlags.delivery)
		if err != nil {
			return fmt.Errorf("invalid --delivery: %w", err)
		}

		req := loads.CreateLoadRequest{
			LoadID:           createFlags.loadID,
			Origin:           createFlags.origin,
			Destination:      createFlags.destination,
			PickupDatetime:   pickup,
			DeliveryDatetime: delivery,
		}
		if cmd.Flags().Changed("equipment") {
			req.EquipmentType = &createFlags.equipment
		}
		if cmd.Flags().Changed("commodity") {
			req.CommodityType = &createFlags.commodity
		}
		if cmd.Flags().Changed("rate") {
			req.LoadboardRate = &createFlags.rate
		}
		if cmd.Flags().Changed("weight") {
			req.Weight = &createFlags.weight
		}
		if cmd.Flags().Changed("miles") {
			req.Miles = &createFlags.miles
		}
		if cmd.Flags().Changed("pieces") {
			req.NumOfPieces = &createFlags.pieces
		}
		if cmd.Flags().Changed("dimensions") {
			req.Dimensions = &createFlags.dimensions
		}
		if cmd.Flags().Changed("notes") {
			req.Notes = &createFlags.notes
		}

		l, err := client().CreateShipment(req)
		if err != nil {
			return err
		}
		fmt.Printf("created %s (%s)\n", l.LoadID, l.ID)
		printLoad(l)
		return nil
	},
}

// parseTimestamp accepts RFC3339 or a bare date, which maps to midnight UTC.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func init() {
	createCmd.Flags().StringVar(&createFlags.loadID, "load-id", "", "external load identifier (required)")
	createCmd.Flags().StringVar(&createFlags.origin, "origin", "", "origin city (required)")
	createCmd.Flags().StringVar(&createFlags.destination, "destination", "", "destination city (required)")
	createCmd.Flags().StringVar(&createFlags.pickup, "pickup", "", "pickup timestamp, RFC3339 or YYYY-MM-DD (required)")
	createCmd.Flags().StringVar(&createFlags.delivery, "delivery", "", "delivery timestamp, RFC3339 or YYYY-MM-DD (required)")
	createCmd.Flags().StringVar(&createFlags.equipment, "equipment", "", "equipment type")
	createCmd.Flags().StringVar(&createFlags.commodity, "commodity", "", "commodity type")
	createCmd.Flags().Float64Var(&createFlags.rate, "rate", 0, "loadboard rate")
	createCmd.Flags().Float64Var(&createFlags.weight, "weight", 0, "weight in pounds")
	createCmd.Flags().Float64Var(&createFlags.miles, "miles", 0, "route miles")
	createCmd.Flags().IntVar(&createFlags.pieces, "pieces", 0, "number of pieces")
	createCmd.Flags().StringVar(&createFlags.dimensions, "dimensions", "", "freight dimensions")
	createCmd.Flags().StringVar(&createFlags.notes, "notes", "", "free-form notes")

	_ = createCmd.MarkFlagRequired("load-id")
	_ = createCmd.MarkFlagRequired("origin")
	_ = createCmd.MarkFlagRequired("destination")
	_ = createCmd.MarkFlagRequired("pickup")
	_ = createCmd.MarkFlagRequired("delivery")
}
