package cli

import (
	"fmt"
	"net/url"

	"loadboard/internal/loads"

	"github.com/spf13/cobra"
)

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "Work with shipment phone calls",
}

var callsAddFlags struct {
	seconds   float64
	callType  string
	sentiment string
	agreed    bool
	callID    string
	notes     string
}

var callsAddCmd = &cobra.Command{
	Use:   "add <load-id>",
	Short: "Record a phone call against a shipment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := loads.PhoneCallRequest{
			Seconds:   loads.FlexFloat(callsAddFlags.seconds),
			CallType:  loads.CallType(callsAddFlags.callType),
			Sentiment: loads.Sentiment(callsAddFlags.sentiment),
			Agreed:    loads.FlexBool(callsAddFlags.agreed),
		}
		if cmd.Flags().Changed("call-id") {
			req.CallID = &callsAddFlags.callID
		}
		if cmd.Flags().Changed("notes") {
			req.Notes = &callsAddFlags.notes
		}

		call, err := client().AddPhoneCall(args[0], req)
		if err != nil {
			return err
		}
		fmt.Printf("recorded %s call %s (%.0fs)\n", call.CallType, call.ID, call.Seconds)
		return nil
	},
}

var callsListCmd = &cobra.Command{
	Use:   "list <load-id>",
	Short: "List a shipment's phone calls",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calls, err := client().ListPhoneCalls(args[0])
		if err != nil {
			return err
		}
		printCallTable(calls)
		return nil
	},
}

var callsClearCmd = &cobra.Command{
	Use:   "clear <load-id>",
	Short: "Delete all phone calls for a shipment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := client().ClearPhoneCalls(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d call(s)\n", n)
		return nil
	},
}

var callsAllFlags struct {
	callType  string
	sentiment string
}

var callsAllCmd = &cobra.Command{
	Use:   "all",
	Short: "List phone calls across every shipment",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if callsAllFlags.callType != "" {
			q.Set("call_type", callsAllFlags.callType)
		}
		if callsAllFlags.sentiment != "" {
			q.Set("sentiment", callsAllFlags.sentiment)
		}
		calls, err := client().ListAllPhoneCalls(q)
		if err != nil {
			return err
		}
		printCallTable(calls)
		return nil
	},
}

func init() {
	callsAddCmd.Flags().Float64Var(&callsAddFlags.seconds, "seconds", 0, "call duration in seconds")
	callsAddCmd.Flags().StringVar(&callsAddFlags.callType, "type", "manual", "call type (manual|agent)")
	callsAddCmd.Flags().StringVar(&callsAddFlags.sentiment, "sentiment", "", "sentiment (positive|neutral|negative)")
	callsAddCmd.Flags().BoolVar(&callsAddFlags.agreed, "agreed", false, "whether the call reached agreement")
	callsAddCmd.Flags().StringVar(&callsAddFlags.callID, "call-id", "", "external call identifier")
	callsAddCmd.Flags().StringVar(&callsAddFlags.notes, "notes", "", "free-form notes")

	callsAllCmd.Flags().StringVar(&callsAllFlags.callType, "type", "", "filter by call type (manual|agent)")
	callsAllCmd.Flags().StringVar(&callsAllFlags.sentiment, "sentiment", "", "filter by sentiment")

	callsCmd.AddCommand(callsAddCmd)
	callsCmd.AddCommand(callsListCmd)
	callsCmd.AddCommand(callsClearCmd)
	callsCmd.AddCommand(callsAllCmd)
}
