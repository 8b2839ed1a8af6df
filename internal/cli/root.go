package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagAddr   string
	flagAPIKey string
)

var rootCmd = &cobra.Command{
	Use:   "loadctl",
	Short: "Terminal client for the loadboard API",
	Long: `loadctl talks to a running loadboard API server.
List and inspect loads, record phone calls, and pull assignment statistics
without leaving the terminal.`,
	SilenceUsage: true,
}

// client builds an API client from flags, falling back to env.
func client() *Client {
	addr := flagAddr
	if addr == "" {
		addr = os.Getenv("LOADBOARD_ADDR")
	}
	if addr == "" {
		addr = "http://localhost:8000"
	}
	key := flagAPIKey
	if key == "" {
		key = os.Getenv("LOADBOARD_API_KEY")
	}
	return NewClient(addr, key)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "", "API base URL (default $LOADBOARD_ADDR or http://localhost:8000)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "API key (default $LOADBOARD_API_KEY)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(callsCmd)
}
