package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dsn        string
	agentAddr  string
	agentToken string

	rootCmd = &cobra.Command{
		Use:   "ticketgen",
		Short: "Fetch a one-time web API auth ticket from the identity agent",
		Long: "ticketgen asks the local identity agent for a web API\n" +
			"authentication ticket and either POSTs it to a verification\n" +
			"endpoint or saves it to a file, keeping the agent session\n" +
			"alive until the operator is done with it.",
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dsn, "dsn", envOr("TICKETGEN_DSN", "ticketgen.sqlite"), "DSN for the issuance history database")
	pf.StringVar(&agentAddr, "agentAddr", envOr("TICKETGEN_AGENT_ADDR", "127.0.0.1:8731"), "identity agent address")
	pf.StringVar(&agentToken, "token", os.Getenv("TICKETGEN_AGENT_TOKEN"), "identity agent auth token")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
