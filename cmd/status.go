package cmd

import (
	"fmt"

	"github.com/fatcatfablab/ticketgen/provider"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:          "status",
	Short:        "Show the identity agent session state",
	RunE:         status,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func status(cmd *cobra.Command, _ []string) error {
	agent := provider.New(agentAddr, agentToken, nil)
	sess, err := agent.Session(cmd.Context())
	if err != nil {
		return fmt.Errorf("error reaching identity agent: %w", err)
	}

	if !sess.LoggedOn {
		fmt.Println("not logged on")
		return nil
	}
	fmt.Printf("logged on as %s\n", sess.UserId)
	return nil
}
