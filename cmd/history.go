package cmd

import (
	"fmt"
	"time"

	"github.com/fatcatfablab/ticketgen/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:          "history",
	Short:        "Dump the ticket issuance history",
	RunE:         dumpHistory,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func dumpHistory(cmd *cobra.Command, _ []string) error {
	st, err := history.New(dsn)
	if err != nil {
		return fmt.Errorf("error opening history database: %w", err)
	}
	defer st.Close()

	records, err := st.Dump(cmd.Context())
	if err != nil {
		return fmt.Errorf("error dumping history: %w", err)
	}

	for _, r := range records {
		fmt.Printf(
			"%s,%s,%s,%d,%s,%s\n",
			r.Timestamp.Format("01/02/2006"),
			r.Timestamp.Format(time.TimeOnly),
			r.Audience,
			r.TicketBytes,
			r.Destination,
			r.Outcome,
		)
	}
	return nil
}
