package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fatcatfablab/ticketgen/acquire"
	"github.com/fatcatfablab/ticketgen/dispatch"
	"github.com/fatcatfablab/ticketgen/history"
	"github.com/fatcatfablab/ticketgen/notify"
	"github.com/fatcatfablab/ticketgen/provider"
	"github.com/fatcatfablab/ticketgen/session"
	"github.com/fatcatfablab/ticketgen/slot"
	"github.com/fatcatfablab/ticketgen/types"
)

var (
	// flags
	postUrl      string
	email        string
	outputFile   string
	exitAfter    bool
	audience     string
	slackToken   string
	slackChannel string
	silent       bool

	runCmd = &cobra.Command{
		Use:          "run",
		Short:        "Request a ticket and deliver it",
		RunE:         run,
		SilenceUsage: true,
	}
)

func init() {
	pf := runCmd.Flags()
	pf.StringVarP(&postUrl, "url", "u", "", "URL to POST the auth ticket to")
	pf.StringVarP(&email, "email", "e", "", "Email to send with the auth ticket")
	pf.StringVarP(&outputFile, "output-file", "o", "auth_ticket.txt", "Output file for the auth ticket")
	pf.BoolVarP(&exitAfter, "exit", "x", false, "Exit immediately after writing the ticket file")
	pf.StringVar(&audience, "audience", "BitCraftApiServer", "Identity the ticket is requested for")
	pf.StringVar(&slackToken, "slackToken", os.Getenv("TICKETGEN_SLACK_TOKEN"), "Slack token")
	pf.StringVar(&slackChannel, "slackChannel", os.Getenv("TICKETGEN_SLACK_CHANNEL"), "Slack channel")
	pf.BoolVar(&silent, "silent", false, "Don't post notices to slack")

	runCmd.MarkFlagsRequiredTogether("url", "email")
	runCmd.MarkFlagsMutuallyExclusive("url", "output-file")
	runCmd.MarkFlagsMutuallyExclusive("email", "output-file")
	runCmd.MarkFlagsMutuallyExclusive("url", "exit")
	runCmd.MarkFlagsMutuallyExclusive("email", "exit")

	rootCmd.AddCommand(runCmd)
}

func run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	st, err := history.New(dsn)
	if err != nil {
		return fmt.Errorf("error opening history database: %w", err)
	}
	defer st.Close()

	var notifier notify.Notifier
	if slackToken != "" && slackChannel != "" {
		notifier = notify.NewSlack(slackChannel, slackToken, silent)
	}

	target, fatalDispatch, destination, err := buildTarget()
	if err != nil {
		return err
	}

	agent := provider.New(agentAddr, agentToken, nil)
	sess, err := agent.Session(ctx)
	if err != nil {
		return fmt.Errorf("error reaching identity agent: %w", err)
	}
	if !sess.LoggedOn {
		return errors.New("user is not logged into the identity agent")
	}
	log.Printf("logged on as %s", sess.UserId)

	// The handler must be in place before the request goes out, or a
	// fast agent could answer into the void.
	cell := slot.New()
	agent.HandleTicket(acquire.Handler(cell))

	handle, err := agent.RequestTicket(ctx, audience)
	if err != nil {
		return err
	}
	log.Printf("ticket requested for %q, handle %d", audience, handle)

	ticket, err := acquire.New(agent, cell, true).Wait(ctx)
	if errors.Is(err, acquire.ErrTimeout) {
		log.Printf("timeout waiting for ticket response")
		record(ctx, st, 0, destination, "timeout")
		notice(ctx, notifier, "ticket request for %s timed out", audience)
		return hold(ctx, agent)
	} else if err != nil {
		return err
	}

	out, err := target.Dispatch(ctx, ticket)
	if err != nil {
		if fatalDispatch {
			record(ctx, st, len(ticket), destination, "failed")
			notice(ctx, notifier, "ticket delivery to %s failed: %s", destination, err)
			return fmt.Errorf("error dispatching ticket: %w", err)
		}
		log.Printf("failed to write ticket: %s", err)
	}

	switch out {
	case types.DeliveredTerminate, types.DeliveredContinue:
		log.Printf("ticket delivered to %s", destination)
		record(ctx, st, len(ticket), destination, "delivered")
		notice(ctx, notifier, "ticket for %s delivered to %s", audience, destination)
	default:
		record(ctx, st, len(ticket), destination, "write failed")
	}

	if out == types.DeliveredTerminate {
		return nil
	}

	return hold(ctx, agent)
}

func buildTarget() (types.Dispatcher, bool, string, error) {
	if postUrl != "" {
		u, err := url.Parse(postUrl)
		if err != nil {
			return nil, false, "", fmt.Errorf("failed to parse %s: %w", postUrl, err)
		}
		return dispatch.NewRemote(u, email), true, postUrl, nil
	}
	return dispatch.NewFile(outputFile, exitAfter), false, outputFile, nil
}

func hold(ctx context.Context, agent *provider.Client) error {
	fmt.Println("Session held open. Press Enter to exit...")
	return session.Hold(ctx, agent, os.Stdin)
}

func record(ctx context.Context, st *history.Store, ticketBytes int, destination, outcome string) {
	err := st.Record(ctx, history.Record{
		Timestamp:   time.Now(),
		Audience:    audience,
		TicketBytes: ticketBytes,
		Destination: destination,
		Outcome:     outcome,
	})
	if err != nil {
		log.Printf("error recording history: %s", err)
	}
}

func notice(ctx context.Context, n notify.Notifier, format string, args ...any) {
	if n == nil {
		return
	}
	if err := n.Post(ctx, fmt.Sprintf(format, args...)); err != nil {
		log.Printf("error posting notice: %s", err)
	}
}
