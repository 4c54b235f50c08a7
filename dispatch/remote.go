package dispatch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fatcatfablab/ticketgen/types"
)

// Remote delivers the ticket to a verification endpoint with a single
// POST. Only a 200 counts as delivered; anything else is an error the
// caller treats as fatal, because a one-time ticket that may not have
// been consumed must not be papered over.
type Remote struct {
	client *http.Client
	url    *url.URL
	email  string
}

func NewRemote(u *url.URL, email string) *Remote {
	return &Remote{url: u, email: email, client: &http.Client{Timeout: 30 * time.Second}}
}

func (r *Remote) Dispatch(ctx context.Context, t types.Ticket) (types.Outcome, error) {
	u := *r.url
	q := u.Query()
	q.Set("email", r.email)
	q.Set("authTicket", t.Hex())
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return types.SkippedContinue, fmt.Errorf("error building ticket request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return types.SkippedContinue, fmt.Errorf("error posting ticket: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.SkippedContinue, fmt.Errorf("ticket endpoint returned: %s", resp.Status)
	}

	return types.DeliveredTerminate, nil
}
