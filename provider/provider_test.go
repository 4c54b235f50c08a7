package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatcatfablab/ticketgen/types"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(strings.TrimPrefix(server.URL, "http://"), "hunter2", nil)
}

func TestSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != sessionPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer hunter2" {
			t.Errorf("authorization header is %q", got)
		}
		json.NewEncoder(w).Encode(sessionMsg{LoggedOn: true, UserId: "76561199000000001"})
	}))

	sess, err := c.Session(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !sess.LoggedOn || sess.UserId != "76561199000000001" {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestRequestTicket(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ticketsPath || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req ticketReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("error decoding request: %s", err)
		}
		if req.Audience != "BitCraftApiServer" {
			t.Errorf("audience is %q", req.Audience)
		}
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(ticketResp{Handle: 42})
	}))

	handle, err := c.RequestTicket(context.Background(), "BitCraftApiServer")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if handle != 42 {
		t.Errorf("handle is %d, want 42", handle)
	}
}

func TestPumpDispatchesNotifications(t *testing.T) {
	pending := []notification{
		{Type: "ticket", Handle: 7, Ticket: []byte{0xde, 0xad}},
		{Type: "friend", Handle: 0},
		{Type: "ticket", Handle: 8, Error: "expired session"},
	}

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != drainPath || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(pending)
	}))

	var got []types.TicketResult
	c.HandleTicket(func(r types.TicketResult) {
		got = append(got, r)
	})

	if err := c.Pump(context.Background()); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(got) != 2 {
		t.Fatalf("handler fired %d times, want 2", len(got))
	}
	if got[0].Handle != 7 || got[0].Ticket.Hex() != "dead" || got[0].Err != nil {
		t.Errorf("unexpected first result: %+v", got[0])
	}
	if got[1].Handle != 8 || got[1].Err == nil {
		t.Errorf("unexpected second result: %+v", got[1])
	}
}

func TestPumpEmptyQueue(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]notification{})
	}))

	fired := false
	c.HandleTicket(func(types.TicketResult) { fired = true })

	if err := c.Pump(context.Background()); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if fired {
		t.Error("handler fired with an empty queue")
	}
}

func TestAgentError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	if _, err := c.Session(context.Background()); err == nil {
		t.Error("expected an error from a 503")
	}
	if err := c.Pump(context.Background()); err == nil {
		t.Error("expected an error from a 503")
	}
}
