// agentsim is a stand-in identity agent for exercising ticketgen
// without the real thing. It serves the session, ticket request and
// notification drain endpoints, and answers every ticket request with
// a canned ticket after a configurable delay.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"sync"
	"time"
)

var (
	addr     = flag.String("addr", "127.0.0.1:8731", "Address to listen on")
	ticket   = flag.String("ticket", "deadbeef0102", "Hex ticket to issue")
	delay    = flag.Duration("delay", 500*time.Millisecond, "Delay before the ticket notification is queued")
	loggedOn = flag.Bool("logged-on", true, "Report the user as logged on")
	fail     = flag.Bool("fail", false, "Answer ticket requests with an error notification")
)

type notification struct {
	Type   string `json:"type"`
	Handle uint32 `json:"handle"`
	Ticket []byte `json:"ticket,omitempty"`
	Error  string `json:"error,omitempty"`
}

type agent struct {
	mu      sync.Mutex
	handle  uint32
	pending []notification
	raw     []byte
}

func (a *agent) session(w http.ResponseWriter, _ *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{
		"logged_on": *loggedOn,
		"user_id":   "76561199000000001",
	})
}

func (a *agent) tickets(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Audience string `json:"audience"`
	}
	j := json.NewDecoder(req.Body)
	if err := j.Decode(&body); err != nil {
		log.Printf("error parsing ticket request: %s", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	a.handle++
	h := a.handle
	a.mu.Unlock()

	log.Printf("ticket requested for %q, handle %d", body.Audience, h)

	time.AfterFunc(*delay, func() {
		n := notification{Type: "ticket", Handle: h}
		if *fail {
			n.Error = "ticket generation failed"
		} else {
			n.Ticket = a.raw
		}
		a.mu.Lock()
		a.pending = append(a.pending, n)
		a.mu.Unlock()
	})

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]uint32{"handle": h})
}

func (a *agent) drain(w http.ResponseWriter, _ *http.Request) {
	a.mu.Lock()
	pending := a.pending
	a.pending = nil
	a.mu.Unlock()

	if pending == nil {
		pending = []notification{}
	}
	json.NewEncoder(w).Encode(pending)
}

func main() {
	flag.Parse()

	raw, err := hex.DecodeString(*ticket)
	if err != nil {
		log.Fatalf("bad ticket hex %q: %s", *ticket, err)
	}

	a := &agent{raw: raw}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/session", a.session)
	mux.HandleFunc("POST /api/v1/tickets", a.tickets)
	mux.HandleFunc("POST /api/v1/notifications/drain", a.drain)

	s := &http.Server{
		Addr:    *addr,
		Handler: mux,
	}

	log.Printf("Server listening on %q", *addr)
	if err := s.ListenAndServe(); err != nil {
		panic(err)
	}
}
