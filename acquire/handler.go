package acquire

import (
	"log"

	"github.com/fatcatfablab/ticketgen/slot"
	"github.com/fatcatfablab/ticketgen/types"
)

// Handler returns the notification handler that lands ticket results
// in s. Only the first non-empty success is kept; the agent sending a
// second one is a protocol violation, logged and ignored. Agent-side
// failures are logged and leave the slot untouched, which surfaces as
// the acquisition loop timing out.
func Handler(s *slot.Slot) func(types.TicketResult) {
	return func(r types.TicketResult) {
		if r.Err != nil {
			log.Printf("agent failed to generate ticket: %s", r.Err)
			return
		}
		if len(r.Ticket) == 0 {
			log.Printf("agent sent an empty ticket for handle %d", r.Handle)
			return
		}
		if !s.Set(r.Ticket) {
			log.Printf("duplicate ticket notification for handle %d ignored", r.Handle)
			return
		}
		log.Printf("ticket received, %d bytes", len(r.Ticket))
	}
}
