// Package slot holds the hand-off cell between the agent's
// notification handler and the polling acquisition loop.
package slot

import (
	"sync"

	"github.com/fatcatfablab/ticketgen/types"
)

// Slot is a write-once cell. The notification handler fills it, the
// acquisition loop polls it. The mutex matters because the write and
// the reads happen on different call stacks relative to the pump.
type Slot struct {
	mu     sync.Mutex
	ticket types.Ticket
	filled bool
}

func New() *Slot {
	return &Slot{}
}

// Set stores t and returns true on the first call. Later calls change
// nothing and return false.
func (s *Slot) Set(t types.Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filled {
		return false
	}
	s.ticket = append(types.Ticket(nil), t...)
	s.filled = true
	return true
}

// Get returns the stored ticket without clearing it.
func (s *Slot) Get() (types.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticket, s.filled
}
