package types

import (
	"context"
	"encoding/hex"
)

// Ticket is the one-time credential issued by the identity agent. It's
// opaque to us; the only serialized form is lowercase hex.
type Ticket []byte

func (t Ticket) Hex() string {
	return hex.EncodeToString(t)
}

// TicketResult is what a ticket notification carries: the bytes on
// success, or the agent's error.
type TicketResult struct {
	Handle uint32
	Ticket Ticket
	Err    error
}

// Outcome says what a dispatch attempt did and whether the run should
// keep the agent session open afterwards.
type Outcome int

const (
	// SkippedContinue: nothing was delivered, keep the session open.
	SkippedContinue Outcome = iota
	// DeliveredContinue: delivered, but keep the session open so the
	// operator can use the ticket before closing.
	DeliveredContinue
	// DeliveredTerminate: delivered and the run is done.
	DeliveredTerminate
)

type Dispatcher interface {
	Dispatch(ctx context.Context, t Ticket) (Outcome, error)
}
