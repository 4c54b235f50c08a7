// Package acquire drives the agent's pump until the ticket slot fills
// or the attempt budget runs out.
package acquire

import (
	"context"
	"errors"
	"log"
	"time"

	pb "github.com/schollz/progressbar/v3"

	"github.com/fatcatfablab/ticketgen/slot"
	"github.com/fatcatfablab/ticketgen/types"
)

const (
	maxAttempts  = 100
	pumpInterval = 100 * time.Millisecond
)

// ErrTimeout means the attempt budget ran out with no ticket. Nothing
// was dispatched; the run still goes on to hold the session open.
var ErrTimeout = errors.New("timed out waiting for ticket response")

type Pumper interface {
	Pump(ctx context.Context) error
}

type Loop struct {
	pumper   Pumper
	slot     *slot.Slot
	attempts int
	interval time.Duration
	progress bool
}

func New(p Pumper, s *slot.Slot, progress bool) *Loop {
	return &Loop{
		pumper:   p,
		slot:     s,
		attempts: maxAttempts,
		interval: pumpInterval,
		progress: progress,
	}
}

// Wait pumps, checks the slot, and sleeps, until a ticket lands or the
// budget is spent. The check always follows a pump: the agent delivers
// notifications only inside Pump, so checking first could never see a
// fresher result. An iteration that finds the ticket returns without
// sleeping.
func (l *Loop) Wait(ctx context.Context) (types.Ticket, error) {
	var bar *pb.ProgressBar
	if l.progress {
		bar = pb.Default(int64(l.attempts), "waiting for ticket")
	}

	for attempts := 0; attempts < l.attempts; attempts++ {
		if err := l.pumper.Pump(ctx); err != nil {
			log.Printf("error pumping notifications: %s", err)
		}

		if t, ok := l.slot.Get(); ok {
			if bar != nil {
				bar.Clear()
			}
			return t, nil
		}

		if bar != nil {
			bar.Add(1)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.interval):
		}
	}

	if bar != nil {
		bar.Clear()
	}
	return nil, ErrTimeout
}
