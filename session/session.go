// Package session keeps the agent session alive after the ticket has
// been handled. The agent only delivers (and only stays valid) while
// somebody pumps it, so the loop pumps until the operator is done.
package session

import (
	"bufio"
	"context"
	"io"
	"log"
	"time"
)

const pumpInterval = 100 * time.Millisecond

type Pumper interface {
	Pump(ctx context.Context) error
}

// Hold pumps p until one line arrives on input (or input closes), then
// returns. The read runs on its own goroutine because there is no
// non-blocking line read; nothing coordinates with it beyond the done
// channel.
func Hold(ctx context.Context, p Pumper, input io.Reader) error {
	done := make(chan struct{})
	go func() {
		r := bufio.NewReader(input)
		if _, err := r.ReadString('\n'); err != nil && err != io.EOF {
			log.Printf("error reading input: %s", err)
		}
		close(done)
	}()

	t := time.NewTicker(pumpInterval)
	defer t.Stop()

	for {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := p.Pump(ctx); err != nil {
				log.Printf("error pumping notifications: %s", err)
			}
		}
	}
}
