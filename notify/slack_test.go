package notify

import (
	"context"
	"testing"
)

func TestSilentMode(t *testing.T) {
	n := NewSlack("#ops", "xoxb-fake", true)
	if err := n.Post(context.Background(), "ticket delivered"); err != nil {
		t.Errorf("silent post should never fail: %s", err)
	}
}
