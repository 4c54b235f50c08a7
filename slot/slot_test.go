package slot

import (
	"sync"
	"testing"

	"github.com/fatcatfablab/ticketgen/types"
)

func TestSetOnce(t *testing.T) {
	s := New()

	if _, ok := s.Get(); ok {
		t.Fatal("new slot should be empty")
	}

	first := types.Ticket{0x01, 0x02}
	if !s.Set(first) {
		t.Fatal("first Set should win")
	}

	if s.Set(types.Ticket{0xff}) {
		t.Error("second Set should be rejected")
	}

	got, ok := s.Get()
	if !ok {
		t.Fatal("slot should be filled")
	}
	if got.Hex() != first.Hex() {
		t.Errorf("slot holds %s, want %s", got.Hex(), first.Hex())
	}
}

func TestGetNonDestructive(t *testing.T) {
	s := New()
	s.Set(types.Ticket{0xab})

	for i := 0; i < 3; i++ {
		got, ok := s.Get()
		if !ok || got.Hex() != "ab" {
			t.Fatalf("read %d lost the ticket", i)
		}
	}
}

func TestConcurrentSet(t *testing.T) {
	s := New()
	var wins int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(b byte) {
			defer wg.Done()
			if s.Set(types.Ticket{b}) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(byte(i))
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("%d writers won, want exactly 1", wins)
	}
	if _, ok := s.Get(); !ok {
		t.Error("slot should be filled")
	}
}
