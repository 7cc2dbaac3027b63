package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestChannelFor(t *testing.T) {
	if got := channelFor("EVT1"); got != "attendance:EVT1" {
		t.Errorf("channel %s", got)
	}
}

// Realtime must return on cancellation alone, even while nothing is
// draining output, so a disconnecting client never strands the pump.
func TestRealtimeStopsOnCancel(t *testing.T) {
	svc := NewSignalService(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	input := make(chan []string)
	output := make(chan Signal)

	done := make(chan struct{})
	go func() {
		svc.Realtime(ctx, input, output)
		close(done)
	}()

	select {
	case input <- []string{"EVT1"}:
	case <-time.After(time.Second):
		t.Fatal("subscription was never consumed")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("realtime pump did not stop on cancel")
	}
}
