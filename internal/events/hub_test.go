package events

import (
	"testing"
	"time"
)

func TestHubFansOut(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish("request-created", map[string]any{"id": 42})

	select {
	case ev := <-ch:
		if ev.Name != "request-created" {
			t.Fatalf("event name = %q", ev.Name)
		}
	case <-time.After(time.Second):
		t.Fatalf("no event received")
	}
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	defer cancel()

	// nobody drains the channel; publishing must never block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish("travel-out", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("publish blocked on a slow subscriber")
	}
}

func TestHubCancelDetaches(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	cancel()

	hub.Publish("travel-in", nil)

	select {
	case <-ch:
		t.Fatalf("detached subscriber still received an event")
	default:
	}
}
