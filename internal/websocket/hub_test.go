package websocket

import (
	"encoding/json"
	"testing"
)

func TestPublishBuffersWithoutActiveReader(t *testing.T) {
	hub := NewHub()

	hub.Publish(Event{Type: "synthesis_started", Voice: "nova"})

	select {
	case payload := <-hub.broadcast:
		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("broadcast payload not json: %v", err)
		}
		if event.Type != "synthesis_started" || event.Voice != "nova" {
			t.Errorf("event = %+v", event)
		}
		if event.Timestamp.IsZero() {
			t.Error("timestamp not stamped on publish")
		}
	default:
		t.Fatal("event dropped with no reader draining the hub")
	}
}

func TestPublishDropsOnlyWhenBufferFull(t *testing.T) {
	hub := NewHub()

	for i := 0; i < cap(hub.broadcast)+5; i++ {
		hub.Publish(Event{Type: "synthesis_completed"})
	}

	if got := len(hub.broadcast); got != cap(hub.broadcast) {
		t.Errorf("buffered events = %d, want full buffer %d", got, cap(hub.broadcast))
	}
}
