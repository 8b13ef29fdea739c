package live

import (
	"encoding/json"
	"testing"
	"time"

	"herbsera/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		UserID: "user1",
	}

	hub.Register(client)

	data := []byte(`{"status":"shipped"}`)
	hub.broadcast <- broadcastMsg{UserID: "user1", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.Unregister(client)
}

func TestHubClientAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	client := &Client{Send: make(chan []byte, 1), UserID: "user1"}

	finished := make(chan struct{})
	go func() {
		hub.Register(client)
		hub.Unregister(client)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(1 * time.Second):
		t.Fatal("register/unregister blocked after hub stop")
	}

	// the send channel is closed so the write pump drains and exits
	if _, ok := <-client.Send; ok {
		t.Fatal("expected send channel closed for a late client")
	}
}

func TestHubDeliversOnlyToOrderOwner(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	owner := &Client{Send: make(chan []byte, 10), UserID: "user1"}
	other := &Client{Send: make(chan []byte, 10), UserID: "user2"}
	hub.Register(owner)
	hub.Register(other)

	event := models.OrderEvent{
		OrderID:     "o1",
		OrderNumber: "ORD-1-001",
		UserID:      "user1",
		Status:      models.OrderShipped,
	}
	hub.PublishOrderEvent(event)

	select {
	case got := <-owner.Send:
		var decoded models.OrderEvent
		if err := json.Unmarshal(got, &decoded); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if decoded.Status != models.OrderShipped || decoded.OrderID != "o1" {
			t.Fatalf("unexpected event %+v", decoded)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for owner's event")
	}

	select {
	case got := <-other.Send:
		t.Fatalf("other user must not receive the event, got %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}
