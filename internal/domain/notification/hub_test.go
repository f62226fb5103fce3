package notification

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func addClient(h *Hub, userID uuid.UUID) *client {
	c := &client{
		userID: userID,
		send:   make(chan Message, sendBufferSize),
	}
	h.register(c)
	return c
}

func TestNotifyBookingStatusReachesAllUserConnections(t *testing.T) {
	h := NewHub()
	userID := uuid.New()
	first := addClient(h, userID)
	second := addClient(h, userID)
	other := addClient(h, uuid.New())

	bookingID := uuid.New()
	h.NotifyBookingStatus(userID, bookingID, "confirmed")

	for i, c := range []*client{first, second} {
		select {
		case msg := <-c.send:
			if msg.Type != "booking_status" {
				t.Fatalf("conn %d: type = %q, want booking_status", i, msg.Type)
			}
			if msg.BookingID != bookingID.String() || msg.Status != "confirmed" {
				t.Fatalf("conn %d: message = %+v", i, msg)
			}
		case <-time.After(time.Second):
			t.Fatalf("conn %d: no message delivered", i)
		}
	}

	select {
	case msg := <-other.send:
		t.Fatalf("unrelated user received %+v", msg)
	default:
	}
}

func TestNotifyBookingStatusNoConnections(t *testing.T) {
	h := NewHub()
	// Must not panic or block with nobody connected
	h.NotifyBookingStatus(uuid.New(), uuid.New(), "removed")
}

func TestUnregisterRemovesConnection(t *testing.T) {
	h := NewHub()
	userID := uuid.New()
	c := addClient(h, userID)

	if got := h.ConnectionCount(); got != 1 {
		t.Fatalf("connection count = %d, want 1", got)
	}

	h.unregister(c)

	if got := h.ConnectionCount(); got != 0 {
		t.Fatalf("connection count after unregister = %d, want 0", got)
	}

	// Channel is closed on unregister
	if _, open := <-c.send; open {
		t.Fatalf("send channel still open after unregister")
	}

	// Second unregister is a no-op
	h.unregister(c)
}

func TestNotifyDropsSlowConnection(t *testing.T) {
	h := NewHub()
	userID := uuid.New()
	c := addClient(h, userID)

	// Nobody reads: once the buffer is full the connection gets dropped
	for i := 0; i <= sendBufferSize; i++ {
		h.NotifyBookingStatus(userID, uuid.New(), "confirmed")
	}

	if got := h.ConnectionCount(); got != 0 {
		t.Fatalf("connection count = %d, want slow connection dropped", got)
	}
	// Buffered messages drain and the channel ends up closed
	for range c.send {
	}
}

func TestNotifyConcurrentWithDisconnect(t *testing.T) {
	h := NewHub()
	userID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		c := addClient(h, userID)
		wg.Add(2)
		go func(c *client) {
			defer wg.Done()
			for range c.send {
			}
		}(c)
		go func(c *client) {
			defer wg.Done()
			h.unregister(c)
		}(c)
	}

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h.NotifyBookingStatus(userID, uuid.New(), "confirmed")
			}
		}()
	}

	wg.Wait()
	if got := h.ConnectionCount(); got != 0 {
		t.Fatalf("connection count = %d, want 0", got)
	}
}
