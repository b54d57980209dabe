package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: "settings.updated", Data: map[string]string{"excludeString": "x"}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: settings.updated") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"excludeString":"x"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishNotice(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishNotice("Moved 2 files")

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: notice") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"message":"Moved 2 files"`) {
			t.Errorf("missing message in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for notice")
	}
}

func TestPublishFileEvent(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishFileEvent("created", "trip/photo.png")

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: file.created") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"path":"trip/photo.png"`) {
			t.Errorf("missing path in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for file event")
	}
}

func TestPublishNoClientsDoesNotBlock(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.PublishNotice("nobody listening")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publishing without clients blocked")
	}
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	b := NewBroker()
	b.Close()

	// Must not panic or block.
	b.PublishNotice("late")
	b.PublishFileEvent("deleted", "gone.md")
	if b.ClientCount() != 0 {
		t.Error("expected 0 clients after close")
	}
}

func TestServeHTTP_StreamsEvents(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(rec, req)
		close(done)
	}()

	// Wait for the client to register, then publish.
	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	b.PublishNotice("hello")
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after context cancel")
	}

	body := rec.Body.String()
	if !strings.Contains(body, "event: notice") {
		t.Errorf("body missing notice event: %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
}
