package app_test

import (
	"errors"
	"testing"

	"homework_status_bot/internal/app"
)

func TestDedupNotifier_SendsNewMessage(t *testing.T) {
	t.Parallel()

	tg := &fakeTelegramClient{}
	n := app.NewDedupNotifier(tg, 77, testLogger())

	delivered, err := n.Notify("hello")
	if err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if !delivered {
		t.Fatalf("expected delivered=true for a new message")
	}
	if len(tg.sent) != 1 || tg.sent[0] != "hello" {
		t.Fatalf("expected one send of %q, got %v", "hello", tg.sent)
	}
}

func TestDedupNotifier_IdenticalMessageSentOnce(t *testing.T) {
	t.Parallel()

	tg := &fakeTelegramClient{}
	n := app.NewDedupNotifier(tg, 77, testLogger())

	if _, err := n.Notify("same"); err != nil {
		t.Fatalf("first Notify() error: %v", err)
	}
	delivered, err := n.Notify("same")
	if err != nil {
		t.Fatalf("second Notify() error: %v", err)
	}
	if delivered {
		t.Fatalf("expected second identical Notify to be suppressed")
	}
	if len(tg.sent) != 1 {
		t.Fatalf("expected exactly one external send, got %d", len(tg.sent))
	}
}

func TestDedupNotifier_FailureDoesNotUpdateLastMessage(t *testing.T) {
	t.Parallel()

	tg := &fakeTelegramClient{err: errors.New("telegram is down")}
	n := app.NewDedupNotifier(tg, 77, testLogger())

	_, err := n.Notify("hello")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, app.ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got: %v", err)
	}

	// The failed message must not count as "last notified": once the
	// transport recovers, the same text is sent again.
	tg.err = nil
	delivered, err := n.Notify("hello")
	if err != nil {
		t.Fatalf("Notify() after recovery error: %v", err)
	}
	if !delivered {
		t.Fatalf("expected the retried message to be delivered")
	}
	if len(tg.sent) != 1 {
		t.Fatalf("expected one successful send, got %d", len(tg.sent))
	}
}
