package notify

import (
	"context"
	"log"
)

// Notifier delivers a message to a single recipient address. Deliveries
// are best effort: the coordinators never convert a delivery failure into
// a state-change failure, and senders are never called while a doctor
// lock is held.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogNotifier writes notifications to the process log. It is the fallback
// when no SMTP transport is configured, and doubles as the dev-mode
// sender.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, to, subject, body string) error {
	log.Printf("notify to=%s subject=%q body=%q", to, subject, body)
	return nil
}
