package sms

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Sender dispatches a one-time code to a phone number and returns the
// provider's message id. Implementations must bound their own latency;
// a hung provider surfaces as transport_error, never as a stuck
// request.
type Sender interface {
	Send(ctx context.Context, phone, code string) (smsID string, err error)
}

// DevSender is used when SMS dispatch is disabled. It never prints the
// code and always succeeds with a synthetic id, mirroring the
// provider's development mode.
type DevSender struct{}

func (DevSender) Send(ctx context.Context, phone, code string) (string, error) {
	log.Printf("[SMS] dispatch disabled, skipping send to %s", phone)
	return fmt.Sprintf("dev_%d", time.Now().UnixMilli()), nil
}
