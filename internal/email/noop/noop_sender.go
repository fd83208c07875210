package noop

import (
	"context"

	"github.com/rs/zerolog/log"

	"escibridge/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs messages instead of
// delivering them.
func NewNoopSender() port.EmailSender {
	return noopSender{}
}

func (noopSender) Send(_ context.Context, msg port.EmailMessage) error {
	log.Info().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Msg("noop email")
	return nil
}
