package conversation

import (
	"context"
	"errors"

	"medicore/models"
)

// ErrSessionExpired marks a session whose anchoring selections (doctor, date,
// time) are missing or no longer resolvable. Treated as corruption, not user
// error: the session is terminated and the user asked to restart.
var ErrSessionExpired = errors.New("booking session expired or corrupted")

// InboundMessage is a transport-neutral inbound chat message. Webhook
// handlers adapt their payloads (Meta JSON, Twilio form fields) into this
// before the state machine sees them.
type InboundMessage struct {
	// From is the caller's phone number with any transport prefix stripped.
	From string
	// Text is the free-text message body.
	Text string
	// ButtonPayload is set when the user tapped an interactive button; it
	// takes precedence over Text.
	ButtonPayload string
}

// Input returns the effective user input for this message.
func (m InboundMessage) Input() string {
	if m.ButtonPayload != "" {
		return m.ButtonPayload
	}
	return m.Text
}

// OutboundSender delivers a chat message back to the user. Implementations
// live in services/messaging; delivery is fire-and-forget from the machine's
// point of view.
type OutboundSender interface {
	Send(ctx context.Context, to, message string) error
}

// SessionStore persists conversation sessions keyed by phone number. Get
// returns (nil, nil) when no live session exists.
type SessionStore interface {
	Get(ctx context.Context, phone string) (*models.BookingSession, error)
	Save(ctx context.Context, session *models.BookingSession) error
	Delete(ctx context.Context, phone string) error
}

// ConversationService processes one inbound chat message.
type ConversationService interface {
	HandleMessage(ctx context.Context, msg InboundMessage) error
}
