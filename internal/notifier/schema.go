package notifier

import "time"

// ─── Notification kinds (Server → Client) ───────────────────────────

type Kind string

const (
	KindSessionClosed Kind = "session_closed"
	KindEventReminder Kind = "event_reminder"
	KindNews          Kind = "news"
)

// Notification is the envelope pushed to connected clients.
type Notification struct {
	Kind    Kind      `json:"kind"`
	SentAt  time.Time `json:"sent_at"`
	Payload any       `json:"payload,omitempty"`
}

// SessionClosedPayload tells a client its quiz session was finalized.
type SessionClosedPayload struct {
	SessionID string   `json:"session_id"`
	QuizID    string   `json:"quiz_id"`
	Reason    string   `json:"reason"` // "time_expired"
	Score     *float64 `json:"score,omitempty"`
}
