package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_REGISTERED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by the backend.
const (
	TypeUserRegistered  = "USER_REGISTERED"
	TypeTafsirGenerated = "TAFSIR_GENERATED"
	TypePasswordReset   = "PASSWORD_RESET_CONFIRMED"
)

func NewUserRegistered(userId, email string) Event {
	return BaseEvent{
		Type: TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id": userId,
			"email":   email,
		},
		OccurredAt: time.Now(),
	}
}

func NewTafsirGenerated(userId, verseId, searchId string, fallback bool) Event {
	return BaseEvent{
		Type: TypeTafsirGenerated,
		Data: map[string]interface{}{
			"user_id":   userId,
			"verse_id":  verseId,
			"search_id": searchId,
			"fallback":  fallback,
		},
		OccurredAt: time.Now(),
	}
}

func NewPasswordResetConfirmed(userId string) Event {
	return BaseEvent{
		Type: TypePasswordReset,
		Data: map[string]interface{}{
			"user_id": userId,
		},
		OccurredAt: time.Now(),
	}
}
