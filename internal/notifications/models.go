package notifications

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeWinnersAnnounced EventType = "WINNERS_ANNOUNCED"
)

// DrawEvent is published once a lucky draw has produced winners
type DrawEvent struct {
	ID           uuid.UUID `json:"id"`
	Type         EventType `json:"type"`
	SessionID    string    `json:"session_id"`
	DrawID       uuid.UUID `json:"draw_id"`
	Winners      []string  `json:"winners"`
	Announcement string    `json:"announcement"`
	Generated    bool      `json:"generated"`
	PoolSize     int       `json:"pool_size"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NewWinnersAnnounced builds a WINNERS_ANNOUNCED event
func NewWinnersAnnounced(sessionID string, drawID uuid.UUID, winners []string, announcement string, generated bool, poolSize int) *DrawEvent {
	return &DrawEvent{
		ID:           uuid.New(),
		Type:         EventTypeWinnersAnnounced,
		SessionID:    sessionID,
		DrawID:       drawID,
		Winners:      winners,
		Announcement: announcement,
		Generated:    generated,
		PoolSize:     poolSize,
		OccurredAt:   time.Now().UTC(),
	}
}

func (e *DrawEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey keeps every event of a session on one partition
func (e *DrawEvent) GetPartitionKey() string {
	return e.SessionID
}
