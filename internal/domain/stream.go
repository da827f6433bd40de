package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamMapCommands = "stream:riskmap:commands"
	StreamMapEvents   = "stream:riskmap:events"
)

// MapAction - действие над картой из внешнего UI
type MapAction string

const (
	MapActionReset  MapAction = "reset"
	MapActionUpdate MapAction = "update"
)

// MapCommand - входящая команда: сброс карты или выбор года
type MapCommand struct {
	ID     uuid.UUID `json:"id"`
	Action MapAction `json:"action"`
	Year   string    `json:"year,omitempty"`
}

// Validate проверяет согласованность команды
func (c *MapCommand) Validate() error {
	switch c.Action {
	case MapActionReset:
		return nil
	case MapActionUpdate:
		if c.Year == "" {
			return ErrMissingYear
		}
		return nil
	default:
		return ErrUnknownAction
	}
}

// MapEvent - результат применения команды, публикуется в стрим событий
type MapEvent struct {
	ID         uuid.UUID  `json:"id"`
	CommandID  *uuid.UUID `json:"command_id,omitempty"`
	Action     MapAction  `json:"action"`
	Year       string     `json:"year,omitempty"`
	Applied    bool       `json:"applied"`
	Matched    int        `json:"matched"`
	Unmatched  int        `json:"unmatched"`
	OccurredAt time.Time  `json:"occurred_at"`
	Error      string     `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
