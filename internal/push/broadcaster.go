package push

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/quizparty/quizparty-go/internal/model"
)

// Broadcaster publishes room events as JSON SSE messages
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "broadcaster")),
	}
}

// eventEnvelope is the wire shape of a broadcast event
type eventEnvelope struct {
	Type      model.EventType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	RoomCode  model.RoomCode  `json:"room_code"`
	PlayerID  model.PlayerID  `json:"player_id,omitempty"`
	Payload   any             `json:"payload,omitempty"`
}

// Publish sends an event to every client subscribed to the room. A
// room with no hub has no listeners; publishing is a no-op then.
func (b *Broadcaster) Publish(event model.Event) {
	hub := b.hubManager.GetHub(event.RoomCode)
	if hub == nil {
		return
	}

	data, err := json.Marshal(eventEnvelope{
		Type:      event.Type,
		Timestamp: event.Timestamp,
		RoomCode:  event.RoomCode,
		PlayerID:  event.PlayerID,
		Payload:   event.Payload,
	})
	if err != nil {
		b.logger.Error("failed to encode event",
			slog.String("room", string(event.RoomCode)),
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(event.Type), string(data))
}
