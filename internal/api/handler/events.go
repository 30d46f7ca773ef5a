package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quizparty/quizparty-go/internal/api/middleware"
	"github.com/quizparty/quizparty-go/internal/model"
	"github.com/quizparty/quizparty-go/internal/push"
	"github.com/quizparty/quizparty-go/internal/services/room"
)

// EventsHandler serves the SSE event stream for a room
type EventsHandler struct {
	roomController *room.Controller
	hubManager     *push.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(roomController *room.Controller, hubManager *push.HubManager) *EventsHandler {
	return &EventsHandler{
		roomController: roomController,
		hubManager:     hubManager,
	}
}

// Subscribe handles GET /api/v1/rooms/{code}/events. Blocks for the
// lifetime of the connection.
func (h *EventsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	// Verify the room exists before opening a stream
	if _, err := h.roomController.GetRoom(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	playerID, _ := middleware.GetPlayerID(r.Context())
	hub := h.hubManager.GetOrCreateHub(code)
	push.ServeSSE(w, r, hub, playerID)
}
