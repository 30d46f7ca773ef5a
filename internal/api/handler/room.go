package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/google/uuid"

	"github.com/quizparty/quizparty-go/internal/api/middleware"
	"github.com/quizparty/quizparty-go/internal/api/request"
	"github.com/quizparty/quizparty-go/internal/api/response"
	"github.com/quizparty/quizparty-go/internal/model"
	"github.com/quizparty/quizparty-go/internal/push"
	"github.com/quizparty/quizparty-go/internal/services/room"
)

// RoomHandler handles room lifecycle and membership endpoints
type RoomHandler struct {
	roomController *room.Controller
	hubManager     *push.HubManager
	broadcaster    *push.Broadcaster
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomController *room.Controller, hubManager *push.HubManager, logger *slog.Logger) *RoomHandler {
	var broadcaster *push.Broadcaster
	if hubManager != nil {
		broadcaster = push.NewBroadcaster(hubManager, logger)
	}
	return &RoomHandler{
		roomController: roomController,
		hubManager:     hubManager,
		broadcaster:    broadcaster,
	}
}

func (h *RoomHandler) publish(event model.Event) {
	if h.broadcaster != nil {
		event.Timestamp = time.Now()
		h.broadcaster.Publish(event)
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body; a host ID is generated
		req = request.CreateRoomRequest{}
	}

	hostID := model.PlayerID(req.HostID)
	if hostID == "" {
		hostID = model.PlayerID(uuid.NewString())
	}

	created, err := h.roomController.CreateRoom(r.Context(), hostID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created))
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	found, err := h.roomController.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(found))
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	playerID := model.PlayerID(req.PlayerID)
	if playerID == "" {
		playerID = model.PlayerID(uuid.NewString())
	}

	player, err := h.roomController.AddPlayer(r.Context(), code, playerID, req.Name, model.AvatarID(req.Avatar))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(model.Event{
		Type:     model.EventPlayerJoined,
		RoomCode: code,
		PlayerID: player.ID,
		Payload:  model.PlayerJoinedPayload{Player: *player},
	})

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Leave handles POST /api/v1/rooms/{code}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	if err := h.roomController.RemovePlayer(r.Context(), code, playerID); err != nil {
		WriteError(w, err)
		return
	}

	h.publish(model.Event{
		Type:     model.EventPlayerLeft,
		RoomCode: code,
		PlayerID: playerID,
	})

	response.NoContent(w)
}

// Spectate handles POST /api/v1/rooms/{code}/spectate
func (h *RoomHandler) Spectate(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.SpectateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	spectatorID := model.PlayerID(req.SpectatorID)
	if spectatorID == "" {
		spectatorID = model.PlayerID(uuid.NewString())
	}

	spectator, err := h.roomController.AddSpectator(r.Context(), code, spectatorID, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(model.Event{
		Type:     model.EventSpectatorJoined,
		RoomCode: code,
		PlayerID: spectator.ID,
	})

	response.JSON(w, http.StatusCreated, response.Spectator{ID: string(spectator.ID), Name: spectator.Name})
}

// Unspectate handles DELETE /api/v1/rooms/{code}/spectate
func (h *RoomHandler) Unspectate(w http.ResponseWriter, r *http.Request) {
	spectatorID := middleware.MustGetPlayerID(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	if err := h.roomController.RemoveSpectator(r.Context(), code, spectatorID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// UpdateSettings handles PATCH /api/v1/rooms/{code}/settings
func (h *RoomHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.MustGetPlayerID(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	current, err := h.roomController.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	if current.HostID != callerID {
		WriteError(w, model.ErrNotHost)
		return
	}

	updated, err := h.roomController.UpdateSettings(r.Context(), code, settingsPatch(req))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(model.Event{
		Type:     model.EventSettingsChanged,
		RoomCode: code,
		Payload:  response.SettingsFromModel(updated.Settings),
	})

	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}

// Delete handles DELETE /api/v1/rooms/{code}
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.MustGetPlayerID(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	current, err := h.roomController.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	if current.HostID != callerID {
		WriteError(w, model.ErrNotHost)
		return
	}

	if err := h.roomController.DeleteRoom(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	if h.hubManager != nil {
		h.hubManager.CloseHub(code)
	}

	response.NoContent(w)
}

// settingsPatch converts the request body into a typed patch
func settingsPatch(req request.UpdateSettingsRequest) model.SettingsPatch {
	patch := model.SettingsPatch{
		TimeLimit:       req.TimeLimit,
		BasePoints:      req.BasePoints,
		ShowAnswers:     req.ShowAnswers,
		StreakBonus:     req.StreakBonus,
		BonusMultiplier: req.BonusMultiplier,
		TeamCount:       req.TeamCount,
		KidsMode:        req.KidsMode,
	}
	if req.Mode != nil {
		mode := model.GameMode(*req.Mode)
		patch.Mode = &mode
	}
	if req.Theme != nil {
		theme := model.Theme(*req.Theme)
		patch.Theme = &theme
	}
	if req.GameLength != nil {
		length := model.GameLength(*req.GameLength)
		patch.GameLength = &length
	}
	return patch
}
