package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/quizparty/quizparty-go/internal/api/middleware"
	"github.com/quizparty/quizparty-go/internal/api/request"
	"github.com/quizparty/quizparty-go/internal/api/response"
	"github.com/quizparty/quizparty-go/internal/model"
	"github.com/quizparty/quizparty-go/internal/push"
	"github.com/quizparty/quizparty-go/internal/services/room"
	"github.com/quizparty/quizparty-go/internal/services/voting"
)

// VotingHandler handles category ballot endpoints
type VotingHandler struct {
	roomController   *room.Controller
	votingController *voting.Controller
	broadcaster      *push.Broadcaster
}

// NewVotingHandler creates a new voting handler
func NewVotingHandler(
	roomController *room.Controller,
	votingController *voting.Controller,
	hubManager *push.HubManager,
	logger *slog.Logger,
) *VotingHandler {
	var broadcaster *push.Broadcaster
	if hubManager != nil {
		broadcaster = push.NewBroadcaster(hubManager, logger)
	}
	return &VotingHandler{
		roomController:   roomController,
		votingController: votingController,
		broadcaster:      broadcaster,
	}
}

func (h *VotingHandler) publish(event model.Event) {
	if h.broadcaster != nil {
		event.Timestamp = time.Now()
		h.broadcaster.Publish(event)
	}
}

// Vote handles POST /api/v1/rooms/{code}/votes
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" || req.Category == "" {
		WriteError(w, NewInvalidRequestError("player_id and category are required"))
		return
	}

	playerID := model.PlayerID(req.PlayerID)
	voted, err := h.votingController.CastVote(r.Context(), code, playerID, model.CategoryID(req.Category))
	if err != nil {
		WriteError(w, err)
		return
	}

	// The individual choice stays private; listeners only see the count
	h.publish(model.Event{
		Type:     model.EventVoteCast,
		RoomCode: code,
		PlayerID: playerID,
		Payload:  map[string]int{"votes": len(voted.VotingState.Votes)},
	})

	response.JSON(w, http.StatusOK, response.VotingFromModel(voted.VotingState))
}

// EndVoting handles POST /api/v1/rooms/{code}/votes/end
func (h *VotingHandler) EndVoting(w http.ResponseWriter, r *http.Request) {
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

	ended, winner, err := h.votingController.EndVoting(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(model.Event{
		Type:     model.EventVotingEnded,
		RoomCode: code,
		Payload:  model.VotingEndedPayload{Winner: winner},
	})
	h.publish(model.Event{
		Type:     model.EventQuestionShown,
		RoomCode: code,
		Payload: model.QuestionShownPayload{
			QuestionIndex: ended.CurrentQuestionIndex,
			RoundIndex:    ended.CurrentRoundIndex,
			TimeLimit:     ended.Settings.TimeLimit,
		},
	})

	response.JSON(w, http.StatusOK, response.RoomFromModel(ended))
}
