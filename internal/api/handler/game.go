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
	"github.com/quizparty/quizparty-go/internal/services/game"
	"github.com/quizparty/quizparty-go/internal/services/room"
	"github.com/quizparty/quizparty-go/internal/services/scoring"
)

// GameHandler handles in-game endpoints
type GameHandler struct {
	roomController    *room.Controller
	gameController    *game.Controller
	scoringController *scoring.Controller
	broadcaster       *push.Broadcaster
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	roomController *room.Controller,
	gameController *game.Controller,
	scoringController *scoring.Controller,
	hubManager *push.HubManager,
	logger *slog.Logger,
) *GameHandler {
	var broadcaster *push.Broadcaster
	if hubManager != nil {
		broadcaster = push.NewBroadcaster(hubManager, logger)
	}
	return &GameHandler{
		roomController:    roomController,
		gameController:    gameController,
		scoringController: scoringController,
		broadcaster:       broadcaster,
	}
}

func (h *GameHandler) publish(event model.Event) {
	if h.broadcaster != nil {
		event.Timestamp = time.Now()
		h.broadcaster.Publish(event)
	}
}

// requireHost verifies the caller is the room's host
func (h *GameHandler) requireHost(r *http.Request, code model.RoomCode) error {
	callerID := middleware.MustGetPlayerID(r.Context())
	current, err := h.roomController.GetRoom(r.Context(), code)
	if err != nil {
		return err
	}
	if current.HostID != callerID {
		return model.ErrNotHost
	}
	return nil
}

// Start handles POST /api/v1/rooms/{code}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	if err := h.requireHost(r, code); err != nil {
		WriteError(w, err)
		return
	}

	started, err := h.gameController.StartGame(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(model.Event{Type: model.EventGameStarted, RoomCode: code})
	h.publish(model.Event{
		Type:     model.EventQuestionShown,
		RoomCode: code,
		Payload: model.QuestionShownPayload{
			QuestionIndex: started.CurrentQuestionIndex,
			RoundIndex:    started.CurrentRoundIndex,
			TimeLimit:     started.Settings.TimeLimit,
		},
	})

	response.JSON(w, http.StatusOK, response.RoomFromModel(started))
}

// Answer handles POST /api/v1/rooms/{code}/answers
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	playerID := model.PlayerID(req.PlayerID)
	if err := h.gameController.SubmitAnswer(r.Context(), code, playerID, req.AnswerIndex, req.AnswerValue); err != nil {
		WriteError(w, err)
		return
	}

	// Only the fact of answering is broadcast, never the content
	h.publish(model.Event{
		Type:     model.EventAnswerReceived,
		RoomCode: code,
		PlayerID: playerID,
	})

	response.NoContent(w)
}

// Results handles POST /api/v1/rooms/{code}/results: scores the
// current question and reveals the correct answer
func (h *GameHandler) Results(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	if err := h.requireHost(r, code); err != nil {
		WriteError(w, err)
		return
	}

	current, err := h.roomController.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	question := current.CurrentQuestion()
	if question == nil {
		WriteError(w, model.ErrNoCurrentQuestion)
		return
	}

	results, err := h.scoringController.CalculateQuestionResults(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	body := response.QuestionResultsFromScoring(results, question)

	h.publish(model.Event{
		Type:     model.EventQuestionEnded,
		RoomCode: code,
		Payload: model.QuestionEndedPayload{
			QuestionIndex: current.CurrentQuestionIndex,
			Results:       body,
			Leaderboard:   results.Leaderboard,
		},
	})
	for _, pr := range results.Results {
		for _, a := range pr.Achievements {
			h.publish(model.Event{
				Type:     model.EventAchievementEarned,
				RoomCode: code,
				PlayerID: pr.PlayerID,
				Payload:  map[string]string{"type": string(a), "player_name": pr.PlayerName},
			})
		}
	}

	response.JSON(w, http.StatusOK, body)
}

// Next handles POST /api/v1/rooms/{code}/next
func (h *GameHandler) Next(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	if err := h.requireHost(r, code); err != nil {
		WriteError(w, err)
		return
	}

	advanced, outcome, err := h.gameController.NextQuestion(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	switch outcome.Kind {
	case game.AdvanceNextQuestion:
		h.publish(model.Event{
			Type:     model.EventQuestionShown,
			RoomCode: code,
			Payload: model.QuestionShownPayload{
				QuestionIndex: advanced.CurrentQuestionIndex,
				RoundIndex:    advanced.CurrentRoundIndex,
				TimeLimit:     advanced.Settings.TimeLimit,
			},
		})
	case game.AdvanceVotingStarted:
		h.publish(model.Event{
			Type:     model.EventVotingStarted,
			RoomCode: code,
			Payload: model.VotingStartedPayload{
				Options: outcome.Voting.Options,
				EndsAt:  outcome.Voting.EndsAt,
			},
		})
	case game.AdvanceGameEnded:
		h.publish(model.Event{
			Type:     model.EventGameEnded,
			RoomCode: code,
			Payload:  model.GameEndedPayload{Leaderboard: advanced.Leaderboard()},
		})
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(advanced))
}

// Pause handles POST /api/v1/rooms/{code}/pause
func (h *GameHandler) Pause(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	if err := h.requireHost(r, code); err != nil {
		WriteError(w, err)
		return
	}

	var req request.PauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = request.PauseRequest{}
	}

	var remaining *time.Duration
	if req.RemainingMs != nil {
		d := time.Duration(*req.RemainingMs) * time.Millisecond
		remaining = &d
	}

	paused, err := h.gameController.PauseGame(r.Context(), code, remaining)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(model.Event{Type: model.EventGamePaused, RoomCode: code})
	response.JSON(w, http.StatusOK, response.RoomFromModel(paused))
}

// Resume handles POST /api/v1/rooms/{code}/resume
func (h *GameHandler) Resume(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	if err := h.requireHost(r, code); err != nil {
		WriteError(w, err)
		return
	}

	resumed, err := h.gameController.ResumeGame(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(model.Event{Type: model.EventGameResumed, RoomCode: code})
	response.JSON(w, http.StatusOK, response.RoomFromModel(resumed))
}

// QuestionShown handles POST /api/v1/rooms/{code}/question-shown: the
// host confirms the question is actually on screen, restarting the
// latency clock
func (h *GameHandler) QuestionShown(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	if err := h.requireHost(r, code); err != nil {
		WriteError(w, err)
		return
	}

	stamped, err := h.gameController.SetQuestionStartTime(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(stamped))
}

// PowerUp handles POST /api/v1/rooms/{code}/power-up
func (h *GameHandler) PowerUp(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.PowerUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	powerUp, err := h.gameController.ActivatePowerUp(r.Context(), code, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"power_up": string(powerUp)})
}

// FiftyFifty handles POST /api/v1/rooms/{code}/fifty-fifty
func (h *GameHandler) FiftyFifty(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	eliminate, err := h.gameController.FiftyFiftyAnswers(r.Context(), code, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string][]int{"eliminate_indices": eliminate})
}

// Leaderboard handles GET /api/v1/rooms/{code}/leaderboard
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	current, err := h.roomController.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(current.Leaderboard()))
}

// Stats handles GET /api/v1/rooms/{code}/stats
func (h *GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	stats, err := h.scoringController.GameStats(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromScoring(stats))
}
