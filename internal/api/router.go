package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quizparty/quizparty-go/internal/api/handler"
	"github.com/quizparty/quizparty-go/internal/api/middleware"
	"github.com/quizparty/quizparty-go/internal/push"
	"github.com/quizparty/quizparty-go/internal/services/game"
	"github.com/quizparty/quizparty-go/internal/services/room"
	"github.com/quizparty/quizparty-go/internal/services/scoring"
	"github.com/quizparty/quizparty-go/internal/services/voting"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	RoomController    *room.Controller
	GameController    *game.Controller
	ScoringController *scoring.Controller
	VotingController  *voting.Controller
	HubManager        *push.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.HubManager, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.RoomController, cfg.GameController, cfg.ScoringController, cfg.HubManager, cfg.Logger)
	votingHandler := handler.NewVotingHandler(cfg.RoomController, cfg.VotingController, cfg.HubManager, cfg.Logger)
	eventsHandler := handler.NewEventsHandler(cfg.RoomController, cfg.HubManager)

	// Create middleware
	identityMiddleware := middleware.Identity()
	optionalIdentityMiddleware := middleware.OptionalIdentity()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Room lifecycle and membership (no identity needed to create or view)
	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/spectate", roomHandler.Spectate).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/leaderboard", gameHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}/stats", gameHandler.Stats).Methods(http.MethodGet)

	// Player-submitted game actions carry identity in the body
	api.HandleFunc("/rooms/{code}/answers", gameHandler.Answer).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/power-up", gameHandler.PowerUp).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/votes", votingHandler.Vote).Methods(http.MethodPost)

	// Routes requiring the identity header
	authed := api.NewRoute().Subrouter()
	authed.Use(identityMiddleware)
	authed.HandleFunc("/rooms/{code}", roomHandler.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/rooms/{code}/leave", roomHandler.Leave).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{code}/spectate", roomHandler.Unspectate).Methods(http.MethodDelete)
	authed.HandleFunc("/rooms/{code}/settings", roomHandler.UpdateSettings).Methods(http.MethodPatch)
	authed.HandleFunc("/rooms/{code}/start", gameHandler.Start).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{code}/results", gameHandler.Results).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{code}/next", gameHandler.Next).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{code}/pause", gameHandler.Pause).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{code}/resume", gameHandler.Resume).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{code}/question-shown", gameHandler.QuestionShown).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{code}/fifty-fifty", gameHandler.FiftyFifty).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{code}/votes/end", votingHandler.EndVoting).Methods(http.MethodPost)

	// Event stream; identity is optional for spectating clients
	events := api.NewRoute().Subrouter()
	events.Use(optionalIdentityMiddleware)
	events.HandleFunc("/rooms/{code}/events", eventsHandler.Subscribe).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
