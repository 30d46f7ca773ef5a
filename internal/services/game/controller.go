// Package game drives the question flow state machine: starting,
// advancing through rounds, pausing, and per-player power-ups.
package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/quizparty/quizparty-go/internal/dependencies/clock"
	"github.com/quizparty/quizparty-go/internal/dependencies/random"
	"github.com/quizparty/quizparty-go/internal/model"
	"github.com/quizparty/quizparty-go/internal/roomlock"
	"github.com/quizparty/quizparty-go/internal/services/rounds"
	"github.com/quizparty/quizparty-go/internal/services/voting"
	"github.com/quizparty/quizparty-go/internal/shuffle"
	"github.com/quizparty/quizparty-go/internal/storage"
)

// AdvanceKind distinguishes the three outcomes of advancing the cursor
type AdvanceKind string

const (
	// AdvanceNextQuestion means a new question is live
	AdvanceNextQuestion AdvanceKind = "next_question"
	// AdvanceVotingStarted means a category ballot opened instead
	AdvanceVotingStarted AdvanceKind = "voting_started"
	// AdvanceGameEnded means the plan is exhausted and the room finished
	AdvanceGameEnded AdvanceKind = "game_ended"
)

// AdvanceOutcome reports what happened when the host advanced the game
type AdvanceOutcome struct {
	Kind     AdvanceKind
	Question *model.Question
	Voting   *model.VotingState
}

// Controller manages the in-game state machine
type Controller struct {
	storage      storage.Storage
	roundService *rounds.Service
	voting       *voting.Controller
	locks        *roomlock.Manager
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
}

// NewController creates a new game controller
func NewController(
	storage storage.Storage,
	roundService *rounds.Service,
	voting *voting.Controller,
	locks *roomlock.Manager,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		roundService: roundService,
		voting:       voting,
		locks:        locks,
		clock:        clock,
		random:       random,
		logger:       logger,
	}
}

// StartGame transitions waiting -> playing with the cursor on the first
// question. At least one player must be present.
func (c *Controller) StartGame(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Status != model.RoomStatusWaiting {
		return nil, model.ErrRoomNotWaiting
	}
	if len(room.Players) == 0 {
		return nil, model.ErrNoPlayers
	}

	room.Status = model.RoomStatusPlaying
	room.CurrentQuestionIndex = 0
	room.CurrentRoundIndex = 0
	room.QuestionStartTime = c.clock.Now()
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("room_code", string(code)),
		slog.Int("players", len(room.Players)),
		slog.Int("questions", len(room.Questions)),
	)

	return room, nil
}

// SubmitAnswer logs a player's answer for the current question. One
// answer per player per question; later submissions are refused, never
// overwritten.
func (c *Controller) SubmitAnswer(ctx context.Context, code model.RoomCode, playerID model.PlayerID, answerIndex int, answerValue string) error {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return err
	}
	if room.Status != model.RoomStatusPlaying {
		return model.ErrRoomNotPlaying
	}
	question := room.CurrentQuestion()
	if question == nil {
		return model.ErrNoCurrentQuestion
	}
	if room.FindPlayer(playerID) == nil {
		return model.ErrPlayerNotFound
	}
	if room.HasAnswer(playerID, question.ID) {
		return model.ErrDuplicateAnswer
	}

	room.Answers = append(room.Answers, model.Answer{
		PlayerID:    playerID,
		QuestionID:  question.ID,
		AnswerIndex: answerIndex,
		AnswerValue: answerValue,
		SubmittedAt: c.clock.Now(),
	})
	room.UpdatedAt = c.clock.Now()

	return c.storage.SaveRoom(ctx, room)
}

// NextQuestion advances the cursor. Crossing a round boundary either
// materializes the next round's questions, opens a category ballot, or
// finishes the game when the plan is exhausted.
func (c *Controller) NextQuestion(ctx context.Context, code model.RoomCode) (*model.Room, *AdvanceOutcome, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if room.Status != model.RoomStatusPlaying {
		return nil, nil, model.ErrRoomNotPlaying
	}

	now := c.clock.Now()
	room.CurrentQuestionIndex++

	if room.CurrentQuestionIndex < len(room.Questions) {
		room.QuestionStartTime = now
		room.UpdatedAt = now
		if err := c.storage.SaveRoom(ctx, room); err != nil {
			return nil, nil, err
		}
		return room, &AdvanceOutcome{Kind: AdvanceNextQuestion, Question: room.CurrentQuestion()}, nil
	}

	// Current round exhausted
	room.CurrentRoundIndex++
	if room.CurrentRoundIndex >= len(room.Rounds) {
		room.Status = model.RoomStatusFinished
		room.UpdatedAt = now
		if err := c.storage.SaveRoom(ctx, room); err != nil {
			return nil, nil, err
		}
		c.logger.Info("game ended", slog.String("room_code", string(code)))
		return room, &AdvanceOutcome{Kind: AdvanceGameEnded}, nil
	}

	next := room.Rounds[room.CurrentRoundIndex]
	if next.Type == model.RoundCategory {
		if err := c.voting.OpenBallot(room); err != nil {
			return nil, nil, err
		}
		room.UpdatedAt = now
		if err := c.storage.SaveRoom(ctx, room); err != nil {
			return nil, nil, err
		}
		return room, &AdvanceOutcome{Kind: AdvanceVotingStarted, Voting: room.VotingState}, nil
	}

	questions, err := c.roundService.QuestionsForRound(next, "")
	if err != nil {
		return nil, nil, err
	}
	room.Questions = append(room.Questions, questions...)
	room.QuestionStartTime = now
	room.UpdatedAt = now
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, nil, err
	}
	return room, &AdvanceOutcome{Kind: AdvanceNextQuestion, Question: room.CurrentQuestion()}, nil
}

// PauseGame suspends the room from any live status, recording the
// caller's snapshot of time remaining so clients can resync on resume.
// Only a finished room refuses to pause.
func (c *Controller) PauseGame(ctx context.Context, code model.RoomCode, remaining *time.Duration) (*model.Room, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Status == model.RoomStatusFinished {
		return nil, model.ErrGameFinished
	}
	// Pausing an already-paused room keeps the original pause record
	if room.Status == model.RoomStatusPaused {
		return room, nil
	}

	room.PauseState = &model.PauseState{
		Paused:      true,
		PausedAt:    c.clock.Now(),
		PriorStatus: room.Status,
		Remaining:   remaining,
	}
	room.Status = model.RoomStatusPaused
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// ResumeGame returns a paused room to the status it held before the
// pause. The pause record keeps its remaining-time snapshot for
// clients to pick up.
func (c *Controller) ResumeGame(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Status != model.RoomStatusPaused || room.PauseState == nil {
		return nil, model.ErrNotPaused
	}

	room.Status = room.PauseState.PriorStatus
	if room.Status == "" {
		room.Status = model.RoomStatusPlaying
	}
	room.PauseState.Paused = false
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// SetQuestionStartTime stamps the current question as live now. Hosts
// call this when their presentation actually shows the question, so
// latency scoring doesn't penalize slow asset loads.
func (c *Controller) SetQuestionStartTime(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Status != model.RoomStatusPlaying {
		return nil, model.ErrRoomNotPlaying
	}

	room.QuestionStartTime = c.clock.Now()
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// ActivatePowerUp arms the player's held power-up. The held slot is
// cleared; the active slot is consumed by whatever it influences next.
func (c *Controller) ActivatePowerUp(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (model.PowerUpType, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return "", err
	}
	player := room.FindPlayer(playerID)
	if player == nil {
		return "", model.ErrPlayerNotFound
	}
	if player.PowerUp == "" {
		return "", model.ErrNoPowerUp
	}

	powerUp := player.PowerUp
	player.ActivePowerUp = powerUp
	player.PowerUp = ""
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return "", err
	}

	c.logger.Info("power-up activated",
		slog.String("room_code", string(code)),
		slog.String("player_id", string(playerID)),
		slog.String("power_up", string(powerUp)),
	)

	return powerUp, nil
}

// FiftyFiftyAnswers consumes an active fifty-fifty and returns two
// random wrong answer indices for the client to eliminate, leaving the
// correct answer and one decoy on screen
func (c *Controller) FiftyFiftyAnswers(ctx context.Context, code model.RoomCode, playerID model.PlayerID) ([]int, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	question := room.CurrentQuestion()
	if question == nil || !question.Type.IsChoice() {
		return nil, model.ErrNoCurrentQuestion
	}
	player := room.FindPlayer(playerID)
	if player == nil {
		return nil, model.ErrPlayerNotFound
	}
	if player.ActivePowerUp != model.PowerUpFiftyFifty {
		return nil, model.ErrNoPowerUp
	}

	var wrong []int
	for i := range question.Answers {
		if i != question.CorrectIndex {
			wrong = append(wrong, i)
		}
	}
	eliminate := shuffle.Sample(c.random, wrong, 2)

	player.ActivePowerUp = ""
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return eliminate, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	StartGame(ctx context.Context, code model.RoomCode) (*model.Room, error)
	SubmitAnswer(ctx context.Context, code model.RoomCode, playerID model.PlayerID, answerIndex int, answerValue string) error
	NextQuestion(ctx context.Context, code model.RoomCode) (*model.Room, *AdvanceOutcome, error)
	PauseGame(ctx context.Context, code model.RoomCode, remaining *time.Duration) (*model.Room, error)
	ResumeGame(ctx context.Context, code model.RoomCode) (*model.Room, error)
	SetQuestionStartTime(ctx context.Context, code model.RoomCode) (*model.Room, error)
	ActivatePowerUp(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (model.PowerUpType, error)
	FiftyFiftyAnswers(ctx context.Context, code model.RoomCode, playerID model.PlayerID) ([]int, error)
}

var _ ControllerInterface = (*Controller)(nil)
