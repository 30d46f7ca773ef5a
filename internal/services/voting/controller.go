// Package voting runs the category ballot that precedes each category
// round: open with random options, collect one vote per player, close
// with a tally and a uniform random tie-break.
package voting

import (
	"context"
	"log/slog"
	"time"

	"github.com/quizparty/quizparty-go/internal/dependencies/clock"
	"github.com/quizparty/quizparty-go/internal/dependencies/random"
	"github.com/quizparty/quizparty-go/internal/model"
	"github.com/quizparty/quizparty-go/internal/questionbank"
	"github.com/quizparty/quizparty-go/internal/roomlock"
	"github.com/quizparty/quizparty-go/internal/services/rounds"
	"github.com/quizparty/quizparty-go/internal/shuffle"
	"github.com/quizparty/quizparty-go/internal/storage"
)

const (
	// BallotOptions is how many categories appear on a ballot
	BallotOptions = 3
	// BallotDuration is how long a ballot stays open
	BallotDuration = 10 * time.Second
)

// Controller manages category ballots
type Controller struct {
	storage      storage.Storage
	bank         *questionbank.Service
	roundService *rounds.Service
	locks        *roomlock.Manager
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
}

// NewController creates a new voting controller
func NewController(
	storage storage.Storage,
	bank *questionbank.Service,
	roundService *rounds.Service,
	locks *roomlock.Manager,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		bank:         bank,
		roundService: roundService,
		locks:        locks,
		clock:        clock,
		random:       random,
		logger:       logger,
	}
}

// OpenBallot mutates the room in place to open a ballot: random
// options, a fresh tally, an absolute deadline, and voting status.
// Callers own the room lock and persistence.
func (c *Controller) OpenBallot(room *model.Room) error {
	candidates := c.bank.CategoryIDs(model.CategoryMixed, room.CurrentCategory)
	if len(candidates) == 0 {
		return model.ErrBankEmpty
	}

	room.Status = model.RoomStatusVoting
	room.VotingState = &model.VotingState{
		Active:  true,
		Options: shuffle.Sample(c.random, candidates, BallotOptions),
		Votes:   make(map[model.PlayerID]model.CategoryID),
		EndsAt:  c.clock.Now().Add(BallotDuration),
	}
	return nil
}

// StartVoting opens a ballot on a persisted room
func (c *Controller) StartVoting(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Status != model.RoomStatusPlaying {
		return nil, model.ErrRoomNotPlaying
	}

	if err := c.OpenBallot(room); err != nil {
		return nil, err
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("voting started",
		slog.String("room_code", string(code)),
		slog.Any("options", room.VotingState.Options),
	)

	return room, nil
}

// CastVote records a player's choice. The first vote wins; changing a
// vote is refused.
func (c *Controller) CastVote(ctx context.Context, code model.RoomCode, playerID model.PlayerID, category model.CategoryID) (*model.Room, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	vs := room.VotingState
	if room.Status != model.RoomStatusVoting || vs == nil || !vs.Active {
		return nil, model.ErrVotingInactive
	}
	if room.FindPlayer(playerID) == nil {
		return nil, model.ErrPlayerNotFound
	}
	if !isOption(vs.Options, category) {
		return nil, model.ErrNotAnOption
	}
	if _, voted := vs.Votes[playerID]; voted {
		return nil, model.ErrAlreadyVoted
	}

	vs.Votes[playerID] = category
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// EndVoting closes the ballot, tallies, breaks ties uniformly at
// random, materializes the round's questions for the winning category,
// and returns the room to playing with the next question live
func (c *Controller) EndVoting(ctx context.Context, code model.RoomCode) (*model.Room, model.CategoryID, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, "", err
	}
	vs := room.VotingState
	if room.Status != model.RoomStatusVoting || vs == nil || !vs.Active {
		return nil, "", model.ErrVotingInactive
	}

	winner := c.tally(vs)
	vs.Active = false
	vs.Winner = winner
	room.CurrentCategory = winner

	round := room.CurrentRound()
	if round == nil {
		return nil, "", model.ErrGameFinished
	}
	questions, err := c.roundService.QuestionsForRound(*round, winner)
	if err != nil {
		return nil, "", err
	}
	room.Questions = append(room.Questions, questions...)

	now := c.clock.Now()
	room.Status = model.RoomStatusPlaying
	room.QuestionStartTime = now
	room.UpdatedAt = now

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, "", err
	}

	c.logger.Info("voting ended",
		slog.String("room_code", string(code)),
		slog.String("winner", string(winner)),
		slog.Int("votes", len(vs.Votes)),
	)

	return room, winner, nil
}

// tally counts votes per option and picks the winner, breaking ties
// uniformly at random among the leaders. A ballot with no votes ties
// all options.
func (c *Controller) tally(vs *model.VotingState) model.CategoryID {
	counts := make(map[model.CategoryID]int, len(vs.Options))
	for _, choice := range vs.Votes {
		counts[choice]++
	}

	best := -1
	var leaders []model.CategoryID
	for _, opt := range vs.Options {
		switch n := counts[opt]; {
		case n > best:
			best = n
			leaders = []model.CategoryID{opt}
		case n == best:
			leaders = append(leaders, opt)
		}
	}
	return shuffle.Pick(c.random, leaders)
}

func isOption(options []model.CategoryID, category model.CategoryID) bool {
	for _, opt := range options {
		if opt == category {
			return true
		}
	}
	return false
}

// Interface for dependency injection
type ControllerInterface interface {
	StartVoting(ctx context.Context, code model.RoomCode) (*model.Room, error)
	CastVote(ctx context.Context, code model.RoomCode, playerID model.PlayerID, category model.CategoryID) (*model.Room, error)
	EndVoting(ctx context.Context, code model.RoomCode) (*model.Room, model.CategoryID, error)
}

var _ ControllerInterface = (*Controller)(nil)
