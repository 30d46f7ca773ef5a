// Package room owns the registry of active sessions: creation, lookup,
// settings, membership, and deletion. All mutation happens under the
// per-room lock.
package room

import (
	"context"
	"log/slog"

	"github.com/quizparty/quizparty-go/internal/dependencies/clock"
	"github.com/quizparty/quizparty-go/internal/dependencies/random"
	"github.com/quizparty/quizparty-go/internal/model"
	"github.com/quizparty/quizparty-go/internal/roomlock"
	"github.com/quizparty/quizparty-go/internal/services/rounds"
	"github.com/quizparty/quizparty-go/internal/shuffle"
	"github.com/quizparty/quizparty-go/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes (avoid confusing chars)
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller manages room lifecycle and membership
type Controller struct {
	storage      storage.Storage
	roundService *rounds.Service
	locks        *roomlock.Manager
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
}

// NewController creates a new room controller
func NewController(
	storage storage.Storage,
	roundService *rounds.Service,
	locks *roomlock.Manager,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		roundService: roundService,
		locks:        locks,
		clock:        clock,
		random:       random,
		logger:       logger,
	}
}

// CreateRoom allocates a fresh room in waiting status with the round
// plan for the default game length and the first round's questions
// already materialized
func (c *Controller) CreateRoom(ctx context.Context, hostID model.PlayerID) (*model.Room, error) {
	now := c.clock.Now()

	// Generate unique room code, retrying on collision
	var code model.RoomCode
	for {
		code = model.RoomCode(c.random.String(RoomCodeLength, RoomCodeAlphabet))
		exists, err := c.storage.RoomExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	settings := model.DefaultSettings()
	plan := c.roundService.GenerateRounds(settings.GameLength)

	var questions []*model.Question
	if len(plan) > 0 {
		qs, err := c.roundService.QuestionsForRound(plan[0], "")
		if err != nil {
			return nil, err
		}
		questions = qs
	}

	room := &model.Room{
		Code:      code,
		HostID:    hostID,
		Status:    model.RoomStatusWaiting,
		Players:   []*model.Player{},
		Questions: questions,
		Rounds:    plan,
		Answers:   []model.Answer{},
		Settings:  settings,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room_code", string(code)),
		slog.String("host_id", string(hostID)),
		slog.Int("rounds", len(plan)),
	)

	return room, nil
}

// GetRoom retrieves a room by code. Absence is a normal outcome
// surfaced as ErrRoomNotFound.
func (c *Controller) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return c.storage.GetRoom(ctx, code)
}

// UpdateSettings merges a partial settings patch, applying the
// mode-dependent time limit derivation and team (re)assignment rules
func (c *Controller) UpdateSettings(ctx context.Context, code model.RoomCode, patch model.SettingsPatch) (*model.Room, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	wasTeamMode := room.Settings.Mode == model.ModeTeam
	room.Settings = model.ApplySettingsPatch(room.Settings, patch)

	enteringTeamMode := patch.Mode != nil && *patch.Mode == model.ModeTeam
	changingTeamCount := wasTeamMode && room.Settings.Mode == model.ModeTeam && patch.TeamCount != nil

	switch {
	case enteringTeamMode || changingTeamCount:
		c.assignTeams(room)
	case patch.Mode != nil && *patch.Mode != model.ModeTeam:
		// Leaving team mode clears team data
		for _, p := range room.Players {
			p.TeamID = ""
		}
		room.TeamScores = nil
	}

	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// assignTeams reassigns all players wholesale, round-robin by join
// order, and resets team aggregates
func (c *Controller) assignTeams(room *model.Room) {
	teams := room.ActiveTeams()
	for i, p := range room.Players {
		p.TeamID = teams[i%len(teams)]
	}

	room.TeamScores = make(map[model.TeamID]int, len(teams))
	for _, t := range teams {
		room.TeamScores[t] = 0
	}
}

// AddPlayer appends a player; legal only while the room is waiting.
// Rejoin with the same identity is not deduplicated.
func (c *Controller) AddPlayer(ctx context.Context, code model.RoomCode, id model.PlayerID, name string, avatar model.AvatarID) (*model.Player, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Status != model.RoomStatusWaiting {
		return nil, model.ErrRoomNotWaiting
	}

	if avatar == "" {
		avatar = shuffle.Pick(c.random, model.Avatars)
	}

	player := &model.Player{
		ID:              id,
		Name:            name,
		Avatar:          avatar,
		PreviousRank:    len(room.Players) + 1,
		CategoryCorrect: make(map[model.CategoryID]int),
		JoinedAt:        c.clock.Now(),
	}

	if room.Settings.Mode == model.ModeTeam {
		player.TeamID = c.leastPopulatedTeam(room)
	}

	room.Players = append(room.Players, player)
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("room_code", string(code)),
		slog.String("player_id", string(id)),
		slog.Int("player_count", len(room.Players)),
	)

	return player, nil
}

// leastPopulatedTeam balances by current per-team headcount, breaking
// ties by team list order
func (c *Controller) leastPopulatedTeam(room *model.Room) model.TeamID {
	teams := room.ActiveTeams()
	counts := make(map[model.TeamID]int, len(teams))
	for _, p := range room.Players {
		counts[p.TeamID]++
	}

	best := teams[0]
	for _, t := range teams[1:] {
		if counts[t] < counts[best] {
			best = t
		}
	}
	return best
}

// RemovePlayer drops a player from the room
func (c *Controller) RemovePlayer(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return err
	}

	for i, p := range room.Players {
		if p.ID == playerID {
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			room.UpdatedAt = c.clock.Now()
			return c.storage.SaveRoom(ctx, room)
		}
	}
	return model.ErrPlayerNotFound
}

// AddSpectator registers a read-only observer; legal in any status
func (c *Controller) AddSpectator(ctx context.Context, code model.RoomCode, id model.PlayerID, name string) (*model.Spectator, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	spectator := &model.Spectator{
		ID:       id,
		Name:     name,
		JoinedAt: c.clock.Now(),
	}
	room.Spectators = append(room.Spectators, spectator)
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return spectator, nil
}

// RemoveSpectator drops a spectator from the room
func (c *Controller) RemoveSpectator(ctx context.Context, code model.RoomCode, id model.PlayerID) error {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return err
	}

	for i, s := range room.Spectators {
		if s.ID == id {
			room.Spectators = append(room.Spectators[:i], room.Spectators[i+1:]...)
			room.UpdatedAt = c.clock.Now()
			return c.storage.SaveRoom(ctx, room)
		}
	}
	return model.ErrPlayerNotFound
}

// DeleteRoom removes the room; used for manual cleanup
func (c *Controller) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	unlock := c.locks.Lock(code)
	err := c.storage.DeleteRoom(ctx, code)
	unlock()
	c.locks.Forget(code)

	if err == nil {
		c.logger.Info("room deleted", slog.String("room_code", string(code)))
	}
	return err
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateRoom(ctx context.Context, hostID model.PlayerID) (*model.Room, error)
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	UpdateSettings(ctx context.Context, code model.RoomCode, patch model.SettingsPatch) (*model.Room, error)
	AddPlayer(ctx context.Context, code model.RoomCode, id model.PlayerID, name string, avatar model.AvatarID) (*model.Player, error)
	RemovePlayer(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error
	AddSpectator(ctx context.Context, code model.RoomCode, id model.PlayerID, name string) (*model.Spectator, error)
	RemoveSpectator(ctx context.Context, code model.RoomCode, id model.PlayerID) error
	DeleteRoom(ctx context.Context, code model.RoomCode) error
}

var _ ControllerInterface = (*Controller)(nil)
