package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// AvatarID identifies a player's avatar
type AvatarID string

// Avatars is the set of selectable avatars
var Avatars = []AvatarID{
	"dog", "cat", "fox", "bear", "panda", "lion", "wolf", "rabbit",
	"whale", "dolphin", "octopus",
	"owl", "eagle", "penguin",
	"pizza", "burger", "icecream", "cake",
	"rocket", "star", "rainbow", "crown", "robot", "alien",
}

// PowerUpType identifies a one-shot special ability
type PowerUpType string

const (
	PowerUpDoublePoints PowerUpType = "double_points"
	PowerUpTimeFreeze   PowerUpType = "time_freeze"
	PowerUpFiftyFifty   PowerUpType = "fifty_fifty"
)

// PowerUpTypes lists all power-ups a player can earn
var PowerUpTypes = []PowerUpType{PowerUpDoublePoints, PowerUpTimeFreeze, PowerUpFiftyFifty}

// TeamID identifies a team in team mode
type TeamID string

const (
	TeamRed    TeamID = "red"
	TeamBlue   TeamID = "blue"
	TeamGreen  TeamID = "green"
	TeamYellow TeamID = "yellow"
)

// TeamIDs lists teams in assignment order; the first N are used for an
// N-team game
var TeamIDs = []TeamID{TeamRed, TeamBlue, TeamGreen, TeamYellow}

// Player represents one participant in a room
type Player struct {
	ID     PlayerID
	Name   string
	Avatar AvatarID

	// Score only ever increases; points are never subtracted
	Score int

	// Streak is the current run of consecutive correct answers,
	// MaxStreak the historical high-water mark
	Streak    int
	MaxStreak int

	// PreviousRank is the leaderboard position before the most recent
	// scoring pass, used for comeback detection
	PreviousRank int

	// CategoryCorrect counts correct answers per category
	CategoryCorrect map[CategoryID]int

	// Running aggregates for post-game awards. TotalResponseTime only
	// accumulates for correct answers with a plausible latency.
	TotalCorrect      int
	TotalResponseTime time.Duration

	// PowerUp is held but not yet activated; ActivePowerUp is in effect
	// and is consumed by the next scoring pass it influences.
	// Empty means none.
	PowerUp       PowerUpType
	ActivePowerUp PowerUpType

	// TeamID is set only in team mode
	TeamID TeamID

	JoinedAt time.Time
}

// Spectator is a read-only observer with no scoring relevance
type Spectator struct {
	ID       PlayerID
	Name     string
	JoinedAt time.Time
}
