package model

import "time"

// EventType identifies the type of event broadcast to clients
type EventType string

const (
	// Lobby events
	EventPlayerJoined    EventType = "player_joined"
	EventPlayerLeft      EventType = "player_left"
	EventSpectatorJoined EventType = "spectator_joined"
	EventSettingsChanged EventType = "settings_changed"

	// Game events
	EventGameStarted       EventType = "game_started"
	EventQuestionShown     EventType = "question_shown"
	EventAnswerReceived    EventType = "answer_received"
	EventQuestionEnded     EventType = "question_ended"
	EventAchievementEarned EventType = "achievement_earned"
	EventGamePaused        EventType = "game_paused"
	EventGameResumed       EventType = "game_resumed"
	EventGameEnded         EventType = "game_ended"

	// Voting events
	EventVotingStarted EventType = "voting_started"
	EventVoteCast      EventType = "vote_cast"
	EventVotingEnded   EventType = "voting_ended"
)

// Event is the base structure for all broadcast events
type Event struct {
	Type      EventType
	Timestamp time.Time
	RoomCode  RoomCode
	PlayerID  PlayerID // The player who triggered or is affected, if any
	Payload   any      // Type-specific data
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	Player Player
}

// QuestionShownPayload contains data for question shown events
type QuestionShownPayload struct {
	QuestionIndex int
	RoundIndex    int
	TimeLimit     int
}

// QuestionEndedPayload contains data for question ended events
type QuestionEndedPayload struct {
	QuestionIndex int
	Results       any
	Leaderboard   []LeaderboardEntry
}

// VotingStartedPayload contains data for voting started events
type VotingStartedPayload struct {
	Options []CategoryID
	EndsAt  time.Time
}

// VotingEndedPayload contains data for voting ended events
type VotingEndedPayload struct {
	Winner CategoryID
}

// GameEndedPayload contains data for game ended events
type GameEndedPayload struct {
	Leaderboard []LeaderboardEntry
}
