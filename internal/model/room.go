package model

import (
	"sort"
	"time"
)

// RoomCode is a short human-typeable identifier for joining rooms
type RoomCode string

// RoomStatus represents the lifecycle phase of a room
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"  // Players joining, game not started
	RoomStatusPlaying  RoomStatus = "playing"  // A question is live
	RoomStatusVoting   RoomStatus = "voting"   // Category ballot open
	RoomStatusPaused   RoomStatus = "paused"   // Question flow suspended
	RoomStatusFinished RoomStatus = "finished" // Terminal; no transition leaves it
)

// Room is one trivia session, keyed by Code
type Room struct {
	Code   RoomCode
	HostID PlayerID
	Status RoomStatus

	// Players in join order; order matters for tie-break display only
	Players    []*Player
	Spectators []*Spectator

	// Questions grows over time as later rounds are materialized
	Questions            []*Question
	CurrentQuestionIndex int

	Rounds            []RoundConfig
	CurrentRoundIndex int

	// CurrentCategory is the most recent voting winner
	CurrentCategory CategoryID

	// Answers is an append-only log, scoped per question by QuestionID
	Answers []Answer

	Settings GameSettings

	// TeamScores is present only in team mode, updated incrementally
	TeamScores map[TeamID]int

	VotingState *VotingState
	PauseState  *PauseState

	// Achievements is an append-only log, global to the room
	Achievements []EarnedAchievement

	// FirstCorrectGiven gates the first-correct-answer-of-the-game
	// achievement; one-shot
	FirstCorrectGiven bool

	// QuestionStartTime is set when a question goes live; zero means
	// latency cannot be scored for the current question
	QuestionStartTime time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrentQuestion returns the question at the cursor, or nil if the
// cursor has run past the materialized list
func (r *Room) CurrentQuestion() *Question {
	if r.CurrentQuestionIndex < 0 || r.CurrentQuestionIndex >= len(r.Questions) {
		return nil
	}
	return r.Questions[r.CurrentQuestionIndex]
}

// CurrentRound returns the round at the round cursor, or nil
func (r *Room) CurrentRound() *RoundConfig {
	if r.CurrentRoundIndex < 0 || r.CurrentRoundIndex >= len(r.Rounds) {
		return nil
	}
	return &r.Rounds[r.CurrentRoundIndex]
}

// IsFinaleRound reports whether the round cursor is on the last round
// of the plan
func (r *Room) IsFinaleRound() bool {
	return len(r.Rounds) > 0 && r.CurrentRoundIndex == len(r.Rounds)-1
}

// FindPlayer returns the player with the given ID, or nil
func (r *Room) FindPlayer(id PlayerID) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// HasAnswer reports whether an answer already exists for the
// (player, question) pair
func (r *Room) HasAnswer(playerID PlayerID, questionID QuestionID) bool {
	for _, a := range r.Answers {
		if a.PlayerID == playerID && a.QuestionID == questionID {
			return true
		}
	}
	return false
}

// AnswersForQuestion returns the answers logged against a question,
// sorted by submission time ascending
func (r *Room) AnswersForQuestion(questionID QuestionID) []Answer {
	var answers []Answer
	for _, a := range r.Answers {
		if a.QuestionID == questionID {
			answers = append(answers, a)
		}
	}
	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].SubmittedAt.Before(answers[j].SubmittedAt)
	})
	return answers
}

// ActiveTeams returns the teams in use for the current team count
func (r *Room) ActiveTeams() []TeamID {
	count := r.Settings.TeamCount
	if count < 2 {
		count = 2
	}
	if count > len(TeamIDs) {
		count = len(TeamIDs)
	}
	return TeamIDs[:count]
}

// LeaderboardEntry is one ranked row of the room leaderboard
type LeaderboardEntry struct {
	PlayerID   PlayerID
	PlayerName string
	Score      int
	Rank       int
}

// Leaderboard returns players ranked by score descending. Ties keep
// join order.
func (r *Room) Leaderboard() []LeaderboardEntry {
	sorted := make([]*Player, len(r.Players))
	copy(sorted, r.Players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	entries := make([]LeaderboardEntry, len(sorted))
	for i, p := range sorted {
		entries[i] = LeaderboardEntry{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Score:      p.Score,
			Rank:       i + 1,
		}
	}
	return entries
}
