package response

import (
	"time"

	"github.com/quizparty/quizparty-go/internal/model"
	"github.com/quizparty/quizparty-go/internal/services/scoring"
)

// Player represents a player in API responses
type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Avatar        string `json:"avatar"`
	Score         int    `json:"score"`
	Streak        int    `json:"streak"`
	MaxStreak     int    `json:"max_streak"`
	PowerUp       string `json:"power_up,omitempty"`
	ActivePowerUp string `json:"active_power_up,omitempty"`
	TeamID        string `json:"team_id,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:            string(p.ID),
		Name:          p.Name,
		Avatar:        string(p.Avatar),
		Score:         p.Score,
		Streak:        p.Streak,
		MaxStreak:     p.MaxStreak,
		PowerUp:       string(p.PowerUp),
		ActivePowerUp: string(p.ActivePowerUp),
		TeamID:        string(p.TeamID),
	}
}

// Spectator represents a spectator in API responses
type Spectator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Settings represents room settings
type Settings struct {
	TimeLimit       int    `json:"time_limit"`
	BasePoints      int    `json:"base_points"`
	ShowAnswers     bool   `json:"show_answers"`
	StreakBonus     bool   `json:"streak_bonus"`
	BonusMultiplier int    `json:"bonus_multiplier"`
	Mode            string `json:"mode"`
	TeamCount       int    `json:"team_count"`
	KidsMode        bool   `json:"kids_mode"`
	Theme           string `json:"theme"`
	GameLength      string `json:"game_length"`
}

// SettingsFromModel converts model.GameSettings
func SettingsFromModel(s model.GameSettings) Settings {
	return Settings{
		TimeLimit:       s.TimeLimit,
		BasePoints:      s.BasePoints,
		ShowAnswers:     s.ShowAnswers,
		StreakBonus:     s.StreakBonus,
		BonusMultiplier: s.BonusMultiplier,
		Mode:            string(s.Mode),
		TeamCount:       s.TeamCount,
		KidsMode:        s.KidsMode,
		Theme:           string(s.Theme),
		GameLength:      string(s.GameLength),
	}
}

// Round represents one round of the game plan
type Round struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	QuestionCount int    `json:"question_count"`
	Difficulty    string `json:"difficulty,omitempty"`
	Multiplier    int    `json:"multiplier,omitempty"`
}

// RoundFromModel converts model.RoundConfig
func RoundFromModel(r model.RoundConfig) Round {
	return Round{
		ID:            string(r.ID),
		Name:          r.Name,
		Type:          string(r.Type),
		QuestionCount: r.QuestionCount,
		Difficulty:    string(r.Difficulty),
		Multiplier:    r.Multiplier,
	}
}

// Question is the player-facing view of a question. Correct answers
// are deliberately absent; they only appear in question results.
type Question struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Type     string   `json:"type"`
	Prompt   string   `json:"prompt"`
	Answers  []string `json:"answers,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
}

// QuestionFromModel converts model.Question to its player-facing view
func QuestionFromModel(q *model.Question) Question {
	return Question{
		ID:       string(q.ID),
		Category: string(q.Category),
		Type:     string(q.Type),
		Prompt:   q.Prompt,
		Answers:  q.Answers,
		ImageURL: q.ImageURL,
	}
}

// Voting represents an open or closed ballot
type Voting struct {
	Active  bool      `json:"active"`
	Options []string  `json:"options"`
	Votes   int       `json:"votes"`
	EndsAt  time.Time `json:"ends_at"`
	Winner  string    `json:"winner,omitempty"`
}

// VotingFromModel converts model.VotingState. Individual votes stay
// private; only the count is exposed.
func VotingFromModel(v *model.VotingState) *Voting {
	if v == nil {
		return nil
	}
	options := make([]string, len(v.Options))
	for i, opt := range v.Options {
		options[i] = string(opt)
	}
	return &Voting{
		Active:  v.Active,
		Options: options,
		Votes:   len(v.Votes),
		EndsAt:  v.EndsAt,
		Winner:  string(v.Winner),
	}
}

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Score      int    `json:"score"`
	Rank       int    `json:"rank"`
}

// LeaderboardFromModel converts leaderboard entries
func LeaderboardFromModel(entries []model.LeaderboardEntry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntry{
			PlayerID:   string(e.PlayerID),
			PlayerName: e.PlayerName,
			Score:      e.Score,
			Rank:       e.Rank,
		}
	}
	return out
}

// Achievement is one earned achievement record
type Achievement struct {
	Type          string    `json:"type"`
	PlayerID      string    `json:"player_id"`
	PlayerName    string    `json:"player_name"`
	QuestionIndex int       `json:"question_index"`
	EarnedAt      time.Time `json:"earned_at"`
}

// AchievementsFromModel converts earned achievement records
func AchievementsFromModel(in []model.EarnedAchievement) []Achievement {
	out := make([]Achievement, len(in))
	for i, a := range in {
		out[i] = Achievement{
			Type:          string(a.Type),
			PlayerID:      string(a.PlayerID),
			PlayerName:    a.PlayerName,
			QuestionIndex: a.QuestionIndex,
			EarnedAt:      a.EarnedAt,
		}
	}
	return out
}

// Room represents a room in API responses
type Room struct {
	Code                 string             `json:"code"`
	HostID               string             `json:"host_id"`
	Status               string             `json:"status"`
	Players              []Player           `json:"players"`
	Spectators           []Spectator        `json:"spectators,omitempty"`
	Settings             Settings           `json:"settings"`
	Rounds               []Round            `json:"rounds"`
	CurrentRoundIndex    int                `json:"current_round_index"`
	CurrentQuestionIndex int                `json:"current_question_index"`
	QuestionCount        int                `json:"question_count"`
	CurrentQuestion      *Question          `json:"current_question,omitempty"`
	CurrentCategory      string             `json:"current_category,omitempty"`
	TeamScores           map[string]int     `json:"team_scores,omitempty"`
	Voting               *Voting            `json:"voting,omitempty"`
	Paused               bool               `json:"paused,omitempty"`
	Achievements         []Achievement      `json:"achievements,omitempty"`
	Leaderboard          []LeaderboardEntry `json:"leaderboard"`
	CreatedAt            time.Time          `json:"created_at"`
}

// RoomFromModel converts model.Room
func RoomFromModel(r *model.Room) Room {
	players := make([]Player, len(r.Players))
	for i, p := range r.Players {
		players[i] = PlayerFromModel(p)
	}

	var spectators []Spectator
	for _, s := range r.Spectators {
		spectators = append(spectators, Spectator{ID: string(s.ID), Name: s.Name})
	}

	rounds := make([]Round, len(r.Rounds))
	for i, rc := range r.Rounds {
		rounds[i] = RoundFromModel(rc)
	}

	var teamScores map[string]int
	if len(r.TeamScores) > 0 {
		teamScores = make(map[string]int, len(r.TeamScores))
		for t, score := range r.TeamScores {
			teamScores[string(t)] = score
		}
	}

	var current *Question
	if r.Status == model.RoomStatusPlaying || r.Status == model.RoomStatusPaused {
		if q := r.CurrentQuestion(); q != nil {
			view := QuestionFromModel(q)
			current = &view
		}
	}

	return Room{
		Code:                 string(r.Code),
		HostID:               string(r.HostID),
		Status:               string(r.Status),
		Players:              players,
		Spectators:           spectators,
		Settings:             SettingsFromModel(r.Settings),
		Rounds:               rounds,
		CurrentRoundIndex:    r.CurrentRoundIndex,
		CurrentQuestionIndex: r.CurrentQuestionIndex,
		QuestionCount:        len(r.Questions),
		CurrentQuestion:      current,
		CurrentCategory:      string(r.CurrentCategory),
		TeamScores:           teamScores,
		Voting:               VotingFromModel(r.VotingState),
		Paused:               r.PauseState != nil && r.PauseState.Paused,
		Achievements:         AchievementsFromModel(r.Achievements),
		Leaderboard:          LeaderboardFromModel(r.Leaderboard()),
		CreatedAt:            r.CreatedAt,
	}
}

// PlayerResult is one player's outcome for a question
type PlayerResult struct {
	PlayerID     string   `json:"player_id"`
	PlayerName   string   `json:"player_name"`
	Answered     bool     `json:"answered"`
	Correct      bool     `json:"correct"`
	PointsEarned int      `json:"points_earned"`
	Streak       int      `json:"streak"`
	ResponseMs   int64    `json:"response_ms"`
	Achievements []string `json:"achievements,omitempty"`
}

// QuestionResults is the outcome of scoring one question. The correct
// answer is revealed here.
type QuestionResults struct {
	QuestionID   string             `json:"question_id"`
	CorrectIndex *int               `json:"correct_index,omitempty"`
	CorrectValue *float64           `json:"correct_value,omitempty"`
	CorrectOrder []string           `json:"correct_order,omitempty"`
	Explanation  string             `json:"explanation,omitempty"`
	Results      []PlayerResult     `json:"results"`
	Leaderboard  []LeaderboardEntry `json:"leaderboard"`
	TeamScores   map[string]int     `json:"team_scores,omitempty"`
}

// QuestionResultsFromScoring converts scoring output, revealing the
// correct answer for the scored question
func QuestionResultsFromScoring(qr *scoring.QuestionResults, question *model.Question) QuestionResults {
	results := make([]PlayerResult, len(qr.Results))
	for i, r := range qr.Results {
		achievements := make([]string, len(r.Achievements))
		for j, a := range r.Achievements {
			achievements[j] = string(a)
		}
		results[i] = PlayerResult{
			PlayerID:     string(r.PlayerID),
			PlayerName:   r.PlayerName,
			Answered:     r.Answered,
			Correct:      r.Correct,
			PointsEarned: r.PointsEarned,
			Streak:       r.Streak,
			ResponseMs:   r.ResponseTime.Milliseconds(),
			Achievements: achievements,
		}
	}

	var teamScores map[string]int
	if len(qr.TeamScores) > 0 {
		teamScores = make(map[string]int, len(qr.TeamScores))
		for t, score := range qr.TeamScores {
			teamScores[string(t)] = score
		}
	}

	out := QuestionResults{
		QuestionID:  string(qr.QuestionID),
		Explanation: question.Explanation,
		Results:     results,
		Leaderboard: LeaderboardFromModel(qr.Leaderboard),
		TeamScores:  teamScores,
	}

	switch {
	case question.Type.IsChoice():
		idx := question.CorrectIndex
		out.CorrectIndex = &idx
	case question.Type == model.QuestionEstimation:
		value := question.CorrectValue
		out.CorrectValue = &value
	case question.Type == model.QuestionSorting:
		out.CorrectOrder = question.CorrectOrder
	}

	return out
}

// Award names one player for a whole-game title
type Award struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// CategoryStat summarizes one category across the game
type CategoryStat struct {
	Category     string `json:"category"`
	TotalCorrect int    `json:"total_correct"`
	TopPlayer    string `json:"top_player,omitempty"`
}

// Stats is the post-game summary
type Stats struct {
	MVP                 *Award             `json:"mvp,omitempty"`
	Speedster           *Award             `json:"speedster,omitempty"`
	SpeedsterAverageMs  int64              `json:"speedster_average_ms,omitempty"`
	Brainiac            *Award             `json:"brainiac,omitempty"`
	BrainiacAccuracy    float64            `json:"brainiac_accuracy,omitempty"`
	LongestStreak       *Award             `json:"longest_streak,omitempty"`
	LongestStreakLength int                `json:"longest_streak_length,omitempty"`
	Categories          []CategoryStat     `json:"categories,omitempty"`
	WinningTeam         string             `json:"winning_team,omitempty"`
	Leaderboard         []LeaderboardEntry `json:"leaderboard"`
	Achievements        []Achievement      `json:"achievements,omitempty"`
}

// StatsFromScoring converts post-game stats
func StatsFromScoring(s *scoring.Stats) Stats {
	award := func(a *scoring.Award) *Award {
		if a == nil {
			return nil
		}
		return &Award{PlayerID: string(a.PlayerID), PlayerName: a.PlayerName}
	}

	categories := make([]CategoryStat, len(s.Categories))
	for i, c := range s.Categories {
		categories[i] = CategoryStat{
			Category:     string(c.Category),
			TotalCorrect: c.TotalCorrect,
			TopPlayer:    string(c.TopPlayer),
		}
	}

	return Stats{
		MVP:                 award(s.MVP),
		Speedster:           award(s.Speedster),
		SpeedsterAverageMs:  s.SpeedsterAverage.Milliseconds(),
		Brainiac:            award(s.Brainiac),
		BrainiacAccuracy:    s.BrainiacAccuracy,
		LongestStreak:       award(s.LongestStreak),
		LongestStreakLength: s.LongestStreakLength,
		Categories:          categories,
		WinningTeam:         string(s.WinningTeam),
		Leaderboard:         LeaderboardFromModel(s.Leaderboard),
		Achievements:        AchievementsFromModel(s.Achievements),
	}
}
