// Package scoring turns the answer log for a question into points,
// streaks, power-up grants, and achievements, and computes the
// post-game awards.
package scoring

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/quizparty/quizparty-go/internal/dependencies/clock"
	"github.com/quizparty/quizparty-go/internal/dependencies/random"
	"github.com/quizparty/quizparty-go/internal/model"
	"github.com/quizparty/quizparty-go/internal/questionbank"
	"github.com/quizparty/quizparty-go/internal/roomlock"
	"github.com/quizparty/quizparty-go/internal/shuffle"
	"github.com/quizparty/quizparty-go/internal/storage"
)

const (
	// maxPlausibleResponse caps response latency; anything at or beyond
	// it is treated as unmeasured (clock skew, rejoin, stale tab)
	maxPlausibleResponse = 30 * time.Second

	// powerUpStreak is the streak at which a held power-up is granted
	powerUpStreak = 3

	// hotStreakLength is the streak at which the streak achievement fires
	hotStreakLength = 5

	// perfectRoundCount is correct-per-category bar for the category
	// achievement
	perfectRoundCount = 3

	// comebackJump is the minimum rank improvement for the comeback
	// achievement
	comebackJump = 3
)

// PlayerResult is one player's outcome for a single question
type PlayerResult struct {
	PlayerID     model.PlayerID
	PlayerName   string
	Answered     bool
	Correct      bool
	PointsEarned int
	Streak       int
	ResponseTime time.Duration
	Achievements []model.AchievementType
}

// QuestionResults is the full outcome of scoring one question
type QuestionResults struct {
	QuestionID  model.QuestionID
	Results     []PlayerResult
	Leaderboard []model.LeaderboardEntry
	TeamScores  map[model.TeamID]int
}

// Controller scores questions and computes awards
type Controller struct {
	storage storage.Storage
	bank    *questionbank.Service
	locks   *roomlock.Manager
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new scoring controller
func NewController(
	storage storage.Storage,
	bank *questionbank.Service,
	locks *roomlock.Manager,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		bank:    bank,
		locks:   locks,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// CalculateQuestionResults scores the current question from the answer
// log. Correct answers are scored in submission order; everyone else
// has their streak reset. Mutates and persists the room.
func (c *Controller) CalculateQuestionResults(ctx context.Context, code model.RoomCode) (*QuestionResults, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	question := room.CurrentQuestion()
	if question == nil {
		return nil, model.ErrNoCurrentQuestion
	}

	answers := room.AnswersForQuestion(question.ID)
	results := make(map[model.PlayerID]*PlayerResult, len(room.Players))
	for _, p := range room.Players {
		results[p.ID] = &PlayerResult{PlayerID: p.ID, PlayerName: p.Name}
	}

	now := c.clock.Now()
	correctRank := 0
	var firstCorrect *model.Player
	for _, answer := range answers {
		player := room.FindPlayer(answer.PlayerID)
		if player == nil {
			continue
		}
		result := results[player.ID]
		result.Answered = true

		rt, plausible := c.responseTime(room, answer)
		result.ResponseTime = rt

		if !isCorrect(question, answer) {
			player.Streak = 0
			if player.ActivePowerUp == model.PowerUpDoublePoints {
				player.ActivePowerUp = ""
			}
			continue
		}

		result.Correct = true
		if correctRank == 0 {
			firstCorrect = player
		}
		player.Streak++
		if player.Streak > player.MaxStreak {
			player.MaxStreak = player.Streak
		}
		player.TotalCorrect++
		if player.CategoryCorrect == nil {
			player.CategoryCorrect = make(map[model.CategoryID]int)
		}
		player.CategoryCorrect[question.Category]++
		if plausible {
			player.TotalResponseTime += rt
		}

		points := c.scoreAnswer(room, question, player, correctRank, rt, plausible)
		correctRank++

		player.Score += points
		result.PointsEarned = points
		result.Streak = player.Streak
		if room.Settings.Mode == model.ModeTeam && player.TeamID != "" {
			if room.TeamScores == nil {
				room.TeamScores = make(map[model.TeamID]int)
			}
			room.TeamScores[player.TeamID] += points
		}

		// A streak of exactly three earns a power-up if the slot is free
		if player.Streak == powerUpStreak && player.PowerUp == "" {
			player.PowerUp = shuffle.Pick(c.random, model.PowerUpTypes)
			c.logger.Info("power-up granted",
				slog.String("room_code", string(code)),
				slog.String("player_id", string(player.ID)),
				slog.String("power_up", string(player.PowerUp)),
			)
		}

		c.awardAnswerAchievements(room, player, result, now)
	}

	// Non-responders lose their streak and any armed double-points
	for _, p := range room.Players {
		if !results[p.ID].Answered {
			p.Streak = 0
			if p.ActivePowerUp == model.PowerUpDoublePoints {
				p.ActivePowerUp = ""
			}
		}
	}

	// The question's first correct answer earns first blood once per
	// game, then the speed achievement on every later question
	if firstCorrect != nil {
		if !room.FirstCorrectGiven {
			room.FirstCorrectGiven = true
			c.grant(room, firstCorrect, results[firstCorrect.ID], model.AchievementFirstBlood, now)
		} else {
			c.grant(room, firstCorrect, results[firstCorrect.ID], model.AchievementSpeedDemon, now)
		}
	}

	c.awardComebacks(room, results, now)

	room.UpdatedAt = now
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	out := &QuestionResults{
		QuestionID:  question.ID,
		Results:     make([]PlayerResult, 0, len(room.Players)),
		Leaderboard: room.Leaderboard(),
		TeamScores:  room.TeamScores,
	}
	for _, p := range room.Players {
		out.Results = append(out.Results, *results[p.ID])
	}
	return out, nil
}

// responseTime measures submission latency against the question start.
// Latency is plausible only when strictly positive and under the cap;
// an unset start time means latency cannot be measured at all.
func (c *Controller) responseTime(room *model.Room, answer model.Answer) (time.Duration, bool) {
	if room.QuestionStartTime.IsZero() {
		return 0, false
	}
	rt := answer.SubmittedAt.Sub(room.QuestionStartTime)
	if rt <= 0 || rt >= maxPlausibleResponse {
		return rt, false
	}
	return rt, true
}

// scoreAnswer computes the points for one correct answer. correctRank
// is the 0-based position among correct answers in submission order.
func (c *Controller) scoreAnswer(room *model.Room, question *model.Question, player *model.Player, correctRank int, rt time.Duration, plausible bool) int {
	base := float64(room.Settings.BasePoints)

	// Position decay: each earlier correct answer costs 10%, floored at half
	points := base * math.Max(0.5, 1.0-0.1*float64(correctRank))

	// Speed and streak bonuses scale the decayed value, not the base
	bonus := 0.0
	if plausible && room.Settings.TimeLimit > 0 {
		fraction := rt.Seconds() / float64(room.Settings.TimeLimit)
		switch {
		case fraction < 0.25:
			bonus += 0.30
		case fraction < 0.50:
			bonus += 0.20
		case fraction < 0.75:
			bonus += 0.10
		}
	}

	if room.Settings.StreakBonus && player.Streak >= 2 {
		bonus += math.Min(0.5, float64(player.Streak-1)*0.1)
	}

	points = math.Round(points * (1 + bonus))

	if round := room.CurrentRound(); round != nil && round.Multiplier > 1 {
		points *= float64(round.Multiplier)
	}

	if cat := c.bank.Category(question.Category); cat != nil && cat.IsBonus {
		points *= float64(room.Settings.BonusMultiplier)
	}

	if room.Settings.Mode == model.ModeLightning {
		points *= 2
	}

	if player.ActivePowerUp == model.PowerUpDoublePoints {
		points *= 2
		player.ActivePowerUp = ""
	}

	return int(math.Round(points))
}

// isCorrect dispatches on question type: index equality for choice
// questions, a tolerance band for estimation, and exact order for
// sorting. Malformed payloads are simply wrong.
func isCorrect(question *model.Question, answer model.Answer) bool {
	switch {
	case question.Type.IsChoice():
		return answer.AnswerIndex == question.CorrectIndex
	case question.Type == model.QuestionEstimation:
		value, err := strconv.ParseFloat(answer.AnswerValue, 64)
		if err != nil {
			return false
		}
		return math.Abs(value-question.CorrectValue) <= question.Tolerance
	case question.Type == model.QuestionSorting:
		var order []string
		if err := json.Unmarshal([]byte(answer.AnswerValue), &order); err != nil {
			return false
		}
		if len(order) != len(question.CorrectOrder) {
			return false
		}
		for i, item := range order {
			if item != question.CorrectOrder[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// awardAnswerAchievements checks the achievements triggered by a
// single correct answer. Each fires on the crossing itself, so a
// reset-and-reclimb earns it again.
func (c *Controller) awardAnswerAchievements(room *model.Room, player *model.Player, result *PlayerResult, now time.Time) {
	if player.Streak == hotStreakLength {
		c.grant(room, player, result, model.AchievementHotStreak, now)
	}

	if player.CategoryCorrect[room.CurrentQuestion().Category] == perfectRoundCount {
		c.grant(room, player, result, model.AchievementPerfectRound, now)
	}
}

// awardComebacks compares post-scoring ranks against the ranks before
// this pass and grants the comeback achievement for big jumps, then
// records the new ranks for the next pass
func (c *Controller) awardComebacks(room *model.Room, results map[model.PlayerID]*PlayerResult, now time.Time) {
	board := room.Leaderboard()
	ranks := make(map[model.PlayerID]int, len(board))
	for _, entry := range board {
		ranks[entry.PlayerID] = entry.Rank
	}

	for _, p := range room.Players {
		newRank := ranks[p.ID]
		if p.PreviousRank-newRank >= comebackJump {
			c.grant(room, p, results[p.ID], model.AchievementComebackKing, now)
		}
		p.PreviousRank = newRank
	}
}

// grant appends to the room's achievement log and mirrors the award
// onto the player's result row. First blood is gated room-wide by the
// caller; everything else fires per occurrence.
func (c *Controller) grant(room *model.Room, player *model.Player, result *PlayerResult, kind model.AchievementType, now time.Time) {
	room.Achievements = append(room.Achievements, model.EarnedAchievement{
		Type:          kind,
		PlayerID:      player.ID,
		PlayerName:    player.Name,
		QuestionIndex: room.CurrentQuestionIndex,
		EarnedAt:      now,
	})
	if result != nil {
		result.Achievements = append(result.Achievements, kind)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	CalculateQuestionResults(ctx context.Context, code model.RoomCode) (*QuestionResults, error)
	GameStats(ctx context.Context, code model.RoomCode) (*Stats, error)
}

var _ ControllerInterface = (*Controller)(nil)
