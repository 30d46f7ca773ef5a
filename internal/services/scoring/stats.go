package scoring

import (
	"context"
	"time"

	"github.com/quizparty/quizparty-go/internal/model"
)

// Minimum activity bars for post-game awards, so a single lucky answer
// doesn't win a whole-game title
const (
	speedsterMinCorrect = 3
	brainiacMinAnswers  = 5
	longestStreakMin    = 3
)

// Award names one player for a whole-game title
type Award struct {
	PlayerID   model.PlayerID
	PlayerName string
}

// CategoryStat summarizes one category's outcomes across the game
type CategoryStat struct {
	Category     model.CategoryID
	TotalCorrect int
	TopPlayer    model.PlayerID
}

// Stats is the post-game summary
type Stats struct {
	// MVP is the score leader; nil only for an empty room
	MVP *Award

	// Speedster has the lowest average response time among players with
	// enough correct answers
	Speedster        *Award
	SpeedsterAverage time.Duration

	// Brainiac has the best accuracy among players with enough answers
	Brainiac         *Award
	BrainiacAccuracy float64

	// LongestStreak holds the best max streak, when it clears the bar
	LongestStreak       *Award
	LongestStreakLength int

	Categories []CategoryStat

	// WinningTeam is set only in team mode
	WinningTeam model.TeamID

	Leaderboard  []model.LeaderboardEntry
	Achievements []model.EarnedAchievement
}

// GameStats computes the post-game awards from the room's accumulated
// aggregates. Valid at any time but meaningful once the game finished.
func (c *Controller) GameStats(ctx context.Context, code model.RoomCode) (*Stats, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Leaderboard:  room.Leaderboard(),
		Achievements: room.Achievements,
	}

	answered := answerCounts(room)

	for _, p := range room.Players {
		if p.TotalCorrect >= speedsterMinCorrect {
			avg := p.TotalResponseTime / time.Duration(p.TotalCorrect)
			if stats.Speedster == nil || avg < stats.SpeedsterAverage {
				stats.Speedster = &Award{PlayerID: p.ID, PlayerName: p.Name}
				stats.SpeedsterAverage = avg
			}
		}

		if n := answered[p.ID]; n >= brainiacMinAnswers {
			accuracy := float64(p.TotalCorrect) / float64(n)
			if stats.Brainiac == nil || accuracy > stats.BrainiacAccuracy {
				stats.Brainiac = &Award{PlayerID: p.ID, PlayerName: p.Name}
				stats.BrainiacAccuracy = accuracy
			}
		}

		if p.MaxStreak >= longestStreakMin && p.MaxStreak > stats.LongestStreakLength {
			stats.LongestStreak = &Award{PlayerID: p.ID, PlayerName: p.Name}
			stats.LongestStreakLength = p.MaxStreak
		}
	}

	// Leaderboard is score-ordered, so the first entry is the MVP
	if len(stats.Leaderboard) > 0 {
		top := stats.Leaderboard[0]
		stats.MVP = &Award{PlayerID: top.PlayerID, PlayerName: top.PlayerName}
	}

	stats.Categories = categoryStats(room)

	if room.Settings.Mode == model.ModeTeam {
		stats.WinningTeam = winningTeam(room)
	}

	return stats, nil
}

// answerCounts tallies submissions per player across the whole game
func answerCounts(room *model.Room) map[model.PlayerID]int {
	counts := make(map[model.PlayerID]int, len(room.Players))
	for _, a := range room.Answers {
		counts[a.PlayerID]++
	}
	return counts
}

// categoryStats aggregates correct answers per category, naming the
// player with the most in each. Categories nobody scored in are omitted.
func categoryStats(room *model.Room) []CategoryStat {
	byCategory := make(map[model.CategoryID]*CategoryStat)
	var order []model.CategoryID

	for _, p := range room.Players {
		for cat, n := range p.CategoryCorrect {
			if n == 0 {
				continue
			}
			stat, ok := byCategory[cat]
			if !ok {
				stat = &CategoryStat{Category: cat}
				byCategory[cat] = stat
				order = append(order, cat)
			}
			stat.TotalCorrect += n
		}
	}

	for _, cat := range order {
		best := 0
		for _, p := range room.Players {
			if n := p.CategoryCorrect[cat]; n > best {
				best = n
				byCategory[cat].TopPlayer = p.ID
			}
		}
	}

	out := make([]CategoryStat, 0, len(order))
	for _, cat := range order {
		out = append(out, *byCategory[cat])
	}
	return out
}

// winningTeam picks the top team score; ties go to team list order
func winningTeam(room *model.Room) model.TeamID {
	var winner model.TeamID
	best := -1
	for _, t := range room.ActiveTeams() {
		if score := room.TeamScores[t]; score > best {
			best = score
			winner = t
		}
	}
	return winner
}
