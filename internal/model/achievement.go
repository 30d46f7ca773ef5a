package model

import "time"

// AchievementType identifies an in-game achievement
type AchievementType string

const (
	// AchievementFirstBlood is the first correct answer of the game,
	// awarded once per room lifetime
	AchievementFirstBlood AchievementType = "first_blood"
	// AchievementSpeedDemon is a correct answer faster than the speed bar
	AchievementSpeedDemon AchievementType = "speed_demon"
	// AchievementHotStreak fires when a streak reaches exactly 5
	AchievementHotStreak AchievementType = "hot_streak"
	// AchievementPerfectRound fires at exactly 3 correct in a category
	AchievementPerfectRound AchievementType = "perfect_round"
	// AchievementComebackKing fires on a rank jump of 3+ positions
	AchievementComebackKing AchievementType = "comeback_king"
)

// EarnedAchievement is an append-only record of an achievement award
type EarnedAchievement struct {
	Type          AchievementType
	PlayerID      PlayerID
	PlayerName    string
	QuestionIndex int
	EarnedAt      time.Time
}
