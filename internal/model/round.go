package model

// GameLength selects how many rounds a game plan contains
type GameLength string

const (
	GameLengthShort  GameLength = "short"
	GameLengthMedium GameLength = "medium"
	GameLengthLong   GameLength = "long"
)

// RoundType determines how a round's questions are sourced
type RoundType string

const (
	// RoundMixed draws questions from every category
	RoundMixed RoundType = "mixed"
	// RoundCategory opens a voting interlude to pick the category
	RoundCategory RoundType = "category"
	// RoundFinale is the last round; points earned in it are doubled
	RoundFinale RoundType = "finale"
)

// RoundConfig describes one phase of the game plan
type RoundConfig struct {
	ID            string
	Name          string
	Type          RoundType
	QuestionCount int
	// Difficulty filters the question pool when set
	Difficulty Difficulty
	// Multiplier applies to all points scored in this round (finale: 2)
	Multiplier int
}
