// Package rounds builds the game plan and materializes question sets
// for each round.
package rounds

import (
	"github.com/quizparty/quizparty-go/internal/dependencies/random"
	"github.com/quizparty/quizparty-go/internal/model"
	"github.com/quizparty/quizparty-go/internal/questionbank"
	"github.com/quizparty/quizparty-go/internal/shuffle"
)

// Question counts per round type
const (
	warmupQuestions   = 3
	categoryQuestions = 3
	finaleQuestions   = 3
)

// Service generates round plans and their question subsets
type Service struct {
	bank   *questionbank.Service
	random random.Random
}

// New creates a new round generator
func New(bank *questionbank.Service, random random.Random) *Service {
	return &Service{
		bank:   bank,
		random: random,
	}
}

// GenerateRounds returns the fixed round plan for a game length. Every
// tier ends in exactly one finale round with a x2 multiplier; category
// rounds require a voting interlude before their questions exist.
func (s *Service) GenerateRounds(length model.GameLength) []model.RoundConfig {
	switch length {
	case model.GameLengthShort:
		return []model.RoundConfig{
			{ID: "r1", Name: "Warm-up", Type: model.RoundMixed, QuestionCount: warmupQuestions, Difficulty: model.DifficultyEasy},
			{ID: "r2", Name: "Crowd Favorite", Type: model.RoundCategory, QuestionCount: categoryQuestions, Difficulty: model.DifficultyMedium},
			{ID: "r3", Name: "Finale", Type: model.RoundFinale, QuestionCount: finaleQuestions, Difficulty: model.DifficultyHard, Multiplier: 2},
		}
	case model.GameLengthMedium:
		return []model.RoundConfig{
			{ID: "r1", Name: "Warm-up", Type: model.RoundMixed, QuestionCount: warmupQuestions, Difficulty: model.DifficultyEasy},
			{ID: "r2", Name: "Category Pick 1", Type: model.RoundCategory, QuestionCount: categoryQuestions, Difficulty: model.DifficultyMedium},
			{ID: "r3", Name: "Category Pick 2", Type: model.RoundCategory, QuestionCount: categoryQuestions, Difficulty: model.DifficultyMedium},
			{ID: "r4", Name: "Finale", Type: model.RoundFinale, QuestionCount: finaleQuestions, Difficulty: model.DifficultyHard, Multiplier: 2},
		}
	case model.GameLengthLong:
		return []model.RoundConfig{
			{ID: "r1", Name: "Warm-up", Type: model.RoundMixed, QuestionCount: warmupQuestions, Difficulty: model.DifficultyEasy},
			{ID: "r2", Name: "Category Pick 1", Type: model.RoundCategory, QuestionCount: categoryQuestions, Difficulty: model.DifficultyMedium},
			{ID: "r3", Name: "Category Pick 2", Type: model.RoundCategory, QuestionCount: categoryQuestions, Difficulty: model.DifficultyMedium},
			{ID: "r4", Name: "Category Pick 3", Type: model.RoundCategory, QuestionCount: categoryQuestions, Difficulty: model.DifficultyMedium},
			{ID: "r5", Name: "Finale", Type: model.RoundFinale, QuestionCount: finaleQuestions, Difficulty: model.DifficultyHard, Multiplier: 2},
		}
	default:
		return nil
	}
}

// QuestionsForRound materializes the question subset for a round.
// Category rounds filter the pool to categoryOverride (the resolved
// voting winner); other rounds pool across all categories. The round's
// difficulty further filters when set, falling back to the unfiltered
// pool if the combination yields nothing. Every sampled question has
// its answer order independently shuffled with correct-index remapping.
func (s *Service) QuestionsForRound(round model.RoundConfig, categoryOverride model.CategoryID) ([]*model.Question, error) {
	category := model.CategoryID("")
	if round.Type == model.RoundCategory && categoryOverride != "" {
		category = categoryOverride
	}

	pool := s.bank.Questions(category, round.Difficulty)
	if len(pool) == 0 && round.Difficulty != "" {
		// A sparse category may not cover the requested difficulty
		pool = s.bank.Questions(category, "")
	}
	if len(pool) == 0 {
		return nil, model.ErrBankEmpty
	}

	selected := shuffle.Sample(s.random, pool, round.QuestionCount)

	questions := make([]*model.Question, len(selected))
	for i, q := range selected {
		questions[i] = shuffle.Question(s.random, q)
	}
	return questions, nil
}
