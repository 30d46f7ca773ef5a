package model

import "time"

// QuestionID uniquely identifies a question in the bank
type QuestionID string

// CategoryID identifies a question category
type CategoryID string

const (
	CategoryHistory    CategoryID = "history"
	CategoryGeography  CategoryID = "geography"
	CategoryScience    CategoryID = "science"
	CategorySport      CategoryID = "sport"
	CategoryCulture    CategoryID = "culture"
	CategoryMusic      CategoryID = "music"
	CategoryFilm       CategoryID = "film"
	CategoryLiterature CategoryID = "literature"
	CategoryNature     CategoryID = "nature"
	CategoryFood       CategoryID = "food"
	CategoryTechnology CategoryID = "technology"
	CategoryMixed      CategoryID = "mixed"
)

// Category groups questions and carries bonus flags
type Category struct {
	ID   CategoryID
	Name string
	// IsBonus categories award the settings bonus multiplier on top of
	// round effects
	IsBonus bool
}

// Difficulty grades a question
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionType distinguishes the shape of a question's correct answer
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionImage          QuestionType = "image"
	QuestionEstimation     QuestionType = "estimation"
	QuestionSorting        QuestionType = "sorting"
)

// IsChoice reports whether the type is answered by picking an index
func (t QuestionType) IsChoice() bool {
	return t == QuestionMultipleChoice || t == QuestionTrueFalse || t == QuestionImage
}

// Question is an immutable content item. The shape of the correct
// answer varies by Type: CorrectIndex for choice-like types,
// CorrectValue/Tolerance for estimation, CorrectOrder for sorting.
type Question struct {
	ID         QuestionID
	Category   CategoryID
	Difficulty Difficulty
	Type       QuestionType
	Prompt     string
	Answers    []string

	// CorrectIndex is the index into Answers for choice-like types
	CorrectIndex int

	// CorrectValue and Tolerance define the accepted band for estimation
	CorrectValue float64
	Tolerance    float64

	// CorrectOrder is the canonical ordering for sorting questions
	CorrectOrder []string

	ImageURL    string
	Explanation string
}

// Answer is an immutable, append-only submission record. AnswerIndex is
// used for choice-like questions; AnswerValue carries the raw payload
// for estimation and sorting questions.
type Answer struct {
	PlayerID   PlayerID
	QuestionID QuestionID

	AnswerIndex int
	AnswerValue string

	SubmittedAt time.Time
}
