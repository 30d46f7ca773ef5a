package questionbank_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quizparty/quizparty-go/internal/model"
	"github.com/quizparty/quizparty-go/internal/questionbank"
	"github.com/quizparty/quizparty-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite

	ctx   context.Context
	store *memory.Storage
	svc   *questionbank.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.svc = questionbank.New(s.store)
	s.svc.Load(questionbank.SeedCategories(), questionbank.SeedQuestions())
}

func (s *ServiceSuite) TestEmptyBankIsNotLoaded() {
	svc := questionbank.New(memory.New())
	s.False(svc.Loaded())

	svc.Load(nil, nil)
	s.False(svc.Loaded())
}

func (s *ServiceSuite) TestLoadedAfterLoad() {
	s.True(s.svc.Loaded())
}

func (s *ServiceSuite) TestLoadFromStorage() {
	s.Require().NoError(s.store.SaveCategories(s.ctx, questionbank.SeedCategories()))
	s.Require().NoError(s.store.SaveQuestions(s.ctx, questionbank.SeedQuestions()))

	svc := questionbank.New(s.store)
	s.Require().NoError(svc.LoadFromStorage(s.ctx))

	s.True(svc.Loaded())
	s.Len(svc.Categories(), len(questionbank.SeedCategories()))
}

func (s *ServiceSuite) TestLoadFromStorageEmptyStaysUnloaded() {
	svc := questionbank.New(memory.New())
	s.Require().NoError(svc.LoadFromStorage(s.ctx))
	s.False(svc.Loaded())
}

func (s *ServiceSuite) TestCategoryLookup() {
	cat := s.svc.Category(model.CategoryMixed)
	s.Require().NotNil(cat)
	s.True(cat.IsBonus)

	s.Nil(s.svc.Category("no-such-category"))
}

func (s *ServiceSuite) TestQuestionByID() {
	q := s.svc.QuestionByID("h1")
	s.Require().NotNil(q)
	s.Equal(model.CategoryHistory, q.Category)

	s.Nil(s.svc.QuestionByID("zzz"))
}

func (s *ServiceSuite) TestQuestionsFilterByCategory() {
	questions := s.svc.Questions(model.CategoryHistory, "")
	s.Require().NotEmpty(questions)
	for _, q := range questions {
		s.Equal(model.CategoryHistory, q.Category)
	}
}

func (s *ServiceSuite) TestQuestionsFilterByDifficulty() {
	questions := s.svc.Questions("", model.DifficultyHard)
	s.Require().NotEmpty(questions)
	for _, q := range questions {
		s.Equal(model.DifficultyHard, q.Difficulty)
	}
}

func (s *ServiceSuite) TestQuestionsFilterByBoth() {
	questions := s.svc.Questions(model.CategoryHistory, model.DifficultyEasy)
	s.Require().NotEmpty(questions)
	for _, q := range questions {
		s.Equal(model.CategoryHistory, q.Category)
		s.Equal(model.DifficultyEasy, q.Difficulty)
	}
}

func (s *ServiceSuite) TestQuestionsWildcardReturnsEverything() {
	s.Len(s.svc.Questions("", ""), len(questionbank.SeedQuestions()))
}

func (s *ServiceSuite) TestCategoryIDsExcludes() {
	all := s.svc.CategoryIDs()
	s.Len(all, len(questionbank.SeedCategories()))

	filtered := s.svc.CategoryIDs(model.CategoryMixed, model.CategoryHistory)
	s.Len(filtered, len(all)-2)
	s.NotContains(filtered, model.CategoryMixed)
	s.NotContains(filtered, model.CategoryHistory)
}

// Every seed question must be answerable: a malformed entry would only
// surface mid-game otherwise.
func (s *ServiceSuite) TestSeedQuestionsWellFormed() {
	categories := make(map[model.CategoryID]bool)
	for _, c := range questionbank.SeedCategories() {
		categories[c.ID] = true
	}

	for _, q := range questionbank.SeedQuestions() {
		s.True(categories[q.Category], "question %s references unknown category %s", q.ID, q.Category)

		switch q.Type {
		case model.QuestionMultipleChoice, model.QuestionTrueFalse, model.QuestionImage:
			s.GreaterOrEqual(len(q.Answers), 2, "question %s", q.ID)
			s.GreaterOrEqual(q.CorrectIndex, 0, "question %s", q.ID)
			s.Less(q.CorrectIndex, len(q.Answers), "question %s", q.ID)
		case model.QuestionEstimation:
			s.Greater(q.Tolerance, 0.0, "question %s", q.ID)
		case model.QuestionSorting:
			s.Len(q.CorrectOrder, len(q.Answers), "question %s", q.ID)
			seen := make(map[string]bool)
			for _, a := range q.Answers {
				seen[a] = true
			}
			for _, a := range q.CorrectOrder {
				s.True(seen[a], "question %s order entry %q not in answers", q.ID, a)
			}
		default:
			s.Failf("unknown question type", "question %s has type %s", q.ID, q.Type)
		}
	}
}
