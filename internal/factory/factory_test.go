package factory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quizparty/quizparty-go/internal/model"
)

type FactorySuite struct {
	suite.Suite
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

func (s *FactorySuite) TestDefaultsToMemoryWithSeedBank() {
	app, err := New(Config{})
	s.Require().NoError(err)

	s.NotNil(app.Storage)
	s.True(app.Bank.Loaded())
	s.NotEmpty(app.Bank.Categories())
	s.NotNil(app.RoomController)
	s.NotNil(app.GameController)
	s.NotNil(app.ScoringController)
	s.NotNil(app.VotingController)
	s.NotNil(app.HubManager)
}

func (s *FactorySuite) TestRedisRequiresConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}

func (s *FactorySuite) TestRejectsUnknownStorageType() {
	_, err := New(Config{StorageType: "cassette-tape"})
	s.Error(err)
}

func (s *FactorySuite) TestLoadsBankFromFile() {
	bank := map[string]any{
		"categories": []model.Category{{ID: "custom", Name: "Custom"}},
		"questions": []*model.Question{{
			ID:       "c1",
			Category: "custom",
			Type:     model.QuestionTrueFalse,
			Prompt:   "Custom question?",
			Answers:  []string{"True", "False"},
		}},
	}
	data, err := json.Marshal(bank)
	s.Require().NoError(err)

	path := filepath.Join(s.T().TempDir(), "bank.json")
	s.Require().NoError(os.WriteFile(path, data, 0o644))

	app, err := New(Config{QuestionBankPath: path})
	s.Require().NoError(err)

	s.Require().NotNil(app.Bank.Category("custom"))
	s.Len(app.Bank.Questions("", ""), 1)

	// The file bank is persisted to storage for later loads
	questions, err := app.Storage.GetQuestions(context.Background())
	s.Require().NoError(err)
	s.Len(questions, 1)
}

func (s *FactorySuite) TestMissingBankFileFails() {
	_, err := New(Config{QuestionBankPath: "/nonexistent/bank.json"})
	s.Error(err)
}
