// Package questionbank provides read-only lookup over the static
// question content the engine queries but never mutates.
package questionbank

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/quizparty/quizparty-go/internal/model"
	"github.com/quizparty/quizparty-go/internal/storage"
)

// Service provides category and question lookup
type Service struct {
	storage storage.Storage

	mu         sync.RWMutex
	categories []model.Category
	questions  []*model.Question
	byID       map[model.QuestionID]*model.Question
	loaded     bool
}

// New creates a new question bank service
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
		byID:    make(map[model.QuestionID]*model.Question),
	}
}

// bankFile is the on-disk shape of a question bank
type bankFile struct {
	Categories []model.Category  `json:"categories"`
	Questions  []*model.Question `json:"questions"`
}

// LoadFromStorage loads the bank from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	categories, err := s.storage.GetCategories(ctx)
	if err != nil {
		return err
	}
	questions, err := s.storage.GetQuestions(ctx)
	if err != nil {
		return err
	}
	s.load(categories, questions)
	return nil
}

// LoadFromFile loads the bank from a JSON file and saves it to storage
// for future use
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var bank bankFile
	if err := json.Unmarshal(data, &bank); err != nil {
		return err
	}

	if err := s.storage.SaveCategories(ctx, bank.Categories); err != nil {
		return err
	}
	if err := s.storage.SaveQuestions(ctx, bank.Questions); err != nil {
		return err
	}

	s.load(bank.Categories, bank.Questions)
	return nil
}

// Load directly loads categories and questions (useful for testing)
func (s *Service) Load(categories []model.Category, questions []*model.Question) {
	s.load(categories, questions)
}

func (s *Service) load(categories []model.Category, questions []*model.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = categories
	s.questions = questions
	s.byID = make(map[model.QuestionID]*model.Question, len(questions))
	for _, q := range questions {
		s.byID[q.ID] = q
	}
	// An empty bank does not count as loaded; callers fall back to seeds
	s.loaded = len(categories) > 0 || len(questions) > 0
}

// Loaded reports whether any bank content has been loaded
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Categories returns all categories
func (s *Service) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.Category, len(s.categories))
	copy(result, s.categories)
	return result
}

// Category returns the category with the given ID, or nil
func (s *Service) Category(id model.CategoryID) *model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			return &s.categories[i]
		}
	}
	return nil
}

// QuestionByID returns the question with the given ID, or nil
func (s *Service) QuestionByID(id model.QuestionID) *model.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// Questions returns questions filtered by category and difficulty.
// A zero value for either filter matches everything.
func (s *Service) Questions(category model.CategoryID, difficulty model.Difficulty) []*model.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Question
	for _, q := range s.questions {
		if category != "" && q.Category != category {
			continue
		}
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		result = append(result, q)
	}
	return result
}

// CategoryIDs returns the IDs of all categories, optionally excluding some
func (s *Service) CategoryIDs(exclude ...model.CategoryID) []model.CategoryID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	excluded := make(map[model.CategoryID]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	var ids []model.CategoryID
	for _, c := range s.categories {
		if _, skip := excluded[c.ID]; !skip {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
