package memory

import (
	"context"
	"sync"

	"github.com/quizparty/quizparty-go/internal/model"
	"github.com/quizparty/quizparty-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Rooms are volatile and live for the process lifetime only.
type Storage struct {
	mu sync.RWMutex

	rooms      map[model.RoomCode]*model.Room
	categories []model.Category
	questions  []*model.Question
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms: make(map[model.RoomCode]*model.Room),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.Code] = room
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
	return nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok, nil
}

// Question bank operations

func (s *Storage) SaveCategories(ctx context.Context, categories []model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = make([]model.Category, len(categories))
	copy(s.categories, categories)
	return nil
}

func (s *Storage) GetCategories(ctx context.Context) ([]model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.Category, len(s.categories))
	copy(result, s.categories)
	return result, nil
}

func (s *Storage) SaveQuestions(ctx context.Context, questions []*model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = make([]*model.Question, len(questions))
	copy(s.questions, questions)
	return nil
}

func (s *Storage) GetQuestions(ctx context.Context) ([]*model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Question, len(s.questions))
	copy(result, s.questions)
	return result, nil
}
