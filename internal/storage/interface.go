package storage

import (
	"context"

	"github.com/quizparty/quizparty-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	DeleteRoom(ctx context.Context, code model.RoomCode) error
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)

	// Question bank operations
	SaveCategories(ctx context.Context, categories []model.Category) error
	GetCategories(ctx context.Context) ([]model.Category, error)
	SaveQuestions(ctx context.Context, questions []*model.Question) error
	GetQuestions(ctx context.Context) ([]*model.Question, error)
}
