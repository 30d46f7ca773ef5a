package redis

import (
	"fmt"

	"github.com/quizparty/quizparty-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "quizparty"

// roomKey returns the Redis key for a Room
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}

// categoriesKey returns the Redis key for the category list
func categoriesKey() string {
	return fmt.Sprintf("%s:bank:categories", keyPrefix)
}

// questionsKey returns the Redis key for the question list
func questionsKey() string {
	return fmt.Sprintf("%s:bank:questions", keyPrefix)
}
