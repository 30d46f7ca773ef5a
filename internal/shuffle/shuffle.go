// Package shuffle provides Fisher-Yates shuffling and random sampling
// over the injectable Random dependency so tests can pin outcomes.
package shuffle

import (
	"github.com/quizparty/quizparty-go/internal/dependencies/random"
	"github.com/quizparty/quizparty-go/internal/model"
)

// Slice returns a shuffled copy of the input using Fisher-Yates.
// The input is not modified.
func Slice[T any](rnd random.Random, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample returns up to count random items from the input, without
// replacement
func Sample[T any](rnd random.Random, in []T, count int) []T {
	shuffled := Slice(rnd, in)
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// Pick returns one random item from the input. The input must be non-empty.
func Pick[T any](rnd random.Random, in []T) T {
	return in[rnd.Intn(len(in))]
}

// Question returns a copy of the question with its answer order
// randomized and the correct index remapped to match. Only choice-like
// questions shuffle; estimation and sorting questions keep their
// canonical answer order (sorting answers are presented shuffled by the
// client, with correctness judged against CorrectOrder).
func Question(rnd random.Random, q *model.Question) *model.Question {
	out := *q
	if !q.Type.IsChoice() {
		return &out
	}

	correctAnswer := q.Answers[q.CorrectIndex]
	out.Answers = Slice(rnd, q.Answers)
	for i, a := range out.Answers {
		if a == correctAnswer {
			out.CorrectIndex = i
			break
		}
	}
	return &out
}
