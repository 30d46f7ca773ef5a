package shuffle

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quizparty/quizparty-go/internal/dependencies/mocks"
	"github.com/quizparty/quizparty-go/internal/model"
)

type ShuffleSuite struct {
	suite.Suite
	random *mocks.MockRandom
}

func TestShuffleSuite(t *testing.T) {
	suite.Run(t, new(ShuffleSuite))
}

func (s *ShuffleSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
}

func (s *ShuffleSuite) TestSliceDoesNotModifyInput() {
	in := []int{1, 2, 3, 4}

	out := Slice(s.random, in)

	s.Equal([]int{1, 2, 3, 4}, in)
	s.ElementsMatch(in, out)
}

func (s *ShuffleSuite) TestSliceIdentityPermutation() {
	// j == i at every step leaves the order unchanged
	s.random.QueueIntn(2, 1)

	out := Slice(s.random, []string{"a", "b", "c"})

	s.Equal([]string{"a", "b", "c"}, out)
}

func (s *ShuffleSuite) TestSampleWithoutReplacement() {
	in := []int{1, 2, 3, 4, 5}

	out := Sample(s.random, in, 3)

	s.Len(out, 3)
	seen := map[int]bool{}
	for _, v := range out {
		s.False(seen[v])
		seen[v] = true
		s.Contains(in, v)
	}
}

func (s *ShuffleSuite) TestSampleClampsToInputSize() {
	out := Sample(s.random, []int{1, 2}, 10)

	s.Len(out, 2)
}

func (s *ShuffleSuite) TestPick() {
	s.random.QueueIntn(1)

	s.Equal("b", Pick(s.random, []string{"a", "b", "c"}))
}

func (s *ShuffleSuite) TestQuestionRemapsCorrectIndex() {
	q := &model.Question{
		ID:           "q1",
		Type:         model.QuestionMultipleChoice,
		Answers:      []string{"right", "w1", "w2", "w3"},
		CorrectIndex: 0,
	}

	out := Question(s.random, q)

	s.Equal("right", out.Answers[out.CorrectIndex])
	s.ElementsMatch(q.Answers, out.Answers)
	// Original untouched
	s.Equal(0, q.CorrectIndex)
	s.Equal("right", q.Answers[0])
}

func (s *ShuffleSuite) TestQuestionLeavesSortingAnswersAlone() {
	q := &model.Question{
		ID:           "q2",
		Type:         model.QuestionSorting,
		Answers:      []string{"a", "b", "c"},
		CorrectOrder: []string{"a", "b", "c"},
	}

	out := Question(s.random, q)

	s.Equal(q.Answers, out.Answers)
	s.Equal(q.CorrectOrder, out.CorrectOrder)
}
