package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type RoomSuite struct {
	suite.Suite
}

func TestRoomSuite(t *testing.T) {
	suite.Run(t, new(RoomSuite))
}

func (s *RoomSuite) player(id string, score int) *Player {
	return &Player{ID: PlayerID(id), Name: id, Score: score}
}

func (s *RoomSuite) TestCurrentQuestionOutOfRange() {
	room := &Room{Questions: []*Question{{ID: "q1"}}}

	room.CurrentQuestionIndex = 1
	s.Nil(room.CurrentQuestion())

	room.CurrentQuestionIndex = -1
	s.Nil(room.CurrentQuestion())

	room.CurrentQuestionIndex = 0
	s.Require().NotNil(room.CurrentQuestion())
	s.Equal(QuestionID("q1"), room.CurrentQuestion().ID)
}

func (s *RoomSuite) TestIsFinaleRound() {
	room := &Room{Rounds: []RoundConfig{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}}}

	room.CurrentRoundIndex = 0
	s.False(room.IsFinaleRound())

	room.CurrentRoundIndex = 2
	s.True(room.IsFinaleRound())
}

func (s *RoomSuite) TestAnswersForQuestionSortedBySubmission() {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	room := &Room{
		Answers: []Answer{
			{PlayerID: "b", QuestionID: "q1", SubmittedAt: base.Add(2 * time.Second)},
			{PlayerID: "a", QuestionID: "q1", SubmittedAt: base.Add(1 * time.Second)},
			{PlayerID: "c", QuestionID: "q2", SubmittedAt: base},
		},
	}

	answers := room.AnswersForQuestion("q1")

	s.Require().Len(answers, 2)
	s.Equal(PlayerID("a"), answers[0].PlayerID)
	s.Equal(PlayerID("b"), answers[1].PlayerID)
}

func (s *RoomSuite) TestHasAnswerScopedPerQuestion() {
	room := &Room{
		Answers: []Answer{{PlayerID: "a", QuestionID: "q1"}},
	}

	s.True(room.HasAnswer("a", "q1"))
	s.False(room.HasAnswer("a", "q2"))
	s.False(room.HasAnswer("b", "q1"))
}

func (s *RoomSuite) TestLeaderboardOrdersByScoreDescending() {
	room := &Room{Players: []*Player{
		s.player("low", 100),
		s.player("high", 500),
		s.player("mid", 300),
	}}

	board := room.Leaderboard()

	s.Require().Len(board, 3)
	s.Equal(PlayerID("high"), board[0].PlayerID)
	s.Equal(1, board[0].Rank)
	s.Equal(PlayerID("mid"), board[1].PlayerID)
	s.Equal(PlayerID("low"), board[2].PlayerID)
	s.Equal(3, board[2].Rank)
}

func (s *RoomSuite) TestLeaderboardTiesKeepJoinOrder() {
	room := &Room{Players: []*Player{
		s.player("first", 200),
		s.player("second", 200),
	}}

	board := room.Leaderboard()

	s.Equal(PlayerID("first"), board[0].PlayerID)
	s.Equal(PlayerID("second"), board[1].PlayerID)
}

func (s *RoomSuite) TestActiveTeamsClampsCount() {
	room := &Room{}

	room.Settings.TeamCount = 0
	s.Equal([]TeamID{TeamRed, TeamBlue}, room.ActiveTeams())

	room.Settings.TeamCount = 3
	s.Equal([]TeamID{TeamRed, TeamBlue, TeamGreen}, room.ActiveTeams())

	room.Settings.TeamCount = 99
	s.Equal(TeamIDs, room.ActiveTeams())
}
