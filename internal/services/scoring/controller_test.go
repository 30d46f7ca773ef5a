package scoring_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quizparty/quizparty-go/internal/factory"
	"github.com/quizparty/quizparty-go/internal/model"
	"github.com/quizparty/quizparty-go/internal/services/scoring"
)

type ControllerSuite struct {
	suite.Suite

	ctx context.Context
	app *factory.TestApp
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.ctx = context.Background()
	s.app = factory.NewTestApp()
}

func choiceQuestion() *model.Question {
	return &model.Question{
		ID:           "q1",
		Category:     model.CategoryHistory,
		Type:         model.QuestionMultipleChoice,
		Prompt:       "Pick one",
		Answers:      []string{"a", "b", "c", "d"},
		CorrectIndex: 1,
	}
}

func player(id model.PlayerID, rank int) *model.Player {
	return &model.Player{
		ID:              id,
		Name:            string(id),
		PreviousRank:    rank,
		CategoryCorrect: make(map[model.CategoryID]int),
	}
}

// newRoom builds a playing room on the given question with the
// question clock started at the mock clock's current time
func (s *ControllerSuite) newRoom(q *model.Question, players ...*model.Player) *model.Room {
	now := s.app.MockClock.Now()
	room := &model.Room{
		Code:              "SCORE1",
		HostID:            "host-1",
		Status:            model.RoomStatusPlaying,
		Players:           players,
		Questions:         []*model.Question{q},
		Rounds:            []model.RoundConfig{{ID: "r1", Type: model.RoundMixed, QuestionCount: 1}},
		Settings:          model.DefaultSettings(),
		QuestionStartTime: now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.Require().NoError(s.app.Storage.SaveRoom(s.ctx, room))
	return room
}

// answer appends a submission at the given latency after question start
func (s *ControllerSuite) answer(room *model.Room, playerID model.PlayerID, index int, value string, latency time.Duration) {
	room.Answers = append(room.Answers, model.Answer{
		PlayerID:    playerID,
		QuestionID:  room.Questions[room.CurrentQuestionIndex].ID,
		AnswerIndex: index,
		AnswerValue: value,
		SubmittedAt: room.QuestionStartTime.Add(latency),
	})
}

func (s *ControllerSuite) score(room *model.Room) *scoring.QuestionResults {
	s.Require().NoError(s.app.Storage.SaveRoom(s.ctx, room))
	results, err := s.app.ScoringController.CalculateQuestionResults(s.ctx, room.Code)
	s.Require().NoError(err)
	return results
}

func (s *ControllerSuite) resultFor(results *scoring.QuestionResults, id model.PlayerID) scoring.PlayerResult {
	for _, r := range results.Results {
		if r.PlayerID == id {
			return r
		}
	}
	s.Require().Failf("missing result", "no result for player %s", id)
	return scoring.PlayerResult{}
}

// slow is a latency past every speed bonus tier but inside the
// plausibility cap (default limit is 15s, tiers end at 75%)
const slow = 12 * time.Second

func (s *ControllerSuite) TestChoiceCorrectness() {
	room := s.newRoom(choiceQuestion(), player("right", 1), player("wrong", 2))
	s.answer(room, "right", 1, "", slow)
	s.answer(room, "wrong", 3, "", slow)

	results := s.score(room)

	s.True(s.resultFor(results, "right").Correct)
	s.False(s.resultFor(results, "wrong").Correct)
	s.Zero(s.resultFor(results, "wrong").PointsEarned)
	s.Zero(room.FindPlayer("wrong").Streak)
}

func (s *ControllerSuite) TestEstimationTolerance() {
	q := &model.Question{
		ID:           "est1",
		Category:     model.CategoryScience,
		Type:         model.QuestionEstimation,
		Prompt:       "Guess",
		CorrectValue: 100,
		Tolerance:    10,
	}
	room := s.newRoom(q, player("edge", 1), player("close", 2), player("far", 3), player("junk", 4))
	s.answer(room, "edge", 0, "110", slow)
	s.answer(room, "close", 0, "93.5", slow)
	s.answer(room, "far", 0, "111", slow)
	s.answer(room, "junk", 0, "not-a-number", slow)

	results := s.score(room)

	s.True(s.resultFor(results, "edge").Correct, "the tolerance band is inclusive")
	s.True(s.resultFor(results, "close").Correct)
	s.False(s.resultFor(results, "far").Correct)
	s.False(s.resultFor(results, "junk").Correct)
}

func (s *ControllerSuite) TestSortingCorrectness() {
	q := &model.Question{
		ID:           "sort1",
		Category:     model.CategoryHistory,
		Type:         model.QuestionSorting,
		Prompt:       "Order",
		Answers:      []string{"a", "b", "c"},
		CorrectOrder: []string{"a", "b", "c"},
	}
	room := s.newRoom(q, player("right", 1), player("swapped", 2), player("short", 3), player("junk", 4))
	s.answer(room, "right", 0, `["a","b","c"]`, slow)
	s.answer(room, "swapped", 0, `["b","a","c"]`, slow)
	s.answer(room, "short", 0, `["a","b"]`, slow)
	s.answer(room, "junk", 0, `not json`, slow)

	results := s.score(room)

	s.True(s.resultFor(results, "right").Correct)
	s.False(s.resultFor(results, "swapped").Correct)
	s.False(s.resultFor(results, "short").Correct)
	s.False(s.resultFor(results, "junk").Correct)
}

func (s *ControllerSuite) TestPositionDecay() {
	room := s.newRoom(choiceQuestion(),
		player("p1", 1), player("p2", 2), player("p3", 3),
		player("p4", 4), player("p5", 5), player("p6", 6), player("p7", 7),
	)
	for i, id := range []model.PlayerID{"p1", "p2", "p3", "p4", "p5", "p6", "p7"} {
		s.answer(room, id, 1, "", slow+time.Duration(i)*100*time.Millisecond)
	}

	results := s.score(room)

	s.Equal(1000, s.resultFor(results, "p1").PointsEarned)
	s.Equal(900, s.resultFor(results, "p2").PointsEarned)
	s.Equal(800, s.resultFor(results, "p3").PointsEarned)
	s.Equal(700, s.resultFor(results, "p4").PointsEarned)
	s.Equal(600, s.resultFor(results, "p5").PointsEarned)
	s.Equal(500, s.resultFor(results, "p6").PointsEarned)
	s.Equal(500, s.resultFor(results, "p7").PointsEarned, "decay floors at half the base")
}

func (s *ControllerSuite) TestWrongAnswersDoNotConsumeRank() {
	room := s.newRoom(choiceQuestion(), player("wrong", 1), player("right", 2))
	s.answer(room, "wrong", 0, "", slow)
	s.answer(room, "right", 1, "", slow+time.Second)

	results := s.score(room)

	s.Equal(1000, s.resultFor(results, "right").PointsEarned, "only correct answers advance the decay rank")
}

func (s *ControllerSuite) TestSpeedBonusTiers() {
	room := s.newRoom(choiceQuestion(),
		player("p1", 1), player("p2", 2), player("p3", 3), player("p4", 4),
	)
	// Default 15s limit: tiers end at 3.75s, 7.5s, and 11.25s
	s.answer(room, "p1", 1, "", 3*time.Second)
	s.answer(room, "p2", 1, "", 6*time.Second)
	s.answer(room, "p3", 1, "", 9*time.Second)
	s.answer(room, "p4", 1, "", 12*time.Second)

	results := s.score(room)

	// The bonus scales the position-decayed value, not the base
	s.Equal(1300, s.resultFor(results, "p1").PointsEarned)
	s.Equal(1080, s.resultFor(results, "p2").PointsEarned)
	s.Equal(880, s.resultFor(results, "p3").PointsEarned)
	s.Equal(700, s.resultFor(results, "p4").PointsEarned)
}

func (s *ControllerSuite) TestImplausibleLatencyGetsNoSpeedBonus() {
	room := s.newRoom(choiceQuestion(), player("instant", 1), player("stale", 2))
	s.answer(room, "instant", 1, "", 0)
	s.answer(room, "stale", 1, "", 31*time.Second)

	results := s.score(room)

	s.Equal(1000, s.resultFor(results, "instant").PointsEarned)
	s.Equal(900, s.resultFor(results, "stale").PointsEarned)
	s.Zero(room.FindPlayer("instant").TotalResponseTime, "implausible latency is not accumulated")
}

func (s *ControllerSuite) TestUnsetQuestionClockGetsNoSpeedBonus() {
	room := s.newRoom(choiceQuestion(), player("p1", 1))
	room.Answers = append(room.Answers, model.Answer{
		PlayerID:    "p1",
		QuestionID:  "q1",
		AnswerIndex: 1,
		SubmittedAt: s.app.MockClock.Now(),
	})
	room.QuestionStartTime = time.Time{}

	results := s.score(room)

	s.Equal(1000, s.resultFor(results, "p1").PointsEarned)
}

func (s *ControllerSuite) TestStreakBonus() {
	p := player("p1", 1)
	p.Streak = 1
	room := s.newRoom(choiceQuestion(), p)
	s.answer(room, "p1", 1, "", slow)

	results := s.score(room)

	// Streak becomes 2: bonus is 10% of base
	s.Equal(1100, s.resultFor(results, "p1").PointsEarned)
	s.Equal(2, s.resultFor(results, "p1").Streak)
}

func (s *ControllerSuite) TestStreakBonusCaps() {
	p := player("p1", 1)
	p.Streak = 6
	p.PowerUp = model.PowerUpTimeFreeze
	room := s.newRoom(choiceQuestion(), p)
	s.answer(room, "p1", 1, "", slow)

	results := s.score(room)

	// Streak becomes 7: the bonus would be 60% but caps at half the base
	s.Equal(1500, s.resultFor(results, "p1").PointsEarned)
}

func (s *ControllerSuite) TestSpeedAndStreakShareOneMultiplier() {
	p1 := player("p1", 1)
	p2 := player("p2", 2)
	p2.Streak = 1
	room := s.newRoom(choiceQuestion(), p1, p2)
	s.answer(room, "p1", 1, "", 2*time.Second)
	s.answer(room, "p2", 1, "", 3*time.Second)

	results := s.score(room)

	// p2: decayed 900, then one multiplier of 1 + 0.30 speed + 0.10 streak
	s.Equal(1260, s.resultFor(results, "p2").PointsEarned)
}

func (s *ControllerSuite) TestStreakBonusDisabled() {
	p := player("p1", 1)
	p.Streak = 1
	room := s.newRoom(choiceQuestion(), p)
	room.Settings.StreakBonus = false
	s.answer(room, "p1", 1, "", slow)

	results := s.score(room)

	s.Equal(1000, s.resultFor(results, "p1").PointsEarned)
}

func (s *ControllerSuite) TestFinaleMultiplier() {
	room := s.newRoom(choiceQuestion(), player("p1", 1))
	room.Rounds[0] = model.RoundConfig{ID: "r1", Type: model.RoundFinale, Multiplier: 2}
	s.answer(room, "p1", 1, "", slow)

	results := s.score(room)

	s.Equal(2000, s.resultFor(results, "p1").PointsEarned)
}

func (s *ControllerSuite) TestBonusCategoryMultiplier() {
	q := choiceQuestion()
	q.Category = model.CategoryMixed
	room := s.newRoom(q, player("p1", 1))
	s.answer(room, "p1", 1, "", slow)

	results := s.score(room)

	s.Equal(2000, s.resultFor(results, "p1").PointsEarned)
}

func (s *ControllerSuite) TestLightningModeDoubles() {
	room := s.newRoom(choiceQuestion(), player("p1", 1))
	room.Settings.Mode = model.ModeLightning
	s.answer(room, "p1", 1, "", slow)

	results := s.score(room)

	s.Equal(2000, s.resultFor(results, "p1").PointsEarned)
}

func (s *ControllerSuite) TestDoublePointsConsumedOnCorrectAnswer() {
	p := player("p1", 1)
	p.ActivePowerUp = model.PowerUpDoublePoints
	room := s.newRoom(choiceQuestion(), p)
	s.answer(room, "p1", 1, "", slow)

	results := s.score(room)

	s.Equal(2000, s.resultFor(results, "p1").PointsEarned)
	s.Empty(room.FindPlayer("p1").ActivePowerUp)
}

func (s *ControllerSuite) TestDoublePointsConsumedOnWrongAnswer() {
	p := player("p1", 1)
	p.ActivePowerUp = model.PowerUpDoublePoints
	room := s.newRoom(choiceQuestion(), p)
	s.answer(room, "p1", 0, "", slow)

	results := s.score(room)

	s.Zero(s.resultFor(results, "p1").PointsEarned)
	s.Empty(room.FindPlayer("p1").ActivePowerUp, "an armed double-points burns even without effect")
}

func (s *ControllerSuite) TestDoublePointsConsumedWhenNotAnswering() {
	p := player("quiet", 1)
	p.ActivePowerUp = model.PowerUpDoublePoints
	room := s.newRoom(choiceQuestion(), p, player("loud", 2))
	s.answer(room, "loud", 1, "", slow)

	s.score(room)

	s.Empty(room.FindPlayer("quiet").ActivePowerUp)
}

func (s *ControllerSuite) TestNonRespondersLoseStreak() {
	p := player("quiet", 1)
	p.Streak = 4
	room := s.newRoom(choiceQuestion(), p, player("loud", 2))
	s.answer(room, "loud", 1, "", slow)

	results := s.score(room)

	s.Zero(room.FindPlayer("quiet").Streak)
	s.False(s.resultFor(results, "quiet").Answered)
}

func (s *ControllerSuite) TestTeamScoresAccumulate() {
	red := player("red1", 1)
	red.TeamID = model.TeamRed
	blue := player("blue1", 2)
	blue.TeamID = model.TeamBlue
	room := s.newRoom(choiceQuestion(), red, blue)
	room.Settings.Mode = model.ModeTeam
	room.TeamScores = map[model.TeamID]int{model.TeamRed: 0, model.TeamBlue: 0}
	s.answer(room, "red1", 1, "", slow)
	s.answer(room, "blue1", 0, "", slow)

	results := s.score(room)

	s.Equal(1000, results.TeamScores[model.TeamRed])
	s.Zero(results.TeamScores[model.TeamBlue])
}

func (s *ControllerSuite) TestPowerUpGrantedAtStreakThree() {
	p := player("p1", 1)
	p.Streak = 2
	room := s.newRoom(choiceQuestion(), p)
	s.answer(room, "p1", 1, "", slow)

	s.score(room)

	// Mock random picks the first power-up type
	s.Equal(model.PowerUpDoublePoints, room.FindPlayer("p1").PowerUp)
}

func (s *ControllerSuite) TestPowerUpNotGrantedWhileHoldingOne() {
	p := player("p1", 1)
	p.Streak = 2
	p.PowerUp = model.PowerUpFiftyFifty
	room := s.newRoom(choiceQuestion(), p)
	s.answer(room, "p1", 1, "", slow)

	s.score(room)

	s.Equal(model.PowerUpFiftyFifty, room.FindPlayer("p1").PowerUp)
}

func (s *ControllerSuite) TestFirstBloodGoesToFirstCorrectAnswer() {
	room := s.newRoom(choiceQuestion(), player("first", 1), player("second", 2))
	s.answer(room, "first", 1, "", slow)
	s.answer(room, "second", 1, "", 2*time.Second)

	results := s.score(room)

	// Submission order decides, not latency; the same answer never
	// earns the speed achievement on top
	s.Contains(s.resultFor(results, "first").Achievements, model.AchievementFirstBlood)
	s.NotContains(s.resultFor(results, "first").Achievements, model.AchievementSpeedDemon)
	s.Empty(s.resultFor(results, "second").Achievements)
}

func (s *ControllerSuite) TestSpeedDemonGoesToFirstCorrectAnswer() {
	room := s.newRoom(choiceQuestion(), player("first", 1), player("second", 2))
	room.FirstCorrectGiven = true
	s.answer(room, "first", 1, "", slow)
	s.answer(room, "second", 1, "", 2*time.Second)

	results := s.score(room)

	s.Contains(s.resultFor(results, "first").Achievements, model.AchievementSpeedDemon)
	s.Empty(s.resultFor(results, "second").Achievements)
}

func (s *ControllerSuite) TestWrongAnswersDoNotTakeSpeedDemon() {
	room := s.newRoom(choiceQuestion(), player("wrong", 1), player("right", 2))
	room.FirstCorrectGiven = true
	s.answer(room, "wrong", 0, "", time.Second)
	s.answer(room, "right", 1, "", slow)

	results := s.score(room)

	s.Contains(s.resultFor(results, "right").Achievements, model.AchievementSpeedDemon)
	s.Empty(s.resultFor(results, "wrong").Achievements)
}

func (s *ControllerSuite) TestFirstBloodIsRoomWideOneShot() {
	room := s.newRoom(choiceQuestion(), player("p1", 1))
	room.FirstCorrectGiven = true
	s.answer(room, "p1", 1, "", slow)

	results := s.score(room)

	s.NotContains(s.resultFor(results, "p1").Achievements, model.AchievementFirstBlood)
}

func (s *ControllerSuite) TestHotStreakAtFive() {
	p := player("p1", 1)
	p.Streak = 4
	p.PowerUp = model.PowerUpTimeFreeze
	room := s.newRoom(choiceQuestion(), p)
	room.FirstCorrectGiven = true
	s.answer(room, "p1", 1, "", slow)

	results := s.score(room)

	s.Contains(s.resultFor(results, "p1").Achievements, model.AchievementHotStreak)
}

func (s *ControllerSuite) TestPerfectRoundAtThreeInCategory() {
	p := player("p1", 1)
	p.CategoryCorrect[model.CategoryHistory] = 2
	room := s.newRoom(choiceQuestion(), p)
	room.FirstCorrectGiven = true
	s.answer(room, "p1", 1, "", slow)

	results := s.score(room)

	s.Contains(s.resultFor(results, "p1").Achievements, model.AchievementPerfectRound)
}

func (s *ControllerSuite) TestComebackKing() {
	behind := player("behind", 5)
	leader := player("leader", 1)
	leader.Score = 500
	room := s.newRoom(choiceQuestion(), behind, leader)
	s.answer(room, "behind", 1, "", slow)

	results := s.score(room)

	s.Contains(s.resultFor(results, "behind").Achievements, model.AchievementComebackKing)
	s.Equal(1, room.FindPlayer("behind").PreviousRank, "ranks are recorded for the next pass")
}

func (s *ControllerSuite) TestHotStreakRetriggersAfterReset() {
	p := player("p1", 1)
	p.Streak = 4
	p.PowerUp = model.PowerUpTimeFreeze
	room := s.newRoom(choiceQuestion(), p)
	room.FirstCorrectGiven = true
	room.Achievements = []model.EarnedAchievement{
		{Type: model.AchievementHotStreak, PlayerID: "p1", PlayerName: "p1"},
	}
	s.answer(room, "p1", 1, "", slow)

	results := s.score(room)

	// The crossing fires every time it happens, not once per game
	s.Contains(s.resultFor(results, "p1").Achievements, model.AchievementHotStreak)
	hotStreaks := 0
	for _, a := range room.Achievements {
		if a.Type == model.AchievementHotStreak {
			hotStreaks++
		}
	}
	s.Equal(2, hotStreaks, "a second hot streak joins the log")
}

func (s *ControllerSuite) TestNoCurrentQuestion() {
	room := s.newRoom(choiceQuestion(), player("p1", 1))
	room.CurrentQuestionIndex = 5
	s.Require().NoError(s.app.Storage.SaveRoom(s.ctx, room))

	_, err := s.app.ScoringController.CalculateQuestionResults(s.ctx, room.Code)
	s.ErrorIs(err, model.ErrNoCurrentQuestion)
}

func (s *ControllerSuite) TestLeaderboardReflectsNewScores() {
	room := s.newRoom(choiceQuestion(), player("p1", 1), player("p2", 2))
	s.answer(room, "p2", 1, "", slow)

	results := s.score(room)

	s.Require().Len(results.Leaderboard, 2)
	s.Equal(model.PlayerID("p2"), results.Leaderboard[0].PlayerID)
	s.Equal(1000, results.Leaderboard[0].Score)
}
