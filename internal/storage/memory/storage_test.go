package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quizparty/quizparty-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{Code: "ABC123", Status: model.RoomStatusWaiting}

	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	retrieved, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(room.Code, retrieved.Code)
	s.Equal(model.RoomStatusWaiting, retrieved.Status)
}

func (s *StorageSuite) TestGetMissingRoom() {
	_, err := s.storage.GetRoom(s.ctx, "NOPE")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABC123"}))

	exists, err = s.storage.RoomExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestDeleteRoom() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABC123"}))

	s.Require().NoError(s.storage.DeleteRoom(s.ctx, "ABC123"))

	_, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestDeleteMissingRoomIsNoop() {
	s.NoError(s.storage.DeleteRoom(s.ctx, "NOPE"))
}

func (s *StorageSuite) TestBankRoundTrip() {
	categories := []model.Category{{ID: model.CategoryScience, Name: "Science"}}
	questions := []*model.Question{{ID: "q1", Category: model.CategoryScience}}

	s.Require().NoError(s.storage.SaveCategories(s.ctx, categories))
	s.Require().NoError(s.storage.SaveQuestions(s.ctx, questions))

	gotCategories, err := s.storage.GetCategories(s.ctx)
	s.Require().NoError(err)
	s.Equal(categories, gotCategories)

	gotQuestions, err := s.storage.GetQuestions(s.ctx)
	s.Require().NoError(err)
	s.Equal(questions, gotQuestions)
}

func (s *StorageSuite) TestBankReadsReturnCopies() {
	s.Require().NoError(s.storage.SaveCategories(s.ctx, []model.Category{{ID: model.CategoryScience}}))

	got, err := s.storage.GetCategories(s.ctx)
	s.Require().NoError(err)
	got[0].ID = model.CategoryFood

	again, err := s.storage.GetCategories(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.CategoryScience, again[0].ID)
}
