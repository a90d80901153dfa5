package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/dto"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository/mocks"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

func TestAnnouncementService_Create_PublishesAfterCommit(t *testing.T) {
	annRepo := new(mocks.AnnouncementRepository)
	userRepo := new(mocks.UserRepository)
	pub := &recordingPublisher{}
	svc := service.NewAnnouncementService(annRepo, userRepo, pub)

	annRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Announcement")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Announcement).ID = 3
		}).Return(nil).Once()
	userRepo.On("FindByID", mock.Anything, uint(1)).
		Return(&domain.User{ID: 1, Name: "物业管理员"}, nil).Once()

	ann, err := svc.Create(context.Background(), service.CreateAnnouncementInput{
		Title:    "停水通知",
		Content:  "周三上午例行检修",
		Tag:      "urgent",
		AuthorID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(3), ann.ID)
	assert.NotEmpty(t, ann.TagColor, "tag style applied on create")

	require.Len(t, pub.published, 1)
	got := pub.published[0]
	assert.Equal(t, dto.TargetBroadcast, got.Target)
	assert.Equal(t, dto.EventNewAnnouncement, got.Event)
	payload, ok := got.Payload.(dto.AnnouncementPayload)
	require.True(t, ok)
	assert.Equal(t, uint(3), payload.AnnouncementID)
	assert.Equal(t, "物业管理员", payload.AuthorName)
}

func TestAnnouncementService_Create_SaveFailurePublishesNothing(t *testing.T) {
	annRepo := new(mocks.AnnouncementRepository)
	userRepo := new(mocks.UserRepository)
	pub := &recordingPublisher{}
	svc := service.NewAnnouncementService(annRepo, userRepo, pub)

	annRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	_, err := svc.Create(context.Background(), service.CreateAnnouncementInput{
		Title: "T", Content: "C", AuthorID: 1,
	})

	assert.ErrorIs(t, err, service.ErrInternalServer)
	assert.Empty(t, pub.published, "failed commit must not produce events")
}

func TestAnnouncementService_Create_UnknownAuthorFallback(t *testing.T) {
	annRepo := new(mocks.AnnouncementRepository)
	userRepo := new(mocks.UserRepository)
	pub := &recordingPublisher{}
	svc := service.NewAnnouncementService(annRepo, userRepo, pub)

	annRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	userRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, repository.ErrUserNotFound).Once()

	_, err := svc.Create(context.Background(), service.CreateAnnouncementInput{
		Title: "T", Content: "C", AuthorID: 99,
	})

	require.NoError(t, err)
	require.Len(t, pub.published, 1)
	payload := pub.published[0].Payload.(dto.AnnouncementPayload)
	assert.Equal(t, dto.UnknownAuthor, payload.AuthorName)
}

func TestAnnouncementService_Update_ReappliesTagStyle(t *testing.T) {
	annRepo := new(mocks.AnnouncementRepository)
	userRepo := new(mocks.UserRepository)
	pub := &recordingPublisher{}
	svc := service.NewAnnouncementService(annRepo, userRepo, pub)

	existing := &domain.Announcement{
		ID: 3, Title: "旧标题", Content: "旧正文",
		PublishedDate: time.Now(), AuthorID: 1, Tag: "event",
	}
	annRepo.On("FindByID", mock.Anything, uint(3)).Return(existing, nil).Once()
	annRepo.On("Save", mock.Anything, existing).Return(nil).Once()
	userRepo.On("FindByID", mock.Anything, uint(1)).Return(&domain.User{ID: 1, Name: "A"}, nil).Once()

	ann, err := svc.Update(context.Background(), 3, service.UpdateAnnouncementInput{
		Title: "新标题",
		Tag:   "urgent",
	})

	require.NoError(t, err)
	assert.Equal(t, "新标题", ann.Title)
	assert.Equal(t, "旧正文", ann.Content, "empty fields keep old values")
	assert.Equal(t, "urgent", ann.Tag)

	require.Len(t, pub.published, 1)
	assert.Equal(t, dto.EventAnnouncementUpdated, pub.published[0].Event)
}

func TestAnnouncementService_Update_NotFound(t *testing.T) {
	annRepo := new(mocks.AnnouncementRepository)
	userRepo := new(mocks.UserRepository)
	pub := &recordingPublisher{}
	svc := service.NewAnnouncementService(annRepo, userRepo, pub)

	annRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, repository.ErrAnnouncementNotFound).Once()

	_, err := svc.Update(context.Background(), 404, service.UpdateAnnouncementInput{Title: "x"})

	assert.ErrorIs(t, err, service.ErrAnnouncementNotFound)
	assert.Empty(t, pub.published)
}

func TestAnnouncementService_Delete_BroadcastsDeletedID(t *testing.T) {
	annRepo := new(mocks.AnnouncementRepository)
	userRepo := new(mocks.UserRepository)
	pub := &recordingPublisher{}
	svc := service.NewAnnouncementService(annRepo, userRepo, pub)

	annRepo.On("FindByID", mock.Anything, uint(3)).Return(&domain.Announcement{ID: 3}, nil).Once()
	annRepo.On("Delete", mock.Anything, uint(3)).Return(nil).Once()

	err := svc.Delete(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, pub.published, 1)
	got := pub.published[0]
	assert.Equal(t, dto.TargetBroadcast, got.Target)
	assert.Equal(t, dto.EventAnnouncementDeleted, got.Event)
	assert.Equal(t, dto.AnnouncementDeletedPayload{AnnouncementID: 3}, got.Payload)
}
