package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/dto"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository/mocks"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

func TestRepairService_Create_NotifiesAdmins(t *testing.T) {
	repairRepo := new(mocks.RepairRepository)
	userRepo := new(mocks.UserRepository)
	pub := &recordingPublisher{}
	svc := service.NewRepairService(repairRepo, userRepo, pub)

	repairRepo.On("Save", mock.Anything, mock.MatchedBy(func(r *domain.RepairRequest) bool {
		return r.Status == "pending"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.RepairRequest).ID = 7
	}).Return(nil).Once()
	userRepo.On("FindByID", mock.Anything, uint(42)).
		Return(&domain.User{ID: 42, Name: "刘洋"}, nil).Once()

	req, err := svc.Create(context.Background(), service.CreateRepairInput{
		UserID: 42, Title: "水管漏水", Category: "plumbing", Description: "厨房水管渗水",
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", req.Status)

	require.Len(t, pub.published, 1)
	got := pub.published[0]
	assert.Equal(t, dto.RoomAdmins, got.Target)
	assert.Equal(t, dto.EventNewRepairRequest, got.Event)
	payload := got.Payload.(dto.RepairRequestPayload)
	assert.Equal(t, uint(7), payload.RequestID)
	assert.Equal(t, "刘洋", payload.UserName)
}

func TestRepairService_UpdateStatus_NotifiesSubmitterRoom(t *testing.T) {
	repairRepo := new(mocks.RepairRepository)
	userRepo := new(mocks.UserRepository)
	pub := &recordingPublisher{}
	svc := service.NewRepairService(repairRepo, userRepo, pub)

	repairRepo.On("FindByID", mock.Anything, uint(7)).
		Return(&domain.RepairRequest{ID: 7, UserID: 42, Title: "水管漏水", Status: "pending"}, nil).Once()
	repairRepo.On("Save", mock.Anything, mock.MatchedBy(func(r *domain.RepairRequest) bool {
		return r.Status == "done"
	})).Return(nil).Once()

	req, err := svc.UpdateStatus(context.Background(), 7, "done")

	require.NoError(t, err)
	assert.Equal(t, "done", req.Status)

	// 状态变更只通知提交人的个人房间，不走广播
	require.Len(t, pub.published, 1)
	got := pub.published[0]
	assert.Equal(t, dto.UserRoom(42), got.Target)
	assert.Equal(t, dto.EventRepairStatusUpdated, got.Event)
	payload := got.Payload.(dto.RepairStatusPayload)
	assert.Equal(t, uint(7), payload.RequestID)
	assert.Equal(t, "done", payload.Status)
}

func TestRepairService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	repairRepo := new(mocks.RepairRepository)
	userRepo := new(mocks.UserRepository)
	pub := &recordingPublisher{}
	svc := service.NewRepairService(repairRepo, userRepo, pub)

	_, err := svc.UpdateStatus(context.Background(), 7, "finished")

	assert.ErrorIs(t, err, service.ErrInvalidStatus)
	repairRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, pub.published)
}

func TestRepairService_UpdateStatus_NotFound(t *testing.T) {
	repairRepo := new(mocks.RepairRepository)
	userRepo := new(mocks.UserRepository)
	pub := &recordingPublisher{}
	svc := service.NewRepairService(repairRepo, userRepo, pub)

	repairRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, repository.ErrRepairNotFound).Once()

	_, err := svc.UpdateStatus(context.Background(), 404, "done")

	assert.ErrorIs(t, err, service.ErrRepairNotFound)
	assert.Empty(t, pub.published)
}
