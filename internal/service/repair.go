package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/dto"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
)

// 报修工单状态的合法取值。
var validRepairStatuses = map[string]bool{
	"pending":     true,
	"in_progress": true,
	"done":        true,
}

// RepairService 负责报修工单：住户提交后通知管理员，
// 管理员改状态后通知提交人的个人房间。
type RepairService struct {
	repairRepo repository.RepairRepository
	userRepo   repository.UserRepository
	publisher  Publisher
}

// NewRepairService 创建 RepairService 实例。
func NewRepairService(repairRepo repository.RepairRepository, userRepo repository.UserRepository, publisher Publisher) *RepairService {
	if repairRepo == nil {
		panic("RepairRepository cannot be nil for RepairService")
	}
	if userRepo == nil {
		panic("UserRepository cannot be nil for RepairService")
	}
	if publisher == nil {
		panic("Publisher cannot be nil for RepairService")
	}
	return &RepairService{repairRepo: repairRepo, userRepo: userRepo, publisher: publisher}
}

// List 返回全部报修工单。
func (s *RepairService) List(ctx context.Context) ([]domain.RepairRequest, error) {
	reqs, err := s.repairRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list repair requests")
		return nil, ErrInternalServer
	}
	return reqs, nil
}

// CreateRepairInput 是提交报修的输入数据。
type CreateRepairInput struct {
	UserID      uint
	Title       string
	Category    string
	Description string
	ImagePaths  string
}

// Create 提交报修工单。提交成功后向 admins 房间发布 new_repair_request。
func (s *RepairService) Create(ctx context.Context, in CreateRepairInput) (*domain.RepairRequest, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": in.UserID, "title": in.Title})

	if in.Title == "" || in.Description == "" {
		return nil, ErrInvalidInput
	}

	req := &domain.RepairRequest{
		UserID:        in.UserID,
		Title:         in.Title,
		Category:      in.Category,
		Description:   in.Description,
		SubmittedDate: time.Now(),
		Status:        "pending",
		ImagePaths:    in.ImagePaths,
	}

	if err := s.repairRepo.Save(ctx, req); err != nil {
		logCtx.WithError(err).Error("Failed to save repair request")
		return nil, ErrInternalServer
	}

	logCtx.WithField("request_id", req.ID).Info("Repair request created")
	s.publisher.Publish(dto.RoomAdmins, dto.EventNewRepairRequest, dto.RepairRequestPayload{
		RequestID:     req.ID,
		UserID:        req.UserID,
		UserName:      s.resolveUserName(ctx, req.UserID),
		Title:         req.Title,
		Status:        req.Status,
		SubmittedDate: req.SubmittedDate.Format(time.RFC3339),
	})
	return req, nil
}

// UpdateStatus 修改工单状态。提交成功后向提交人的个人房间发布 repair_status_updated。
func (s *RepairService) UpdateStatus(ctx context.Context, id uint, status string) (*domain.RepairRequest, error) {
	logCtx := logrus.WithFields(logrus.Fields{"request_id": id, "status": status})

	if !validRepairStatuses[status] {
		return nil, ErrInvalidStatus
	}

	req, err := s.repairRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRepairNotFound) {
			return nil, ErrRepairNotFound
		}
		logCtx.WithError(err).Error("Failed to find repair request for status update")
		return nil, ErrInternalServer
	}

	req.Status = status
	if err := s.repairRepo.Save(ctx, req); err != nil {
		logCtx.WithError(err).Error("Failed to save repair status")
		return nil, ErrInternalServer
	}

	logCtx.Info("Repair status updated")
	s.publisher.Publish(dto.UserRoom(req.UserID), dto.EventRepairStatusUpdated, dto.RepairStatusPayload{
		RequestID: req.ID,
		UserID:    req.UserID,
		Status:    req.Status,
		Title:     req.Title,
	})
	return req, nil
}

// Delete 删除报修工单。
func (s *RepairService) Delete(ctx context.Context, id uint) error {
	if err := s.repairRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRepairNotFound) {
			return ErrRepairNotFound
		}
		logrus.WithError(err).WithField("request_id", id).Error("Failed to delete repair request")
		return ErrInternalServer
	}
	logrus.WithField("request_id", id).Info("Repair request deleted")
	return nil
}

// resolveUserName 查找用户显示名，失败时退回到占位文本。
func (s *RepairService) resolveUserName(ctx context.Context, userID uint) string {
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil && user != nil {
		return user.Name
	}
	return dto.UnknownUser
}
