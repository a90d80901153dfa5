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

// AnnouncementService 负责公告的增删改查，并在变更提交后广播对应事件。
type AnnouncementService struct {
	annRepo   repository.AnnouncementRepository
	userRepo  repository.UserRepository
	publisher Publisher
}

// NewAnnouncementService 创建 AnnouncementService 实例。
func NewAnnouncementService(annRepo repository.AnnouncementRepository, userRepo repository.UserRepository, publisher Publisher) *AnnouncementService {
	if annRepo == nil {
		panic("AnnouncementRepository cannot be nil for AnnouncementService")
	}
	if userRepo == nil {
		panic("UserRepository cannot be nil for AnnouncementService")
	}
	if publisher == nil {
		panic("Publisher cannot be nil for AnnouncementService")
	}
	return &AnnouncementService{annRepo: annRepo, userRepo: userRepo, publisher: publisher}
}

// List 返回全部公告，按发布时间倒序。
func (s *AnnouncementService) List(ctx context.Context) ([]domain.Announcement, error) {
	anns, err := s.annRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list announcements")
		return nil, ErrInternalServer
	}
	return anns, nil
}

// CreateAnnouncementInput 是发布公告的输入数据。
type CreateAnnouncementInput struct {
	Title    string
	Content  string
	Tag      string
	AuthorID uint
}

// Create 发布新公告。提交成功后向所有连接广播 new_announcement。
func (s *AnnouncementService) Create(ctx context.Context, in CreateAnnouncementInput) (*domain.Announcement, error) {
	logCtx := logrus.WithFields(logrus.Fields{"title": in.Title, "author_id": in.AuthorID})

	if in.Title == "" || in.Content == "" {
		return nil, ErrInvalidInput
	}

	ann := &domain.Announcement{
		Title:         in.Title,
		Content:       in.Content,
		PublishedDate: time.Now(),
		AuthorID:      in.AuthorID,
		Tag:           in.Tag,
	}
	ann.ApplyTagStyle()

	if err := s.annRepo.Save(ctx, ann); err != nil {
		logCtx.WithError(err).Error("Failed to save announcement")
		return nil, ErrInternalServer
	}

	logCtx.WithField("announcement_id", ann.ID).Info("Announcement created")
	s.publisher.Publish(dto.TargetBroadcast, dto.EventNewAnnouncement, s.toPayload(ctx, ann))
	return ann, nil
}

// UpdateAnnouncementInput 是修改公告的输入，空字段保持原值。
type UpdateAnnouncementInput struct {
	Title   string
	Content string
	Tag     string
}

// Update 修改公告。提交成功后向所有连接广播 announcement_updated。
func (s *AnnouncementService) Update(ctx context.Context, id uint, in UpdateAnnouncementInput) (*domain.Announcement, error) {
	logCtx := logrus.WithField("announcement_id", id)

	ann, err := s.annRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		logCtx.WithError(err).Error("Failed to find announcement for update")
		return nil, ErrInternalServer
	}

	if in.Title != "" {
		ann.Title = in.Title
	}
	if in.Content != "" {
		ann.Content = in.Content
	}
	if in.Tag != "" {
		ann.Tag = in.Tag
		ann.ApplyTagStyle()
	}

	if err := s.annRepo.Save(ctx, ann); err != nil {
		logCtx.WithError(err).Error("Failed to save announcement update")
		return nil, ErrInternalServer
	}

	logCtx.Info("Announcement updated")
	s.publisher.Publish(dto.TargetBroadcast, dto.EventAnnouncementUpdated, s.toPayload(ctx, ann))
	return ann, nil
}

// Delete 删除公告。提交成功后向所有连接广播 announcement_deleted。
func (s *AnnouncementService) Delete(ctx context.Context, id uint) error {
	logCtx := logrus.WithField("announcement_id", id)

	if _, err := s.annRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			return ErrAnnouncementNotFound
		}
		logCtx.WithError(err).Error("Failed to find announcement for delete")
		return ErrInternalServer
	}

	if err := s.annRepo.Delete(ctx, id); err != nil {
		logCtx.WithError(err).Error("Failed to delete announcement")
		return ErrInternalServer
	}

	logCtx.Info("Announcement deleted")
	s.publisher.Publish(dto.TargetBroadcast, dto.EventAnnouncementDeleted, dto.AnnouncementDeletedPayload{AnnouncementID: id})
	return nil
}

// toPayload 把公告转成事件数据，作者名解析失败时退回到占位文本。
func (s *AnnouncementService) toPayload(ctx context.Context, ann *domain.Announcement) dto.AnnouncementPayload {
	authorName := dto.UnknownAuthor
	if author, err := s.userRepo.FindByID(ctx, ann.AuthorID); err == nil && author != nil {
		authorName = author.Name
	}
	return dto.AnnouncementPayload{
		AnnouncementID: ann.ID,
		Title:          ann.Title,
		Content:        ann.Content,
		PublishedDate:  ann.PublishedDate.Format(time.RFC3339),
		AuthorID:       ann.AuthorID,
		AuthorName:     authorName,
		Tag:            ann.Tag,
		TagColor:       ann.TagColor,
		TagBg:          ann.TagBg,
	}
}
