package repository

import (
	"context"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
)

// AnnouncementRepository 定义了公告数据的存储和检索操作。
type AnnouncementRepository interface {
	// FindByID 根据公告 ID 查找公告，不存在时返回 ErrAnnouncementNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Announcement, error)

	// FindAll 返回全部公告，按发布时间倒序。
	FindAll(ctx context.Context) ([]domain.Announcement, error)

	// Save 保存公告 (基于 ID 创建或更新)。
	Save(ctx context.Context, a *domain.Announcement) error

	// Delete 删除指定公告。
	Delete(ctx context.Context, id uint) error
}
