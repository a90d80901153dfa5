package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
)

// GormAnnouncementRepository 是 AnnouncementRepository 接口的 GORM 实现
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewGormAnnouncementRepository 创建 GormAnnouncementRepository 实例
func NewGormAnnouncementRepository(db *gorm.DB) *GormAnnouncementRepository {
	if db == nil {
		panic("database connection cannot be nil for GormAnnouncementRepository")
	}
	return &GormAnnouncementRepository{db: db}
}

// FindByID 实现根据公告 ID 查找公告
func (r *GormAnnouncementRepository) FindByID(ctx context.Context, id uint) (*domain.Announcement, error) {
	var a domain.Announcement
	err := r.db.WithContext(ctx).First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("gorm: find announcement by id %d: %w", id, err)
	}
	return &a, nil
}

// FindAll 实现返回全部公告，按发布时间倒序
func (r *GormAnnouncementRepository) FindAll(ctx context.Context) ([]domain.Announcement, error) {
	var list []domain.Announcement
	err := r.db.WithContext(ctx).Order("published_date desc").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find all announcements: %w", err)
	}
	return list, nil
}

// Save 实现保存公告（创建或更新）
func (r *GormAnnouncementRepository) Save(ctx context.Context, a *domain.Announcement) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return fmt.Errorf("gorm: save announcement (id: %d): %w", a.ID, err)
	}
	return nil
}

// Delete 实现删除指定公告
func (r *GormAnnouncementRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Announcement{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete announcement %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrAnnouncementNotFound
	}
	return nil
}
