package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
)

// GormRepairRepository 是 RepairRepository 接口的 GORM 实现
type GormRepairRepository struct {
	db *gorm.DB
}

// NewGormRepairRepository 创建 GormRepairRepository 实例
func NewGormRepairRepository(db *gorm.DB) *GormRepairRepository {
	if db == nil {
		panic("database connection cannot be nil for GormRepairRepository")
	}
	return &GormRepairRepository{db: db}
}

func (r *GormRepairRepository) FindByID(ctx context.Context, id uint) (*domain.RepairRequest, error) {
	var req domain.RepairRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRepairNotFound
		}
		return nil, fmt.Errorf("gorm: find repair request by id %d: %w", id, err)
	}
	return &req, nil
}

func (r *GormRepairRepository) FindAll(ctx context.Context) ([]domain.RepairRequest, error) {
	var list []domain.RepairRequest
	if err := r.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all repair requests: %w", err)
	}
	return list, nil
}

func (r *GormRepairRepository) Save(ctx context.Context, req *domain.RepairRequest) error {
	if err := r.db.WithContext(ctx).Save(req).Error; err != nil {
		return fmt.Errorf("gorm: save repair request (id: %d): %w", req.ID, err)
	}
	return nil
}

func (r *GormRepairRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.RepairRequest{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete repair request %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrRepairNotFound
	}
	return nil
}

// GormBookingRepository 是 BookingRepository 接口的 GORM 实现
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository 创建 GormBookingRepository 实例
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	if db == nil {
		panic("database connection cannot be nil for GormBookingRepository")
	}
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) FindByID(ctx context.Context, id uint) (*domain.BookingRequest, error) {
	var b domain.BookingRequest
	err := r.db.WithContext(ctx).First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookingNotFound
		}
		return nil, fmt.Errorf("gorm: find booking request by id %d: %w", id, err)
	}
	return &b, nil
}

func (r *GormBookingRepository) FindAll(ctx context.Context) ([]domain.BookingRequest, error) {
	var list []domain.BookingRequest
	if err := r.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all booking requests: %w", err)
	}
	return list, nil
}

func (r *GormBookingRepository) Save(ctx context.Context, b *domain.BookingRequest) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("gorm: save booking request (id: %d): %w", b.ID, err)
	}
	return nil
}

func (r *GormBookingRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.BookingRequest{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete booking request %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookingNotFound
	}
	return nil
}
