package repository

import (
	"context"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
)

// RepairRepository 定义了报修工单的存储和检索操作。
type RepairRepository interface {
	// FindByID 根据工单 ID 查找，不存在时返回 ErrRepairNotFound。
	FindByID(ctx context.Context, id uint) (*domain.RepairRequest, error)

	// FindAll 返回全部报修工单。
	FindAll(ctx context.Context) ([]domain.RepairRequest, error)

	// Save 保存工单 (基于 ID 创建或更新)。
	Save(ctx context.Context, r *domain.RepairRequest) error

	// Delete 删除指定工单。
	Delete(ctx context.Context, id uint) error
}

// BookingRepository 定义了场地预约的存储和检索操作。
type BookingRepository interface {
	// FindByID 根据预约 ID 查找，不存在时返回 ErrBookingNotFound。
	FindByID(ctx context.Context, id uint) (*domain.BookingRequest, error)

	// FindAll 返回全部预约申请。
	FindAll(ctx context.Context) ([]domain.BookingRequest, error)

	// Save 保存预约 (基于 ID 创建或更新)。
	Save(ctx context.Context, b *domain.BookingRequest) error

	// Delete 删除指定预约。
	Delete(ctx context.Context, id uint) error
}
