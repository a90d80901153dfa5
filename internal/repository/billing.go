package repository

import (
	"context"
	"time"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
)

// BillRepository 定义了账单的存储和检索操作。
type BillRepository interface {
	// FindByID 根据账单 ID 查找，不存在时返回 ErrBillNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Bill, error)

	// FindAll 返回全部账单。
	FindAll(ctx context.Context) ([]domain.Bill, error)

	// FindUnpaidDueBefore 返回截止日期不晚于 deadline 的未付账单。
	// 由定时任务用于缴费提醒。
	FindUnpaidDueBefore(ctx context.Context, deadline time.Time) ([]domain.Bill, error)

	// Save 保存账单 (基于 ID 创建或更新)。
	Save(ctx context.Context, b *domain.Bill) error

	// Delete 删除指定账单。
	Delete(ctx context.Context, id uint) error
}

// PaymentRepository 定义了付款记录的存储和检索操作。
type PaymentRepository interface {
	// FindByID 根据付款 ID 查找，不存在时返回 ErrPaymentNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Payment, error)

	// FindAll 返回全部付款记录；userID 非 0 时只返回该用户的记录。
	FindAll(ctx context.Context, userID uint) ([]domain.Payment, error)

	// Save 保存付款记录 (基于 ID 创建或更新)。
	Save(ctx context.Context, p *domain.Payment) error
}
