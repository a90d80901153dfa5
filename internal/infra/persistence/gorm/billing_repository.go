package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
)

// GormBillRepository 是 BillRepository 接口的 GORM 实现
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository 创建 GormBillRepository 实例
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	if db == nil {
		panic("database connection cannot be nil for GormBillRepository")
	}
	return &GormBillRepository{db: db}
}

func (r *GormBillRepository) FindByID(ctx context.Context, id uint) (*domain.Bill, error) {
	var b domain.Bill
	err := r.db.WithContext(ctx).First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBillNotFound
		}
		return nil, fmt.Errorf("gorm: find bill by id %d: %w", id, err)
	}
	return &b, nil
}

func (r *GormBillRepository) FindAll(ctx context.Context) ([]domain.Bill, error) {
	var list []domain.Bill
	if err := r.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all bills: %w", err)
	}
	return list, nil
}

// FindUnpaidDueBefore 实现查询截止日期临近的未付账单 (定时提醒任务使用)
func (r *GormBillRepository) FindUnpaidDueBefore(ctx context.Context, deadline time.Time) ([]domain.Bill, error) {
	var list []domain.Bill
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date <= ?", domain.BillStatusUnpaid, deadline).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find unpaid bills due before %v: %w", deadline, err)
	}
	return list, nil
}

func (r *GormBillRepository) Save(ctx context.Context, b *domain.Bill) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("gorm: save bill (id: %d): %w", b.ID, err)
	}
	return nil
}

func (r *GormBillRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Bill{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete bill %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrBillNotFound
	}
	return nil
}

// GormPaymentRepository 是 PaymentRepository 接口的 GORM 实现
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository 创建 GormPaymentRepository 实例
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPaymentRepository")
	}
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) FindByID(ctx context.Context, id uint) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("gorm: find payment by id %d: %w", id, err)
	}
	return &p, nil
}

// FindAll 实现返回付款记录，userID 非 0 时按用户过滤
func (r *GormPaymentRepository) FindAll(ctx context.Context, userID uint) ([]domain.Payment, error) {
	var list []domain.Payment
	query := r.db.WithContext(ctx)
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gorm: find payments (user %d): %w", userID, err)
	}
	return list, nil
}

func (r *GormPaymentRepository) Save(ctx context.Context, p *domain.Payment) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("gorm: save payment (id: %d): %w", p.ID, err)
	}
	return nil
}
