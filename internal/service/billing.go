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

// BillingService 负责账单与付款：
// 开单/改单/删单广播全体；付款凭证通知管理员；
// 管理员批准付款时同步更新关联账单并广播结果。
type BillingService struct {
	billRepo    repository.BillRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	publisher   Publisher
}

// NewBillingService 创建 BillingService 实例。
func NewBillingService(billRepo repository.BillRepository, paymentRepo repository.PaymentRepository, userRepo repository.UserRepository, publisher Publisher) *BillingService {
	if billRepo == nil {
		panic("BillRepository cannot be nil for BillingService")
	}
	if paymentRepo == nil {
		panic("PaymentRepository cannot be nil for BillingService")
	}
	if userRepo == nil {
		panic("UserRepository cannot be nil for BillingService")
	}
	if publisher == nil {
		panic("Publisher cannot be nil for BillingService")
	}
	return &BillingService{billRepo: billRepo, paymentRepo: paymentRepo, userRepo: userRepo, publisher: publisher}
}

// ListBills 返回全部账单。
func (s *BillingService) ListBills(ctx context.Context) ([]domain.Bill, error) {
	bills, err := s.billRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list bills")
		return nil, ErrInternalServer
	}
	return bills, nil
}

// CreateBillInput 是开单的输入数据。RecipientID 为 "all" 或用户 ID 字符串。
type CreateBillInput struct {
	ItemName       string
	Amount         string
	DueDate        time.Time
	RecipientID    string
	IssuedByUserID uint
}

// CreateBill 开出新账单。提交成功后向所有连接广播 new_bill_created。
func (s *BillingService) CreateBill(ctx context.Context, in CreateBillInput) (*domain.Bill, error) {
	logCtx := logrus.WithFields(logrus.Fields{"item_name": in.ItemName, "recipient_id": in.RecipientID})

	if in.ItemName == "" || in.Amount == "" {
		return nil, ErrInvalidInput
	}
	if in.RecipientID == "" {
		in.RecipientID = "all"
	}

	bill := &domain.Bill{
		ItemName:       in.ItemName,
		Amount:         in.Amount,
		DueDate:        in.DueDate,
		RecipientID:    in.RecipientID,
		IssuedByUserID: in.IssuedByUserID,
		Status:         domain.BillStatusUnpaid,
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		logCtx.WithError(err).Error("Failed to save bill")
		return nil, ErrInternalServer
	}

	logCtx.WithField("bill_id", bill.ID).Info("Bill created")
	s.publisher.Publish(dto.TargetBroadcast, dto.EventNewBillCreated, billPayload(bill))
	return bill, nil
}

// UpdateBillInput 是改单的输入，零值字段保持原值。
type UpdateBillInput struct {
	ItemName string
	Amount   string
	DueDate  *time.Time
	Status   string
}

// UpdateBill 修改账单。提交成功后向所有连接广播 bill_updated。
func (s *BillingService) UpdateBill(ctx context.Context, id uint, in UpdateBillInput) (*domain.Bill, error) {
	logCtx := logrus.WithField("bill_id", id)

	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBillNotFound) {
			return nil, ErrBillNotFound
		}
		logCtx.WithError(err).Error("Failed to find bill for update")
		return nil, ErrInternalServer
	}

	if in.ItemName != "" {
		bill.ItemName = in.ItemName
	}
	if in.Amount != "" {
		bill.Amount = in.Amount
	}
	if in.DueDate != nil {
		bill.DueDate = *in.DueDate
	}
	if in.Status != "" {
		bill.Status = in.Status
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		logCtx.WithError(err).Error("Failed to save bill update")
		return nil, ErrInternalServer
	}

	logCtx.Info("Bill updated")
	s.publisher.Publish(dto.TargetBroadcast, dto.EventBillUpdated, billPayload(bill))
	return bill, nil
}

// DeleteBill 删除账单。提交成功后向所有连接广播 bill_deleted。
func (s *BillingService) DeleteBill(ctx context.Context, id uint) error {
	logCtx := logrus.WithField("bill_id", id)

	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBillNotFound) {
			return ErrBillNotFound
		}
		logCtx.WithError(err).Error("Failed to find bill for delete")
		return ErrInternalServer
	}

	if err := s.billRepo.Delete(ctx, id); err != nil {
		logCtx.WithError(err).Error("Failed to delete bill")
		return ErrInternalServer
	}

	logCtx.Info("Bill deleted")
	s.publisher.Publish(dto.TargetBroadcast, dto.EventBillDeleted, dto.BillDeletedPayload{
		BillID:   bill.ID,
		ItemName: bill.ItemName,
	})
	return nil
}

// ListPayments 返回付款记录；userID 非 0 时只返回该用户的记录。
func (s *BillingService) ListPayments(ctx context.Context, userID uint) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.FindAll(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to list payments")
		return nil, ErrInternalServer
	}
	return payments, nil
}

// SubmitPaymentInput 是住户提交付款凭证的输入数据。
type SubmitPaymentInput struct {
	UserID        uint
	BillID        *uint
	Amount        string
	PaymentMethod string
	SlipPath      string
}

// SubmitPayment 提交付款凭证。记录进入 pending 状态，
// 提交成功后向 admins 房间发布 new_payment_receipt。
func (s *BillingService) SubmitPayment(ctx context.Context, in SubmitPaymentInput) (*domain.Payment, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": in.UserID, "amount": in.Amount})

	if in.Amount == "" || in.UserID == 0 {
		return nil, ErrInvalidInput
	}

	payment := &domain.Payment{
		UserID:        in.UserID,
		BillID:        in.BillID,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		PaymentDate:   time.Now(),
		Status:        domain.PaymentStatusPending,
		SlipPath:      in.SlipPath,
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		logCtx.WithError(err).Error("Failed to save payment")
		return nil, ErrInternalServer
	}

	logCtx.WithField("payment_id", payment.ID).Info("Payment receipt submitted")
	s.publisher.Publish(dto.RoomAdmins, dto.EventNewPaymentReceipt, dto.PaymentReceiptPayload{
		PaymentID: payment.ID,
		UserID:    payment.UserID,
		UserName:  s.resolveUserName(ctx, payment.UserID),
		Amount:    payment.Amount,
		Status:    payment.Status,
		BillID:    payment.BillID,
	})
	return payment, nil
}

// ReviewPayment 审核付款 (approve 为 true 批准、false 驳回)。
// 批准时把付款标记为 paid，并把关联账单一并标记为 paid；
// 两处变更都落库后才广播 payment_approved。驳回不产生事件。
func (s *BillingService) ReviewPayment(ctx context.Context, id uint, approve bool) (*domain.Payment, error) {
	logCtx := logrus.WithFields(logrus.Fields{"payment_id": id, "approve": approve})

	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		logCtx.WithError(err).Error("Failed to find payment for review")
		return nil, ErrInternalServer
	}

	if !approve {
		payment.Status = domain.PaymentStatusRejected
		if err := s.paymentRepo.Save(ctx, payment); err != nil {
			logCtx.WithError(err).Error("Failed to save payment rejection")
			return nil, ErrInternalServer
		}
		logCtx.Info("Payment rejected")
		return payment, nil
	}

	payment.Status = domain.PaymentStatusPaid
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		logCtx.WithError(err).Error("Failed to save payment approval")
		return nil, ErrInternalServer
	}

	// 付款批准后同步关联账单状态
	if payment.BillID != nil {
		bill, err := s.billRepo.FindByID(ctx, *payment.BillID)
		if err == nil && bill != nil {
			bill.Status = "paid"
			if err := s.billRepo.Save(ctx, bill); err != nil {
				logCtx.WithError(err).Warn("Payment approved but failed to update linked bill")
			}
		} else if err != nil && !errors.Is(err, repository.ErrBillNotFound) {
			logCtx.WithError(err).Warn("Payment approved but failed to load linked bill")
		}
	}

	logCtx.Info("Payment approved")
	s.publisher.Publish(dto.TargetBroadcast, dto.EventPaymentApproved, dto.PaymentApprovedPayload{
		PaymentID: payment.ID,
		UserID:    payment.UserID,
		BillID:    payment.BillID,
		Status:    payment.Status,
	})
	return payment, nil
}

// DueBillsBefore 返回截止日期不晚于 deadline 的未付账单 (供定时提醒任务使用)。
func (s *BillingService) DueBillsBefore(ctx context.Context, deadline time.Time) ([]domain.Bill, error) {
	bills, err := s.billRepo.FindUnpaidDueBefore(ctx, deadline)
	if err != nil {
		logrus.WithError(err).Error("Failed to scan due bills")
		return nil, ErrInternalServer
	}
	return bills, nil
}

// PublishDueReminder 为一张临期账单广播 bill_due_reminder。
func (s *BillingService) PublishDueReminder(bill *domain.Bill) {
	s.publisher.Publish(dto.TargetBroadcast, dto.EventBillDueReminder, billPayload(bill))
}

func (s *BillingService) resolveUserName(ctx context.Context, userID uint) string {
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil && user != nil {
		return user.Name
	}
	return dto.UnknownUser
}

// billPayload 把账单转成事件数据，零值截止日期序列化为空。
func billPayload(bill *domain.Bill) dto.BillPayload {
	dueDate := ""
	if !bill.DueDate.IsZero() {
		dueDate = bill.DueDate.Format("2006-01-02")
	}
	return dto.BillPayload{
		BillID:      bill.ID,
		ItemName:    bill.ItemName,
		Amount:      bill.Amount,
		DueDate:     dueDate,
		RecipientID: bill.RecipientID,
		Status:      bill.Status,
	}
}
