package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/dto"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository/mocks"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

type billingFixture struct {
	billRepo    *mocks.BillRepository
	paymentRepo *mocks.PaymentRepository
	userRepo    *mocks.UserRepository
	pub         *recordingPublisher
	svc         *service.BillingService
}

func newBillingFixture() *billingFixture {
	f := &billingFixture{
		billRepo:    new(mocks.BillRepository),
		paymentRepo: new(mocks.PaymentRepository),
		userRepo:    new(mocks.UserRepository),
		pub:         &recordingPublisher{},
	}
	f.svc = service.NewBillingService(f.billRepo, f.paymentRepo, f.userRepo, f.pub)
	return f
}

func TestBillingService_CreateBill_DefaultsAndBroadcast(t *testing.T) {
	f := newBillingFixture()
	f.billRepo.On("Save", mock.Anything, mock.MatchedBy(func(b *domain.Bill) bool {
		return b.RecipientID == "all" && b.Status == domain.BillStatusUnpaid
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Bill).ID = 8
	}).Return(nil).Once()

	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	bill, err := f.svc.CreateBill(context.Background(), service.CreateBillInput{
		ItemName: "水费", Amount: "120.50", DueDate: due, IssuedByUserID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(8), bill.ID)

	require.Len(t, f.pub.published, 1)
	got := f.pub.published[0]
	assert.Equal(t, dto.TargetBroadcast, got.Target)
	assert.Equal(t, dto.EventNewBillCreated, got.Event)
	payload := got.Payload.(dto.BillPayload)
	assert.Equal(t, "2026-09-30", payload.DueDate)
	assert.Equal(t, "120.50", payload.Amount)
}

func TestBillingService_CreateBill_SaveFailurePublishesNothing(t *testing.T) {
	f := newBillingFixture()
	f.billRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	_, err := f.svc.CreateBill(context.Background(), service.CreateBillInput{
		ItemName: "水费", Amount: "120.50",
	})

	assert.ErrorIs(t, err, service.ErrInternalServer)
	assert.Empty(t, f.pub.published)
}

func TestBillingService_SubmitPayment_NotifiesAdmins(t *testing.T) {
	f := newBillingFixture()
	billID := uint(8)
	f.paymentRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Status == domain.PaymentStatusPending
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Payment).ID = 12
	}).Return(nil).Once()
	f.userRepo.On("FindByID", mock.Anything, uint(42)).
		Return(&domain.User{ID: 42, Name: "陈静"}, nil).Once()

	payment, err := f.svc.SubmitPayment(context.Background(), service.SubmitPaymentInput{
		UserID: 42, BillID: &billID, Amount: "120.50", PaymentMethod: "transfer",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)

	require.Len(t, f.pub.published, 1)
	got := f.pub.published[0]
	assert.Equal(t, dto.RoomAdmins, got.Target)
	assert.Equal(t, dto.EventNewPaymentReceipt, got.Event)
	payload := got.Payload.(dto.PaymentReceiptPayload)
	assert.Equal(t, uint(12), payload.PaymentID)
	assert.Equal(t, "陈静", payload.UserName)
}

func TestBillingService_ReviewPayment_ApprovePropagatesToBill(t *testing.T) {
	f := newBillingFixture()
	billID := uint(8)
	payment := &domain.Payment{ID: 12, UserID: 42, BillID: &billID, Status: domain.PaymentStatusPending}
	bill := &domain.Bill{ID: 8, ItemName: "水费", Status: domain.BillStatusUnpaid}

	f.paymentRepo.On("FindByID", mock.Anything, uint(12)).Return(payment, nil).Once()
	f.paymentRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Status == domain.PaymentStatusPaid
	})).Return(nil).Once()
	f.billRepo.On("FindByID", mock.Anything, uint(8)).Return(bill, nil).Once()
	f.billRepo.On("Save", mock.Anything, mock.MatchedBy(func(b *domain.Bill) bool {
		return b.Status == "paid"
	})).Return(nil).Once()

	got, err := f.svc.ReviewPayment(context.Background(), 12, true)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, got.Status)
	f.billRepo.AssertExpectations(t)

	require.Len(t, f.pub.published, 1)
	event := f.pub.published[0]
	assert.Equal(t, dto.TargetBroadcast, event.Target)
	assert.Equal(t, dto.EventPaymentApproved, event.Event)
	payload := event.Payload.(dto.PaymentApprovedPayload)
	assert.Equal(t, uint(12), payload.PaymentID)
	require.NotNil(t, payload.BillID)
	assert.Equal(t, uint(8), *payload.BillID)
}

func TestBillingService_ReviewPayment_RejectPublishesNothing(t *testing.T) {
	f := newBillingFixture()
	payment := &domain.Payment{ID: 12, UserID: 42, Status: domain.PaymentStatusPending}

	f.paymentRepo.On("FindByID", mock.Anything, uint(12)).Return(payment, nil).Once()
	f.paymentRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Status == domain.PaymentStatusRejected
	})).Return(nil).Once()

	got, err := f.svc.ReviewPayment(context.Background(), 12, false)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRejected, got.Status)
	assert.Empty(t, f.pub.published, "rejection must not emit events")
	f.billRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBillingService_ReviewPayment_ApproveWithoutLinkedBill(t *testing.T) {
	f := newBillingFixture()
	payment := &domain.Payment{ID: 13, UserID: 42, Status: domain.PaymentStatusPending}

	f.paymentRepo.On("FindByID", mock.Anything, uint(13)).Return(payment, nil).Once()
	f.paymentRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := f.svc.ReviewPayment(context.Background(), 13, true)

	require.NoError(t, err)
	f.billRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	require.Len(t, f.pub.published, 1)
	assert.Equal(t, dto.EventPaymentApproved, f.pub.published[0].Event)
}

func TestBillingService_ReviewPayment_NotFound(t *testing.T) {
	f := newBillingFixture()
	f.paymentRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, repository.ErrPaymentNotFound).Once()

	_, err := f.svc.ReviewPayment(context.Background(), 404, true)

	assert.ErrorIs(t, err, service.ErrPaymentNotFound)
	assert.Empty(t, f.pub.published)
}

func TestBillingService_DeleteBill_Broadcast(t *testing.T) {
	f := newBillingFixture()
	f.billRepo.On("FindByID", mock.Anything, uint(8)).
		Return(&domain.Bill{ID: 8, ItemName: "水费"}, nil).Once()
	f.billRepo.On("Delete", mock.Anything, uint(8)).Return(nil).Once()

	err := f.svc.DeleteBill(context.Background(), 8)

	require.NoError(t, err)
	require.Len(t, f.pub.published, 1)
	got := f.pub.published[0]
	assert.Equal(t, dto.EventBillDeleted, got.Event)
	assert.Equal(t, dto.BillDeletedPayload{BillID: 8, ItemName: "水费"}, got.Payload)
}

func TestBillingService_PublishDueReminder(t *testing.T) {
	f := newBillingFixture()
	due := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	f.svc.PublishDueReminder(&domain.Bill{
		ID: 8, ItemName: "水费", Amount: "120.50", DueDate: due, Status: domain.BillStatusUnpaid,
	})

	require.Len(t, f.pub.published, 1)
	got := f.pub.published[0]
	assert.Equal(t, dto.TargetBroadcast, got.Target)
	assert.Equal(t, dto.EventBillDueReminder, got.Event)
	payload := got.Payload.(dto.BillPayload)
	assert.Equal(t, "2026-09-02", payload.DueDate)
}

func TestBillingService_DueBillsBefore(t *testing.T) {
	f := newBillingFixture()
	deadline := time.Now().AddDate(0, 0, 3)
	f.billRepo.On("FindUnpaidDueBefore", mock.Anything, deadline).
		Return([]domain.Bill{{ID: 8}, {ID: 9}}, nil).Once()

	bills, err := f.svc.DueBillsBefore(context.Background(), deadline)

	require.NoError(t, err)
	assert.Len(t, bills, 2)
}
