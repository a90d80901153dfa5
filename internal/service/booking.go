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

// 预约状态的合法取值。
var validBookingStatuses = map[string]bool{
	"pending":  true,
	"approved": true,
	"rejected": true,
}

// BookingService 负责场地预约：住户申请后通知管理员，
// 管理员审批后通知申请人的个人房间。
type BookingService struct {
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	publisher   Publisher
}

// NewBookingService 创建 BookingService 实例。
func NewBookingService(bookingRepo repository.BookingRepository, userRepo repository.UserRepository, publisher Publisher) *BookingService {
	if bookingRepo == nil {
		panic("BookingRepository cannot be nil for BookingService")
	}
	if userRepo == nil {
		panic("UserRepository cannot be nil for BookingService")
	}
	if publisher == nil {
		panic("Publisher cannot be nil for BookingService")
	}
	return &BookingService{bookingRepo: bookingRepo, userRepo: userRepo, publisher: publisher}
}

// List 返回全部预约申请。
func (s *BookingService) List(ctx context.Context) ([]domain.BookingRequest, error) {
	bookings, err := s.bookingRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list booking requests")
		return nil, ErrInternalServer
	}
	return bookings, nil
}

// CreateBookingInput 是提交预约的输入数据。
type CreateBookingInput struct {
	UserID        uint
	Location      string
	Date          time.Time
	StartTime     string
	EndTime       string
	Purpose       string
	AttendeeCount int
}

// Create 提交预约申请。提交成功后向 admins 房间发布 new_booking_request。
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*domain.BookingRequest, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": in.UserID, "location": in.Location})

	if in.Location == "" {
		return nil, ErrInvalidInput
	}

	booking := &domain.BookingRequest{
		UserID:        in.UserID,
		Location:      in.Location,
		Date:          in.Date,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		Purpose:       in.Purpose,
		AttendeeCount: in.AttendeeCount,
		Status:        "pending",
	}

	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		logCtx.WithError(err).Error("Failed to save booking request")
		return nil, ErrInternalServer
	}

	logCtx.WithField("booking_id", booking.ID).Info("Booking request created")
	s.publisher.Publish(dto.RoomAdmins, dto.EventNewBookingRequest, dto.BookingRequestPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		UserName:  s.resolveUserName(ctx, booking.UserID),
		Location:  booking.Location,
		Status:    booking.Status,
	})
	return booking, nil
}

// UpdateStatus 审批预约。提交成功后向申请人的个人房间发布 booking_status_updated。
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, status string) (*domain.BookingRequest, error) {
	logCtx := logrus.WithFields(logrus.Fields{"booking_id": id, "status": status})

	if !validBookingStatuses[status] {
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		logCtx.WithError(err).Error("Failed to find booking for status update")
		return nil, ErrInternalServer
	}

	booking.Status = status
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		logCtx.WithError(err).Error("Failed to save booking status")
		return nil, ErrInternalServer
	}

	logCtx.Info("Booking status updated")
	s.publisher.Publish(dto.UserRoom(booking.UserID), dto.EventBookingStatusUpdated, dto.BookingStatusPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Status:    booking.Status,
		Location:  booking.Location,
	})
	return booking, nil
}

// Delete 删除预约申请。
func (s *BookingService) Delete(ctx context.Context, id uint) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		logrus.WithError(err).WithField("booking_id", id).Error("Failed to delete booking request")
		return ErrInternalServer
	}
	logrus.WithField("booking_id", id).Info("Booking request deleted")
	return nil
}

func (s *BookingService) resolveUserName(ctx context.Context, userID uint) string {
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil && user != nil {
		return user.Name
	}
	return dto.UnknownUser
}
