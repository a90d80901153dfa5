// Package mocks 提供 repository 接口的 testify mock 实现，仅用于测试。
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
)

// UserRepository 是 repository.UserRepository 的 mock。
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Save(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// AnnouncementRepository 是 repository.AnnouncementRepository 的 mock。
type AnnouncementRepository struct {
	mock.Mock
}

func (m *AnnouncementRepository) FindByID(ctx context.Context, id uint) (*domain.Announcement, error) {
	args := m.Called(ctx, id)
	if ann, ok := args.Get(0).(*domain.Announcement); ok {
		return ann, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnnouncementRepository) FindAll(ctx context.Context) ([]domain.Announcement, error) {
	args := m.Called(ctx)
	if anns, ok := args.Get(0).([]domain.Announcement); ok {
		return anns, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnnouncementRepository) Save(ctx context.Context, a *domain.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AnnouncementRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// RepairRepository 是 repository.RepairRepository 的 mock。
type RepairRepository struct {
	mock.Mock
}

func (m *RepairRepository) FindByID(ctx context.Context, id uint) (*domain.RepairRequest, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*domain.RepairRequest); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RepairRepository) FindAll(ctx context.Context) ([]domain.RepairRequest, error) {
	args := m.Called(ctx)
	if rs, ok := args.Get(0).([]domain.RepairRequest); ok {
		return rs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RepairRepository) Save(ctx context.Context, r *domain.RepairRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RepairRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// BookingRepository 是 repository.BookingRepository 的 mock。
type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) FindByID(ctx context.Context, id uint) (*domain.BookingRequest, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*domain.BookingRequest); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingRepository) FindAll(ctx context.Context) ([]domain.BookingRequest, error) {
	args := m.Called(ctx)
	if bs, ok := args.Get(0).([]domain.BookingRequest); ok {
		return bs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingRepository) Save(ctx context.Context, b *domain.BookingRequest) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BookingRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// BillRepository 是 repository.BillRepository 的 mock。
type BillRepository struct {
	mock.Mock
}

func (m *BillRepository) FindByID(ctx context.Context, id uint) (*domain.Bill, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*domain.Bill); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BillRepository) FindAll(ctx context.Context) ([]domain.Bill, error) {
	args := m.Called(ctx)
	if bs, ok := args.Get(0).([]domain.Bill); ok {
		return bs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BillRepository) FindUnpaidDueBefore(ctx context.Context, deadline time.Time) ([]domain.Bill, error) {
	args := m.Called(ctx, deadline)
	if bs, ok := args.Get(0).([]domain.Bill); ok {
		return bs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BillRepository) Save(ctx context.Context, b *domain.Bill) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BillRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// PaymentRepository 是 repository.PaymentRepository 的 mock。
type PaymentRepository struct {
	mock.Mock
}

func (m *PaymentRepository) FindByID(ctx context.Context, id uint) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PaymentRepository) FindAll(ctx context.Context, userID uint) ([]domain.Payment, error) {
	args := m.Called(ctx, userID)
	if ps, ok := args.Get(0).([]domain.Payment); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PaymentRepository) Save(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// ChatRepository 是 repository.ChatRepository 的 mock。
type ChatRepository struct {
	mock.Mock
}

func (m *ChatRepository) Save(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *ChatRepository) History(ctx context.Context, roomName string, limit int) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, roomName, limit)
	if msgs, ok := args.Get(0).([]domain.ChatMessage); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

// CalendarRepository 是 repository.CalendarRepository 的 mock。
type CalendarRepository struct {
	mock.Mock
}

func (m *CalendarRepository) FindAll(ctx context.Context) ([]domain.CalendarEvent, error) {
	args := m.Called(ctx)
	if es, ok := args.Get(0).([]domain.CalendarEvent); ok {
		return es, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CalendarRepository) Save(ctx context.Context, e *domain.CalendarEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// VotingRepository 是 repository.VotingRepository 的 mock。
type VotingRepository struct {
	mock.Mock
}

func (m *VotingRepository) FindPollByID(ctx context.Context, id uint) (*domain.VotingPoll, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.VotingPoll); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VotingRepository) FindAllPolls(ctx context.Context) ([]domain.VotingPoll, error) {
	args := m.Called(ctx)
	if ps, ok := args.Get(0).([]domain.VotingPoll); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VotingRepository) SavePoll(ctx context.Context, p *domain.VotingPoll) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *VotingRepository) FindOptionsByPoll(ctx context.Context, pollID uint) ([]domain.VotingOption, error) {
	args := m.Called(ctx, pollID)
	if os, ok := args.Get(0).([]domain.VotingOption); ok {
		return os, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VotingRepository) SaveOption(ctx context.Context, o *domain.VotingOption) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *VotingRepository) CountVotesByPoll(ctx context.Context, pollID uint) (int64, error) {
	args := m.Called(ctx, pollID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *VotingRepository) CountVotesByOption(ctx context.Context, optionID uint) (int64, error) {
	args := m.Called(ctx, optionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *VotingRepository) FindAllVotes(ctx context.Context) ([]domain.VotingResult, error) {
	args := m.Called(ctx)
	if vs, ok := args.Get(0).([]domain.VotingResult); ok {
		return vs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VotingRepository) SaveVote(ctx context.Context, v *domain.VotingResult) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// PresenceRepository 是 repository.PresenceRepository 的 mock。
type PresenceRepository struct {
	mock.Mock
}

func (m *PresenceRepository) MarkOnline(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *PresenceRepository) MarkOffline(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *PresenceRepository) OnlineUsers(ctx context.Context) ([]uint, error) {
	args := m.Called(ctx)
	if ids, ok := args.Get(0).([]uint); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}
