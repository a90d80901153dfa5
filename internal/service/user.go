package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
)

// 账户状态的合法取值。
var validUserStatuses = map[string]bool{
	domain.UserStatusPending:   true,
	domain.UserStatusApproved:  true,
	domain.UserStatusSuspended: true,
}

// UserService 负责用户账户的管理操作 (列表、审批、资料维护)。
type UserService struct {
	userRepo repository.UserRepository
	presence repository.PresenceRepository
}

// NewUserService 创建 UserService 实例。
func NewUserService(userRepo repository.UserRepository, presence repository.PresenceRepository) *UserService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for UserService")
	}
	if presence == nil {
		panic("PresenceRepository cannot be nil for UserService")
	}
	return &UserService{userRepo: userRepo, presence: presence}
}

// ListUsers 返回全部用户，密码哈希已清除。
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list users")
		return nil, ErrInternalServer
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// GetUser 返回单个用户，密码哈希已清除。
func (s *UserService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("user_id", id).Error("Failed to get user")
		return nil, ErrInternalServer
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateStatus 修改账户状态 (管理员审批/停用)。
func (s *UserService) UpdateStatus(ctx context.Context, id uint, status string) (*domain.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": id, "status": status})

	if !validUserStatuses[status] {
		return nil, ErrInvalidStatus
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to find user for status update")
		return nil, ErrInternalServer
	}

	user.Status = status
	if err := s.userRepo.Save(ctx, user); err != nil {
		logCtx.WithError(err).Error("Failed to save user status")
		return nil, ErrInternalServer
	}

	logCtx.Info("User status updated")
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfileInput 是资料更新的输入，空字段保持原值。
type UpdateProfileInput struct {
	Name    string
	Phone   string
	Address string
	Email   string
	Avatar  string
}

// UpdateProfile 更新用户资料。
func (s *UserService) UpdateProfile(ctx context.Context, id uint, in UpdateProfileInput) (*domain.User, error) {
	logCtx := logrus.WithField("user_id", id)

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to find user for profile update")
		return nil, ErrInternalServer
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Address != "" {
		user.Address = in.Address
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		logCtx.WithError(err).Error("Failed to save user profile")
		return nil, ErrInternalServer
	}

	logCtx.Info("User profile updated")
	user.PasswordHash = ""
	return user, nil
}

// DeleteUser 删除指定用户账户。
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		logrus.WithError(err).WithField("user_id", id).Error("Failed to delete user")
		return ErrInternalServer
	}
	logrus.WithField("user_id", id).Info("User deleted")
	return nil
}

// OnlineUserIDs 返回当前在线用户 ID 列表 (读取 Redis 在线标记)。
func (s *UserService) OnlineUserIDs(ctx context.Context) ([]uint, error) {
	ids, err := s.presence.OnlineUsers(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to read online users")
		return nil, ErrInternalServer
	}
	return ids, nil
}
