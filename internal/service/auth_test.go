package service_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository/mocks"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

const testJWTSecret = "test-secret"

func newAuthService(t *testing.T, userRepo repository.UserRepository) *service.AuthService {
	t.Helper()
	svc, err := service.NewAuthService(userRepo, testJWTSecret, 24)
	require.NoError(t, err)
	return svc
}

func hashedTestPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register_NewAccountsArePending(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	svc := newAuthService(t, userRepo)

	userRepo.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Status == domain.UserStatusPending &&
			u.Role == "resident" &&
			u.PasswordHash != "" &&
			u.PasswordHash != "secret123"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 5
	}).Return(nil).Once()

	user, err := svc.Register(context.Background(), service.RegisterInput{
		Name:     "王强",
		Username: "wangqiang",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(5), user.ID)
	assert.Empty(t, user.PasswordHash, "hash must not leak back to the caller")
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	svc := newAuthService(t, userRepo)

	userRepo.On("Save", mock.Anything, mock.Anything).Return(repository.ErrDuplicateEntry).Once()

	user, err := svc.Register(context.Background(), service.RegisterInput{
		Name: "A", Username: "taken", Password: "secret123",
	})

	assert.ErrorIs(t, err, service.ErrRegistrationFailed)
	assert.Nil(t, user)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	svc := newAuthService(t, userRepo)

	_, err := svc.Register(context.Background(), service.RegisterInput{Username: "x"})

	assert.ErrorIs(t, err, service.ErrInvalidInput)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	svc := newAuthService(t, userRepo)

	userRepo.On("FindByUsername", mock.Anything, "admin").Return(&domain.User{
		ID:           1,
		Username:     "admin",
		PasswordHash: hashedTestPassword(t, "admin123"),
		Role:         "admin",
		Status:       domain.UserStatusApproved,
	}, nil).Once()

	token, user, err := svc.Login(context.Background(), "admin", "admin123")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Empty(t, user.PasswordHash)

	// token 中携带 user_id 与 role claim
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(1), claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	svc := newAuthService(t, userRepo)

	userRepo.On("FindByUsername", mock.Anything, "admin").Return(&domain.User{
		ID:           1,
		PasswordHash: hashedTestPassword(t, "admin123"),
		Status:       domain.UserStatusApproved,
	}, nil).Once()

	token, user, err := svc.Login(context.Background(), "admin", "wrong")

	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	svc := newAuthService(t, userRepo)

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound).Once()

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")

	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
}

func TestAuthService_Login_StatusGating(t *testing.T) {
	cases := []struct {
		name    string
		status  string
		wantErr error
	}{
		{"pending account", domain.UserStatusPending, service.ErrAccountPending},
		{"suspended account", domain.UserStatusSuspended, service.ErrAccountSuspended},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userRepo := new(mocks.UserRepository)
			svc := newAuthService(t, userRepo)

			// 密码正确,仅状态不放行
			userRepo.On("FindByUsername", mock.Anything, "resident").Return(&domain.User{
				ID:           2,
				PasswordHash: hashedTestPassword(t, "secret123"),
				Status:       tc.status,
			}, nil).Once()

			token, user, err := svc.Login(context.Background(), "resident", "secret123")

			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, token)
			assert.Nil(t, user)
		})
	}
}
