package http_test

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	handler "github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/handler/http"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository/mocks"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

func newChatRouter(chatRepo *mocks.ChatRepository, userRepo *mocks.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewChatHandler(service.NewChatService(chatRepo, userRepo))
	router := gin.New()
	router.GET("/api/chat-messages", h.History)
	return router
}

func getHistory(router *gin.Engine, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := nethttp.NewRequest(nethttp.MethodGet, "/api/chat-messages"+query, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestChatHandler_History_OmittedLimitReturnsAllRows(t *testing.T) {
	chatRepo := new(mocks.ChatRepository)
	userRepo := new(mocks.UserRepository)
	router := newChatRouter(chatRepo, userRepo)

	// 不带 limit 时必须以 limit=0 打到仓储层,旧消息不能被截断
	chatRepo.On("History", mock.Anything, "general", 0).Return([]domain.ChatMessage{
		{ID: 1, SenderID: 7, Content: "old", Timestamp: time.Now(), RoomName: "general"},
	}, nil).Once()
	userRepo.On("FindByID", mock.Anything, uint(7)).
		Return(&domain.User{ID: 7, Name: "A"}, nil).Once()

	w := getHistory(router, "")

	require.Equal(t, nethttp.StatusOK, w.Code)
	chatRepo.AssertExpectations(t)
}

func TestChatHandler_History_ExplicitLimitPassedThrough(t *testing.T) {
	chatRepo := new(mocks.ChatRepository)
	userRepo := new(mocks.UserRepository)
	router := newChatRouter(chatRepo, userRepo)

	chatRepo.On("History", mock.Anything, "general", 50).Return([]domain.ChatMessage{}, nil).Once()

	w := getHistory(router, "?limit=50")

	require.Equal(t, nethttp.StatusOK, w.Code)
	chatRepo.AssertExpectations(t)
}

func TestChatHandler_History_OversizedLimitCapped(t *testing.T) {
	chatRepo := new(mocks.ChatRepository)
	userRepo := new(mocks.UserRepository)
	router := newChatRouter(chatRepo, userRepo)

	chatRepo.On("History", mock.Anything, "general", 200).Return([]domain.ChatMessage{}, nil).Once()

	w := getHistory(router, "?limit=5000")

	require.Equal(t, nethttp.StatusOK, w.Code)
	chatRepo.AssertExpectations(t)
}

func TestChatHandler_History_InvalidLimitRejected(t *testing.T) {
	for _, query := range []string{"?limit=abc", "?limit=-1", "?limit=0"} {
		t.Run(query, func(t *testing.T) {
			chatRepo := new(mocks.ChatRepository)
			userRepo := new(mocks.UserRepository)
			router := newChatRouter(chatRepo, userRepo)

			w := getHistory(router, query)

			assert.Equal(t, nethttp.StatusBadRequest, w.Code)
			chatRepo.AssertNotCalled(t, "History", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestChatHandler_History_RoomQueryForwarded(t *testing.T) {
	chatRepo := new(mocks.ChatRepository)
	userRepo := new(mocks.UserRepository)
	router := newChatRouter(chatRepo, userRepo)

	chatRepo.On("History", mock.Anything, "block-a", 0).Return([]domain.ChatMessage{}, nil).Once()

	w := getHistory(router, "?room=block-a")

	require.Equal(t, nethttp.StatusOK, w.Code)
	chatRepo.AssertExpectations(t)
}
