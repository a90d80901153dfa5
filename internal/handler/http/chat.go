package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

// 显式 ?limit= 单次最多返回的消息条数。不带 limit 时返回全部历史。
const maxHistoryLimit = 200

// ChatHandler 封装了聊天历史查询的 HTTP 处理逻辑。
// 实时收发走 WebSocket，这里只提供回放接口。
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler 创建 ChatHandler 实例
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// History 返回指定房间的历史消息，按消息 ID 升序。
// ?room= 指定房间 (默认 general)，?limit= 限制只取最近的 N 条。
// 不带 limit 时返回该房间的全部历史，旧消息始终可达。
func (h *ChatHandler) History(c *gin.Context) {
	room := c.DefaultQuery("room", "general")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ErrorResponse(c, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		if parsed > maxHistoryLimit {
			parsed = maxHistoryLimit
		}
		limit = parsed
	}

	messages, err := h.chatService.History(c.Request.Context(), room, limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, messages)
}
