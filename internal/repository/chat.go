package repository

import (
	"context"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
)

// ChatRepository 定义了聊天消息的追加和历史读取操作。
type ChatRepository interface {
	// Save 追加一条消息。数据库分配的自增 ID 回填到 msg.ID，
	// 它是房间内消息排序的权威依据。
	Save(ctx context.Context, msg *domain.ChatMessage) error

	// History 按 ID 升序返回消息。
	// roomName 为空表示跨房间全量；limit > 0 时只取有序序列的尾部 limit 条。
	History(ctx context.Context, roomName string, limit int) ([]domain.ChatMessage, error)
}
