package gormpersistence

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
)

// GormChatRepository 是 ChatRepository 接口的 GORM 实现。
// 消息只追加不修改；房间内的顺序由自增主键保证。
type GormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository 创建 GormChatRepository 实例
func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	if db == nil {
		panic("database connection cannot be nil for GormChatRepository")
	}
	return &GormChatRepository{db: db}
}

// Save 实现追加一条消息，自增 ID 由 GORM 回填
func (r *GormChatRepository) Save(ctx context.Context, msg *domain.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("gorm: save chat message (room %s): %w", msg.RoomName, err)
	}
	return nil
}

// History 实现按 ID 升序读取历史消息。
// limit > 0 时只取尾部 limit 条：先按 ID 倒序取 limit 条，再翻转回升序。
func (r *GormChatRepository) History(ctx context.Context, roomName string, limit int) ([]domain.ChatMessage, error) {
	var list []domain.ChatMessage
	query := r.db.WithContext(ctx)
	if roomName != "" {
		query = query.Where("room_name = ?", roomName)
	}
	if limit > 0 {
		if err := query.Order("id desc").Limit(limit).Find(&list).Error; err != nil {
			return nil, fmt.Errorf("gorm: chat history (room %s, limit %d): %w", roomName, limit, err)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		return list, nil
	}
	if err := query.Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gorm: chat history (room %s): %w", roomName, err)
	}
	return list, nil
}
