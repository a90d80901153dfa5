package domain

import "time"

// ChatMessage 表示聊天室中持久化的一条消息。
// 同一房间内,消息的先后顺序以自增主键 ID 为准；Timestamp 仅供展示。
type ChatMessage struct {
	ID         uint      `gorm:"primaryKey"`                         // 消息唯一标识符 (主键，房间内排序的权威依据)
	SenderID   uint      `gorm:"index;not null"`                     // 发送者用户 ID (外键关联 User.ID)
	ReceiverID *uint     `gorm:"index"`                              // 可选的私聊接收者用户 ID
	Content    string    `gorm:"type:text;not null"`                 // 消息内容
	Timestamp  time.Time `gorm:"index;not null"`                     // 服务端写入时间
	RoomName   string    `gorm:"type:varchar(100);default:general"` // 所属房间名
}
