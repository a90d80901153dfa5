package dto

import "encoding/json"

// 入站事件类型。每种类型对应 hub 中的一个处理函数。
const (
	InboundJoinChatRoom  = "join_chat_room"
	InboundLeaveChatRoom = "leave_chat_room"
	InboundJoinUserRoom  = "join_user_room"
	InboundSendMessage   = "send_message"
)

// InboundEnvelope 是客户端 WebSocket 消息的外层结构。
// Data 延迟解析，由各处理函数按类型解码。
type InboundEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// JoinRoomRequest 是 join_chat_room / leave_chat_room 的数据。
type JoinRoomRequest struct {
	RoomName string `json:"room_name"`
}

// JoinUserRoomRequest 是 join_user_room 的数据。
type JoinUserRoomRequest struct {
	UserID uint `json:"user_id"`
}

// SendMessageRequest 是 send_message 的数据。
// RoomName 为空时落到默认聊天室。
type SendMessageRequest struct {
	SenderID uint   `json:"sender_id"`
	Content  string `json:"content"`
	RoomName string `json:"room_name"`
}
