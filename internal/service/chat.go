package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/dto"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
)

// ChatService 负责聊天消息的校验、持久化与历史读取。
// 它不直接投递事件：SendMessage 只在落库成功后返回可投递的 payload，
// 由调用方 (Hub) 决定发往哪个房间——这保证了先提交、后发布的顺序。
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

// NewChatService 创建 ChatService 实例。
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatService {
	if chatRepo == nil {
		panic("ChatRepository cannot be nil for ChatService")
	}
	if userRepo == nil {
		panic("UserRepository cannot be nil for ChatService")
	}
	return &ChatService{chatRepo: chatRepo, userRepo: userRepo}
}

// SendMessage 校验并持久化一条消息。
// 校验失败返回 ErrInvalidMessage 且不写库；落库失败不返回 payload。
// 返回的 payload 中 MessageID 是数据库分配的自增 ID，房间内排序以它为准。
func (s *ChatService) SendMessage(ctx context.Context, senderID uint, content, roomName string) (*dto.ChatMessagePayload, error) {
	logCtx := logrus.WithFields(logrus.Fields{"sender_id": senderID, "room": roomName})

	if senderID == 0 || strings.TrimSpace(content) == "" {
		return nil, ErrInvalidMessage
	}
	if roomName == "" {
		roomName = "general"
	}

	msg := &domain.ChatMessage{
		SenderID:  senderID,
		Content:   content,
		Timestamp: time.Now(),
		RoomName:  roomName,
	}

	if err := s.chatRepo.Save(ctx, msg); err != nil {
		logCtx.WithError(err).Error("Failed to save chat message")
		return nil, ErrInternalServer
	}

	payload := s.toPayload(ctx, msg, nil)
	logCtx.WithField("message_id", msg.ID).Debug("Chat message persisted")
	return &payload, nil
}

// History 按 ID 升序返回房间的历史消息。
// limit > 0 时只取有序序列的尾部 limit 条 (最近的消息)。
// 发送者信息快照在读取时解析，用户已删除时退回到占位文本。
func (s *ChatService) History(ctx context.Context, roomName string, limit int) ([]dto.ChatMessagePayload, error) {
	msgs, err := s.chatRepo.History(ctx, roomName, limit)
	if err != nil {
		logrus.WithError(err).WithField("room", roomName).Error("Failed to load chat history")
		return nil, ErrInternalServer
	}

	// 同一批消息里发送者大量重复，查过的用户缓存起来
	userCache := make(map[uint]*domain.User)
	payloads := make([]dto.ChatMessagePayload, 0, len(msgs))
	for i := range msgs {
		payloads = append(payloads, s.toPayload(ctx, &msgs[i], userCache))
	}
	return payloads, nil
}

// toPayload 把消息转成事件数据，补齐发送者名称与头像。
func (s *ChatService) toPayload(ctx context.Context, msg *domain.ChatMessage, userCache map[uint]*domain.User) dto.ChatMessagePayload {
	senderName := dto.UnknownUser
	senderAvatar := "?"

	var sender *domain.User
	if cached, ok := userCache[msg.SenderID]; ok {
		sender = cached // 缓存命中可能是 nil (用户已删除)，同样不再打库
	} else {
		if found, err := s.userRepo.FindByID(ctx, msg.SenderID); err == nil {
			sender = found
		}
		if userCache != nil {
			userCache[msg.SenderID] = sender
		}
	}
	if sender != nil {
		senderName = sender.Name
		senderAvatar = sender.DisplayAvatar()
	}

	return dto.ChatMessagePayload{
		MessageID:    msg.ID,
		SenderID:     msg.SenderID,
		SenderName:   senderName,
		SenderAvatar: senderAvatar,
		Content:      msg.Content,
		Timestamp:    msg.Timestamp.Format(time.RFC3339),
		RoomName:     msg.RoomName,
	}
}
