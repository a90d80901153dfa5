package hub

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/dto"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

// DefaultChatRoom 是 send_message 未指定房间时落入的聊天室。
const DefaultChatRoom = "general"

// ChatRelay 是 Hub 对聊天子系统的依赖：
// 校验并持久化消息，成功时返回可直接投递的 payload。
type ChatRelay interface {
	SendMessage(ctx context.Context, senderID uint, content, roomName string) (*dto.ChatMessagePayload, error)
}

// hubMessage 定义了在 Hub 内部通道传递的消息类型
type hubMessage struct {
	kind    string // "register" / "unregister" / "inbound"
	client  *Client
	rawData []byte // 仅用于 inbound (原始 WebSocket 消息)
}

// Hub 维护连接注册表并承担两类职责：
//  1. 房间路由器：Publish 把一条事件投递给目标房间此刻的成员快照（或广播给全部连接）；
//  2. 入站分发器：串行消费客户端事件（注册、注销、加入/离开房间、发消息）。
//
// 投递是尽力而为的：单个客户端发送队列已满时丢弃该次投递，不重试、不确认，
// 也绝不让慢客户端阻塞其他接收者。
type Hub struct {
	registry    *Registry
	messageChan chan hubMessage
	done        chan struct{}
	stopOnce    sync.Once
	chat        ChatRelay
	presence    repository.PresenceRepository
}

// NewHub 创建并返回一个新的 Hub 实例
func NewHub(registry *Registry, chat ChatRelay, presence repository.PresenceRepository) *Hub {
	if registry == nil {
		panic("Registry cannot be nil for Hub")
	}
	if chat == nil {
		panic("ChatRelay cannot be nil for Hub")
	}
	if presence == nil {
		panic("PresenceRepository cannot be nil for Hub")
	}
	return &Hub{
		registry:    registry,
		messageChan: make(chan hubMessage, 512),
		done:        make(chan struct{}),
		chat:        chat,
		presence:    presence,
	}
}

// Registry 返回 Hub 使用的连接注册表。
func (h *Hub) Registry() *Registry { return h.registry }

// Run 启动 Hub 的主事件处理循环。
// 它应该在一个单独的 goroutine 中运行。
// 同一连接的成员关系变更在此串行处理，保证 join 之后的发言
// 一定能看到已生效的成员关系。
func (h *Hub) Run() {
	log := logrus.WithField("component", "hub")
	log.Info("Hub is running...")

	for {
		select {
		case <-h.done:
			log.Info("Hub is shutting down...")
			return
		case msg := <-h.messageChan:
			switch msg.kind {
			case "register":
				h.registerClient(msg.client)
			case "unregister":
				h.unregisterClient(msg.client)
			case "inbound":
				h.dispatchInbound(msg.client, msg.rawData)
			default:
				log.Warnf("Hub: received unknown internal message kind: %s", msg.kind)
			}
		}
	}
}

// Stop 通知 Run 退出。messageChan 从不关闭：HTTP 服务关停后
// 存活的 websocket 读协程仍可能调用 queue，入队只会被拒绝，不会 panic。
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// QueueRegister 请求登记一个新连接 (连接建立时由 websocket handler 调用)。
func (h *Hub) QueueRegister(c *Client) bool {
	return h.queue(hubMessage{kind: "register", client: c})
}

func (h *Hub) queueUnregister(c *Client) bool {
	return h.queue(hubMessage{kind: "unregister", client: c})
}

func (h *Hub) queueInbound(c *Client, raw []byte) bool {
	return h.queue(hubMessage{kind: "inbound", client: c, rawData: raw})
}

// queue 将消息放入 Hub 的处理队列 (非阻塞)。
// 返回 true 如果消息成功入队，false 如果队列已满或 Hub 已停止。
func (h *Hub) queue(msg hubMessage) bool {
	select {
	case <-h.done:
		logrus.WithField("kind", msg.kind).Debug("Hub stopped, dropping message")
		return false
	default:
	}
	select {
	case h.messageChan <- msg:
		return true
	default:
		logrus.WithField("kind", msg.kind).Warn("Hub message channel full, dropping message")
		return false
	}
}

// registerClient 处理客户端登记：创建空的房间集合。
func (h *Hub) registerClient(c *Client) {
	if c == nil {
		logrus.Error("Hub: attempted to register a nil client")
		return
	}
	h.registry.Register(c)
	logrus.WithField("session_id", c.sessionID).Info("Client registered to Hub")
}

// unregisterClient 处理客户端注销：移出所有房间、关闭发送通道、清除在线标记。
func (h *Hub) unregisterClient(c *Client) {
	if c == nil {
		logrus.Error("Hub: attempted to unregister a nil client")
		return
	}
	logCtx := logrus.WithField("session_id", c.sessionID)

	removed := h.registry.Unregister(c.sessionID)
	if removed == nil {
		logCtx.Warn("Client not found in registry during unregister")
		return
	}

	// 关闭此客户端的 send 通道，这将导致其 WritePump 退出。
	// 需要检查通道状态，防止重复关闭 panic。
	select {
	case <-removed.send:
		logCtx.Warn("Client send channel already closed or has data during unregister")
	default:
		close(removed.send)
	}

	if removed.userID != 0 {
		if err := h.presence.MarkOffline(context.Background(), removed.userID); err != nil {
			logCtx.WithError(err).Warn("Failed to mark user offline")
		}
	}
	logCtx.Info("Client unregistered from Hub")
}

// dispatchInbound 解析客户端消息并按类型分发。
// 成员关系变更内联处理（保持与后续消息的先后关系）；
// send_message 涉及数据库写入，放到独立 goroutine 处理。
func (h *Hub) dispatchInbound(c *Client, raw []byte) {
	logCtx := logrus.WithField("session_id", c.sessionID)

	var env dto.InboundEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logCtx.WithError(err).Warn("Malformed inbound message")
		h.sendToClient(c, dto.EventError, dto.ErrorPayload{Message: "Malformed message"})
		return
	}

	switch env.Type {
	case dto.InboundJoinChatRoom:
		var req dto.JoinRoomRequest
		if err := json.Unmarshal(env.Data, &req); err != nil || req.RoomName == "" {
			h.sendToClient(c, dto.EventError, dto.ErrorPayload{Message: "Missing room_name"})
			return
		}
		h.registry.Join(c.sessionID, req.RoomName)
		logCtx.WithField("room", req.RoomName).Info("Client joined room")
		h.sendToClient(c, dto.EventStatus, dto.StatusPayload{Msg: "Joined " + req.RoomName})

	case dto.InboundLeaveChatRoom:
		var req dto.JoinRoomRequest
		if err := json.Unmarshal(env.Data, &req); err != nil || req.RoomName == "" {
			h.sendToClient(c, dto.EventError, dto.ErrorPayload{Message: "Missing room_name"})
			return
		}
		h.registry.Leave(c.sessionID, req.RoomName)
		logCtx.WithField("room", req.RoomName).Info("Client left room")
		h.sendToClient(c, dto.EventStatus, dto.StatusPayload{Msg: "Left " + req.RoomName})

	case dto.InboundJoinUserRoom:
		var req dto.JoinUserRoomRequest
		if err := json.Unmarshal(env.Data, &req); err != nil || req.UserID == 0 {
			h.sendToClient(c, dto.EventError, dto.ErrorPayload{Message: "Missing user_id"})
			return
		}
		room := dto.UserRoom(req.UserID)
		h.registry.Join(c.sessionID, room)
		c.userID = req.UserID
		if err := h.presence.MarkOnline(context.Background(), req.UserID); err != nil {
			logCtx.WithError(err).Warn("Failed to mark user online")
		}
		logCtx.WithField("room", room).Info("Client joined personal room")
		h.sendToClient(c, dto.EventStatus, dto.StatusPayload{Msg: "Joined personal room " + room})

	case dto.InboundSendMessage:
		var req dto.SendMessageRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			h.sendToClient(c, dto.EventError, dto.ErrorPayload{Message: "Malformed message"})
			return
		}
		go h.handleSendMessage(c, req)

	default:
		logCtx.Warnf("Hub: received unknown inbound event type: %s", env.Type)
		h.sendToClient(c, dto.EventError, dto.ErrorPayload{Message: "Unknown event type"})
	}
}

// handleSendMessage 走聊天子系统：先提交，提交成功才向房间发布。
// 校验失败和持久化失败都只通知发起连接，绝不进入房间。
func (h *Hub) handleSendMessage(c *Client, req dto.SendMessageRequest) {
	roomName := req.RoomName
	if roomName == "" {
		roomName = DefaultChatRoom
	}

	payload, err := h.chat.SendMessage(context.Background(), req.SenderID, req.Content, roomName)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMessage) {
			h.sendToClient(c, dto.EventError, dto.ErrorPayload{Message: "Missing sender_id or content"})
		} else {
			logrus.WithField("session_id", c.sessionID).WithError(err).Error("Failed to persist chat message")
			h.sendToClient(c, dto.EventError, dto.ErrorPayload{Message: "Failed to send message"})
		}
		return
	}

	h.Publish(payload.RoomName, dto.EventReceiveMessage, payload)
}

// Publish 实现事件到房间的投递 (service.Publisher)。
// target 为 dto.TargetBroadcast 时投递给所有在线连接，
// 否则投递给房间此刻的成员快照。空房间是静默 no-op。
func (h *Hub) Publish(target, event string, payload interface{}) {
	message, err := json.Marshal(dto.Envelope{Type: event, Data: payload})
	if err != nil {
		logrus.WithField("event", event).WithError(err).Error("Failed to marshal event payload")
		return
	}

	var recipients []*Client
	if target == dto.TargetBroadcast {
		recipients = h.registry.Clients()
	} else {
		recipients = h.registry.MembersOf(target)
	}
	if len(recipients) == 0 {
		return
	}

	logrus.WithFields(logrus.Fields{
		"event":           event,
		"target":          target,
		"recipient_count": len(recipients),
	}).Debug("Publishing event")

	for _, client := range recipients {
		// 非阻塞发送，避免单个慢客户端阻塞其他投递
		if !client.enqueue(message) {
			logrus.WithFields(logrus.Fields{
				"event":      event,
				"session_id": client.sessionID,
			}).Warn("Client send channel full, delivery dropped")
		}
	}
}

// sendToClient 把仅面向单个连接的 status/error 消息放入其发送队列。
func (h *Hub) sendToClient(c *Client, event string, payload interface{}) {
	message, err := json.Marshal(dto.Envelope{Type: event, Data: payload})
	if err != nil {
		logrus.WithField("event", event).WithError(err).Error("Failed to marshal client message")
		return
	}
	if !c.enqueue(message) {
		logrus.WithField("session_id", c.sessionID).Warn("Client send channel full, message dropped")
	}
}
