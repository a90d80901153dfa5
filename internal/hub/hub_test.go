package hub

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/dto"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository/mocks"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

// stubChatRelay 允许测试控制 SendMessage 的结果。
type stubChatRelay struct {
	payload *dto.ChatMessagePayload
	err     error
	calls   int
}

func (s *stubChatRelay) SendMessage(ctx context.Context, senderID uint, content, roomName string) (*dto.ChatMessagePayload, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	p := *s.payload
	return &p, nil
}

func newTestHub(chat ChatRelay) *Hub {
	presence := new(mocks.PresenceRepository)
	presence.On("MarkOnline", mock.Anything, mock.Anything).Return(nil).Maybe()
	presence.On("MarkOffline", mock.Anything, mock.Anything).Return(nil).Maybe()
	if chat == nil {
		chat = &stubChatRelay{payload: &dto.ChatMessagePayload{}}
	}
	return NewHub(NewRegistry(), chat, presence)
}

// drain 读出客户端发送队列里的全部消息。
func drain(c *Client) [][]byte {
	var out [][]byte
	for {
		select {
		case msg := <-c.send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func decodeEnvelope(t *testing.T, raw []byte) dto.Envelope {
	t.Helper()
	var env dto.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func TestHub_PublishToRoomMembersOnly(t *testing.T) {
	h := newTestHub(nil)
	inRoomA := newTestClient("a1")
	alsoInA := newTestClient("a2")
	inRoomB := newTestClient("b1")
	for _, c := range []*Client{inRoomA, alsoInA, inRoomB} {
		h.registry.Register(c)
	}
	h.registry.Join("a1", "general")
	h.registry.Join("a2", "general")
	h.registry.Join("b1", "other")

	h.Publish("general", dto.EventReceiveMessage, dto.ChatMessagePayload{Content: "hi"})

	msgsA1 := drain(inRoomA)
	msgsA2 := drain(alsoInA)
	require.Len(t, msgsA1, 1)
	require.Len(t, msgsA2, 1)
	assert.Empty(t, drain(inRoomB))

	// 同一次发布,所有接收者拿到完全一致的字节
	assert.Equal(t, msgsA1[0], msgsA2[0])
	env := decodeEnvelope(t, msgsA1[0])
	assert.Equal(t, dto.EventReceiveMessage, env.Type)
}

func TestHub_PublishBroadcastReachesAllConnections(t *testing.T) {
	h := newTestHub(nil)
	c1 := newTestClient("s1")
	c2 := newTestClient("s2")
	h.registry.Register(c1)
	h.registry.Register(c2)
	// c2 没有加入任何房间,broadcast 仍应送达
	h.registry.Join("s1", "general")

	h.Publish(dto.TargetBroadcast, dto.EventNewAnnouncement, dto.AnnouncementPayload{Title: "hello"})

	assert.Len(t, drain(c1), 1)
	assert.Len(t, drain(c2), 1)
}

func TestHub_PublishToEmptyRoomIsNoop(t *testing.T) {
	h := newTestHub(nil)
	c := newTestClient("s1")
	h.registry.Register(c)

	h.Publish("nobody-here", dto.EventNewAnnouncement, dto.AnnouncementPayload{})

	assert.Empty(t, drain(c))
}

func TestHub_LeaveThenPublishDeliversNothing(t *testing.T) {
	h := newTestHub(nil)
	c := newTestClient("s1")
	h.registry.Register(c)
	h.registry.Join("s1", "general")
	h.registry.Leave("s1", "general")

	h.Publish("general", dto.EventReceiveMessage, dto.ChatMessagePayload{})

	assert.Empty(t, drain(c))
}

func TestHub_PersonalRoomScenario(t *testing.T) {
	h := newTestHub(nil)
	owner := newTestClient("s1")
	bystander := newTestClient("s2")
	h.registry.Register(owner)
	h.registry.Register(bystander)
	h.registry.Join("s1", dto.UserRoom(42))

	h.Publish(dto.UserRoom(42), dto.EventRepairStatusUpdated, dto.RepairStatusPayload{
		RequestID: 7, UserID: 42, Status: "done", Title: "leaking pipe",
	})

	msgs := drain(owner)
	require.Len(t, msgs, 1)
	assert.Empty(t, drain(bystander))
	env := decodeEnvelope(t, msgs[0])
	assert.Equal(t, dto.EventRepairStatusUpdated, env.Type)
}

func TestHub_PublishDropsWhenClientQueueFull(t *testing.T) {
	h := newTestHub(nil)
	slow := &Client{sessionID: "slow", send: make(chan []byte, 1)}
	fast := newTestClient("fast")
	h.registry.Register(slow)
	h.registry.Register(fast)
	h.registry.Join("slow", "general")
	h.registry.Join("fast", "general")
	slow.send <- []byte("occupying") // 填满 slow 的队列

	h.Publish("general", dto.EventReceiveMessage, dto.ChatMessagePayload{Content: "x"})

	// 慢客户端被丢弃,不影响其他接收者
	require.Len(t, drain(fast), 1)
	msgs := drain(slow)
	require.Len(t, msgs, 1)
	assert.Equal(t, []byte("occupying"), msgs[0])
}

func TestHub_SendMessageSuccessPublishesToRoom(t *testing.T) {
	relay := &stubChatRelay{payload: &dto.ChatMessagePayload{
		MessageID: 10, SenderID: 42, Content: "hello", RoomName: "general",
	}}
	h := newTestHub(relay)
	sender := newTestClient("s1")
	peer := newTestClient("s2")
	h.registry.Register(sender)
	h.registry.Register(peer)
	h.registry.Join("s1", "general")
	h.registry.Join("s2", "general")

	h.handleSendMessage(sender, dto.SendMessageRequest{SenderID: 42, Content: "hello", RoomName: "general"})

	assert.Equal(t, 1, relay.calls)
	for _, c := range []*Client{sender, peer} {
		msgs := drain(c)
		require.Len(t, msgs, 1, "both room members receive the message")
		env := decodeEnvelope(t, msgs[0])
		assert.Equal(t, dto.EventReceiveMessage, env.Type)
	}
}

func TestHub_SendMessageValidationErrorOnlyReachesSender(t *testing.T) {
	relay := &stubChatRelay{err: service.ErrInvalidMessage}
	h := newTestHub(relay)
	sender := newTestClient("s1")
	peer := newTestClient("s2")
	h.registry.Register(sender)
	h.registry.Register(peer)
	h.registry.Join("s1", "general")
	h.registry.Join("s2", "general")

	h.handleSendMessage(sender, dto.SendMessageRequest{SenderID: 0, Content: "", RoomName: "general"})

	msgs := drain(sender)
	require.Len(t, msgs, 1)
	env := decodeEnvelope(t, msgs[0])
	assert.Equal(t, dto.EventError, env.Type)
	assert.Empty(t, drain(peer), "room members must not see the failure")
}

func TestHub_SendMessagePersistenceFailureSendsErrorOnly(t *testing.T) {
	relay := &stubChatRelay{err: errors.New("db down")}
	h := newTestHub(relay)
	sender := newTestClient("s1")
	peer := newTestClient("s2")
	h.registry.Register(sender)
	h.registry.Register(peer)
	h.registry.Join("s1", "general")
	h.registry.Join("s2", "general")

	h.handleSendMessage(sender, dto.SendMessageRequest{SenderID: 42, Content: "hello", RoomName: "general"})

	msgs := drain(sender)
	require.Len(t, msgs, 1)
	env := decodeEnvelope(t, msgs[0])
	assert.Equal(t, dto.EventError, env.Type)
	assert.Empty(t, drain(peer))
}

func TestHub_DispatchJoinSendsStatusAck(t *testing.T) {
	h := newTestHub(nil)
	c := newTestClient("s1")
	h.registry.Register(c)

	raw, err := json.Marshal(dto.InboundEnvelope{
		Type: dto.InboundJoinChatRoom,
		Data: json.RawMessage(`{"room_name":"general"}`),
	})
	require.NoError(t, err)
	h.dispatchInbound(c, raw)

	msgs := drain(c)
	require.Len(t, msgs, 1)
	env := decodeEnvelope(t, msgs[0])
	assert.Equal(t, dto.EventStatus, env.Type)
	require.Len(t, h.registry.MembersOf("general"), 1)
}

func TestHub_DispatchMalformedMessageSendsError(t *testing.T) {
	h := newTestHub(nil)
	c := newTestClient("s1")
	h.registry.Register(c)

	h.dispatchInbound(c, []byte("not json"))

	msgs := drain(c)
	require.Len(t, msgs, 1)
	env := decodeEnvelope(t, msgs[0])
	assert.Equal(t, dto.EventError, env.Type)
}

func TestHub_QueueAfterStopIsRejectedWithoutPanic(t *testing.T) {
	h := newTestHub(nil)
	c := newTestClient("s1")

	runDone := make(chan struct{})
	go func() {
		h.Run()
		close(runDone)
	}()

	h.Stop()
	<-runDone

	// HTTP 服务关停不会断开已劫持的 websocket 连接,
	// 读协程在 Stop 之后仍可能继续入队
	assert.False(t, h.queueInbound(c, []byte(`{"type":"join_chat_room","data":{"room_name":"general"}}`)))
	assert.False(t, h.queueUnregister(c))
	assert.False(t, h.QueueRegister(c))

	// 重复 Stop 同样安全
	h.Stop()
}

func TestHub_DispatchJoinUserRoomBindsUserAndMarksOnline(t *testing.T) {
	presence := new(mocks.PresenceRepository)
	presence.On("MarkOnline", mock.Anything, uint(42)).Return(nil).Once()
	h := NewHub(NewRegistry(), &stubChatRelay{payload: &dto.ChatMessagePayload{}}, presence)
	c := newTestClient("s1")
	h.registry.Register(c)

	raw, err := json.Marshal(dto.InboundEnvelope{
		Type: dto.InboundJoinUserRoom,
		Data: json.RawMessage(`{"user_id":42}`),
	})
	require.NoError(t, err)
	h.dispatchInbound(c, raw)

	assert.Equal(t, uint(42), c.userID)
	require.Len(t, h.registry.MembersOf(dto.UserRoom(42)), 1)
	presence.AssertExpectations(t)
}
