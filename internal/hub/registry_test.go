package hub

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(sessionID string) *Client {
	return &Client{
		sessionID: sessionID,
		send:      make(chan []byte, 8),
	}
}

func TestRegistry_RegisterIdempotent(t *testing.T) {
	r := NewRegistry()
	c := newTestClient("s1")

	r.Register(c)
	r.Join(c.sessionID, "general")
	// 重复登记不应清空已加入的房间
	r.Register(c)

	members := r.MembersOf("general")
	require.Len(t, members, 1)
	assert.Equal(t, "s1", members[0].sessionID)
}

func TestRegistry_JoinUnknownSessionIsNoop(t *testing.T) {
	r := NewRegistry()

	r.Join("ghost", "general")

	assert.Empty(t, r.MembersOf("general"))
}

func TestRegistry_JoinIdempotent(t *testing.T) {
	r := NewRegistry()
	c := newTestClient("s1")
	r.Register(c)

	r.Join(c.sessionID, "general")
	r.Join(c.sessionID, "general")

	assert.Len(t, r.MembersOf("general"), 1)
}

func TestRegistry_LeaveRemovesOnlyNamedRoom(t *testing.T) {
	r := NewRegistry()
	c := newTestClient("s1")
	r.Register(c)
	r.Join(c.sessionID, "general")
	r.Join(c.sessionID, "admins")

	r.Leave(c.sessionID, "general")

	assert.Empty(t, r.MembersOf("general"))
	assert.Len(t, r.MembersOf("admins"), 1)
}

func TestRegistry_LeaveNotMemberIsNoop(t *testing.T) {
	r := NewRegistry()
	c := newTestClient("s1")
	r.Register(c)

	r.Leave(c.sessionID, "general")
	r.Leave("ghost", "general")

	assert.Empty(t, r.MembersOf("general"))
}

func TestRegistry_UnregisterRemovesFromAllRooms(t *testing.T) {
	r := NewRegistry()
	c := newTestClient("s1")
	other := newTestClient("s2")
	r.Register(c)
	r.Register(other)
	r.Join(c.sessionID, "general")
	r.Join(c.sessionID, "admins")
	r.Join(other.sessionID, "general")

	removed := r.Unregister(c.sessionID)

	require.NotNil(t, removed)
	assert.Equal(t, "s1", removed.sessionID)
	assert.Empty(t, r.MembersOf("admins"))
	require.Len(t, r.MembersOf("general"), 1)
	assert.Equal(t, "s2", r.MembersOf("general")[0].sessionID)
}

func TestRegistry_UnregisterUnknownReturnsNil(t *testing.T) {
	r := NewRegistry()

	assert.Nil(t, r.Unregister("ghost"))
}

func TestRegistry_MembersOfReturnsSnapshot(t *testing.T) {
	r := NewRegistry()
	c := newTestClient("s1")
	r.Register(c)
	r.Join(c.sessionID, "general")

	snapshot := r.MembersOf("general")
	r.Leave(c.sessionID, "general")

	// 已取得的快照不受后续成员变更影响
	assert.Len(t, snapshot, 1)
	assert.Empty(t, r.MembersOf("general"))
}

func TestRegistry_ClientsReturnsAll(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 5; i++ {
		r.Register(newTestClient(fmt.Sprintf("s%d", i)))
	}

	assert.Len(t, r.Clients(), 5)
}

func TestRegistry_RoomsOf(t *testing.T) {
	r := NewRegistry()
	c := newTestClient("s1")
	r.Register(c)
	r.Join(c.sessionID, "general")
	r.Join(c.sessionID, "user_42")

	rooms := r.RoomsOf(c.sessionID)

	assert.ElementsMatch(t, []string{"general", "user_42"}, rooms)
}
