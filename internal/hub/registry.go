package hub

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Registry 是进程内唯一的连接注册表：记录所有在线连接以及每个连接加入的房间。
// 它是房间成员关系的单一串行化点；所有方法都持锁执行，
// 对并发的 Join/Leave/Unregister 保持原子性。
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client            // sessionID -> 连接
	rooms   map[string]map[string]*Client // 房间名 -> sessionID -> 连接
	joined  map[string]map[string]struct{} // sessionID -> 已加入的房间名集合
}

// NewRegistry 创建一个空的连接注册表。
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		joined:  make(map[string]map[string]struct{}),
	}
}

// Register 登记一个新连接（空的房间集合）。重复登记是幂等 no-op。
func (r *Registry) Register(c *Client) {
	if c == nil {
		logrus.Error("registry: attempted to register a nil client")
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c.sessionID]; ok {
		return
	}
	r.clients[c.sessionID] = c
	r.joined[c.sessionID] = make(map[string]struct{})
}

// Join 将连接加入房间。连接未登记（可能已断开）时静默忽略。
func (r *Registry) Join(sessionID, room string) {
	if room == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.clients[sessionID]
	if !ok {
		return
	}
	if _, ok := r.rooms[room]; !ok {
		r.rooms[room] = make(map[string]*Client)
	}
	r.rooms[room][sessionID] = client
	r.joined[sessionID][room] = struct{}{}
}

// Leave 将连接移出房间。不是成员时为 no-op。
// 空房间随之消失——房间没有独立于成员集合的存在。
func (r *Registry) Leave(sessionID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(sessionID, room)
}

func (r *Registry) leaveLocked(sessionID, room string) {
	members, ok := r.rooms[room]
	if !ok {
		return
	}
	delete(members, sessionID)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
	if set, ok := r.joined[sessionID]; ok {
		delete(set, room)
	}
}

// Unregister 注销连接：从其加入的每个房间移除并丢弃其状态。
// 对从未登记过的连接调用也是安全的。返回被移除的连接（可能为 nil）。
func (r *Registry) Unregister(sessionID string) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.clients[sessionID]
	if !ok {
		return nil
	}
	for room := range r.joined[sessionID] {
		r.leaveLocked(sessionID, room)
	}
	delete(r.joined, sessionID)
	delete(r.clients, sessionID)
	return client
}

// MembersOf 返回此刻加入房间的连接快照；快照之后加入的连接不在其中。
func (r *Registry) MembersOf(room string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := r.rooms[room]
	snapshot := make([]*Client, 0, len(members))
	for _, c := range members {
		snapshot = append(snapshot, c)
	}
	return snapshot
}

// Clients 返回此刻所有在线连接的快照（广播目标）。
func (r *Registry) Clients() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		snapshot = append(snapshot, c)
	}
	return snapshot
}

// RoomsOf 返回连接当前加入的房间名快照。
func (r *Registry) RoomsOf(sessionID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.joined[sessionID]
	rooms := make([]string, 0, len(set))
	for room := range set {
		rooms = append(rooms, room)
	}
	return rooms
}
