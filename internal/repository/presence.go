package repository

import "context"

// PresenceRepository 定义了在线状态的记录操作，通常由 Redis 实现。
// 在线标记是尽力而为的辅助信息，不参与事件投递决策——
// 投递目标始终以进程内的连接注册表为准。
type PresenceRepository interface {
	// MarkOnline 将用户标记为在线。
	MarkOnline(ctx context.Context, userID uint) error

	// MarkOffline 将用户标记为离线。
	MarkOffline(ctx context.Context, userID uint) error

	// OnlineUsers 返回当前在线的用户 ID 列表。
	OnlineUsers(ctx context.Context) ([]uint, error)
}
