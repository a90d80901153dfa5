// Package redisstate 提供 PresenceRepository 接口的 Redis 实现。
package redisstate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisPresenceRepository 用一个 Redis Set 维护当前在线的用户 ID。
type RedisPresenceRepository struct {
	client    *redis.Client
	keyPrefix string // Redis key 前缀，方便多实例共用同一 Redis
}

// NewRedisPresenceRepository 创建 RedisPresenceRepository 实例
func NewRedisPresenceRepository(client *redis.Client, keyPrefix string) *RedisPresenceRepository {
	if client == nil {
		panic("redis client cannot be nil for RedisPresenceRepository")
	}
	if keyPrefix == "" {
		keyPrefix = "sv:" // 默认前缀 "sv:" (smart village)
	}
	return &RedisPresenceRepository{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (r *RedisPresenceRepository) onlineSetKey() string {
	return r.keyPrefix + "presence:online"
}

// MarkOnline 将用户加入在线集合。
func (r *RedisPresenceRepository) MarkOnline(ctx context.Context, userID uint) error {
	key := r.onlineSetKey()
	if err := r.client.SAdd(ctx, key, userID).Err(); err != nil {
		return fmt.Errorf("redis: mark user %d online (key %s): %w", userID, key, err)
	}
	return nil
}

// MarkOffline 将用户移出在线集合。用户本就不在集合中时为静默 no-op。
func (r *RedisPresenceRepository) MarkOffline(ctx context.Context, userID uint) error {
	key := r.onlineSetKey()
	if err := r.client.SRem(ctx, key, userID).Err(); err != nil {
		return fmt.Errorf("redis: mark user %d offline (key %s): %w", userID, key, err)
	}
	return nil
}

// OnlineUsers 返回当前在线的用户 ID 列表。
func (r *RedisPresenceRepository) OnlineUsers(ctx context.Context) ([]uint, error) {
	key := r.onlineSetKey()
	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: list online users (key %s): %w", key, err)
	}
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, parseErr := strconv.ParseUint(m, 10, 64)
		if parseErr != nil {
			// 脏数据只记日志，不让整个查询失败
			logrus.Warnf("redis: skipping non-numeric presence member '%s' in %s", m, key)
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
