// Package cache 是 Redis 读穿缓存，键空间见 keys.go。
// rdb 为 nil 时整体退化为直读数据库，便于测试与最小部署。
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"lms_admin_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// GetJSON 读取缓存并反序列化到 dest，未命中返回 false
func (s *Store) GetJSON(ctx context.Context, key Key, dest interface{}) (bool, error) {
	if s == nil || s.rdb == nil {
		return false, nil
	}
	raw, err := s.rdb.Get(ctx, string(key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// 脏数据当作未命中，顺手清掉
		s.rdb.Del(ctx, string(key))
		return false, nil
	}
	return true, nil
}

// SetJSON 序列化并写入缓存
func (s *Store) SetJSON(ctx context.Context, key Key, value interface{}) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, string(key), raw, s.ttl).Err()
}

// Invalidate 精确失效若干键
func (s *Store) Invalidate(ctx context.Context, keys ...Key) error {
	if s == nil || s.rdb == nil || len(keys) == 0 {
		return nil
	}
	raw := make([]string, len(keys))
	for i, k := range keys {
		raw[i] = string(k)
		monitoring.CacheInvalidations.WithLabelValues(namespaceOf(k)).Inc()
	}
	return s.rdb.Del(ctx, raw...).Err()
}

// namespaceOf 取键的第一段作为指标标签，如 lms:courses:{id}:sections -> courses
func namespaceOf(k Key) string {
	rest := strings.TrimPrefix(string(k), keyPrefix)
	if i := strings.IndexByte(rest, ':'); i > 0 {
		return rest[:i]
	}
	return rest
}

// InvalidatePrefix 按前缀失效，用于过滤条件散列过的列表键
func (s *Store) InvalidatePrefix(ctx context.Context, prefix Key) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	iter := s.rdb.Scan(ctx, 0, string(prefix)+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
		monitoring.CacheInvalidations.WithLabelValues(namespaceOf(prefix)).Inc()
	}
	return iter.Err()
}
