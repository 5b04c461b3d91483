package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	log "log/slog"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Cache 查询结果缓存门面。后端不可用时所有操作静默降级：
// 读取一律 miss，写入一律丢弃，调用方不感知缓存故障。
type Cache struct {
	store      Store
	defaultTTL time.Duration
}

func New(store Store, defaultTTL time.Duration) *Cache {
	return &Cache{store: store, defaultTTL: defaultTTL}
}

// Available 后端是否已配置
func (c *Cache) Available() bool {
	return c != nil && c.store != nil
}

// BuildKey 由前缀和位置参数生成确定性缓存键
func BuildKey(prefix string, args ...any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, prefix)
	for _, arg := range args {
		parts = append(parts, fmt.Sprint(arg))
	}
	return digest(parts)
}

// BuildKeyFields 由前缀和命名参数生成缓存键，字段按名称排序，
// 调用点的字段顺序不影响结果
func BuildKeyFields(prefix string, fields map[string]any) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(fields)+1)
	parts = append(parts, prefix)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s:%v", name, fields[name]))
	}
	return digest(parts)
}

func digest(parts []string) string {
	sum := md5.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}

// Get 读取并反序列化缓存值，miss 或后端故障返回 false
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if !c.Available() {
		return false
	}
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "cache get failed", "key", key, "err", err)
		return false
	}
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.WarnContext(ctx, "cache value decode failed", "key", key, "err", err)
		return false
	}
	return true
}

// Set 序列化并写入缓存，ttl<=0 时使用默认 TTL，返回是否写入成功
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if !c.Available() {
		return false
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.WarnContext(ctx, "cache value encode failed", "key", key, "err", err)
		return false
	}
	if err := c.store.Set(ctx, key, string(raw), ttl); err != nil {
		log.WarnContext(ctx, "cache set failed", "key", key, "err", err)
		return false
	}
	return true
}

// Delete 删除单个键，尽力而为
func (c *Cache) Delete(ctx context.Context, key string) {
	if !c.Available() {
		return
	}
	if err := c.store.Del(ctx, key); err != nil {
		log.WarnContext(ctx, "cache delete failed", "key", key, "err", err)
	}
}

// ClearPattern 按模式清除键，返回删除数量，失败返回 0
func (c *Cache) ClearPattern(ctx context.Context, pattern string) int64 {
	if !c.Available() {
		return 0
	}
	deleted, err := c.store.DelPattern(ctx, pattern)
	if err != nil {
		log.WarnContext(ctx, "cache clear failed", "pattern", pattern, "err", err)
		return 0
	}
	return deleted
}

// Incr 原子自增计数器并保证过期时间。与查询缓存不同，限流器
// 需要区分后端故障，错误原样返回由调用方决定降级策略。
func (c *Cache) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if !c.Available() {
		return 0, fmt.Errorf("cache store is not configured")
	}
	return c.store.Incr(ctx, key, ttl)
}

// Remember 函数结果记忆化：命中时直接返回缓存值且不执行 fn，
// miss 时执行 fn 并尽力写回
func Remember[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var cached T
	if c.Get(ctx, key, &cached) {
		return cached, nil
	}

	result, err := fn()
	if err != nil {
		return result, err
	}

	c.Set(ctx, key, result, ttl)
	return result, nil
}
