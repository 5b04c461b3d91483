package middleware

import (
	"MedWarehouse/internal/api/dto"
	"MedWarehouse/internal/pkg/cache"
	"MedWarehouse/internal/pkg/consts"
	"fmt"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// 限流豁免路径
var rateLimitExempt = map[string]bool{
	"/":         true,
	"/api/ping": true,
	"/health":   true,
}

type rateLimiter struct {
	cache  *cache.Cache
	limit  int64
	window time.Duration
	now    func() time.Time
}

// RateLimitMiddleware 固定窗口限流，按 客户端IP+路径+窗口序号 计数。
// 计数后端不可用时放行。
func RateLimitMiddleware(c *cache.Cache, limit int, window time.Duration) gin.HandlerFunc {
	rl := &rateLimiter{
		cache:  c,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
	return rl.handle
}

func (rl *rateLimiter) handle(c *gin.Context) {
	if rateLimitExempt[c.Request.URL.Path] {
		c.Next()
		return
	}

	windowSec := int64(rl.window / time.Second)
	windowIdx := rl.now().Unix() / windowSec
	key := fmt.Sprintf("%s%s:%s:%d", consts.RateLimitKey, c.ClientIP(), c.Request.URL.Path, windowIdx)

	// 窗口计数保留两个窗口长度，跨窗查询不会命中过期键
	count, err := rl.cache.Incr(c.Request.Context(), key, 2*rl.window)
	if err != nil {
		log.WarnContext(c.Request.Context(), "rate limit backend unavailable, failing open", "err", err)
		c.Next()
		return
	}

	remaining := rl.limit - count
	if remaining < 0 {
		remaining = 0
	}
	reset := (windowIdx + 1) * windowSec
	c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
	c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
	c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", reset))

	if count > rl.limit {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Response{
			Code:    http.StatusTooManyRequests,
			Message: "请求过于频繁，请稍后重试",
		})
		return
	}
	c.Next()
}
