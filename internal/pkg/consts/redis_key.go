package consts

const (
	// 查询结果缓存前缀
	CacheTopProductsKey     = "query:top:products"
	CacheChannelActivityKey = "query:channel:activity"
	CacheVisualContentKey   = "query:visual:content"
	CacheDashboardKey       = "query:dashboard"
	CacheDailyTrendsKey     = "query:trends:daily"
	CacheEngagementKey      = "query:trends:engagement"

	// 限流计数器前缀
	RateLimitKey = "rate:limit:"

	// 流水线互斥锁
	PipelineRunLock = "pipeline:run:lock"
)
