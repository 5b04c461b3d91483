package consts

import "time"

const (
	// 缓存 TTL
	TopProductsTTL     = 10 * time.Minute
	ChannelActivityTTL = 5 * time.Minute
	VisualContentTTL   = 10 * time.Minute
	DashboardTTL       = 5 * time.Minute
	TrendsTTL          = 10 * time.Minute
)

const (
	// 推荐规则阈值，固定常量便于测试
	LowAvgViewsThreshold   = 100.0
	LowImageRatioThreshold = 0.3
)

const (
	// 加载原始消息时的文本截断长度
	MaxRawMessageTextLen = 10000
)
