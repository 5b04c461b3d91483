package dto

// DailyTrendsReq 每日趋势查询参数
type DailyTrendsReq struct {
	Days int `form:"days,default=30" binding:"omitempty,min=1,max=365"`
}

// ChannelCompareReq 频道对比参数，channels 为逗号分隔的频道名
type ChannelCompareReq struct {
	Channels string `form:"channels" binding:"required"`
	Metric   string `form:"metric,default=engagement" binding:"omitempty,oneof=posts views forwards engagement"`
	Days     int    `form:"days,default=30" binding:"omitempty,min=1,max=365"`
}

// EngagementTrendsReq 互动趋势参数
type EngagementTrendsReq struct {
	Granularity string `form:"granularity,default=daily" binding:"omitempty,oneof=daily weekly monthly"`
	Days        int    `form:"days,default=30" binding:"omitempty,min=1,max=365"`
}

type DailyTrendPointDTO struct {
	Date           string  `json:"date"`
	Posts          int64   `json:"posts"`
	Views          int64   `json:"views"`
	AvgViews       float64 `json:"avg_views"`
	Forwards       int64   `json:"forwards"`
	PostsMA        float64 `json:"posts_ma"`
	ViewsMA        float64 `json:"views_ma"`
	EngagementRate float64 `json:"engagement_rate"`
	EngagementMA   float64 `json:"engagement_ma"`
}

type TrendSummaryDTO struct {
	TotalPosts    int64   `json:"total_posts"`
	TotalViews    int64   `json:"total_views"`
	TotalForwards int64   `json:"total_forwards"`
	AvgDailyPosts float64 `json:"avg_daily_posts"`
	AvgDailyViews float64 `json:"avg_daily_views"`
}

type DailyTrendsDTO struct {
	StartDate  string                `json:"start_date"`
	EndDate    string                `json:"end_date"`
	Days       int                   `json:"days"`
	Summary    *TrendSummaryDTO      `json:"summary"`
	Daily      []*DailyTrendPointDTO `json:"daily_data"`
	PostsTrend string                `json:"posts_trend"`
	ViewsTrend string                `json:"views_trend"`
}

type ChannelCompareItemDTO struct {
	Channel        string  `json:"channel"`
	TotalPosts     int64   `json:"total_posts"`
	TotalViews     int64   `json:"total_views"`
	TotalForwards  int64   `json:"total_forwards"`
	AvgViews       float64 `json:"avg_views"`
	AvgForwards    float64 `json:"avg_forwards"`
	EngagementRate float64 `json:"engagement_rate"`
}

type ChannelCompareDTO struct {
	Metric           string                   `json:"metric"`
	PeriodDays       int                      `json:"period_days"`
	ChannelsCompared int                      `json:"channels_compared"`
	Data             []*ChannelCompareItemDTO `json:"data"`
	TopPerformer     *ChannelCompareItemDTO   `json:"top_performer,omitempty"`
}

type EngagementPointDTO struct {
	Period         string  `json:"period"`
	Posts          int64   `json:"posts"`
	Views          int64   `json:"views"`
	Forwards       int64   `json:"forwards"`
	EngagementRate float64 `json:"engagement_rate"`
}

type EngagementTrendsDTO struct {
	Granularity string                `json:"granularity"`
	StartDate   string                `json:"start_date"`
	EndDate     string                `json:"end_date"`
	Trends      []*EngagementPointDTO `json:"trends"`
}
