package dto

type DashboardOverviewDTO struct {
	TotalChannels   int64 `json:"total_channels"`
	TotalMessages   int64 `json:"total_messages"`
	TotalDetections int64 `json:"total_detections"`
}

type ChannelEngagementDTO struct {
	Rank           int     `json:"rank"`
	ChannelName    string  `json:"channel_name"`
	ChannelType    string  `json:"channel_type"`
	TotalPosts     int64   `json:"total_posts"`
	TotalViews     int64   `json:"total_views"`
	AvgViews       float64 `json:"avg_views"`
	EngagementRate float64 `json:"engagement_rate"`
}

type DailyTrendDTO struct {
	Day           string  `json:"day"`
	Detections    int64   `json:"detections"`
	AvgConfidence float64 `json:"avg_confidence"`
}

type DashboardDTO struct {
	Overview         *DashboardOverviewDTO   `json:"overview"`
	TopChannels      []*ChannelEngagementDTO `json:"top_channels"`
	TrendingProducts []*ProductStatDTO       `json:"trending_products"`
	DetectionTrend   []*DailyTrendDTO        `json:"detection_trend"`
	Recommendations  []string                `json:"recommendations"`
	GeneratedAt      string                  `json:"generated_at"`
}
