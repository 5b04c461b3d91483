package dto

// ChannelActivityReq 频道活跃度查询参数
type ChannelActivityReq struct {
	StartDate   string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Granularity string `form:"granularity,default=daily" binding:"omitempty,oneof=daily weekly monthly"`
}

// ChannelListReq 频道目录查询参数
type ChannelListReq struct {
	Name        string `form:"name"`
	ChannelType string `form:"channel_type"`
	MinPosts    int    `form:"min_posts" binding:"omitempty,min=0"`
}

type ActivityBucketDTO struct {
	Period      string  `json:"period"`
	PostCount   int64   `json:"post_count"`
	AvgViews    float64 `json:"avg_views"`
	TotalViews  int64   `json:"total_views"`
	AvgForwards float64 `json:"avg_forwards"`
}

type PeakHourDTO struct {
	Hour      int   `json:"hour"`
	PostCount int64 `json:"post_count"`
}

type ActivityTotalsDTO struct {
	TotalPosts    int64   `json:"total_posts"`
	TotalViews    int64   `json:"total_views"`
	AvgViews      float64 `json:"avg_views"`
	TotalForwards int64   `json:"total_forwards"`
	AvgForwards   float64 `json:"avg_forwards"`
}

type ChannelActivityDTO struct {
	ChannelName string               `json:"channel_name"`
	ChannelType string               `json:"channel_type"`
	Granularity string               `json:"granularity"`
	StartDate   string               `json:"start_date"`
	EndDate     string               `json:"end_date"`
	Totals      *ActivityTotalsDTO   `json:"totals"`
	Buckets     []*ActivityBucketDTO `json:"buckets"`
	PeakHours   []*PeakHourDTO       `json:"peak_hours"`
}

type ChannelDTO struct {
	ChannelName   string  `json:"channel_name"`
	ChannelType   string  `json:"channel_type"`
	TotalPosts    int64   `json:"total_posts"`
	TotalViews    int64   `json:"total_views"`
	AvgViews      float64 `json:"avg_views"`
	FirstPostDate string  `json:"first_post_date,omitempty"`
	LastPostDate  string  `json:"last_post_date,omitempty"`
}

type ChannelListDTO struct {
	Total    int           `json:"total"`
	Channels []*ChannelDTO `json:"channels"`
}
