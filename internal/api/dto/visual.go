package dto

// VisualContentReq 视觉内容统计参数
type VisualContentReq struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Channel   string `form:"channel"`
}

type ChannelVisualDTO struct {
	ChannelName     string           `json:"channel_name"`
	TotalPosts      int64            `json:"total_posts"`
	ImagePosts      int64            `json:"image_posts"`
	ImagePercentage float64          `json:"image_percentage"`
	AvgConfidence   float64          `json:"avg_confidence"`
	Categories      map[string]int64 `json:"categories"`
	TopObjects      []*ObjectStatDTO `json:"top_objects"`
}

type CategoryStatDTO struct {
	Category      string  `json:"category"`
	Count         int64   `json:"count"`
	AvgConfidence float64 `json:"avg_confidence"`
}

type ObjectStatDTO struct {
	ClassName string `json:"class_name"`
	Count     int64  `json:"count"`
}

type VisualOverallDTO struct {
	TotalDetections int64   `json:"total_detections"`
	AvgConfidence   float64 `json:"avg_confidence"`
	TopCategory     string  `json:"top_category"`
}

type VisualContentDTO struct {
	StartDate   string              `json:"start_date,omitempty"`
	EndDate     string              `json:"end_date,omitempty"`
	Channel     string              `json:"channel,omitempty"`
	Channels    []*ChannelVisualDTO `json:"channels"`
	Categories  []*CategoryStatDTO  `json:"categories"`
	TopObjects  []*ObjectStatDTO    `json:"top_objects"`
	Overall     *VisualOverallDTO   `json:"overall"`
	GeneratedAt string              `json:"generated_at"`
}
