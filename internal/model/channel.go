package model

import "time"

// DimChannel 频道维度
type DimChannel struct {
	ChannelKey    uint64    `gorm:"primaryKey;column:channel_key" json:"channel_key"`
	ChannelName   string    `gorm:"size:255;not null;uniqueIndex" json:"channel_name"`
	ChannelType   string    `gorm:"size:100;not null" json:"channel_type"`
	FirstPostDate *time.Time `json:"first_post_date"`
	LastPostDate  *time.Time `json:"last_post_date"`
	TotalPosts    int       `gorm:"not null;default:0" json:"total_posts"`
	AvgViews      float64   `gorm:"not null;default:0" json:"avg_views"`
	TotalViews    int64     `gorm:"not null;default:0" json:"total_views"`
	TotalForwards int       `gorm:"not null;default:0" json:"total_forwards"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (DimChannel) TableName() string {
	return "marts.dim_channels"
}
