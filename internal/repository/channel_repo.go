package repository

import (
	"MedWarehouse/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ChannelEngagement 频道互动排名行
type ChannelEngagement struct {
	ChannelName    string  `json:"channel_name"`
	ChannelType    string  `json:"channel_type"`
	TotalPosts     int64   `json:"total_posts"`
	TotalViews     int64   `json:"total_views"`
	AvgViews       float64 `json:"avg_views"`
	EngagementRate float64 `json:"engagement_rate"`
}

type ChannelRepo interface {
	GetByName(ctx context.Context, name string) (*model.DimChannel, error)
	List(ctx context.Context, name, channelType string, minPosts int) ([]*model.DimChannel, error)
	TopByEngagement(ctx context.Context, limit int) ([]*ChannelEngagement, error)
	Count(ctx context.Context) (int64, error)
}

type ChannelRepoImpl struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepo {
	return &ChannelRepoImpl{
		db: db,
	}
}

// GetByName 未命中返回 (nil, nil)，由上层决定 404
func (s ChannelRepoImpl) GetByName(ctx context.Context, name string) (*model.DimChannel, error) {
	var ch model.DimChannel
	err := s.db.WithContext(ctx).Where("channel_name = ?", name).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (s ChannelRepoImpl) List(ctx context.Context, name, channelType string, minPosts int) ([]*model.DimChannel, error) {
	q := s.db.WithContext(ctx).Model(&model.DimChannel{})
	if name != "" {
		q = q.Where("channel_name ILIKE ?", "%"+name+"%")
	}
	if channelType != "" {
		q = q.Where("channel_type = ?", channelType)
	}
	if minPosts > 0 {
		q = q.Where("total_posts >= ?", minPosts)
	}
	var channels []*model.DimChannel
	err := q.Order("total_posts DESC").Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

func (s ChannelRepoImpl) TopByEngagement(ctx context.Context, limit int) ([]*ChannelEngagement, error) {
	var rows []*ChannelEngagement
	err := s.db.WithContext(ctx).Raw(`
		SELECT channel_name,
		       channel_type,
		       total_posts,
		       total_views,
		       avg_views,
		       CASE WHEN total_posts > 0
		            THEN total_views::float / total_posts
		            ELSE 0 END AS engagement_rate
		FROM marts.dim_channels
		WHERE total_posts > 0
		ORDER BY engagement_rate DESC, total_views DESC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s ChannelRepoImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.DimChannel{}).Count(&n).Error
	return n, err
}
