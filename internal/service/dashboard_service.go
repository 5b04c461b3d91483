package service

import (
	"MedWarehouse/internal/api/dto"
	"MedWarehouse/internal/pkg/cache"
	"MedWarehouse/internal/pkg/consts"
	"MedWarehouse/internal/repository"
	"context"
	"fmt"
	"time"
)

type DashboardService interface {
	Dashboard(ctx context.Context) (*dto.DashboardDTO, error)
}

type dashboardServiceImpl struct {
	channelRepo    repository.ChannelRepo
	messageRepo    repository.MessageRepo
	detectionRepo  repository.DetectionRepo
	productService ProductService
	cache          *cache.Cache
}

func NewDashboardService(
	channelRepo repository.ChannelRepo,
	messageRepo repository.MessageRepo,
	detectionRepo repository.DetectionRepo,
	productService ProductService,
	c *cache.Cache,
) DashboardService {
	return &dashboardServiceImpl{
		channelRepo:    channelRepo,
		messageRepo:    messageRepo,
		detectionRepo:  detectionRepo,
		productService: productService,
		cache:          c,
	}
}

func (s *dashboardServiceImpl) Dashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	key := cache.BuildKey(consts.CacheDashboardKey)
	return cache.Remember(ctx, s.cache, key, consts.DashboardTTL, func() (*dto.DashboardDTO, error) {
		return s.computeDashboard(ctx)
	})
}

func (s *dashboardServiceImpl) computeDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	totalChannels, err := s.channelRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalMessages, err := s.messageRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalDetections, err := s.detectionRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	top, err := s.channelRepo.TopByEngagement(ctx, 10)
	if err != nil {
		return nil, err
	}
	topChannels := make([]*dto.ChannelEngagementDTO, 0, len(top))
	for i, ch := range top {
		topChannels = append(topChannels, &dto.ChannelEngagementDTO{
			Rank:           i + 1,
			ChannelName:    ch.ChannelName,
			ChannelType:    ch.ChannelType,
			TotalPosts:     ch.TotalPosts,
			TotalViews:     ch.TotalViews,
			AvgViews:       ch.AvgViews,
			EngagementRate: ch.EngagementRate,
		})
	}

	trending, err := s.productService.TopProducts(ctx, 5, "week", "", 3)
	if err != nil {
		return nil, err
	}

	trend, err := s.detectionRepo.DailyTrend(ctx, 7)
	if err != nil {
		return nil, err
	}
	detectionTrend := make([]*dto.DailyTrendDTO, 0, len(trend))
	for _, d := range trend {
		detectionTrend = append(detectionTrend, &dto.DailyTrendDTO{
			Day:           d.Day.Format(time.DateOnly),
			Detections:    d.Detections,
			AvgConfidence: d.AvgConfidence,
		})
	}

	recommendations, err := s.buildRecommendations(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardDTO{
		Overview: &dto.DashboardOverviewDTO{
			TotalChannels:   totalChannels,
			TotalMessages:   totalMessages,
			TotalDetections: totalDetections,
		},
		TopChannels:      topChannels,
		TrendingProducts: trending.Products,
		DetectionTrend:   detectionTrend,
		Recommendations:  recommendations,
		GeneratedAt:      time.Now().Format(time.RFC3339),
	}, nil
}

// buildRecommendations 低互动或低图片占比的频道提示，最多 5 条
func (s *dashboardServiceImpl) buildRecommendations(ctx context.Context) ([]string, error) {
	ratios, err := s.messageRepo.ChannelImageRatios(ctx)
	if err != nil {
		return nil, err
	}
	recommendations := make([]string, 0, 5)
	for _, r := range ratios {
		if len(recommendations) >= 5 {
			break
		}
		if r.AvgViews < consts.LowAvgViewsThreshold {
			recommendations = append(recommendations,
				fmt.Sprintf("Channel %s averages %.0f views per post; consider posting at peak hours", r.ChannelName, r.AvgViews))
			continue
		}
		if r.ImageRatio < consts.LowImageRatioThreshold {
			recommendations = append(recommendations,
				fmt.Sprintf("Channel %s has only %.0f%% image posts; visual content drives engagement", r.ChannelName, r.ImageRatio*100))
		}
	}
	return recommendations, nil
}
