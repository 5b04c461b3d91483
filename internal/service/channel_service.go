package service

import (
	"MedWarehouse/internal/api/dto"
	"MedWarehouse/internal/pkg/cache"
	"MedWarehouse/internal/pkg/consts"
	"MedWarehouse/internal/repository"
	"context"
	"time"

	"github.com/jinzhu/copier"
)

type ChannelService interface {
	Activity(ctx context.Context, name string, start, end time.Time, granularity string) (*dto.ChannelActivityDTO, error)
	List(ctx context.Context, name, channelType string, minPosts int) (*dto.ChannelListDTO, error)
}

type channelServiceImpl struct {
	channelRepo repository.ChannelRepo
	messageRepo repository.MessageRepo
	cache       *cache.Cache
}

func NewChannelService(channelRepo repository.ChannelRepo, messageRepo repository.MessageRepo, c *cache.Cache) ChannelService {
	return &channelServiceImpl{
		channelRepo: channelRepo,
		messageRepo: messageRepo,
		cache:       c,
	}
}

// Activity 频道活跃度，未知频道返回 ErrChannelNotFound
func (s *channelServiceImpl) Activity(ctx context.Context, name string, start, end time.Time, granularity string) (*dto.ChannelActivityDTO, error) {
	key := cache.BuildKeyFields(consts.CacheChannelActivityKey, map[string]any{
		"name":        name,
		"start":       start.Format(time.DateOnly),
		"end":         end.Format(time.DateOnly),
		"granularity": granularity,
	})
	return cache.Remember(ctx, s.cache, key, consts.ChannelActivityTTL, func() (*dto.ChannelActivityDTO, error) {
		return s.computeActivity(ctx, name, start, end, granularity)
	})
}

func (s *channelServiceImpl) computeActivity(ctx context.Context, name string, start, end time.Time, granularity string) (*dto.ChannelActivityDTO, error) {
	ch, err := s.channelRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, ErrChannelNotFound
	}

	buckets, err := s.messageRepo.ActivityBuckets(ctx, ch.ChannelKey, start, end, granularity)
	if err != nil {
		return nil, err
	}
	peaks, err := s.messageRepo.PeakHours(ctx, ch.ChannelKey, start, end, 3)
	if err != nil {
		return nil, err
	}
	totals, err := s.messageRepo.RangeTotals(ctx, ch.ChannelKey, start, end)
	if err != nil {
		return nil, err
	}

	out := &dto.ChannelActivityDTO{
		ChannelName: ch.ChannelName,
		ChannelType: ch.ChannelType,
		Granularity: granularity,
		StartDate:   start.Format(time.DateOnly),
		EndDate:     end.Format(time.DateOnly),
		Totals:      &dto.ActivityTotalsDTO{},
		Buckets:     make([]*dto.ActivityBucketDTO, 0, len(buckets)),
		PeakHours:   make([]*dto.PeakHourDTO, 0, len(peaks)),
	}
	if err = copier.Copy(out.Totals, totals); err != nil {
		return nil, err
	}
	for _, b := range buckets {
		out.Buckets = append(out.Buckets, &dto.ActivityBucketDTO{
			Period:      b.Period.Format(time.DateOnly),
			PostCount:   b.PostCount,
			AvgViews:    b.AvgViews,
			TotalViews:  b.TotalViews,
			AvgForwards: b.AvgForwards,
		})
	}
	for _, p := range peaks {
		out.PeakHours = append(out.PeakHours, &dto.PeakHourDTO{Hour: p.Hour, PostCount: p.PostCount})
	}
	return out, nil
}

// List 频道目录，不走缓存
func (s *channelServiceImpl) List(ctx context.Context, name, channelType string, minPosts int) (*dto.ChannelListDTO, error) {
	channels, err := s.channelRepo.List(ctx, name, channelType, minPosts)
	if err != nil {
		return nil, err
	}
	out := &dto.ChannelListDTO{
		Total:    len(channels),
		Channels: make([]*dto.ChannelDTO, 0, len(channels)),
	}
	for _, ch := range channels {
		d := &dto.ChannelDTO{
			ChannelName: ch.ChannelName,
			ChannelType: ch.ChannelType,
			TotalPosts:  int64(ch.TotalPosts),
			TotalViews:  ch.TotalViews,
			AvgViews:    ch.AvgViews,
		}
		if ch.FirstPostDate != nil {
			d.FirstPostDate = ch.FirstPostDate.Format(time.DateOnly)
		}
		if ch.LastPostDate != nil {
			d.LastPostDate = ch.LastPostDate.Format(time.DateOnly)
		}
		out.Channels = append(out.Channels, d)
	}
	return out, nil
}
