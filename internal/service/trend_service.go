package service

import (
	"MedWarehouse/internal/api/dto"
	"MedWarehouse/internal/pkg/cache"
	"MedWarehouse/internal/pkg/consts"
	"MedWarehouse/internal/repository"
	"context"
	"sort"
	"strings"
	"time"
)

type TrendService interface {
	DailyTrends(ctx context.Context, days int) (*dto.DailyTrendsDTO, error)
	CompareChannels(ctx context.Context, channels, metric string, days int) (*dto.ChannelCompareDTO, error)
	EngagementTrends(ctx context.Context, granularity string, days int) (*dto.EngagementTrendsDTO, error)
}

type trendServiceImpl struct {
	channelRepo repository.ChannelRepo
	messageRepo repository.MessageRepo
	cache       *cache.Cache
}

func NewTrendService(channelRepo repository.ChannelRepo, messageRepo repository.MessageRepo, c *cache.Cache) TrendService {
	return &trendServiceImpl{
		channelRepo: channelRepo,
		messageRepo: messageRepo,
		cache:       c,
	}
}

// engagementRate 转发按十倍于浏览计权
func engagementRate(views, forwards, posts int64) float64 {
	if posts < 1 {
		posts = 1
	}
	return float64(views+forwards*10) / float64(posts)
}

// movingAvg 长度 7 的滑动均值，窗口不足时取现有值
func movingAvg(values []float64, i int) float64 {
	from := i - 6
	if from < 0 {
		from = 0
	}
	var sum float64
	for _, v := range values[from : i+1] {
		sum += v
	}
	return sum / float64(i+1-from)
}

func (s *trendServiceImpl) DailyTrends(ctx context.Context, days int) (*dto.DailyTrendsDTO, error) {
	key := cache.BuildKeyFields(consts.CacheDailyTrendsKey, map[string]any{"days": days})
	return cache.Remember(ctx, s.cache, key, consts.TrendsTTL, func() (*dto.DailyTrendsDTO, error) {
		return s.computeDailyTrends(ctx, days)
	})
}

func (s *trendServiceImpl) computeDailyTrends(ctx context.Context, days int) (*dto.DailyTrendsDTO, error) {
	end := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)
	buckets, err := s.messageRepo.EngagementBuckets(ctx, start, end, "daily")
	if err != nil {
		return nil, err
	}

	out := &dto.DailyTrendsDTO{
		StartDate:  start.Format(time.DateOnly),
		EndDate:    end.AddDate(0, 0, -1).Format(time.DateOnly),
		Days:       days,
		Summary:    &dto.TrendSummaryDTO{},
		Daily:      make([]*dto.DailyTrendPointDTO, 0, len(buckets)),
		PostsTrend: "decreasing",
		ViewsTrend: "decreasing",
	}
	if len(buckets) == 0 {
		return out, nil
	}

	posts := make([]float64, len(buckets))
	views := make([]float64, len(buckets))
	rates := make([]float64, len(buckets))
	for i, b := range buckets {
		posts[i] = float64(b.PostCount)
		views[i] = float64(b.TotalViews)
		rates[i] = engagementRate(b.TotalViews, b.TotalForwards, b.PostCount)
	}
	for i, b := range buckets {
		out.Daily = append(out.Daily, &dto.DailyTrendPointDTO{
			Date:           b.Period.Format(time.DateOnly),
			Posts:          b.PostCount,
			Views:          b.TotalViews,
			AvgViews:       b.AvgViews,
			Forwards:       b.TotalForwards,
			PostsMA:        movingAvg(posts, i),
			ViewsMA:        movingAvg(views, i),
			EngagementRate: rates[i],
			EngagementMA:   movingAvg(rates, i),
		})
		out.Summary.TotalPosts += b.PostCount
		out.Summary.TotalViews += b.TotalViews
		out.Summary.TotalForwards += b.TotalForwards
	}
	out.Summary.AvgDailyPosts = float64(out.Summary.TotalPosts) / float64(len(buckets))
	out.Summary.AvgDailyViews = float64(out.Summary.TotalViews) / float64(len(buckets))
	last, first := buckets[len(buckets)-1], buckets[0]
	if last.PostCount > first.PostCount {
		out.PostsTrend = "increasing"
	}
	if last.TotalViews > first.TotalViews {
		out.ViewsTrend = "increasing"
	}
	return out, nil
}

// CompareChannels 未知频道直接跳过，最多比较 10 个
func (s *trendServiceImpl) CompareChannels(ctx context.Context, channels, metric string, days int) (*dto.ChannelCompareDTO, error) {
	names := make([]string, 0, 10)
	for _, name := range strings.Split(channels, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		names = append(names, name)
		if len(names) == 10 {
			break
		}
	}
	if len(names) == 0 {
		return nil, ErrParamInvalid
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)
	data := make([]*dto.ChannelCompareItemDTO, 0, len(names))
	for _, name := range names {
		ch, err := s.channelRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if ch == nil {
			continue
		}
		totals, err := s.messageRepo.RangeTotals(ctx, ch.ChannelKey, start, end)
		if err != nil {
			return nil, err
		}
		data = append(data, &dto.ChannelCompareItemDTO{
			Channel:        ch.ChannelName,
			TotalPosts:     totals.TotalPosts,
			TotalViews:     totals.TotalViews,
			TotalForwards:  totals.TotalForwards,
			AvgViews:       totals.AvgViews,
			AvgForwards:    totals.AvgForwards,
			EngagementRate: engagementRate(totals.TotalViews, totals.TotalForwards, totals.TotalPosts),
		})
	}

	sort.SliceStable(data, func(i, j int) bool {
		switch metric {
		case "posts":
			return data[i].TotalPosts > data[j].TotalPosts
		case "views":
			return data[i].TotalViews > data[j].TotalViews
		case "forwards":
			return data[i].TotalForwards > data[j].TotalForwards
		default:
			return data[i].EngagementRate > data[j].EngagementRate
		}
	})

	out := &dto.ChannelCompareDTO{
		Metric:           metric,
		PeriodDays:       days,
		ChannelsCompared: len(data),
		Data:             data,
	}
	if len(data) > 0 {
		out.TopPerformer = data[0]
	}
	return out, nil
}

func (s *trendServiceImpl) EngagementTrends(ctx context.Context, granularity string, days int) (*dto.EngagementTrendsDTO, error) {
	key := cache.BuildKeyFields(consts.CacheEngagementKey, map[string]any{
		"granularity": granularity,
		"days":        days,
	})
	return cache.Remember(ctx, s.cache, key, consts.TrendsTTL, func() (*dto.EngagementTrendsDTO, error) {
		return s.computeEngagementTrends(ctx, granularity, days)
	})
}

func (s *trendServiceImpl) computeEngagementTrends(ctx context.Context, granularity string, days int) (*dto.EngagementTrendsDTO, error) {
	end := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)
	buckets, err := s.messageRepo.EngagementBuckets(ctx, start, end, granularity)
	if err != nil {
		return nil, err
	}

	out := &dto.EngagementTrendsDTO{
		Granularity: granularity,
		StartDate:   start.Format(time.DateOnly),
		EndDate:     end.AddDate(0, 0, -1).Format(time.DateOnly),
		Trends:      make([]*dto.EngagementPointDTO, 0, len(buckets)),
	}
	for _, b := range buckets {
		out.Trends = append(out.Trends, &dto.EngagementPointDTO{
			Period:         b.Period.Format(time.DateOnly),
			Posts:          b.PostCount,
			Views:          b.TotalViews,
			Forwards:       b.TotalForwards,
			EngagementRate: engagementRate(b.TotalViews, b.TotalForwards, b.PostCount),
		})
	}
	return out, nil
}
