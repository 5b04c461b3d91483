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

type VisualService interface {
	Stats(ctx context.Context, req *dto.VisualContentReq) (*dto.VisualContentDTO, error)
}

type visualServiceImpl struct {
	detectionRepo repository.DetectionRepo
	cache         *cache.Cache
}

func NewVisualService(detectionRepo repository.DetectionRepo, c *cache.Cache) VisualService {
	return &visualServiceImpl{
		detectionRepo: detectionRepo,
		cache:         c,
	}
}

func (s *visualServiceImpl) Stats(ctx context.Context, req *dto.VisualContentReq) (*dto.VisualContentDTO, error) {
	key := cache.BuildKeyFields(consts.CacheVisualContentKey, map[string]any{
		"start":   req.StartDate,
		"end":     req.EndDate,
		"channel": req.Channel,
	})
	return cache.Remember(ctx, s.cache, key, consts.VisualContentTTL, func() (*dto.VisualContentDTO, error) {
		return s.computeStats(ctx, req)
	})
}

func parseDateRange(startDate, endDate string) (start, end *time.Time, err error) {
	if startDate != "" {
		t, perr := time.Parse(time.DateOnly, startDate)
		if perr != nil {
			return nil, nil, ErrParamInvalid
		}
		start = &t
	}
	if endDate != "" {
		t, perr := time.Parse(time.DateOnly, endDate)
		if perr != nil {
			return nil, nil, ErrParamInvalid
		}
		t = t.AddDate(0, 0, 1)
		end = &t
	}
	return start, end, nil
}

func (s *visualServiceImpl) computeStats(ctx context.Context, req *dto.VisualContentReq) (*dto.VisualContentDTO, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	channels, err := s.detectionRepo.ChannelVisualStats(ctx, start, end, req.Channel)
	if err != nil {
		return nil, err
	}
	categories, err := s.detectionRepo.CategoryDistribution(ctx, start, end, req.Channel)
	if err != nil {
		return nil, err
	}
	objects, err := s.detectionRepo.TopObjects(ctx, start, end, req.Channel, 5)
	if err != nil {
		return nil, err
	}
	overall, err := s.detectionRepo.Overall(ctx, start, end, req.Channel)
	if err != nil {
		return nil, err
	}
	channelCategories, err := s.detectionRepo.ChannelCategoryCounts(ctx, start, end, req.Channel)
	if err != nil {
		return nil, err
	}
	channelObjects, err := s.detectionRepo.ChannelTopObjects(ctx, start, end, req.Channel, 5)
	if err != nil {
		return nil, err
	}

	out := &dto.VisualContentDTO{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Channel:     req.Channel,
		Overall:     &dto.VisualOverallDTO{},
		GeneratedAt: time.Now().Format(time.RFC3339),
	}
	if err = copier.Copy(&out.Channels, channels); err != nil {
		return nil, err
	}
	if err = copier.Copy(&out.Categories, categories); err != nil {
		return nil, err
	}
	if err = copier.Copy(&out.TopObjects, objects); err != nil {
		return nil, err
	}
	if err = copier.Copy(out.Overall, overall); err != nil {
		return nil, err
	}

	// 频道级类别分布与高频标签并入对应频道行
	byName := make(map[string]*dto.ChannelVisualDTO, len(out.Channels))
	for _, ch := range out.Channels {
		ch.Categories = map[string]int64{}
		ch.TopObjects = []*dto.ObjectStatDTO{}
		byName[ch.ChannelName] = ch
	}
	for _, row := range channelCategories {
		if ch, ok := byName[row.ChannelName]; ok {
			ch.Categories[row.Category] = row.Count
		}
	}
	for _, row := range channelObjects {
		if ch, ok := byName[row.ChannelName]; ok {
			ch.TopObjects = append(ch.TopObjects, &dto.ObjectStatDTO{ClassName: row.ClassName, Count: row.Count})
		}
	}
	return out, nil
}
