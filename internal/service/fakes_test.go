package service

import (
	"MedWarehouse/internal/model"
	"MedWarehouse/internal/repository"
	"context"
	"time"
)

// 内存假仓库，按接口逐方法注入返回值

type fakeChannelRepo struct {
	channels map[string]*model.DimChannel
	list     []*model.DimChannel
	top      []*repository.ChannelEngagement
	count    int64
	err      error
}

func (f *fakeChannelRepo) GetByName(_ context.Context, name string) (*model.DimChannel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.channels[name], nil
}

func (f *fakeChannelRepo) List(_ context.Context, _, _ string, _ int) ([]*model.DimChannel, error) {
	return f.list, f.err
}

func (f *fakeChannelRepo) TopByEngagement(_ context.Context, _ int) ([]*repository.ChannelEngagement, error) {
	return f.top, f.err
}

func (f *fakeChannelRepo) Count(_ context.Context) (int64, error) {
	return f.count, f.err
}

type fakeMessageRepo struct {
	buckets     []*repository.ActivityBucket
	peaks       []*repository.HourBucket
	totals      *repository.ActivityTotals
	totalsByKey map[uint64]*repository.ActivityTotals
	engagement  []*repository.EngagementBucket
	searchRows  []*repository.SearchRow
	searchTotal int64
	texts       []*repository.MessageTextRow
	images      []*model.FactMessage
	count       int64
	ratios      []*repository.ChannelImageRatio
	err         error

	lastSearch *repository.SearchParams
}

func (f *fakeMessageRepo) ActivityBuckets(_ context.Context, _ uint64, _, _ time.Time, _ string) ([]*repository.ActivityBucket, error) {
	return f.buckets, f.err
}

func (f *fakeMessageRepo) PeakHours(_ context.Context, _ uint64, _, _ time.Time, _ int) ([]*repository.HourBucket, error) {
	return f.peaks, f.err
}

func (f *fakeMessageRepo) RangeTotals(_ context.Context, key uint64, _, _ time.Time) (*repository.ActivityTotals, error) {
	if t, ok := f.totalsByKey[key]; ok {
		return t, f.err
	}
	if f.totals == nil {
		return &repository.ActivityTotals{}, f.err
	}
	return f.totals, f.err
}

func (f *fakeMessageRepo) EngagementBuckets(_ context.Context, _, _ time.Time, _ string) ([]*repository.EngagementBucket, error) {
	return f.engagement, f.err
}

func (f *fakeMessageRepo) Search(_ context.Context, params *repository.SearchParams) ([]*repository.SearchRow, int64, error) {
	f.lastSearch = params
	return f.searchRows, f.searchTotal, f.err
}

func (f *fakeMessageRepo) TextsSince(_ context.Context, _ *time.Time, channel string) ([]*repository.MessageTextRow, error) {
	if channel == "" {
		return f.texts, f.err
	}
	var rows []*repository.MessageTextRow
	for _, t := range f.texts {
		if t.ChannelName == channel {
			rows = append(rows, t)
		}
	}
	return rows, f.err
}

func (f *fakeMessageRepo) ImageMessages(_ context.Context) ([]*model.FactMessage, error) {
	return f.images, f.err
}

func (f *fakeMessageRepo) Count(_ context.Context) (int64, error) {
	return f.count, f.err
}

func (f *fakeMessageRepo) ChannelImageRatios(_ context.Context) ([]*repository.ChannelImageRatio, error) {
	return f.ratios, f.err
}

type fakeDetectionRepo struct {
	replaced       []*model.FactImageDetection
	categories     []*repository.CategoryCount
	objects        []*repository.ObjectCount
	visual         []*repository.ChannelVisualRow
	chanCategories []*repository.ChannelCategoryCount
	chanObjects    []*repository.ChannelObjectCount
	trend          []*repository.DailyDetectionRow
	overall        *repository.DetectionOverall
	count          int64
	err            error
}

func (f *fakeDetectionRepo) ReplaceAll(_ context.Context, rows []*model.FactImageDetection) error {
	f.replaced = rows
	return f.err
}

func (f *fakeDetectionRepo) CategoryDistribution(_ context.Context, _, _ *time.Time, _ string) ([]*repository.CategoryCount, error) {
	return f.categories, f.err
}

func (f *fakeDetectionRepo) TopObjects(_ context.Context, _, _ *time.Time, _ string, _ int) ([]*repository.ObjectCount, error) {
	return f.objects, f.err
}

func (f *fakeDetectionRepo) ChannelVisualStats(_ context.Context, _, _ *time.Time, _ string) ([]*repository.ChannelVisualRow, error) {
	return f.visual, f.err
}

func (f *fakeDetectionRepo) ChannelCategoryCounts(_ context.Context, _, _ *time.Time, _ string) ([]*repository.ChannelCategoryCount, error) {
	return f.chanCategories, f.err
}

func (f *fakeDetectionRepo) ChannelTopObjects(_ context.Context, _, _ *time.Time, _ string, _ int) ([]*repository.ChannelObjectCount, error) {
	return f.chanObjects, f.err
}

func (f *fakeDetectionRepo) DailyTrend(_ context.Context, _ int) ([]*repository.DailyDetectionRow, error) {
	return f.trend, f.err
}

func (f *fakeDetectionRepo) Overall(_ context.Context, _, _ *time.Time, _ string) (*repository.DetectionOverall, error) {
	if f.overall == nil {
		return &repository.DetectionOverall{}, f.err
	}
	return f.overall, f.err
}

func (f *fakeDetectionRepo) Count(_ context.Context) (int64, error) {
	return f.count, f.err
}

type fakeRawMessageRepo struct {
	inserted []*model.RawMessage
	checks   *repository.QualityChecks
	count    int64
	err      error
}

func (f *fakeRawMessageRepo) UpsertBatch(_ context.Context, rows []*model.RawMessage) (int64, error) {
	f.inserted = append(f.inserted, rows...)
	return int64(len(rows)), f.err
}

func (f *fakeRawMessageRepo) Count(_ context.Context) (int64, error) {
	return f.count, f.err
}

func (f *fakeRawMessageRepo) QualityChecks(_ context.Context) (*repository.QualityChecks, error) {
	if f.checks == nil {
		return &repository.QualityChecks{}, f.err
	}
	return f.checks, f.err
}
