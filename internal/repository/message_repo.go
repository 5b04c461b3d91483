package repository

import (
	"MedWarehouse/internal/model"
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ActivityBucket 单个时间桶的发帖统计
type ActivityBucket struct {
	Period      time.Time `json:"period"`
	PostCount   int64     `json:"post_count"`
	AvgViews    float64   `json:"avg_views"`
	TotalViews  int64     `json:"total_views"`
	AvgForwards float64   `json:"avg_forwards"`
}

// HourBucket 小时级发帖分布
type HourBucket struct {
	Hour      int   `json:"hour"`
	PostCount int64 `json:"post_count"`
}

// ActivityTotals 区间汇总
type ActivityTotals struct {
	TotalPosts    int64   `json:"total_posts"`
	TotalViews    int64   `json:"total_views"`
	AvgViews      float64 `json:"avg_views"`
	TotalForwards int64   `json:"total_forwards"`
	AvgForwards   float64 `json:"avg_forwards"`
}

// EngagementBucket 全频道时间桶互动统计
type EngagementBucket struct {
	Period        time.Time `json:"period"`
	PostCount     int64     `json:"post_count"`
	TotalViews    int64     `json:"total_views"`
	AvgViews      float64   `json:"avg_views"`
	TotalForwards int64     `json:"total_forwards"`
}

// SearchParams 全文检索入参，SortBy 由上层校验后传入
type SearchParams struct {
	Query     string
	Channel   string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// SearchRow 检索结果行，Snippet 为带 <mark> 标签的高亮片段
type SearchRow struct {
	MessageID    int64     `json:"message_id"`
	ChannelName  string    `json:"channel_name"`
	MessageDate  time.Time `json:"message_date"`
	Snippet      string    `json:"snippet"`
	ViewCount    int       `json:"view_count"`
	ForwardCount int       `json:"forward_count"`
	HasImage     bool      `json:"has_image"`
	Rank         float64   `json:"rank"`
}

// MessageTextRow 产品扫描用的消息行
type MessageTextRow struct {
	MessageText string    `json:"message_text"`
	ChannelName string    `json:"channel_name"`
	MessageDate time.Time `json:"message_date"`
}

// ChannelImageRatio 频道图片占比，用于仪表盘建议
type ChannelImageRatio struct {
	ChannelName string  `json:"channel_name"`
	AvgViews    float64 `json:"avg_views"`
	ImageRatio  float64 `json:"image_ratio"`
}

type MessageRepo interface {
	ActivityBuckets(ctx context.Context, channelKey uint64, start, end time.Time, granularity string) ([]*ActivityBucket, error)
	PeakHours(ctx context.Context, channelKey uint64, start, end time.Time, limit int) ([]*HourBucket, error)
	RangeTotals(ctx context.Context, channelKey uint64, start, end time.Time) (*ActivityTotals, error)
	EngagementBuckets(ctx context.Context, start, end time.Time, granularity string) ([]*EngagementBucket, error)
	Search(ctx context.Context, params *SearchParams) ([]*SearchRow, int64, error)
	TextsSince(ctx context.Context, since *time.Time, channel string) ([]*MessageTextRow, error)
	ImageMessages(ctx context.Context) ([]*model.FactMessage, error)
	Count(ctx context.Context) (int64, error)
	ChannelImageRatios(ctx context.Context) ([]*ChannelImageRatio, error)
}

type MessageRepoImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepo {
	return &MessageRepoImpl{
		db: db,
	}
}

func truncUnit(granularity string) string {
	switch granularity {
	case "weekly":
		return "week"
	case "monthly":
		return "month"
	default:
		return "day"
	}
}

func (s MessageRepoImpl) ActivityBuckets(ctx context.Context, channelKey uint64, start, end time.Time, granularity string) ([]*ActivityBucket, error) {
	var rows []*ActivityBucket
	err := s.db.WithContext(ctx).Raw(`
		SELECT date_trunc('`+truncUnit(granularity)+`', message_date) AS period,
		       COUNT(*) AS post_count,
		       COALESCE(AVG(view_count), 0) AS avg_views,
		       COALESCE(SUM(view_count), 0) AS total_views,
		       COALESCE(AVG(forward_count), 0) AS avg_forwards
		FROM marts.fct_messages
		WHERE channel_key = ? AND message_date >= ? AND message_date < ?
		GROUP BY period
		ORDER BY period`, channelKey, start, end).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s MessageRepoImpl) PeakHours(ctx context.Context, channelKey uint64, start, end time.Time, limit int) ([]*HourBucket, error) {
	var rows []*HourBucket
	err := s.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(HOUR FROM message_date)::int AS hour,
		       COUNT(*) AS post_count
		FROM marts.fct_messages
		WHERE channel_key = ? AND message_date >= ? AND message_date < ?
		GROUP BY hour
		ORDER BY post_count DESC, hour
		LIMIT ?`, channelKey, start, end, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s MessageRepoImpl) RangeTotals(ctx context.Context, channelKey uint64, start, end time.Time) (*ActivityTotals, error) {
	var totals ActivityTotals
	err := s.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total_posts,
		       COALESCE(SUM(view_count), 0) AS total_views,
		       COALESCE(AVG(view_count), 0) AS avg_views,
		       COALESCE(SUM(forward_count), 0) AS total_forwards,
		       COALESCE(AVG(forward_count), 0) AS avg_forwards
		FROM marts.fct_messages
		WHERE channel_key = ? AND message_date >= ? AND message_date < ?`,
		channelKey, start, end).Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// EngagementBuckets 不分频道的互动时间序列
func (s MessageRepoImpl) EngagementBuckets(ctx context.Context, start, end time.Time, granularity string) ([]*EngagementBucket, error) {
	var rows []*EngagementBucket
	err := s.db.WithContext(ctx).Raw(`
		SELECT date_trunc('`+truncUnit(granularity)+`', message_date) AS period,
		       COUNT(*) AS post_count,
		       COALESCE(SUM(view_count), 0) AS total_views,
		       COALESCE(AVG(view_count), 0) AS avg_views,
		       COALESCE(SUM(forward_count), 0) AS total_forwards
		FROM marts.fct_messages
		WHERE message_date >= ? AND message_date < ?
		GROUP BY period
		ORDER BY period`, start, end).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Search 结果页与总数并发查询，过滤条件保持一致
func (s MessageRepoImpl) Search(ctx context.Context, params *SearchParams) ([]*SearchRow, int64, error) {
	where := "to_tsvector('english', m.message_text) @@ plainto_tsquery('english', ?)"
	args := []any{params.Query}
	if params.Channel != "" {
		where += " AND c.channel_name = ?"
		args = append(args, params.Channel)
	}
	if params.StartDate != nil {
		where += " AND m.message_date >= ?"
		args = append(args, *params.StartDate)
	}
	if params.EndDate != nil {
		where += " AND m.message_date < ?"
		args = append(args, *params.EndDate)
	}

	orderCol := "rank"
	switch params.SortBy {
	case "date":
		orderCol = "m.message_date"
	case "views":
		orderCol = "m.view_count"
	case "forwards":
		orderCol = "m.forward_count"
	}
	dir := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		dir = "ASC"
	}
	offset := (params.Page - 1) * params.Limit

	var (
		rows  []*SearchRow
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pageArgs := append([]any{params.Query, params.Query}, args...)
		pageArgs = append(pageArgs, params.Limit, offset)
		return s.db.WithContext(gctx).Raw(`
			SELECT m.message_id,
			       c.channel_name,
			       m.message_date,
			       ts_headline('english', m.message_text, plainto_tsquery('english', ?),
			                   'StartSel=<mark>, StopSel=</mark>, MaxWords=50, MinWords=20') AS snippet,
			       m.view_count,
			       m.forward_count,
			       m.has_image,
			       ts_rank(to_tsvector('english', m.message_text), plainto_tsquery('english', ?)) AS rank
			FROM marts.fct_messages m
			JOIN marts.dim_channels c ON c.channel_key = m.channel_key
			WHERE `+where+`
			ORDER BY `+orderCol+` `+dir+`
			LIMIT ? OFFSET ?`, pageArgs...).Scan(&rows).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Raw(`
			SELECT COUNT(*)
			FROM marts.fct_messages m
			JOIN marts.dim_channels c ON c.channel_key = m.channel_key
			WHERE `+where, args...).Scan(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s MessageRepoImpl) TextsSince(ctx context.Context, since *time.Time, channel string) ([]*MessageTextRow, error) {
	q := s.db.WithContext(ctx).
		Table("marts.fct_messages m").
		Select("m.message_text, c.channel_name, m.message_date").
		Joins("JOIN marts.dim_channels c ON c.channel_key = m.channel_key").
		Where("m.message_text <> ''")
	if since != nil {
		q = q.Where("m.message_date >= ?", *since)
	}
	if channel != "" {
		q = q.Where("c.channel_name = ?", channel)
	}
	var rows []*MessageTextRow
	err := q.Order("m.message_date").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s MessageRepoImpl) ImageMessages(ctx context.Context) ([]*model.FactMessage, error) {
	var msgs []*model.FactMessage
	err := s.db.WithContext(ctx).
		Where("has_image = ? AND image_path <> ''", true).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s MessageRepoImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.FactMessage{}).Count(&n).Error
	return n, err
}

func (s MessageRepoImpl) ChannelImageRatios(ctx context.Context) ([]*ChannelImageRatio, error) {
	var rows []*ChannelImageRatio
	err := s.db.WithContext(ctx).Raw(`
		SELECT c.channel_name,
		       COALESCE(AVG(m.view_count), 0) AS avg_views,
		       COALESCE(AVG(CASE WHEN m.has_image THEN 1.0 ELSE 0.0 END), 0) AS image_ratio
		FROM marts.dim_channels c
		JOIN marts.fct_messages m ON m.channel_key = c.channel_key
		GROUP BY c.channel_name
		HAVING COUNT(*) > 0`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
