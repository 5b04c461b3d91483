package transform

import (
	"context"
	log "log/slog"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Summary 单次转换汇总
type Summary struct {
	Channels int64
	Dates    int64
	Messages int64
}

// Transformer raw 层到 marts 星型模型的 SQL 转换器。
// 语句幂等，可整体重跑。
type Transformer struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Transformer {
	return &Transformer{db: db}
}

// 频道维表：按名称聚合原始消息并推断频道类型
const upsertChannelsSQL = `
INSERT INTO marts.dim_channels
    (channel_name, channel_type, first_post_date, last_post_date,
     total_posts, avg_views, total_views, total_forwards, created_at, updated_at)
SELECT channel_name,
       CASE
           WHEN channel_name ILIKE '%pharma%' THEN 'pharmacy'
           WHEN channel_name ILIKE '%cosmetic%' THEN 'cosmetics'
           WHEN channel_name ILIKE '%med%' OR channel_name ILIKE '%health%' THEN 'medical'
           ELSE 'other'
       END,
       MIN(message_date),
       MAX(message_date),
       COUNT(*),
       COALESCE(AVG(view_count), 0),
       COALESCE(SUM(view_count), 0),
       COALESCE(SUM(forward_count), 0),
       NOW(), NOW()
FROM raw.telegram_messages
GROUP BY channel_name
ON CONFLICT (channel_name) DO UPDATE SET
    first_post_date = EXCLUDED.first_post_date,
    last_post_date  = EXCLUDED.last_post_date,
    total_posts     = EXCLUDED.total_posts,
    avg_views       = EXCLUDED.avg_views,
    total_views     = EXCLUDED.total_views,
    total_forwards  = EXCLUDED.total_forwards,
    updated_at      = NOW()`

// 日期维表：date_key 为 YYYYMMDD 整数
const upsertDatesSQL = `
INSERT INTO marts.dim_dates
    (date_key, full_date, day_of_week, week_of_year, month, quarter, year, is_weekend)
SELECT DISTINCT
       to_char(message_date, 'YYYYMMDD')::int,
       message_date::date,
       EXTRACT(ISODOW FROM message_date)::int,
       EXTRACT(WEEK FROM message_date)::int,
       EXTRACT(MONTH FROM message_date)::int,
       EXTRACT(QUARTER FROM message_date)::int,
       EXTRACT(YEAR FROM message_date)::int,
       EXTRACT(ISODOW FROM message_date) IN (6, 7)
FROM raw.telegram_messages
ON CONFLICT (date_key) DO NOTHING`

// 消息事实：浏览与转发数会在重跑时刷新
const upsertMessagesSQL = `
INSERT INTO marts.fct_messages
    (message_id, channel_key, date_key, message_date, message_text, message_length,
     view_count, forward_count, has_image, image_path, created_at)
SELECT r.message_id,
       c.channel_key,
       to_char(r.message_date, 'YYYYMMDD')::int,
       r.message_date,
       r.message_text,
       LENGTH(r.message_text),
       r.view_count,
       r.forward_count,
       r.has_image,
       r.image_path,
       NOW()
FROM raw.telegram_messages r
JOIN marts.dim_channels c ON c.channel_name = r.channel_name
ON CONFLICT (message_id) DO UPDATE SET
    view_count    = EXCLUDED.view_count,
    forward_count = EXCLUDED.forward_count`

// Run 按依赖顺序执行转换语句，整体在一个事务内
func (s *Transformer) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(upsertChannelsSQL)
		if res.Error != nil {
			return errors.Wrap(res.Error, "upsert dim_channels")
		}
		summary.Channels = res.RowsAffected

		res = tx.Exec(upsertDatesSQL)
		if res.Error != nil {
			return errors.Wrap(res.Error, "upsert dim_dates")
		}
		summary.Dates = res.RowsAffected

		res = tx.Exec(upsertMessagesSQL)
		if res.Error != nil {
			return errors.Wrap(res.Error, "upsert fct_messages")
		}
		summary.Messages = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "transform finished",
		"channels", summary.Channels,
		"dates", summary.Dates,
		"messages", summary.Messages)
	return summary, nil
}
