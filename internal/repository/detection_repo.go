package repository

import (
	"MedWarehouse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// CategoryCount 内容类别分布行
type CategoryCount struct {
	Category      string  `json:"category"`
	Count         int64   `json:"count"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// ObjectCount 检测标签出现次数
type ObjectCount struct {
	ClassName string `json:"class_name"`
	Count     int64  `json:"count"`
}

// ChannelVisualRow 频道级视觉内容统计
type ChannelVisualRow struct {
	ChannelName     string  `json:"channel_name"`
	TotalPosts      int64   `json:"total_posts"`
	ImagePosts      int64   `json:"image_posts"`
	ImagePercentage float64 `json:"image_percentage"`
	AvgConfidence   float64 `json:"avg_confidence"`
}

// ChannelCategoryCount 频道内的内容类别分布行
type ChannelCategoryCount struct {
	ChannelName string `json:"channel_name"`
	Category    string `json:"category"`
	Count       int64  `json:"count"`
}

// ChannelObjectCount 频道内检测标签出现次数
type ChannelObjectCount struct {
	ChannelName string `json:"channel_name"`
	ClassName   string `json:"class_name"`
	Count       int64  `json:"count"`
}

// DailyDetectionRow 按天的检测量与平均置信度
type DailyDetectionRow struct {
	Day           time.Time `json:"day"`
	Detections    int64     `json:"detections"`
	AvgConfidence float64   `json:"avg_confidence"`
}

// DetectionOverall 全局检测汇总
type DetectionOverall struct {
	TotalDetections int64   `json:"total_detections"`
	AvgConfidence   float64 `json:"avg_confidence"`
	TopCategory     string  `json:"top_category"`
}

type DetectionRepo interface {
	ReplaceAll(ctx context.Context, rows []*model.FactImageDetection) error
	CategoryDistribution(ctx context.Context, start, end *time.Time, channel string) ([]*CategoryCount, error)
	TopObjects(ctx context.Context, start, end *time.Time, channel string, limit int) ([]*ObjectCount, error)
	ChannelVisualStats(ctx context.Context, start, end *time.Time, channel string) ([]*ChannelVisualRow, error)
	ChannelCategoryCounts(ctx context.Context, start, end *time.Time, channel string) ([]*ChannelCategoryCount, error)
	ChannelTopObjects(ctx context.Context, start, end *time.Time, channel string, perChannel int) ([]*ChannelObjectCount, error)
	DailyTrend(ctx context.Context, days int) ([]*DailyDetectionRow, error)
	Overall(ctx context.Context, start, end *time.Time, channel string) (*DetectionOverall, error)
	Count(ctx context.Context) (int64, error)
}

type DetectionRepoImpl struct {
	db *gorm.DB
}

func NewDetectionRepository(db *gorm.DB) DetectionRepo {
	return &DetectionRepoImpl{
		db: db,
	}
}

// ReplaceAll 整批重建检测事实，删除与写入在同一事务内完成
func (s DetectionRepoImpl) ReplaceAll(ctx context.Context, rows []*model.FactImageDetection) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM marts.fct_image_detections").Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 500).Error
	})
}

// detectionFilter 组装检测查询的公共过滤条件
func detectionFilter(start, end *time.Time, channel string) (string, []any) {
	where := "1=1"
	var args []any
	if start != nil {
		where += " AND d.analyzed_at >= ?"
		args = append(args, *start)
	}
	if end != nil {
		where += " AND d.analyzed_at < ?"
		args = append(args, *end)
	}
	if channel != "" {
		where += " AND c.channel_name = ?"
		args = append(args, channel)
	}
	return where, args
}

func (s DetectionRepoImpl) CategoryDistribution(ctx context.Context, start, end *time.Time, channel string) ([]*CategoryCount, error) {
	where, args := detectionFilter(start, end, channel)
	var rows []*CategoryCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT d.content_category AS category,
		       COUNT(*) AS count,
		       COALESCE(AVG(d.overall_confidence), 0) AS avg_confidence
		FROM marts.fct_image_detections d
		JOIN marts.dim_channels c ON c.channel_key = d.channel_key
		WHERE `+where+`
		GROUP BY d.content_category
		ORDER BY count DESC`, args...).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s DetectionRepoImpl) TopObjects(ctx context.Context, start, end *time.Time, channel string, limit int) ([]*ObjectCount, error) {
	where, args := detectionFilter(start, end, channel)
	args = append(args, limit)
	var rows []*ObjectCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT obj->>'class_name' AS class_name,
		       COUNT(*) AS count
		FROM marts.fct_image_detections d
		JOIN marts.dim_channels c ON c.channel_key = d.channel_key,
		     jsonb_array_elements(d.detected_objects) AS obj
		WHERE `+where+`
		GROUP BY class_name
		ORDER BY count DESC
		LIMIT ?`, args...).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// channelVisualClauses 日期条件进 JOIN 与置信度子查询，WHERE 只留频道名，
// 这样区间内零发帖的频道仍以 0% 列出
func channelVisualClauses(start, end *time.Time, channel string) (sub, join, where string, args []any) {
	join = "m.channel_key = c.channel_key"
	sub = "d.channel_key = c.channel_key"
	var subArgs, joinArgs, whereArgs []any
	if start != nil {
		join += " AND m.message_date >= ?"
		joinArgs = append(joinArgs, *start)
		sub += " AND md.message_date >= ?"
		subArgs = append(subArgs, *start)
	}
	if end != nil {
		join += " AND m.message_date < ?"
		joinArgs = append(joinArgs, *end)
		sub += " AND md.message_date < ?"
		subArgs = append(subArgs, *end)
	}
	where = "1=1"
	if channel != "" {
		where += " AND c.channel_name = ?"
		whereArgs = append(whereArgs, channel)
	}
	args = append(append(subArgs, joinArgs...), whereArgs...)
	return sub, join, where, args
}

func (s DetectionRepoImpl) ChannelVisualStats(ctx context.Context, start, end *time.Time, channel string) ([]*ChannelVisualRow, error) {
	sub, join, where, args := channelVisualClauses(start, end, channel)

	var rows []*ChannelVisualRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT c.channel_name,
		       COUNT(m.message_id) AS total_posts,
		       COALESCE(SUM(CASE WHEN m.has_image THEN 1 ELSE 0 END), 0) AS image_posts,
		       CASE WHEN COUNT(m.message_id) > 0
		            THEN ROUND(100.0 * SUM(CASE WHEN m.has_image THEN 1 ELSE 0 END) / COUNT(m.message_id), 2)
		            ELSE 0 END AS image_percentage,
		       COALESCE((SELECT AVG(d.overall_confidence)
		                 FROM marts.fct_image_detections d
		                 JOIN marts.fct_messages md ON md.message_id = d.message_id
		                 WHERE `+sub+`), 0) AS avg_confidence
		FROM marts.dim_channels c
		LEFT JOIN marts.fct_messages m ON `+join+`
		WHERE `+where+`
		GROUP BY c.channel_key, c.channel_name
		ORDER BY image_posts DESC`, args...).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s DetectionRepoImpl) ChannelCategoryCounts(ctx context.Context, start, end *time.Time, channel string) ([]*ChannelCategoryCount, error) {
	where, args := detectionFilter(start, end, channel)
	var rows []*ChannelCategoryCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT c.channel_name,
		       d.content_category AS category,
		       COUNT(*) AS count
		FROM marts.fct_image_detections d
		JOIN marts.dim_channels c ON c.channel_key = d.channel_key
		WHERE `+where+`
		GROUP BY c.channel_name, d.content_category
		ORDER BY c.channel_name, count DESC`, args...).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ChannelTopObjects 每个频道取出现次数最多的前 N 个标签
func (s DetectionRepoImpl) ChannelTopObjects(ctx context.Context, start, end *time.Time, channel string, perChannel int) ([]*ChannelObjectCount, error) {
	where, args := detectionFilter(start, end, channel)
	args = append(args, perChannel)
	var rows []*ChannelObjectCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT channel_name, class_name, count
		FROM (SELECT c.channel_name,
		             obj->>'class_name' AS class_name,
		             COUNT(*) AS count,
		             ROW_NUMBER() OVER (PARTITION BY c.channel_name ORDER BY COUNT(*) DESC) AS rn
		      FROM marts.fct_image_detections d
		      JOIN marts.dim_channels c ON c.channel_key = d.channel_key,
		           jsonb_array_elements(d.detected_objects) AS obj
		      WHERE `+where+`
		      GROUP BY c.channel_name, class_name) ranked
		WHERE rn <= ?
		ORDER BY channel_name, count DESC`, args...).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s DetectionRepoImpl) DailyTrend(ctx context.Context, days int) ([]*DailyDetectionRow, error) {
	var rows []*DailyDetectionRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT date_trunc('day', analyzed_at) AS day,
		       COUNT(*) AS detections,
		       COALESCE(AVG(overall_confidence), 0) AS avg_confidence
		FROM marts.fct_image_detections
		WHERE analyzed_at >= NOW() - make_interval(days => ?)
		GROUP BY day
		ORDER BY day`, days).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s DetectionRepoImpl) Overall(ctx context.Context, start, end *time.Time, channel string) (*DetectionOverall, error) {
	where, args := detectionFilter(start, end, channel)
	var overall DetectionOverall
	err := s.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total_detections,
		       COALESCE(AVG(d.overall_confidence), 0) AS avg_confidence,
		       COALESCE((SELECT d2.content_category
		                 FROM marts.fct_image_detections d2
		                 GROUP BY d2.content_category
		                 ORDER BY COUNT(*) DESC
		                 LIMIT 1), '') AS top_category
		FROM marts.fct_image_detections d
		JOIN marts.dim_channels c ON c.channel_key = d.channel_key
		WHERE `+where, args...).Scan(&overall).Error
	if err != nil {
		return nil, err
	}
	return &overall, nil
}

func (s DetectionRepoImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.FactImageDetection{}).Count(&n).Error
	return n, err
}
