package repository

import (
	"MedWarehouse/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QualityChecks 数据质量报告指标
type QualityChecks struct {
	RawMessages       int64 `json:"raw_messages"`
	FactMessages      int64 `json:"fact_messages"`
	Channels          int64 `json:"channels"`
	Detections        int64 `json:"detections"`
	EmptyTextMessages int64 `json:"empty_text_messages"`
	NegativeViews     int64 `json:"negative_views"`
	OrphanMessages    int64 `json:"orphan_messages"`
	MissingImagePaths int64 `json:"missing_image_paths"`
}

type RawMessageRepo interface {
	UpsertBatch(ctx context.Context, rows []*model.RawMessage) (int64, error)
	Count(ctx context.Context) (int64, error)
	QualityChecks(ctx context.Context) (*QualityChecks, error)
}

type RawMessageRepoImpl struct {
	db *gorm.DB
}

func NewRawMessageRepository(db *gorm.DB) RawMessageRepo {
	return &RawMessageRepoImpl{
		db: db,
	}
}

// UpsertBatch 以 (message_id, channel_name) 去重写入，返回实际新增行数
func (s RawMessageRepoImpl) UpsertBatch(ctx context.Context, rows []*model.RawMessage) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}, {Name: "channel_name"}},
		DoNothing: true,
	}).CreateInBatches(rows, 500)
	return res.RowsAffected, res.Error
}

func (s RawMessageRepoImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.RawMessage{}).Count(&n).Error
	return n, err
}

func (s RawMessageRepoImpl) QualityChecks(ctx context.Context) (*QualityChecks, error) {
	var checks QualityChecks
	err := s.db.WithContext(ctx).Raw(`
		SELECT (SELECT COUNT(*) FROM raw.telegram_messages) AS raw_messages,
		       (SELECT COUNT(*) FROM marts.fct_messages) AS fact_messages,
		       (SELECT COUNT(*) FROM marts.dim_channels) AS channels,
		       (SELECT COUNT(*) FROM marts.fct_image_detections) AS detections,
		       (SELECT COUNT(*) FROM marts.fct_messages WHERE message_text = '') AS empty_text_messages,
		       (SELECT COUNT(*) FROM marts.fct_messages WHERE view_count < 0 OR forward_count < 0) AS negative_views,
		       (SELECT COUNT(*) FROM marts.fct_messages m
		        WHERE NOT EXISTS (SELECT 1 FROM marts.dim_channels c WHERE c.channel_key = m.channel_key)) AS orphan_messages,
		       (SELECT COUNT(*) FROM marts.fct_messages WHERE has_image AND image_path = '') AS missing_image_paths`).
		Scan(&checks).Error
	if err != nil {
		return nil, err
	}
	return &checks, nil
}
