package model

import (
	"time"

	"gorm.io/datatypes"
)

// FactImageDetection 图像检测事实，由检测富化阶段整批重建
type FactImageDetection struct {
	DetectionID        uint64         `gorm:"primaryKey;autoIncrement;column:detection_id" json:"detection_id"`
	MessageID          int64          `gorm:"not null;index" json:"message_id"`
	ChannelKey         uint64         `gorm:"not null;index" json:"channel_key"`
	DateKey            int            `gorm:"not null;index" json:"date_key"`
	ImagePath          string         `gorm:"type:text;not null" json:"image_path"`
	DetectedObjects    datatypes.JSON `gorm:"type:jsonb" json:"detected_objects"`
	ObjectCount        int            `gorm:"not null;default:0" json:"object_count"`
	ContentCategory    string         `gorm:"size:64;not null;index" json:"content_category"`
	CategoryConfidence float64        `gorm:"not null;default:0" json:"category_confidence"`
	OverallConfidence  float64        `gorm:"not null;default:0" json:"overall_confidence"`
	BusinessTags       datatypes.JSON `gorm:"type:jsonb" json:"business_tags"`
	AnalysisVersion    string         `gorm:"size:32;not null" json:"analysis_version"`
	AnalyzedAt         time.Time      `gorm:"not null" json:"analyzed_at"`
}

func (FactImageDetection) TableName() string {
	return "marts.fct_image_detections"
}

// DetectedObject 单个检测框，序列化进 detected_objects 列
type DetectedObject struct {
	ClassName  string  `json:"class_name"`
	Confidence float64 `json:"confidence"`
}
