package model

import (
	"time"

	"gorm.io/datatypes"
)

// FactMessage 消息事实，经转换层由 raw 层生成，生成后不再修改
type FactMessage struct {
	MessageID         int64          `gorm:"primaryKey;column:message_id" json:"message_id"`
	ChannelKey        uint64         `gorm:"not null;index" json:"channel_key"`
	DateKey           int            `gorm:"not null;index" json:"date_key"`
	MessageDate       time.Time      `gorm:"not null" json:"message_date"`
	MessageText       string         `gorm:"type:text" json:"message_text"`
	MessageLength     int            `gorm:"not null;default:0" json:"message_length"`
	ViewCount         int            `gorm:"not null;default:0" json:"view_count"`
	ForwardCount      int            `gorm:"not null;default:0" json:"forward_count"`
	HasImage          bool           `gorm:"not null;default:false" json:"has_image"`
	ImagePath         string         `gorm:"type:text" json:"image_path"`
	ExtractedProducts datatypes.JSON `gorm:"type:jsonb" json:"extracted_products"`
	CreatedAt         time.Time      `json:"created_at"`
}

func (FactMessage) TableName() string {
	return "marts.fct_messages"
}
