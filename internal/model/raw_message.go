package model

import (
	"time"

	"gorm.io/datatypes"
)

// RawMessage 抓取层落库的原始消息，(message_id, channel_name) 唯一
type RawMessage struct {
	ID           uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	MessageID    int64          `gorm:"not null;uniqueIndex:idx_raw_msg_channel" json:"message_id"`
	ChannelName  string         `gorm:"size:255;not null;uniqueIndex:idx_raw_msg_channel" json:"channel_name"`
	MessageDate  time.Time      `gorm:"not null;index" json:"message_date"`
	MessageText  string         `gorm:"type:text" json:"message_text"`
	ViewCount    int            `gorm:"not null;default:0" json:"view_count"`
	ForwardCount int            `gorm:"not null;default:0" json:"forward_count"`
	HasImage     bool           `gorm:"not null;default:false" json:"has_image"`
	ImagePath    string         `gorm:"type:text" json:"image_path"`
	RawPayload   datatypes.JSON `gorm:"type:jsonb" json:"raw_payload"`
	LoadedAt     time.Time      `gorm:"autoCreateTime" json:"loaded_at"`
}

func (RawMessage) TableName() string {
	return "raw.telegram_messages"
}
