package datalake

import (
	"MedWarehouse/internal/api/config"
	"context"
	"fmt"
	"io"
	"time"
)

// Store 数据湖存储，原始 JSON 按日期和频道分区，图片单独成区
type Store interface {
	WriteJSON(ctx context.Context, date time.Time, channel, name string, payload []byte) (string, error)
	WriteImage(ctx context.Context, date time.Time, channel, name string, r io.Reader, size int64) (string, error)
	ReadJSON(ctx context.Context, path string) ([]byte, error)
	ReadImage(ctx context.Context, path string) ([]byte, error)
	ListJSON(ctx context.Context, date time.Time) ([]string, error)
}

// jsonPartition raw/telegram_messages/YYYY-MM-DD/<channel>/<name>
func jsonPartition(date time.Time, channel, name string) string {
	return fmt.Sprintf("raw/telegram_messages/%s/%s/%s", date.Format(time.DateOnly), channel, name)
}

// imagePartition raw/images/YYYY-MM-DD/<channel>/<name>
func imagePartition(date time.Time, channel, name string) string {
	return fmt.Sprintf("raw/images/%s/%s/%s", date.Format(time.DateOnly), channel, name)
}

// New 按配置选择存储后端
func New() (Store, error) {
	cfg := config.Cfg.DataLake
	switch cfg.Backend {
	case "minio":
		return newMinioStore()
	case "", "local":
		return NewLocalStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown datalake backend %q", cfg.Backend)
	}
}
