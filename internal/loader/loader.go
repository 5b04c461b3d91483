package loader

import (
	"MedWarehouse/internal/model"
	"MedWarehouse/internal/pkg/consts"
	"MedWarehouse/internal/pkg/datalake"
	"MedWarehouse/internal/repository"
	"MedWarehouse/internal/scraper"
	"context"
	log "log/slog"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Summary 单次装载汇总
type Summary struct {
	Files    int
	Rows     int
	Inserted int64
	Skipped  int
}

// Loader 把数据湖分区装载进 raw 层
type Loader struct {
	store   datalake.Store
	rawRepo repository.RawMessageRepo
}

func New(store datalake.Store, rawRepo repository.RawMessageRepo) *Loader {
	return &Loader{
		store:   store,
		rawRepo: rawRepo,
	}
}

// Load 装载某天分区的全部 JSON 对象，逐文件清洗后批量去重写入
func (s *Loader) Load(ctx context.Context, date time.Time) (*Summary, error) {
	paths, err := s.store.ListJSON(ctx, date)
	if err != nil {
		return nil, errors.Wrap(err, "list partition")
	}

	summary := &Summary{}
	for _, path := range paths {
		raw, err := s.store.ReadJSON(ctx, path)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		var payloads []*scraper.RawMessagePayload
		if err = json.Unmarshal(raw, &payloads); err != nil {
			log.WarnContext(ctx, "skip malformed partition object", "path", path, "err", err)
			summary.Skipped++
			continue
		}
		summary.Files++

		rows := make([]*model.RawMessage, 0, len(payloads))
		for _, p := range payloads {
			row, ok := CleanPayload(p)
			if !ok {
				summary.Skipped++
				continue
			}
			rows = append(rows, row)
		}
		summary.Rows += len(rows)

		inserted, err := s.rawRepo.UpsertBatch(ctx, rows)
		if err != nil {
			return nil, errors.Wrapf(err, "upsert %s", path)
		}
		summary.Inserted += inserted
	}

	log.InfoContext(ctx, "raw load finished",
		"date", date.Format(time.DateOnly),
		"files", summary.Files,
		"rows", summary.Rows,
		"inserted", summary.Inserted,
		"skipped", summary.Skipped)
	return summary, nil
}

// truncateText 按字节上限截断，截点回退到字符边界，保证结果仍是合法 UTF-8
func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

// CleanPayload 校验并规范化单条消息，不可恢复的行返回 false
func CleanPayload(p *scraper.RawMessagePayload) (*model.RawMessage, bool) {
	if p == nil || p.MessageID <= 0 || p.ChannelName == "" {
		return nil, false
	}
	date, err := time.Parse(time.RFC3339, p.Date)
	if err != nil {
		date, err = time.Parse(time.DateOnly, p.Date)
		if err != nil {
			return nil, false
		}
	}

	text := truncateText(p.Text, consts.MaxRawMessageTextLen)
	views, forwards := p.Views, p.Forwards
	if views < 0 {
		views = 0
	}
	if forwards < 0 {
		forwards = 0
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return nil, false
	}
	return &model.RawMessage{
		MessageID:    p.MessageID,
		ChannelName:  p.ChannelName,
		MessageDate:  date.UTC(),
		MessageText:  text,
		ViewCount:    views,
		ForwardCount: forwards,
		HasImage:     p.HasImage,
		ImagePath:    p.ImagePath,
		RawPayload:   payload,
	}, true
}
