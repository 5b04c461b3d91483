package scraper

import (
	"MedWarehouse/internal/api/config"
	"MedWarehouse/internal/pkg/datalake"
	"bytes"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/tg"
	"github.com/pkg/errors"
)

// RawMessagePayload 落入数据湖的单条消息
type RawMessagePayload struct {
	MessageID    int64  `json:"message_id"`
	ChannelName  string `json:"channel_name"`
	ChannelTitle string `json:"channel_title"`
	Date         string `json:"date"`
	Text         string `json:"text"`
	Views        int    `json:"views"`
	Forwards     int    `json:"forwards"`
	HasImage     bool   `json:"has_image"`
	ImagePath    string `json:"image_path"`
}

// Summary 单次抓取汇总
type Summary struct {
	Channels int
	Messages int
	Images   int
}

// Scraper 通过 MTProto 抓取公开频道历史
type Scraper struct {
	client *telegram.Client
	store  datalake.Store
	limit  int
}

func New(store datalake.Store) *Scraper {
	cfg := config.Cfg.Telegram
	client := telegram.NewClient(cfg.ApiID, cfg.ApiHash, telegram.Options{
		SessionStorage: &session.FileStorage{Path: cfg.SessionFile},
	})
	return &Scraper{
		client: client,
		store:  store,
		limit:  cfg.Limit,
	}
}

// Run 抓取配置的全部频道，每个频道独立失败不中断整体
func (s *Scraper) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	err := s.client.Run(ctx, func(ctx context.Context) error {
		if err := s.ensureAuth(ctx); err != nil {
			return err
		}
		for _, channel := range config.Cfg.Telegram.Channels {
			n, images, err := s.scrapeChannel(ctx, channel)
			if err != nil {
				log.ErrorContext(ctx, "scrape channel failed", "channel", channel, "err", err)
				continue
			}
			summary.Channels++
			summary.Messages += n
			summary.Images += images
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "telegram client run")
	}
	return summary, nil
}

func (s *Scraper) ensureAuth(ctx context.Context) error {
	status, err := s.client.Auth().Status(ctx)
	if err != nil {
		return errors.Wrap(err, "auth status")
	}
	if status.Authorized {
		return nil
	}
	token := config.Cfg.Telegram.BotToken
	if token == "" {
		return errors.New("session not authorized and no bot token configured")
	}
	if _, err = s.client.Auth().Bot(ctx, token); err != nil {
		return errors.Wrap(err, "bot auth")
	}
	return nil
}

func (s *Scraper) resolveChannel(ctx context.Context, username string) (*tg.Channel, error) {
	resolved, err := s.client.API().ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: username,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", username)
	}
	for _, chat := range resolved.Chats {
		if ch, ok := chat.(*tg.Channel); ok {
			return ch, nil
		}
	}
	return nil, errors.Errorf("%s is not a channel", username)
}

func (s *Scraper) scrapeChannel(ctx context.Context, username string) (int, int, error) {
	ch, err := s.resolveChannel(ctx, username)
	if err != nil {
		return 0, 0, err
	}
	peer := &tg.InputPeerChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}

	payloads := make([]*RawMessagePayload, 0, s.limit)
	images := 0
	offsetID := 0
	for len(payloads) < s.limit {
		history, err := s.client.API().MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
			Peer:     peer,
			OffsetID: offsetID,
			Limit:    100,
		})
		if err != nil {
			return 0, 0, errors.Wrap(err, "get history")
		}
		channelMessages, ok := history.(*tg.MessagesChannelMessages)
		if !ok || len(channelMessages.Messages) == 0 {
			break
		}

		msgs, next := pageMessages(channelMessages.Messages, offsetID)
		if next == offsetID {
			break
		}
		offsetID = next

		for _, msg := range msgs {
			payload := &RawMessagePayload{
				MessageID:    int64(msg.ID),
				ChannelName:  username,
				ChannelTitle: ch.Title,
				Date:         time.Unix(int64(msg.Date), 0).UTC().Format(time.RFC3339),
				Text:         msg.Message,
				Views:        msg.Views,
				Forwards:     msg.Forwards,
			}
			if photo := extractPhoto(msg); photo != nil {
				path, err := s.downloadPhoto(ctx, username, msg, photo)
				if err != nil {
					log.WarnContext(ctx, "photo download failed", "channel", username, "message_id", msg.ID, "err", err)
				} else {
					payload.HasImage = true
					payload.ImagePath = path
					images++
				}
			}
			payloads = append(payloads, payload)
			if len(payloads) >= s.limit {
				break
			}
		}
	}

	if len(payloads) == 0 {
		return 0, 0, nil
	}
	raw, err := json.Marshal(payloads)
	if err != nil {
		return 0, 0, errors.Wrap(err, "marshal payloads")
	}
	if _, err = s.store.WriteJSON(ctx, time.Now().UTC(), username, "messages.json", raw); err != nil {
		return 0, 0, errors.Wrap(err, "write partition")
	}
	log.InfoContext(ctx, "channel scraped", "channel", username, "messages", len(payloads), "images", images)
	return len(payloads), images, nil
}

// pageMessages 过滤出普通消息，偏移由页内所有消息推进，服务消息页不会卡住翻页
func pageMessages(msgs []tg.MessageClass, offsetID int) ([]*tg.Message, int) {
	out := make([]*tg.Message, 0, len(msgs))
	for _, m := range msgs {
		offsetID = m.GetID()
		if msg, ok := m.(*tg.Message); ok {
			out = append(out, msg)
		}
	}
	return out, offsetID
}

func extractPhoto(msg *tg.Message) *tg.Photo {
	media, ok := msg.Media.(*tg.MessageMediaPhoto)
	if !ok {
		return nil
	}
	photo, ok := media.Photo.(*tg.Photo)
	if !ok {
		return nil
	}
	return photo
}

// largestSize 选最大的常规缩略图
func largestSize(photo *tg.Photo) (string, bool) {
	best, area := "", -1
	for _, s := range photo.Sizes {
		if ps, ok := s.(*tg.PhotoSize); ok && ps.W*ps.H > area {
			best, area = ps.Type, ps.W*ps.H
		}
	}
	return best, best != ""
}

func (s *Scraper) downloadPhoto(ctx context.Context, channel string, msg *tg.Message, photo *tg.Photo) (string, error) {
	thumb, ok := largestSize(photo)
	if !ok {
		return "", errors.New("photo has no downloadable size")
	}
	location := &tg.InputPhotoFileLocation{
		ID:            photo.ID,
		AccessHash:    photo.AccessHash,
		FileReference: photo.FileReference,
		ThumbSize:     thumb,
	}

	var buf bytes.Buffer
	if _, err := downloader.NewDownloader().Download(s.client.API(), location).Stream(ctx, &buf); err != nil {
		return "", errors.Wrap(err, "download stream")
	}
	name := fmt.Sprintf("%d.jpg", msg.ID)
	date := time.Unix(int64(msg.Date), 0).UTC()
	return s.store.WriteImage(ctx, date, channel, name, &buf, int64(buf.Len()))
}
