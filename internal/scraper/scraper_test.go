package scraper

import (
	"testing"

	"github.com/gotd/td/tg"
)

func TestPageMessages(t *testing.T) {
	page := []tg.MessageClass{
		&tg.Message{ID: 30, Message: "panadol restock"},
		&tg.MessageService{ID: 29},
		&tg.Message{ID: 28, Message: "insulin pens"},
	}

	msgs, next := pageMessages(page, 0)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 plain messages, got %d", len(msgs))
	}
	if next != 28 {
		t.Fatalf("offset must follow the last message, got %d", next)
	}
}

func TestPageMessagesServiceOnly(t *testing.T) {
	page := []tg.MessageClass{
		&tg.MessageService{ID: 12},
		&tg.MessageService{ID: 11},
	}

	msgs, next := pageMessages(page, 13)
	if len(msgs) != 0 {
		t.Fatalf("service messages must be filtered, got %d", len(msgs))
	}
	// 偏移仍要前进，否则下一页请求会原地重复
	if next != 11 {
		t.Fatalf("offset not advanced: %d", next)
	}
}
