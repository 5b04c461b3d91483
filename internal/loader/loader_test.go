package loader

import (
	"MedWarehouse/internal/pkg/consts"
	"MedWarehouse/internal/scraper"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload *scraper.RawMessagePayload
		wantOK  bool
	}{
		{
			name: "valid message",
			payload: &scraper.RawMessagePayload{
				MessageID: 10, ChannelName: "pharma_a", Date: "2026-08-20T10:30:00Z", Text: "paracetamol",
			},
			wantOK: true,
		},
		{
			name: "date-only format accepted",
			payload: &scraper.RawMessagePayload{
				MessageID: 11, ChannelName: "pharma_a", Date: "2026-08-20",
			},
			wantOK: true,
		},
		{
			name:    "missing channel",
			payload: &scraper.RawMessagePayload{MessageID: 12, Date: "2026-08-20T10:30:00Z"},
			wantOK:  false,
		},
		{
			name:    "non-positive id",
			payload: &scraper.RawMessagePayload{MessageID: 0, ChannelName: "pharma_a", Date: "2026-08-20T10:30:00Z"},
			wantOK:  false,
		},
		{
			name:    "unparseable date",
			payload: &scraper.RawMessagePayload{MessageID: 13, ChannelName: "pharma_a", Date: "20/08/2026"},
			wantOK:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := CleanPayload(tt.payload)
			if ok != tt.wantOK {
				t.Fatalf("CleanPayload ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestCleanPayloadNormalizes(t *testing.T) {
	row, ok := CleanPayload(&scraper.RawMessagePayload{
		MessageID:   20,
		ChannelName: "pharma_a",
		Date:        "2026-08-20T10:30:00Z",
		Text:        strings.Repeat("x", consts.MaxRawMessageTextLen+500),
		Views:       -3,
		Forwards:    -1,
	})
	if !ok {
		t.Fatal("expected payload to be accepted")
	}
	if len(row.MessageText) != consts.MaxRawMessageTextLen {
		t.Fatalf("text not capped: %d", len(row.MessageText))
	}
	if row.ViewCount != 0 || row.ForwardCount != 0 {
		t.Fatalf("negative counters must clamp to zero: %d, %d", row.ViewCount, row.ForwardCount)
	}
	if len(row.RawPayload) == 0 {
		t.Fatal("raw payload must be preserved")
	}
}

// 截断落在多字节字符中间时必须回退到字符边界，否则落库时 Postgres 会拒绝非法 UTF-8
func TestCleanPayloadTruncatesOnRuneBoundary(t *testing.T) {
	text := strings.Repeat("x", consts.MaxRawMessageTextLen-1) + strings.Repeat("መ", 200)
	row, ok := CleanPayload(&scraper.RawMessagePayload{
		MessageID:   21,
		ChannelName: "pharma_a",
		Date:        "2026-08-20T10:30:00Z",
		Text:        text,
	})
	if !ok {
		t.Fatal("expected payload to be accepted")
	}
	if !utf8.ValidString(row.MessageText) {
		t.Fatalf("truncated text is invalid UTF-8, tail = % x", row.MessageText[len(row.MessageText)-4:])
	}
	if len(row.MessageText) > consts.MaxRawMessageTextLen {
		t.Fatalf("text not capped: %d", len(row.MessageText))
	}
	if len(row.MessageText) != consts.MaxRawMessageTextLen-1 {
		t.Fatalf("expected cut before the split rune, got %d bytes", len(row.MessageText))
	}
}
