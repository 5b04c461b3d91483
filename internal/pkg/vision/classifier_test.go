package vision

import (
	"reflect"
	"testing"
)

func TestClassifyEmptyInput(t *testing.T) {
	c := NewClassifier(0)

	for _, detections := range [][]Detection{
		nil,
		{},
		{{ClassName: "person", Confidence: 0.1}},   // 低于阈值
		{{ClassName: "airplane", Confidence: 0.9}}, // 域外类别
	} {
		got := c.Classify(detections)
		if got.Category != CategoryUnknown {
			t.Fatalf("expected unknown, got %s", got.Category)
		}
		if got.Confidence != 0 {
			t.Fatalf("expected zero confidence, got %v", got.Confidence)
		}
		if !reflect.DeepEqual(got.Tags, []string{"no_detections", "low_confidence"}) {
			t.Fatalf("unexpected tags %v", got.Tags)
		}
	}
}

func TestClassifyDecisionTable(t *testing.T) {
	c := NewClassifier(0.3)

	tests := []struct {
		name           string
		detections     []Detection
		wantCategory   string
		wantConfidence float64
	}{
		{
			name: "person with product is promotional",
			detections: []Detection{
				{ClassName: "person", Confidence: 0.9},
				{ClassName: "bottle", Confidence: 0.8},
			},
			wantCategory:   CategoryPromotional,
			wantConfidence: 0.8,
		},
		{
			name:           "product alone is product display",
			detections:     []Detection{{ClassName: "bottle", Confidence: 0.6}},
			wantCategory:   CategoryProductDisplay,
			wantConfidence: 0.7,
		},
		{
			name:           "person alone is lifestyle",
			detections:     []Detection{{ClassName: "person", Confidence: 0.6}},
			wantCategory:   CategoryLifestyle,
			wantConfidence: 0.6,
		},
		{
			name:           "food is ingredient showcase",
			detections:     []Detection{{ClassName: "banana", Confidence: 0.7}},
			wantCategory:   CategoryIngredientShowcase,
			wantConfidence: 0.7,
		},
		{
			name: "person in medical setting",
			detections: []Detection{
				{ClassName: "person", Confidence: 0.6},
				{ClassName: "bed", Confidence: 0.6},
				{ClassName: "banana", Confidence: 0.6},
			},
			wantCategory:   CategoryIngredientShowcase,
			wantConfidence: 0.7,
		},
		{
			name: "medical setting without food",
			detections: []Detection{
				{ClassName: "person", Confidence: 0.6},
				{ClassName: "bed", Confidence: 0.6},
			},
			wantCategory:   CategoryMedicalContext,
			wantConfidence: 0.6,
		},
		{
			name:           "unmatched relevant class is unknown",
			detections:     []Detection{{ClassName: "book", Confidence: 0.9}},
			wantCategory:   CategoryUnknown,
			wantConfidence: 0.3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.detections)
			if got.Category != tt.wantCategory {
				t.Fatalf("category = %s, want %s", got.Category, tt.wantCategory)
			}
			if got.CategoryConfidence != tt.wantConfidence {
				t.Fatalf("category confidence = %v, want %v", got.CategoryConfidence, tt.wantConfidence)
			}
		})
	}
}

func TestOverallConfidenceBounds(t *testing.T) {
	c := NewClassifier(0.3)

	// 多个高置信度检测触发奖励但不超过 1.0
	detections := []Detection{
		{ClassName: "person", Confidence: 0.99},
		{ClassName: "bottle", Confidence: 0.99},
		{ClassName: "cup", Confidence: 0.99},
		{ClassName: "bed", Confidence: 0.99},
		{ClassName: "banana", Confidence: 0.99},
	}
	got := c.Classify(detections)
	if got.Confidence != 1.0 {
		t.Fatalf("expected clamp at 1.0, got %v", got.Confidence)
	}

	single := c.Classify([]Detection{{ClassName: "bottle", Confidence: 0.5}})
	if single.Confidence != 0.5 {
		t.Fatalf("expected 0.5, got %v", single.Confidence)
	}
	if single.Confidence < 0 || single.Confidence > 1 {
		t.Fatalf("confidence out of bounds: %v", single.Confidence)
	}
}

func TestBusinessTags(t *testing.T) {
	c := NewClassifier(0.3)

	got := c.Classify([]Detection{
		{ClassName: "person", Confidence: 0.9},
		{ClassName: "bottle", Confidence: 0.9},
	})
	want := map[string]bool{
		"person": true, "human": true,
		"product": true, "container": true, "bottle": true,
		"high_confidence": true,
	}
	if len(got.Tags) != len(want) {
		t.Fatalf("tags = %v, want keys %v", got.Tags, want)
	}
	for _, tag := range got.Tags {
		if !want[tag] {
			t.Fatalf("unexpected tag %s in %v", tag, got.Tags)
		}
	}
}
