package vision

import (
	"MedWarehouse/internal/api/config"
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// Detector 目标检测服务客户端
type Detector struct {
	client    *resty.Client
	maxWidth  int
	threshold float64
}

type detectResponse struct {
	Detections []Detection `json:"detections"`
}

func NewDetector() *Detector {
	cfg := config.Cfg.Detector
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(time.Duration(cfg.Timeout) * time.Second)
	return &Detector{
		client:    client,
		maxWidth:  cfg.MaxImageWidth,
		threshold: cfg.Confidence,
	}
}

// Detect 解码图片，超宽时先等比缩小再上传检测服务
func (d *Detector) Detect(ctx context.Context, name string, data []byte) ([]Detection, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", name, err)
	}
	if d.maxWidth > 0 && img.Bounds().Dx() > d.maxWidth {
		img = imaging.Resize(img, d.maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode image %s: %w", name, err)
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetFileReader("image", "image.jpg", &buf).
		SetFormData(map[string]string{
			"confidence": fmt.Sprintf("%g", d.threshold),
		}).
		Post("/detect")
	if err != nil {
		return nil, fmt.Errorf("detect request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("detect service returned %s", resp.Status())
	}

	var out detectResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode detect response: %w", err)
	}
	return out.Detections, nil
}
