package datalake

import (
	"MedWarehouse/internal/api/config"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioStore 对象存储后端
type minioStore struct {
	client *minio.Client
	bucket string
}

func newMinioStore() (*minioStore, error) {
	cfg := config.Cfg.DataLake.MinIO
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}
	return &minioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *minioStore) WriteJSON(ctx context.Context, date time.Time, channel, name string, payload []byte) (string, error) {
	path := jsonPartition(date, channel, name)
	_, err := s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", err
	}
	return path, nil
}

func (s *minioStore) WriteImage(ctx context.Context, date time.Time, channel, name string, r io.Reader, size int64) (string, error) {
	path := imagePartition(date, channel, name)
	_, err := s.client.PutObject(ctx, s.bucket, path, r, size,
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		return "", err
	}
	return path, nil
}

func (s *minioStore) ReadJSON(ctx context.Context, path string) ([]byte, error) {
	return s.read(ctx, path)
}

func (s *minioStore) ReadImage(ctx context.Context, path string) ([]byte, error) {
	return s.read(ctx, path)
}

func (s *minioStore) read(ctx context.Context, path string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

func (s *minioStore) ListJSON(ctx context.Context, date time.Time) ([]string, error) {
	prefix := fmt.Sprintf("raw/telegram_messages/%s/", date.Format(time.DateOnly))
	var paths []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if strings.HasSuffix(obj.Key, ".json") {
			paths = append(paths, obj.Key)
		}
	}
	return paths, nil
}
