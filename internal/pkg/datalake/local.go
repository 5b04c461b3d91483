package datalake

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// localStore 本地文件系统后端，开发与单机部署用
type localStore struct {
	root string
}

func NewLocalStore(root string) (Store, error) {
	if root == "" {
		root = "data"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create datalake root: %w", err)
	}
	return &localStore{root: root}, nil
}

func (s *localStore) write(path string, r io.Reader) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err = io.Copy(f, r); err != nil {
		return "", err
	}
	return path, nil
}

func (s *localStore) WriteJSON(_ context.Context, date time.Time, channel, name string, payload []byte) (string, error) {
	return s.write(jsonPartition(date, channel, name), strings.NewReader(string(payload)))
}

func (s *localStore) WriteImage(_ context.Context, date time.Time, channel, name string, r io.Reader, _ int64) (string, error) {
	return s.write(imagePartition(date, channel, name), r)
}

func (s *localStore) ReadJSON(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, filepath.FromSlash(path)))
}

func (s *localStore) ReadImage(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, filepath.FromSlash(path)))
}

// ListJSON 列出某天分区内的全部 JSON 对象
func (s *localStore) ListJSON(_ context.Context, date time.Time) ([]string, error) {
	prefix := fmt.Sprintf("raw/telegram_messages/%s", date.Format(time.DateOnly))
	dir := filepath.Join(s.root, filepath.FromSlash(prefix))
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".json") {
			rel, rerr := filepath.Rel(s.root, p)
			if rerr != nil {
				return rerr
			}
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return paths, nil
}
