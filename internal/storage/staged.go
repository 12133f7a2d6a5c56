package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"collabcore/internal/transport"
)

const (
	stagedPrefix    = "staged"
	metaOrigName    = "original-filename"
	defaultMIMEType = "application/octet-stream"
)

var (
	ErrNotStaged  = errors.New("staged file not found")
	ErrReaderNil  = errors.New("reader is nil")
	ErrInvalidKey = errors.New("invalid staged key")
)

// Staged is a file held in storage before it is forwarded upstream.
type Staged struct {
	Key         string `json:"key"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Stage stores r under a generated key (uuid + original extension) and remembers
// the original file name in the object metadata.
func Stage(ctx context.Context, s Storage, filename, contentType string, r io.Reader, size int64) (Staged, error) {
	if r == nil {
		return Staged{}, ErrReaderNil
	}
	if contentType == "" {
		contentType = defaultMIMEType
	}
	name := filepath.Base(filename)
	key := path.Join(stagedPrefix, uuid.NewString()+strings.ToLower(filepath.Ext(name)))

	info, err := s.Put(ctx, key, r, PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    map[string]string{metaOrigName: name},
	})
	if err != nil {
		return Staged{}, fmt.Errorf("stage %s: %w", name, err)
	}
	return Staged{Key: info.Key, Filename: name, Size: info.Size, ContentType: contentType}, nil
}

// Open turns staged keys into upload parts. The returned closer releases every opened
// object; on error nothing is left open.
func Open(ctx context.Context, s Storage, keys ...string) ([]transport.File, io.Closer, error) {
	files := make([]transport.File, 0, len(keys))
	closers := make(multiCloser, 0, len(keys))
	for _, key := range keys {
		if !ValidKey(key) {
			closers.Close()
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
		rc, info, err := s.Get(ctx, key)
		if err != nil {
			closers.Close()
			return nil, nil, fmt.Errorf("open staged %s: %w", key, err)
		}
		closers = append(closers, rc)
		files = append(files, transport.File{
			Name:        originalName(info),
			ContentType: info.ContentType,
			Reader:      rc,
		})
	}
	return files, closers, nil
}

// Discard deletes staged keys, returning the first failure.
func Discard(ctx context.Context, s Storage, keys ...string) error {
	var first error
	for _, key := range keys {
		if err := s.Delete(ctx, key); err != nil && first == nil {
			first = fmt.Errorf("discard staged %s: %w", key, err)
		}
	}
	return first
}

// ValidKey reports whether key designates an object under the staging prefix.
func ValidKey(key string) bool {
	clean := path.Clean(key)
	return clean == key && strings.HasPrefix(key, stagedPrefix+"/") && !strings.Contains(key, "..")
}

func originalName(info ObjectInfo) string {
	for k, v := range info.Metadata {
		if strings.EqualFold(k, metaOrigName) && v != "" {
			return v
		}
	}
	return path.Base(info.Key)
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
