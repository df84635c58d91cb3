// Package blob stores uploaded files (team photos, partner logos, resumes)
// behind one interface with filesystem, memory and S3 drivers.
package blob

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("blob: not found")
	ErrInvalidKey = errors.New("blob: invalid key")
)

type Info struct {
	Key          string
	ContentType  string
	Size         int64
	LastModified time.Time
}

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// URL returns where a browser can fetch key. Local drivers answer with a
	// path served by the uploads controller; S3 answers with a presigned URL.
	URL(ctx context.Context, key string) (string, error)
}

// NewKey returns a fresh key under prefix keeping the extension of name.
func NewKey(prefix, name string) string {
	ext := strings.ToLower(path.Ext(name))
	if len(ext) > 10 {
		ext = ""
	}
	key := uuid.NewString() + ext
	if prefix == "" {
		return key
	}
	return strings.Trim(prefix, "/") + "/" + key
}

// ValidateKey rejects keys that could escape the store root.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}

// LocalURL is the public path for key on drivers served by this process.
func LocalURL(key string) string {
	return "/uploads/" + key
}
