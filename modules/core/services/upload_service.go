package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"github.com/iota-uz/sitecms/pkg/auth"
	"github.com/iota-uz/sitecms/pkg/blob"
	"github.com/iota-uz/sitecms/pkg/eventbus"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

// Kind selects the key prefix and the accepted content types of an upload.
type Kind string

const (
	KindImage    Kind = "images"
	KindDocument Kind = "documents"
)

var allowedTypes = map[Kind][]string{
	KindImage: {
		"image/png",
		"image/jpeg",
		"image/gif",
		"image/webp",
		"image/svg+xml",
	},
	KindDocument: {
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"text/plain",
	},
}

var errTooLarge = errors.New("upload exceeds size limit")

type Upload struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type UploadedEvent struct {
	Upload Upload
	Kind   Kind
}

type UploadService struct {
	store     blob.Store
	publisher eventbus.EventBus
	maxSize   int64
}

func NewUploadService(store blob.Store, publisher eventbus.EventBus, maxSize int64) *UploadService {
	return &UploadService{
		store:     store,
		publisher: publisher,
		maxSize:   maxSize,
	}
}

// limitReader fails once more than n bytes have been read.
type limitReader struct {
	r io.Reader
	n int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.n -= int64(n)
	if l.n < 0 {
		return n, errTooLarge
	}
	return n, err
}

// Create stores an admin image upload.
func (s *UploadService) Create(ctx context.Context, a auth.Context, name string, r io.Reader) (Upload, error) {
	if !a.Authenticated() {
		return Upload{}, ordering.ErrUnauthorized
	}
	return s.Store(ctx, KindImage, name, r)
}

// Store sniffs the content type, rejects anything outside kind's allow-list and
// writes the blob under a fresh key.
func (s *UploadService) Store(ctx context.Context, kind Kind, name string, r io.Reader) (Upload, error) {
	allowed, ok := allowedTypes[kind]
	if !ok {
		return Upload{}, fmt.Errorf("unknown upload kind %q", kind)
	}

	head := make([]byte, 3072)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Upload{}, err
	}
	head = head[:n]
	if n == 0 {
		return Upload{}, &ordering.InvalidInputError{Field: "file", Reason: "is empty"}
	}

	mt := mimetype.Detect(head)
	contentType := ""
detect:
	for m := mt; m != nil; m = m.Parent() {
		for _, candidate := range allowed {
			if m.Is(candidate) {
				contentType = candidate
				break detect
			}
		}
	}
	if contentType == "" {
		return Upload{}, &ordering.InvalidInputError{Field: "file", Reason: fmt.Sprintf("content type %s is not accepted", mt.String())}
	}

	var body io.Reader = io.MultiReader(bytes.NewReader(head), r)
	if s.maxSize > 0 {
		body = &limitReader{r: body, n: s.maxSize}
	}

	key := blob.NewKey(string(kind), name)
	info, err := s.store.Put(ctx, key, body, contentType)
	if errors.Is(err, errTooLarge) {
		return Upload{}, &ordering.InvalidInputError{Field: "file", Reason: fmt.Sprintf("exceeds %d bytes", s.maxSize)}
	}
	if err != nil {
		return Upload{}, &ordering.StoreFailureError{Op: "put blob", Err: err}
	}

	url, err := s.store.URL(ctx, key)
	if err != nil {
		return Upload{}, &ordering.StoreFailureError{Op: "blob url", Err: err}
	}
	up := Upload{Key: key, URL: url, ContentType: contentType, Size: info.Size}
	s.publisher.Publish(&UploadedEvent{Upload: up, Kind: kind})
	return up, nil
}

func (s *UploadService) URL(ctx context.Context, key string) (string, error) {
	return s.store.URL(ctx, key)
}

func (s *UploadService) Open(ctx context.Context, key string) (blob.Info, io.ReadCloser, error) {
	info, body, err := s.store.Get(ctx, key)
	if errors.Is(err, blob.ErrNotFound) || errors.Is(err, blob.ErrInvalidKey) {
		return blob.Info{}, nil, ordering.ErrNotFound
	}
	if err != nil {
		return blob.Info{}, nil, &ordering.StoreFailureError{Op: "get blob", Err: err}
	}
	return info, body, nil
}

func (s *UploadService) Delete(ctx context.Context, a auth.Context, key string) error {
	if !a.Authenticated() {
		return ordering.ErrUnauthorized
	}
	err := s.store.Delete(ctx, key)
	if errors.Is(err, blob.ErrNotFound) || errors.Is(err, blob.ErrInvalidKey) {
		return ordering.ErrNotFound
	}
	return err
}
