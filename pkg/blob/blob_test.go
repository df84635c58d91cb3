package blob_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/sitecms/pkg/blob"
)

var pngHeader = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"

func exercise(t *testing.T, s blob.Store) {
	t.Helper()
	ctx := context.Background()

	info, err := s.Put(ctx, "team/photo.png", strings.NewReader(pngHeader), "image/png")
	require.NoError(t, err)
	assert.Equal(t, int64(len(pngHeader)), info.Size)

	got, body, err := s.Get(ctx, "team/photo.png")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, body.Close())
	require.NoError(t, err)
	assert.Equal(t, pngHeader, string(data))
	assert.Equal(t, "image/png", got.ContentType)

	url, err := s.URL(ctx, "team/photo.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/team/photo.png", url)

	require.NoError(t, s.Delete(ctx, "team/photo.png"))
	_, _, err = s.Get(ctx, "team/photo.png")
	require.ErrorIs(t, err, blob.ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, "team/photo.png"), blob.ErrNotFound)

	_, err = s.Put(ctx, "../escape", strings.NewReader("x"), "text/plain")
	require.ErrorIs(t, err, blob.ErrInvalidKey)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	exercise(t, blob.NewMemoryStore())
}

func TestFSStore(t *testing.T) {
	t.Parallel()
	s, err := blob.NewFSStore(t.TempDir())
	require.NoError(t, err)
	exercise(t, s)
}

func TestNewKey(t *testing.T) {
	t.Parallel()
	key := blob.NewKey("partners/", "Logo.SVG")
	assert.True(t, strings.HasPrefix(key, "partners/"))
	assert.True(t, strings.HasSuffix(key, ".svg"))
	require.NoError(t, blob.ValidateKey(key))

	assert.NotContains(t, blob.NewKey("", "noext"), "/")
}

func TestValidateKey(t *testing.T) {
	t.Parallel()
	for _, bad := range []string{"", "/abs", "a//b", "a/../b", `a\b`, "."} {
		assert.ErrorIs(t, blob.ValidateKey(bad), blob.ErrInvalidKey, bad)
	}
}
