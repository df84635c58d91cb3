package persistence_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/inquiry"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/page"
	"github.com/iota-uz/sitecms/modules/website/infrastructure/persistence"
)

func TestInmemPageRepository_SaveKeepsCreatedAt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := persistence.NewInmemPageRepository()
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.Save(ctx, page.New(page.Home).Edit("Home", json.RawMessage(`{"hero":"Hi"}`), uuid.New(), first))
	require.NoError(t, err)

	later := first.Add(time.Hour)
	saved, err := repo.Save(ctx, page.New(page.Home).Edit("Home", json.RawMessage(`{"hero":"Hello"}`), uuid.New(), later))
	require.NoError(t, err)
	assert.Equal(t, first, saved.CreatedAt())
	assert.Equal(t, later, saved.UpdatedAt())
	assert.JSONEq(t, `{"hero":"Hello"}`, string(saved.Content()))

	_, err = repo.GetBySlug(ctx, "missing")
	require.ErrorIs(t, err, page.ErrPageNotFound)
}

func TestInmemInquiryRepository_Paginates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := persistence.NewInmemInquiryRepository()
	jobID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := range 5 {
		opts := []inquiry.Option{inquiry.WithCreatedAt(base.Add(time.Duration(i) * time.Minute))}
		if i%2 == 0 {
			opts = append(opts, inquiry.WithJob(jobID))
		}
		_, err := repo.Create(ctx, inquiry.New("Ann", "ann@example.com", opts...))
		require.NoError(t, err)
	}

	count, err := repo.Count(ctx, &inquiry.FindParams{Kind: inquiry.KindApplication})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	got, err := repo.GetPaginated(ctx, &inquiry.FindParams{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, base.Add(3*time.Minute), got[0].CreatedAt(), "newest first")

	empty, err := repo.GetPaginated(ctx, &inquiry.FindParams{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}
