package refdata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gebv/billup/cache"
)

type fakeFetcher struct {
	calls int
	list  []BillerInfo
	err   error
}

func (f *fakeFetcher) FetchBillers(ctx context.Context, category string) ([]BillerInfo, error) {
	f.calls++
	return f.list, f.err
}

func TestBillersCached(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{list: []BillerInfo{{Code: "dstv", DisplayName: "DStv"}}}
	c := cache.New(cache.NewMemoryStore(), cache.NewSystemClock())
	s := NewService(c, f)

	first, err := s.Billers(ctx, "tv")
	require.NoError(t, err)
	require.Equal(t, f.list, first)

	second, err := s.Billers(ctx, "tv")
	require.NoError(t, err)
	require.Equal(t, f.list, second)
	require.Equal(t, 1, f.calls, "second read served from cache")
}

func TestBillersRefetchedAfterExpiry(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{list: []BillerInfo{{Code: "gotv", DisplayName: "GOtv"}}}
	store := cache.NewMemoryStore()
	storedAt := time.Date(2020, 2, 1, 12, 0, 0, 0, time.UTC)

	_, err := NewService(cache.New(store, cache.NewFixedClock(storedAt)), f).Billers(ctx, "tv")
	require.NoError(t, err)
	require.Equal(t, 1, f.calls)

	// Eight days later the cached catalog is stale.
	later := cache.New(store, cache.NewFixedClock(storedAt.Add(8*24*time.Hour)))
	_, err = NewService(later, f).Billers(ctx, "tv")
	require.NoError(t, err)
	require.Equal(t, 2, f.calls)
}
