package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCache(t *testing.T) {
	records := []RegistryRecord{{GivenName: "Anna", FamilyName: "Muster", Class: "5a", StudentID: "S1"}}

	t.Run("ReusesFreshEntry", func(t *testing.T) {
		cache := NewIndexCache(time.Minute)
		var loads atomic.Int32
		load := func(ctx context.Context) ([]RegistryRecord, error) {
			loads.Add(1)
			return records, nil
		}

		first, err := cache.GetOrBuild(context.Background(), "registry.csv|etag1", load)
		require.NoError(t, err)
		second, err := cache.GetOrBuild(context.Background(), "registry.csv|etag1", load)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, int32(1), loads.Load())
	})

	t.Run("NewKeyRebuilds", func(t *testing.T) {
		cache := NewIndexCache(time.Minute)
		var loads atomic.Int32
		load := func(ctx context.Context) ([]RegistryRecord, error) {
			loads.Add(1)
			return records, nil
		}

		_, err := cache.GetOrBuild(context.Background(), "etag1", load)
		require.NoError(t, err)
		_, err = cache.GetOrBuild(context.Background(), "etag2", load)
		require.NoError(t, err)

		assert.Equal(t, int32(2), loads.Load())
	})

	t.Run("ZeroTTLDisablesCaching", func(t *testing.T) {
		cache := NewIndexCache(0)
		var loads atomic.Int32
		load := func(ctx context.Context) ([]RegistryRecord, error) {
			loads.Add(1)
			return records, nil
		}

		for i := 0; i < 3; i++ {
			idx, err := cache.GetOrBuild(context.Background(), "k", load)
			require.NoError(t, err)
			assert.Equal(t, 1, idx.Len())
		}
		assert.Equal(t, int32(3), loads.Load())
	})

	t.Run("InvalidateForcesRebuild", func(t *testing.T) {
		cache := NewIndexCache(time.Minute)
		var loads atomic.Int32
		load := func(ctx context.Context) ([]RegistryRecord, error) {
			loads.Add(1)
			return records, nil
		}

		_, _ = cache.GetOrBuild(context.Background(), "k", load)
		cache.Invalidate("k")
		_, _ = cache.GetOrBuild(context.Background(), "k", load)

		assert.Equal(t, int32(2), loads.Load())
	})

	t.Run("LoadErrorNotCached", func(t *testing.T) {
		cache := NewIndexCache(time.Minute)
		_, err := cache.GetOrBuild(context.Background(), "k", func(ctx context.Context) ([]RegistryRecord, error) {
			return nil, errors.New("registry unavailable")
		})
		assert.EqualError(t, err, "registry unavailable")

		idx, err := cache.GetOrBuild(context.Background(), "k", func(ctx context.Context) ([]RegistryRecord, error) {
			return records, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, idx.Len())
	})

	t.Run("ConcurrentMissesShareBuild", func(t *testing.T) {
		cache := NewIndexCache(time.Minute)
		var loads atomic.Int32
		release := make(chan struct{})
		load := func(ctx context.Context) ([]RegistryRecord, error) {
			loads.Add(1)
			<-release
			return records, nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := cache.GetOrBuild(context.Background(), "k", load)
				assert.NoError(t, err)
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), loads.Load())
	})
}
