package progress_test

import (
	"sync"
	"testing"

	"tubefetch/backend/internal/progress"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := progress.NewMemoryStore()

	_, ok := store.Get("x")
	require.False(t, ok)

	store.Set("x", 42)
	pct, ok := store.Get("x")
	require.True(t, ok)
	require.Equal(t, 42, pct)

	store.Delete("x")
	_, ok = store.Get("x")
	require.False(t, ok)
}

func TestMemoryStore_ClampsRange(t *testing.T) {
	store := progress.NewMemoryStore()

	store.Set("low", -5)
	pct, _ := store.Get("low")
	require.Equal(t, 0, pct)

	store.Set("high", 250)
	pct, _ = store.Get("high")
	require.Equal(t, 100, pct)
}

func TestMemoryStore_ConcurrentWriters(t *testing.T) {
	store := progress.NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for p := 0; p <= 100; p++ {
				store.Set("dl", p)
				store.Get("dl")
			}
		}(i)
	}
	wg.Wait()

	pct, ok := store.Get("dl")
	require.True(t, ok)
	require.Equal(t, 100, pct)
}
