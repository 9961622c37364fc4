package imageprocessor

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCache(t *testing.T) {
	cache, err := NewDescriptorCache(0)
	require.NoError(t, err)

	_, ok := cache.Get("a.png")
	assert.False(t, ok)

	cache.Add("a.png", oneFeature(1))
	got, ok := cache.Get("a.png")
	require.True(t, ok)
	assert.Equal(t, oneFeature(1), got)
	assert.Equal(t, 1, cache.Len())

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestLRUCache_Evicts(t *testing.T) {
	cache, err := NewDescriptorCache(2)
	require.NoError(t, err)

	cache.Add("a.png", oneFeature(1))
	cache.Add("b.png", oneFeature(2))
	_, _ = cache.Get("a.png") // a is now most recently used
	cache.Add("c.png", oneFeature(3))

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get("b.png")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = cache.Get("a.png")
	assert.True(t, ok)
	_, ok = cache.Get("c.png")
	assert.True(t, ok)
}

func TestMapCache_ConcurrentAccess(t *testing.T) {
	cache, err := NewDescriptorCache(0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("img%d.png", n%4)
			cache.Add(key, oneFeature(byte(n%4)))
			_, _ = cache.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, cache.Len())
}
