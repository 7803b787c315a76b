package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_MemoBuildsOnce(t *testing.T) {
	s := New[string, int]()
	calls := 0
	build := func() int {
		calls++
		return 42
	}

	assert.Equal(t, 42, s.Memo("1-1", build))
	assert.Equal(t, 42, s.Memo("1-1", func() int { return 7 }))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.Len())
}

func TestStore_PutNeverOverwrites(t *testing.T) {
	s := New[string, string]()

	assert.True(t, s.Put("key", "first"))
	assert.False(t, s.Put("key", "second"))

	val, ok := s.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "first", val)
}

func TestStore_Reset(t *testing.T) {
	s := New[string, int]()
	s.Put("a", 1)
	s.Put("b", 2)

	s.Reset()

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("a"))
}

func TestStore_ConcurrentMemo(t *testing.T) {
	s := New[int, int]()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Memo(n%5, func() int { return n % 5 })
		}(i)
	}

	wg.Wait()
	assert.Equal(t, 5, s.Len())
	for k := range 5 {
		v, ok := s.Get(k)
		assert.True(t, ok)
		assert.Equal(t, k, v)
	}
}
