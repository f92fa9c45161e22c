package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID_MonotonicAndUnique(t *testing.T) {
	prev := NewULID()
	assert.True(t, IsULID(prev))
	for i := 0; i < 100; i++ {
		next := NewULID()
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestNewULID_Concurrent(t *testing.T) {
	const n = 200
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- NewULID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, n)
	for id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestIsULID(t *testing.T) {
	assert.False(t, IsULID(""))
	assert.False(t, IsULID("not-a-ulid"))
	assert.True(t, IsULID("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
}

func TestNullStringHelpers(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)
	assert.Equal(t, "a.mp3", NullStringToString(StringToNullString("a.mp3")))
	assert.Equal(t, 1, BoolToNumber(true))
	assert.Equal(t, 0, BoolToNumber(false))
}
