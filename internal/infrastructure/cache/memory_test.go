package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Stop()

	ms.Set("k", []byte("v"), time.Minute)
	got, ok := ms.Get("k")
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	ms.Delete("k")
	_, ok = ms.Get("k")
	assert.False(t, ok)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Stop()

	ms.Set("short", []byte("v"), 10*time.Millisecond)
	ms.Set("forever", []byte("v"), 0)
	time.Sleep(30 * time.Millisecond)

	_, ok := ms.Get("short")
	assert.False(t, ok)
	_, ok = ms.Get("forever")
	assert.True(t, ok)
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Stop()

	value := []byte("abc")
	ms.Set("k", value, time.Minute)
	value[0] = 'x'

	got, _ := ms.Get("k")
	assert.Equal(t, []byte("abc"), got)
}

func TestMemoryStore_CleanupSweepsExpired(t *testing.T) {
	ms := NewMemoryStoreWithCleanup(10 * time.Millisecond)
	defer ms.Stop()

	ms.Set("k", []byte("v"), time.Millisecond)
	assert.Eventually(t, func() bool { return ms.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_StopIsIdempotent(t *testing.T) {
	ms := NewMemoryStore()
	ms.Stop()
	ms.Stop()
}
