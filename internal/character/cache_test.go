package character

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/armory/internal/domain"
)

func TestCharacterCache_StoresPrivateCopies(t *testing.T) {
	cache := newCharacterCache(CacheConfig{Size: 4, TTL: time.Minute})

	c := domain.NewCharacter("Vex")
	c.Skills = []string{"dash"}
	cache.Set(c)
	c.Skills[0] = "mutated"

	got, ok := cache.Get("Vex")
	require.True(t, ok)
	assert.Equal(t, "dash", got.Skills[0])

	got.HP = 1
	again, _ := cache.Get("Vex")
	assert.Equal(t, domain.MaxHPForLevel(1), again.HP)
}

func TestCharacterCache_InvalidateAndLen(t *testing.T) {
	cache := newCharacterCache(CacheConfig{Size: 2, TTL: time.Minute})

	cache.Set(domain.NewCharacter("Vex"))
	cache.Set(domain.NewCharacter("Rook"))
	assert.Equal(t, 2, cache.Len())

	cache.Set(domain.NewCharacter("Ash"))
	assert.Equal(t, 2, cache.Len(), "size bound evicts the oldest entry")
	_, ok := cache.Get("Vex")
	assert.False(t, ok)

	cache.Invalidate("Rook")
	assert.Equal(t, 1, cache.Len())
	_, ok = cache.Get("Rook")
	assert.False(t, ok)
}

func TestCharacterCache_VersionMismatchIsMiss(t *testing.T) {
	cache := newCharacterCache(CacheConfig{})
	cache.lru.Add("Vex", &cachedCharacterEntry{Version: "old", Character: domain.NewCharacter("Vex")})

	_, ok := cache.Get("Vex")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len(), "stale entries are evicted on read")
}
