package character

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/armory/internal/domain"
)

func TestLootSlotLifecycle(t *testing.T) {
	env := newTestEnv(t, pistol("w1"))
	ctx := context.Background()
	_, err := env.svc.Create(ctx, "Vex")
	require.NoError(t, err)

	_, err = env.svc.PeekLoot(ctx, "Vex")
	assert.ErrorIs(t, err, domain.ErrLootSlotEmpty)

	w, err := env.svc.GenerateLoot(ctx, "Vex")
	require.NoError(t, err)
	assert.Equal(t, "w1", w.ID)

	peeked, err := env.svc.PeekLoot(ctx, "Vex")
	require.NoError(t, err)
	assert.Equal(t, w.ID, peeked.ID)

	c, err := env.svc.AcceptLoot(ctx, "Vex")
	require.NoError(t, err)
	require.Len(t, c.Weapons, 1)
	assert.Equal(t, "w1", c.Weapons[0].ID)

	_, err = env.svc.PeekLoot(ctx, "Vex")
	assert.ErrorIs(t, err, domain.ErrLootSlotEmpty, "accept empties the slot")
	_, err = env.svc.AcceptLoot(ctx, "Vex")
	assert.ErrorIs(t, err, domain.ErrLootSlotEmpty)
}

func TestGenerateLoot_UsesCharacterLevel(t *testing.T) {
	env := newTestEnv(t, pistol("w1"))
	ctx := context.Background()
	_, err := env.svc.Create(ctx, "Vex")
	require.NoError(t, err)
	for i := 0; i < domain.KillsForLevel(3); i++ {
		_, err := env.svc.RecordKill(ctx, "Vex")
		require.NoError(t, err)
	}

	_, err = env.svc.GenerateLoot(ctx, "Vex")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, env.gen.levels)
}

func TestGenerateLoot_ReplacesSlot(t *testing.T) {
	env := newTestEnv(t, pistol("w1"), pistol("w2"))
	ctx := context.Background()
	_, err := env.svc.Create(ctx, "Vex")
	require.NoError(t, err)

	_, err = env.svc.GenerateLoot(ctx, "Vex")
	require.NoError(t, err)
	_, err = env.svc.GenerateLoot(ctx, "Vex")
	require.NoError(t, err)

	w, err := env.svc.PeekLoot(ctx, "Vex")
	require.NoError(t, err)
	assert.Equal(t, "w2", w.ID)
}

func TestGenerateLoot_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.GenerateLoot(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	_, err = env.svc.Create(ctx, "Vex")
	require.NoError(t, err)
	env.gen.err = domain.ErrNotReady
	_, err = env.svc.GenerateLoot(ctx, "Vex")
	assert.True(t, errors.Is(err, domain.ErrNotReady))
	_, err = env.svc.PeekLoot(ctx, "Vex")
	assert.ErrorIs(t, err, domain.ErrLootSlotEmpty, "failed generation leaves the slot alone")
}

func TestDiscardLoot(t *testing.T) {
	env := newTestEnv(t, pistol("w1"))
	ctx := context.Background()
	_, err := env.svc.Create(ctx, "Vex")
	require.NoError(t, err)

	assert.ErrorIs(t, env.svc.DiscardLoot(ctx, "Vex"), domain.ErrLootSlotEmpty)

	_, err = env.svc.GenerateLoot(ctx, "Vex")
	require.NoError(t, err)
	require.NoError(t, env.svc.DiscardLoot(ctx, "Vex"))

	_, err = env.svc.PeekLoot(ctx, "Vex")
	assert.ErrorIs(t, err, domain.ErrLootSlotEmpty)
	assert.Equal(t, 0, env.saver.scheduleCount(), "the slot is never persisted")
}
