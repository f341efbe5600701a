package character

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/share"
)

func TestShareWeapon_RemovesAfterEncode(t *testing.T) {
	env := newTestEnv(t, pistol("p1"), riotShield("s1", 80))
	env.createWithInventory(t, "Vex")
	ctx := context.Background()
	_, err := env.svc.Equip(ctx, "Vex", "s1")
	require.NoError(t, err)

	res, err := env.svc.ShareWeapon(ctx, "Vex", "s1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.QRCode)
	assert.True(t, res.Weapon.IsShared)

	decoded, err := env.codec.Decode(res.Payload)
	require.NoError(t, err)
	assert.Equal(t, "Riot Shield", decoded.Type)
	assert.Equal(t, 80, decoded.ShieldPoints)

	c, err := env.svc.Get(ctx, "Vex")
	require.NoError(t, err)
	require.Len(t, c.Weapons, 1)
	assert.Equal(t, "p1", c.Weapons[0].ID)
	assert.Equal(t, 0, c.MaxShield)
}

func TestShareWeapon_FailureKeepsWeapon(t *testing.T) {
	received := pistol("r1")
	received.IsReceived = true
	unknown := pistol("u1")
	unknown.Type = "Laser Pistl"

	env := newTestEnv(t, received, unknown)
	env.createWithInventory(t, "Vex")
	ctx := context.Background()

	_, err := env.svc.ShareWeapon(ctx, "Vex", "r1")
	assert.ErrorIs(t, err, domain.ErrNotShareable)

	_, err = env.svc.ShareWeapon(ctx, "Vex", "u1")
	require.ErrorIs(t, err, domain.ErrUnmappableValue)
	assert.Contains(t, err.Error(), `did you mean "Laser Pistol"`)

	_, err = env.svc.ShareWeapon(ctx, "Vex", "missing")
	assert.ErrorIs(t, err, domain.ErrWeaponNotFound)

	c, err := env.svc.Get(ctx, "Vex")
	require.NoError(t, err)
	assert.Len(t, c.Weapons, 2)
}

func TestShareLoot(t *testing.T) {
	env := newTestEnv(t, pistol("p1"))
	ctx := context.Background()
	_, err := env.svc.Create(ctx, "Vex")
	require.NoError(t, err)

	_, err = env.svc.ShareLoot(ctx, "Vex")
	assert.ErrorIs(t, err, domain.ErrLootSlotEmpty)

	_, err = env.svc.GenerateLoot(ctx, "Vex")
	require.NoError(t, err)
	res, err := env.svc.ShareLoot(ctx, "Vex")
	require.NoError(t, err)
	assert.Equal(t, "[3,1,1,20,85,20,1,0]", res.Payload)

	_, err = env.svc.PeekLoot(ctx, "Vex")
	assert.ErrorIs(t, err, domain.ErrLootSlotEmpty)
}

func TestReceiveShared_IsTerminal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.Create(ctx, "Vex")
	require.NoError(t, err)

	w, err := env.svc.ReceiveShared(ctx, "Vex", "[3,1,1,20,85,20,1,0]")
	require.NoError(t, err)
	assert.True(t, w.IsReceived)
	assert.Equal(t, "Common Laser Pistol", w.Name)

	// sharing the received loot fails and leaves it in the slot
	_, err = env.svc.ShareLoot(ctx, "Vex")
	assert.ErrorIs(t, err, domain.ErrNotShareable)
	slot, err := env.svc.PeekLoot(ctx, "Vex")
	require.NoError(t, err)
	assert.Equal(t, w.ID, slot.ID)

	// and it stays unshareable once in the inventory
	_, err = env.svc.AcceptLoot(ctx, "Vex")
	require.NoError(t, err)
	_, err = env.svc.ShareWeapon(ctx, "Vex", w.ID)
	assert.ErrorIs(t, err, domain.ErrNotShareable)
}

func TestReceiveShared_FailureKeepsSlot(t *testing.T) {
	env := newTestEnv(t, pistol("p1"))
	ctx := context.Background()
	_, err := env.svc.Create(ctx, "Vex")
	require.NoError(t, err)
	_, err = env.svc.GenerateLoot(ctx, "Vex")
	require.NoError(t, err)

	tests := map[string]error{
		"not json":              domain.ErrMalformedPayload,
		"[3,1,1]":               domain.ErrMalformedPayload,
		"[2,1,1,20,85,20,1,0]":  domain.ErrUnsupportedVersion,
		"[3,99,1,20,85,20,1,0]": domain.ErrUnmappableValue,
	}
	for payload, want := range tests {
		_, err := env.svc.ReceiveShared(ctx, "Vex", payload)
		assert.ErrorIs(t, err, want, payload)
	}

	slot, err := env.svc.PeekLoot(ctx, "Vex")
	require.NoError(t, err)
	assert.Equal(t, "p1", slot.ID)

	_, err = env.svc.ReceiveShared(ctx, "ghost", "[3,1,1,20,85,20,1,0]")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestReceiveImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.Create(ctx, "Vex")
	require.NoError(t, err)

	png, err := share.RenderQR("[3,2,5,40,90,22,4,0]", 256)
	require.NoError(t, err)

	w, err := env.svc.ReceiveImage(ctx, "Vex", png)
	require.NoError(t, err)
	assert.Equal(t, "Legendary Revolver", w.Name)
	assert.Equal(t, 40, w.Damage)

	_, err = env.svc.ReceiveImage(ctx, "Vex", []byte("not an image"))
	assert.ErrorIs(t, err, domain.ErrNoCodeFound)
}

func TestAcceptScanned(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.Create(ctx, "Vex")
	require.NoError(t, err)

	w, err := env.codec.Decode("[3,1,2,20,85,20,1,0]")
	require.NoError(t, err)
	require.NoError(t, env.svc.AcceptScanned(ctx, "Vex", w))

	slot, err := env.svc.PeekLoot(ctx, "Vex")
	require.NoError(t, err)
	assert.Equal(t, "Uncommon Laser Pistol", slot.Name)

	assert.ErrorIs(t, env.svc.AcceptScanned(ctx, "Vex", pistol("x")), domain.ErrMalformedPayload)
	assert.ErrorIs(t, env.svc.AcceptScanned(ctx, "ghost", w), domain.ErrCharacterNotFound)
}
