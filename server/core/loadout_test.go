package core

import (
	"testing"
	"time"

	"github.com/automoto/sixgun/config"
	"github.com/automoto/sixgun/server/combat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoadout(t *testing.T) {
	l, err := NewLoadout(config.Weapons, []string{"rifle", "shotgun"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rifle", "shotgun"}, l.Names())

	h, err := l.Holster()
	require.NoError(t, err)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "rifle", h.Active().Name)
	assert.Equal(t, 4, h.Active().Ammo())
	assert.Equal(t, combat.ShotMulti, h.Slot(1).Details.Shot)
	assert.Equal(t, 5, h.Slot(1).Details.Pellets)
}

func TestNewLoadout_HolstersAreIndependent(t *testing.T) {
	l, err := NewLoadout(config.Weapons, []string{"revolver"})
	require.NoError(t, err)

	a, err := l.Holster()
	require.NoError(t, err)
	b, err := l.Holster()
	require.NoError(t, err)

	a.Active().StartReload(0)
	assert.True(t, a.Active().IsReloading())
	assert.False(t, b.Active().IsReloading())
}

func TestNewLoadout_Errors(t *testing.T) {
	_, err := NewLoadout(config.Weapons, nil)
	assert.ErrorIs(t, err, combat.ErrEmptyHolster)

	_, err = NewLoadout(config.Weapons, []string{"revolver", "bow"})
	assert.ErrorIs(t, err, config.ErrUnknownWeapon)

	catalog := map[string]config.WeaponConfig{
		"odd":    {Damage: 1, MaxDistance: 1, FireRate: 1, MagazineSize: 1, ReloadTime: time.Second, BulletSpeed: 1, Shot: "burst"},
		"broken": {Damage: 1, MaxDistance: 1, FireRate: 1, MagazineSize: 0, ReloadTime: time.Second, BulletSpeed: 1},
	}
	_, err = NewLoadout(catalog, []string{"odd"})
	assert.ErrorIs(t, err, combat.ErrInvalidWeapon)

	_, err = NewLoadout(catalog, []string{"broken"})
	assert.ErrorIs(t, err, combat.ErrInvalidWeapon)
}
