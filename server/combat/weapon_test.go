package combat

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func sixShooter() WeaponDetails {
	return WeaponDetails{
		Damage:       25,
		MaxDistance:  7.5,
		FireRate:     math.MaxFloat64,
		MagazineSize: 6,
		ReloadTime:   time.Second,
		BulletSpeed:  12.5,
	}
}

func mustWeapon(t *testing.T, name string, d WeaponDetails) *Weapon {
	t.Helper()
	w, err := NewWeapon(name, d)
	require.NoError(t, err)
	return w
}

func TestNewWeapon_StartsFull(t *testing.T) {
	w := mustWeapon(t, "revolver", sixShooter())

	assert.Equal(t, 6, w.Ammo())
	assert.True(t, w.InputLifted())
	assert.False(t, w.IsReloading())
	assert.True(t, w.IsAllowedToShoot(0), "a weapon that never fired has no cooldown")
}

func TestNewWeapon_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WeaponDetails)
	}{
		{"zero magazine", func(d *WeaponDetails) { d.MagazineSize = 0 }},
		{"zero fire rate", func(d *WeaponDetails) { d.FireRate = 0 }},
		{"NaN fire rate", func(d *WeaponDetails) { d.FireRate = math.NaN() }},
		{"negative reload", func(d *WeaponDetails) { d.ReloadTime = -time.Second }},
		{"multi without pellets", func(d *WeaponDetails) { d.Shot = ShotMulti; d.Pellets = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sixShooter()
			tt.mutate(&d)
			_, err := NewWeapon("bad", d)
			assert.ErrorIs(t, err, ErrInvalidWeapon)
		})
	}
}

func TestWeapon_FireRateRefusal(t *testing.T) {
	d := sixShooter()
	d.FireRate = 2
	d.Automatic = true
	w := mustWeapon(t, "pistol", d)

	require.True(t, w.IsAllowedToShoot(0))
	w.consumeRound(0)

	assert.False(t, w.IsAllowedToShoot(499*time.Millisecond))
	assert.True(t, w.IsAllowedToShoot(500*time.Millisecond))
}

func TestWeapon_SemiAutoNeedsLift(t *testing.T) {
	w := mustWeapon(t, "revolver", sixShooter())
	w.consumeRound(0)

	assert.False(t, w.IsAllowedToShoot(time.Second))
	w.LiftTrigger()
	assert.True(t, w.IsAllowedToShoot(time.Second))
}

func TestWeapon_EmptyStartsReload(t *testing.T) {
	d := sixShooter()
	d.MagazineSize = 1
	w := mustWeapon(t, "derringer", d)

	assert.True(t, w.consumeRound(3*time.Second))
	assert.Equal(t, 0, w.Ammo())
	start, ok := w.ReloadStartedAt()
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, start)
	assert.False(t, w.IsAllowedToShoot(10*time.Second))
	assert.False(t, w.IsAllowedToReload(), "already reloading")
}

func TestWeapon_ReloadDueInclusive(t *testing.T) {
	w := mustWeapon(t, "revolver", sixShooter())
	w.consumeRound(0)
	w.StartReload(2 * time.Second)

	assert.False(t, w.ReloadDue(2*time.Second+999*time.Millisecond))
	assert.True(t, w.ReloadDue(3*time.Second))

	w.FinishReload()
	assert.Equal(t, 6, w.Ammo())
	assert.False(t, w.IsReloading())
}

func TestWeapon_RebaseReload(t *testing.T) {
	w := mustWeapon(t, "revolver", sixShooter())
	assert.False(t, w.RebaseReload(time.Second), "nothing pending")

	w.consumeRound(0)
	w.StartReload(0)
	assert.True(t, w.RebaseReload(800*time.Millisecond))
	assert.False(t, w.ReloadDue(time.Second))
	assert.True(t, w.ReloadDue(1800*time.Millisecond))
}

func TestWeapon_IsAllowedToReload(t *testing.T) {
	w := mustWeapon(t, "revolver", sixShooter())
	assert.False(t, w.IsAllowedToReload(), "full magazine")

	w.consumeRound(0)
	assert.True(t, w.IsAllowedToReload())
}

func TestWeapon_BulletLifetime(t *testing.T) {
	w := mustWeapon(t, "revolver", sixShooter())
	assert.Equal(t, 600*time.Millisecond, w.BulletLifetime(5*time.Second))
	assert.Equal(t, 100*time.Millisecond, w.BulletLifetime(100*time.Millisecond))
}

func TestWeapon_AmmoNeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := WeaponDetails{
			MagazineSize: rapid.IntRange(1, 40).Draw(t, "magazine"),
			FireRate:     rapid.Float64Range(0.5, 50).Draw(t, "fireRate"),
			ReloadTime:   time.Duration(rapid.IntRange(0, 3000).Draw(t, "reloadMs")) * time.Millisecond,
			Automatic:    rapid.Bool().Draw(t, "automatic"),
			MaxDistance:  10,
			BulletSpeed:  20,
		}
		w, err := NewWeapon("w", d)
		if err != nil {
			t.Fatalf("new weapon: %v", err)
		}

		steps := rapid.SliceOfN(rapid.IntRange(0, 3), 1, 300).Draw(t, "steps")
		now := time.Duration(0)
		for _, step := range steps {
			now += 16 * time.Millisecond
			switch step {
			case 0:
				if w.IsAllowedToShoot(now) {
					before := w.Ammo()
					w.consumeRound(now)
					if w.Ammo() != before-1 {
						t.Fatalf("shot took %d rounds", before-w.Ammo())
					}
				}
			case 1:
				w.LiftTrigger()
			case 2:
				if w.IsAllowedToReload() {
					w.StartReload(now)
				}
			case 3:
				if w.ReloadDue(now) {
					w.FinishReload()
				}
			}
			if w.Ammo() < 0 || w.Ammo() > d.MagazineSize {
				t.Fatalf("ammo %d outside [0, %d]", w.Ammo(), d.MagazineSize)
			}
			if w.Ammo() == 0 && !w.IsReloading() {
				t.Fatalf("empty magazine without a pending reload")
			}
		}
	})
}
