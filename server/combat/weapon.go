package combat

import (
	"errors"
	"fmt"
	"time"

	"github.com/automoto/sixgun/shared/gamemath"
)

// ErrInvalidWeapon is returned when weapon details break a construction invariant.
var ErrInvalidWeapon = errors.New("invalid weapon details")

// ShotPattern selects how many projectiles one trigger pull produces.
type ShotPattern int

const (
	ShotSingle ShotPattern = iota
	ShotMulti
)

func (p ShotPattern) String() string {
	if p == ShotMulti {
		return "multi"
	}
	return "single"
}

// WeaponDetails is the immutable description of a weapon type.
type WeaponDetails struct {
	Damage       int
	MaxDistance  float64 // World units a projectile may travel
	FireRate     float64 // Shots per second
	MagazineSize int
	ReloadTime   time.Duration
	Spread       float64 // Degrees, only used by ShotMulti
	Shot         ShotPattern
	Pellets      int // Projectiles per shot for ShotMulti
	BulletSpeed  float64
	Automatic    bool // Fires while held; semi-automatic weapons need the trigger released
}

// Validate checks the invariants every weapon must hold.
func (d WeaponDetails) Validate() error {
	if d.MagazineSize <= 0 {
		return fmt.Errorf("%w: magazine size %d", ErrInvalidWeapon, d.MagazineSize)
	}
	if !(d.FireRate > 0) {
		return fmt.Errorf("%w: fire rate %v", ErrInvalidWeapon, d.FireRate)
	}
	if d.ReloadTime < 0 {
		return fmt.Errorf("%w: reload time %s", ErrInvalidWeapon, d.ReloadTime)
	}
	if d.Shot == ShotMulti && d.Pellets < 1 {
		return fmt.Errorf("%w: multi-pellet weapon with %d pellets", ErrInvalidWeapon, d.Pellets)
	}
	return nil
}

// Cooldown is the minimum time between two shots.
func (d WeaponDetails) Cooldown() time.Duration {
	return time.Duration(float64(time.Second) / d.FireRate)
}

// PelletCount is the number of projectiles spawned per shot.
func (d WeaponDetails) PelletCount() int {
	if d.Shot == ShotMulti {
		return d.Pellets
	}
	return 1
}

// Weapon is one equipped weapon: its details plus live magazine and timing state.
type Weapon struct {
	Name    string
	Details WeaponDetails

	ammo            int
	lastShotAt      time.Duration
	hasFired        bool
	reloadStartedAt time.Duration
	reloading       bool
	inputLifted     bool
}

// NewWeapon returns a weapon with a full magazine and the trigger released.
func NewWeapon(name string, details WeaponDetails) (*Weapon, error) {
	if err := details.Validate(); err != nil {
		return nil, fmt.Errorf("weapon %q: %w", name, err)
	}
	return &Weapon{
		Name:        name,
		Details:     details,
		ammo:        details.MagazineSize,
		inputLifted: true,
	}, nil
}

// Ammo returns the rounds left in the magazine.
func (w *Weapon) Ammo() int {
	return w.ammo
}

// InputLifted reports whether the trigger was released since the last shot.
func (w *Weapon) InputLifted() bool {
	return w.inputLifted
}

// LiftTrigger arms the next shot of a semi-automatic weapon.
func (w *Weapon) LiftTrigger() {
	w.inputLifted = true
}

// ReloadStartedAt returns the reload start time; ok is false when no reload is pending.
func (w *Weapon) ReloadStartedAt() (start time.Duration, ok bool) {
	return w.reloadStartedAt, w.reloading
}

// IsReloading reports whether a reload is pending.
func (w *Weapon) IsReloading() bool {
	return w.reloading
}

// IsAllowedToShoot reports whether a shot may be fired at now.
func (w *Weapon) IsAllowedToShoot(now time.Duration) bool {
	if w.ammo <= 0 {
		return false
	}
	if w.hasFired && now-w.lastShotAt < w.Details.Cooldown() {
		return false
	}
	return w.Details.Automatic || w.inputLifted
}

// IsAllowedToReload reports whether a new reload may start.
func (w *Weapon) IsAllowedToReload() bool {
	return !w.reloading && w.ammo < w.Details.MagazineSize
}

// StartReload marks a reload as started at now.
func (w *Weapon) StartReload(now time.Duration) {
	w.reloading = true
	w.reloadStartedAt = now
}

// RebaseReload restarts a pending reload at now and reports whether one was pending.
func (w *Weapon) RebaseReload(now time.Duration) bool {
	if !w.reloading {
		return false
	}
	w.reloadStartedAt = now
	return true
}

// ReloadDue reports whether a pending reload completes at or before now.
func (w *Weapon) ReloadDue(now time.Duration) bool {
	return w.reloading && now >= w.reloadStartedAt+w.Details.ReloadTime
}

// FinishReload refills the magazine and clears the pending marker.
func (w *Weapon) FinishReload() {
	w.ammo = w.Details.MagazineSize
	w.reloading = false
	w.reloadStartedAt = 0
}

// consumeRound records a shot at now. An emptied magazine starts a reload
// unless one is already pending; the return value reports that case.
func (w *Weapon) consumeRound(now time.Duration) (autoReload bool) {
	w.lastShotAt = now
	w.hasFired = true
	w.inputLifted = false
	if w.ammo > 0 {
		w.ammo--
	}
	if w.ammo == 0 && !w.reloading {
		w.StartReload(now)
		return true
	}
	return false
}

// BulletLifetime is how long a projectile from this weapon lives, capped at limit.
func (w *Weapon) BulletLifetime(limit time.Duration) time.Duration {
	return gamemath.BulletLifetime(w.Details.MaxDistance, w.Details.BulletSpeed, limit)
}
