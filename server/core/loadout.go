package core

import (
	"fmt"

	"github.com/automoto/sixgun/config"
	"github.com/automoto/sixgun/server/combat"
)

// weaponDetails converts a catalog entry into the combat description.
func weaponDetails(wc config.WeaponConfig) (combat.WeaponDetails, error) {
	var shot combat.ShotPattern
	switch wc.Shot {
	case "", "single":
		shot = combat.ShotSingle
	case "multi":
		shot = combat.ShotMulti
	default:
		return combat.WeaponDetails{}, fmt.Errorf("%w: shot pattern %q", combat.ErrInvalidWeapon, wc.Shot)
	}

	return combat.WeaponDetails{
		Damage:       wc.Damage,
		MaxDistance:  wc.MaxDistance,
		FireRate:     wc.FireRate,
		MagazineSize: wc.MagazineSize,
		ReloadTime:   wc.ReloadTime,
		Spread:       wc.Spread,
		Shot:         shot,
		Pellets:      wc.Pellets,
		BulletSpeed:  wc.BulletSpeed,
		Automatic:    wc.Automatic,
	}, nil
}

// Loadout is the validated weapon set every combatant spawns with.
type Loadout struct {
	names   []string
	details []combat.WeaponDetails
}

// NewLoadout resolves names against the catalog and validates each weapon.
func NewLoadout(catalog map[string]config.WeaponConfig, names []string) (*Loadout, error) {
	if len(names) == 0 {
		return nil, combat.ErrEmptyHolster
	}
	l := &Loadout{
		names:   make([]string, 0, len(names)),
		details: make([]combat.WeaponDetails, 0, len(names)),
	}
	for _, name := range names {
		wc, ok := catalog[name]
		if !ok {
			return nil, fmt.Errorf("loadout: %w: %q", config.ErrUnknownWeapon, name)
		}
		d, err := weaponDetails(wc)
		if err != nil {
			return nil, fmt.Errorf("loadout %q: %w", name, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("loadout %q: %w", name, err)
		}
		l.names = append(l.names, name)
		l.details = append(l.details, d)
	}
	return l, nil
}

// Names lists the weapons in slot order.
func (l *Loadout) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Holster builds a fresh holster with full magazines.
func (l *Loadout) Holster() (*combat.Holster, error) {
	weapons := make([]*combat.Weapon, len(l.names))
	for i, name := range l.names {
		w, err := combat.NewWeapon(name, l.details[i])
		if err != nil {
			return nil, err
		}
		weapons[i] = w
	}
	return combat.NewHolster(weapons...)
}
