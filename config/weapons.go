package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// ErrUnknownWeapon is returned when a loadout names a weapon missing from the catalog.
var ErrUnknownWeapon = errors.New("unknown weapon")

// WeaponConfig describes one weapon type. Distances are world units (meters).
type WeaponConfig struct {
	Damage       int           `json:"damage" mapstructure:"damage"`
	MaxDistance  float64       `json:"maxDistance" mapstructure:"maxDistance"`
	FireRate     float64       `json:"fireRate" mapstructure:"fireRate"` // Shots per second
	MagazineSize int           `json:"magazineSize" mapstructure:"magazineSize"`
	ReloadTime   time.Duration `json:"reloadTime" mapstructure:"reloadTime"`
	Spread       float64       `json:"spread" mapstructure:"spread"` // Degrees across all pellets
	Shot         string        `json:"shot" mapstructure:"shot"`     // "single" or "multi"
	Pellets      int           `json:"pellets" mapstructure:"pellets"`
	BulletSpeed  float64       `json:"bulletSpeed" mapstructure:"bulletSpeed"`
	Automatic    bool          `json:"automatic" mapstructure:"automatic"`
}

// Weapons is the built-in catalog. Every entry becomes a viper default under
// weapons.<name>, so a config file only needs to list what it changes.
var Weapons map[string]WeaponConfig

func init() {
	Weapons = map[string]WeaponConfig{
		"revolver": {
			Damage:       25,
			MaxDistance:  7.5,
			FireRate:     4,
			MagazineSize: 6,
			ReloadTime:   time.Second,
			Shot:         "single",
			BulletSpeed:  12.5,
		},
		"shotgun": {
			Damage:       12,
			MaxDistance:  5,
			FireRate:     1.2,
			MagazineSize: 2,
			ReloadTime:   1500 * time.Millisecond,
			Spread:       24, // Five pellets six degrees apart
			Shot:         "multi",
			Pellets:      5,
			BulletSpeed:  10,
		},
		"rifle": {
			Damage:       60,
			MaxDistance:  20,
			FireRate:     0.8,
			MagazineSize: 4,
			ReloadTime:   2 * time.Second,
			Shot:         "single",
			BulletSpeed:  25,
		},
		"carbine": {
			Damage:       15,
			MaxDistance:  12,
			FireRate:     8,
			MagazineSize: 20,
			ReloadTime:   1800 * time.Millisecond,
			Shot:         "single",
			BulletSpeed:  18,
			Automatic:    true,
		},
	}
}

func setWeaponDefaults(name string, w WeaponConfig) {
	prefix := "weapons." + name + "."
	viper.SetDefault(prefix+"damage", w.Damage)
	viper.SetDefault(prefix+"maxDistance", w.MaxDistance)
	viper.SetDefault(prefix+"fireRate", w.FireRate)
	viper.SetDefault(prefix+"magazineSize", w.MagazineSize)
	viper.SetDefault(prefix+"reloadTime", w.ReloadTime)
	viper.SetDefault(prefix+"spread", w.Spread)
	viper.SetDefault(prefix+"shot", w.Shot)
	viper.SetDefault(prefix+"pellets", w.Pellets)
	viper.SetDefault(prefix+"bulletSpeed", w.BulletSpeed)
	viper.SetDefault(prefix+"automatic", w.Automatic)
}
