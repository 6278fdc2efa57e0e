package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the optional config file looked up in the directory passed to Load.
const FileName = "sixgun.json"

// EnvPrefix namespaces environment overrides, e.g. SIXGUN_SERVER_PORT.
const EnvPrefix = "SIXGUN"

// ServerConfig contains host and network settings
type ServerConfig struct {
	Port       int    `json:"port" mapstructure:"port"`
	TickRate   int    `json:"tickRate" mapstructure:"tickRate"` // Ticks per second
	Name       string `json:"name" mapstructure:"name"`
	MaxClients int    `json:"maxClients" mapstructure:"maxClients"`
	Version    string `json:"version" mapstructure:"version"` // Clients must send the same version to join
}

// LevelConfig selects the arena map
type LevelConfig struct {
	Dir           string  `json:"dir" mapstructure:"dir"`                     // Empty uses the embedded arenas
	Name          string  `json:"name" mapstructure:"name"`                   // TMX file inside Dir; empty uses the first one found
	PixelsPerUnit float64 `json:"pixelsPerUnit" mapstructure:"pixelsPerUnit"` // TMX pixels per world unit
	Width         float64 `json:"width" mapstructure:"width"`                 // Fallback arena size when no map loads
	Height        float64 `json:"height" mapstructure:"height"`               // Fallback arena size when no map loads
}

// CombatConfig contains rules shared by every weapon
type CombatConfig struct {
	MaxBulletLifetime time.Duration `json:"maxBulletLifetime" mapstructure:"maxBulletLifetime"`
	EnableFourthSlot  bool          `json:"enableFourthSlot" mapstructure:"enableFourthSlot"`
	Loadout           []string      `json:"loadout" mapstructure:"loadout"` // Weapon names in slot order
	SpawnHealth       int           `json:"spawnHealth" mapstructure:"spawnHealth"`
	Radius            float64       `json:"radius" mapstructure:"radius"`       // Combatant bounding circle
	MoveSpeed         float64       `json:"moveSpeed" mapstructure:"moveSpeed"` // World units per second
	Bots              int           `json:"bots" mapstructure:"bots"`
	BotDifficulty     string        `json:"botDifficulty" mapstructure:"botDifficulty"`
}

// LogConfig controls the root logger
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Pretty bool   `json:"pretty" mapstructure:"pretty"`
}

// MasterConfig points at the server browser
type MasterConfig struct {
	URL      string        `json:"url" mapstructure:"url"` // Empty disables registration
	Address  string        `json:"address" mapstructure:"address"`
	Region   string        `json:"region" mapstructure:"region"`
	Interval time.Duration `json:"interval" mapstructure:"interval"`
}

// Config is the typed snapshot of every setting
type Config struct {
	Server  ServerConfig            `json:"server" mapstructure:"server"`
	Level   LevelConfig             `json:"level" mapstructure:"level"`
	Combat  CombatConfig            `json:"combat" mapstructure:"combat"`
	Weapons map[string]WeaponConfig `json:"weapons" mapstructure:"weapons"`
	Log     LogConfig               `json:"log" mapstructure:"log"`
	Master  MasterConfig            `json:"master" mapstructure:"master"`
}

// Load sets default values and reads the optional config file from configDir.
// A missing file is not an error; viper.ConfigFileUsed reports "" in that case.
func Load(configDir string) error {
	viper.SetDefault("server.port", 7373)
	viper.SetDefault("server.tickRate", 60)
	viper.SetDefault("server.name", "sixgun")
	viper.SetDefault("server.maxClients", 16)
	viper.SetDefault("server.version", "0.1.0")

	viper.SetDefault("level.dir", "")
	viper.SetDefault("level.name", "")
	viper.SetDefault("level.pixelsPerUnit", 16.0)
	viper.SetDefault("level.width", 64.0)
	viper.SetDefault("level.height", 64.0)

	viper.SetDefault("combat.maxBulletLifetime", 5*time.Second)
	viper.SetDefault("combat.enableFourthSlot", false)
	viper.SetDefault("combat.loadout", []string{"revolver", "shotgun", "rifle"})
	viper.SetDefault("combat.spawnHealth", 100)
	viper.SetDefault("combat.radius", 0.5)
	viper.SetDefault("combat.moveSpeed", 3.0)
	viper.SetDefault("combat.bots", 0)
	viper.SetDefault("combat.botDifficulty", "normal")

	for name, w := range Weapons {
		setWeaponDefaults(name, w)
	}

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", false)

	viper.SetDefault("master.url", "")
	viper.SetDefault("master.address", "")
	viper.SetDefault("master.region", "")
	viper.SetDefault("master.interval", 30*time.Second)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// Server unmarshals the loaded settings and validates them.
func Server() (Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks cross-field constraints the individual values cannot express.
func (c Config) Validate() error {
	if c.Server.TickRate <= 0 {
		return fmt.Errorf("server.tickRate must be positive, got %d", c.Server.TickRate)
	}
	if c.Server.MaxClients <= 0 {
		return fmt.Errorf("server.maxClients must be positive, got %d", c.Server.MaxClients)
	}
	if len(c.Combat.Loadout) == 0 {
		return errors.New("combat.loadout is empty")
	}
	for _, name := range c.Combat.Loadout {
		if _, ok := c.Weapons[name]; !ok {
			return fmt.Errorf("combat.loadout: %w: %q", ErrUnknownWeapon, name)
		}
	}
	if _, ok := ParseBotDifficulty(c.Combat.BotDifficulty); !ok {
		return fmt.Errorf("combat.botDifficulty: unknown difficulty %q", c.Combat.BotDifficulty)
	}
	return nil
}

// TickInterval is the duration of one server tick.
func (s ServerConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}
