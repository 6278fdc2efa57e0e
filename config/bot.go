package config

import "strings"

// BotDifficulty affects reaction time and aim of server-driven combatants
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

var botDifficultyNames = map[string]BotDifficulty{
	"easy":   BotDifficultyEasy,
	"normal": BotDifficultyNormal,
	"hard":   BotDifficultyHard,
}

// ParseBotDifficulty maps a config name to a difficulty.
func ParseBotDifficulty(s string) (BotDifficulty, bool) {
	d, ok := botDifficultyNames[strings.ToLower(s)]
	return d, ok
}

// BotDifficultyConfig holds tuning values for bot behavior at a specific difficulty
type BotDifficultyConfig struct {
	ReactionDelay int     // Ticks a target must stay in range before the bot fires
	AttackRange   float64 // Distance to start shooting, world units
	AimJitter     float64 // Max aim error in degrees
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties map[BotDifficulty]BotDifficultyConfig
}

// Bot holds bot AI configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionDelay: 30, // 0.5 second at 60 ticks
				AttackRange:   6,
				AimJitter:     12,
			},
			BotDifficultyNormal: {
				ReactionDelay: 15,
				AttackRange:   8,
				AimJitter:     6,
			},
			BotDifficultyHard: {
				ReactionDelay: 5, // Near-instant reaction
				AttackRange:   10,
				AimJitter:     2,
			},
		},
	}
}
