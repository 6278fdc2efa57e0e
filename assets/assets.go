package assets

import "embed"

// LevelDir is the directory inside Levels that holds the TMX arenas.
const LevelDir = "levels"

// Levels embeds the stock arenas so the server boots without a level directory.
//
//go:embed all:levels
var Levels embed.FS
