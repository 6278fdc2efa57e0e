package core

import (
	"testing"
	"testing/fstest"

	"github.com/automoto/sixgun/assets"
	"github.com/automoto/sixgun/config"
	"github.com/automoto/sixgun/shared/leveldata"
	"github.com/automoto/sixgun/tags"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corridor() *leveldata.ArenaData {
	// 4x2 tiles of 16 px with a wall tile at (3, 0).
	return &leveldata.ArenaData{
		MapWidth:  64,
		MapHeight: 32,
		Solids:    []leveldata.SolidRect{{X: 48, Y: 0, W: 16, H: 16}},
		Spawns: []leveldata.SpawnPoint{
			{X: 8, Y: 8, Index: 0},
			{X: 24, Y: 24, Rotation: 1, Index: 1},
		},
	}
}

func TestNewServerLevel_ScalesToWorldUnits(t *testing.T) {
	l := NewServerLevel("corridor", corridor(), 16)

	assert.Equal(t, 4.0, l.Width)
	assert.Equal(t, 2.0, l.Height)
	assert.Equal(t, 16.0, l.Scale)
	assert.Equal(t, leveldata.SpawnPoint{X: 0.5, Y: 0.5}, l.Spawns[0])
	assert.Equal(t, leveldata.SpawnPoint{X: 1.5, Y: 1.5, Rotation: 1, Index: 1}, l.Spawns[1])
}

func TestServerLevel_SpawnPointCycles(t *testing.T) {
	l := NewServerLevel("corridor", corridor(), 16)
	assert.Equal(t, l.Spawns[0], l.SpawnPoint(0))
	assert.Equal(t, l.Spawns[1], l.SpawnPoint(1))
	assert.Equal(t, l.Spawns[0], l.SpawnPoint(2))

	empty := EmptyLevel(10, 6, 16)
	assert.Equal(t, leveldata.SpawnPoint{X: 5, Y: 3}, empty.SpawnPoint(3))
}

func TestServerLevel_Contains(t *testing.T) {
	l := EmptyLevel(10, 6, 16)
	assert.True(t, l.Contains(0, 0))
	assert.True(t, l.Contains(10, 6))
	assert.False(t, l.Contains(-0.1, 3))
	assert.False(t, l.Contains(5, 6.1))
}

func TestServerLevel_BoxRoundTrip(t *testing.T) {
	l := EmptyLevel(10, 6, 16)
	obj := l.AddBox(2.5, 3, 1, 1, tags.ResolvCombatant)
	x, y := l.Center(obj)
	assert.InDelta(t, 2.5, x, 1e-9)
	assert.InDelta(t, 3.0, y, 1e-9)

	l.MoveTo(obj, 7, 1.25)
	x, y = l.Center(obj)
	assert.InDelta(t, 7.0, x, 1e-9)
	assert.InDelta(t, 1.25, y, 1e-9)
}

func TestServerLevel_SweepStopsAtSolid(t *testing.T) {
	l := NewServerLevel("corridor", corridor(), 16)
	obj := l.AddBox(1.5, 0.5, 1, 1, tags.ResolvCombatant)

	// The wall starts at x=3, so the box edge at 2 may move one unit.
	mx, my, blocked := l.Sweep(obj, 1.5, 0)
	assert.True(t, blocked)
	assert.InDelta(t, 1.0, mx, 1e-9)
	assert.Zero(t, my)

	mx, my, blocked = l.Sweep(obj, -1, 0)
	assert.False(t, blocked)
	assert.Equal(t, -1.0, mx)
	assert.Zero(t, my)
}

func TestLoadServerLevel(t *testing.T) {
	fsys := fstest.MapFS{
		"arenas/a.tmx": {Data: []byte(corridorTMX)},
		"arenas/b.tmx": {Data: []byte(corridorTMX)},
	}

	l, err := LoadServerLevel(fsys, "arenas", "", 16)
	require.NoError(t, err)
	assert.Equal(t, "a", l.Name)

	l, err = LoadServerLevel(fsys, "arenas", "b", 16)
	require.NoError(t, err)
	assert.Equal(t, "b", l.Name)
	assert.Equal(t, 4.0, l.Width)

	_, err = LoadServerLevel(fsys, "arenas", "c", 16)
	assert.ErrorContains(t, err, `arena "c" not found`)

	_, err = LoadServerLevel(fsys, "elsewhere", "", 16)
	assert.Error(t, err)
}

func TestLoadLevelOrFallback(t *testing.T) {
	l := loadLevelOrFallback(config.LevelConfig{Dir: "", PixelsPerUnit: 16}, zerolog.Nop())
	assert.Equal(t, "saloon", l.Name)

	l = loadLevelOrFallback(config.LevelConfig{Dir: "testdata/missing", PixelsPerUnit: 16, Width: 30, Height: 12}, zerolog.Nop())
	assert.Equal(t, "empty", l.Name)
	assert.Equal(t, 30.0, l.Width)
	assert.Equal(t, 12.0, l.Height)
}

func TestEmbeddedArenasParse(t *testing.T) {
	arenas, names, err := leveldata.LoadAllArenas(assets.Levels, assets.LevelDir)
	require.NoError(t, err)
	require.Contains(t, names, "saloon")
	assert.NotEmpty(t, arenas["saloon"].Solids)
	assert.Len(t, arenas["saloon"].Spawns, 4)
}

const corridorTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="4" height="2" tilewidth="16" tileheight="16" infinite="0" nextlayerid="3" nextobjectid="2">
 <tileset firstgid="1" name="walls" tilewidth="16" tileheight="16" tilecount="1" columns="1">
  <image source="walls.png" width="16" height="16"/>
 </tileset>
 <layer id="1" name="walls" width="4" height="2">
  <data encoding="csv">
0,0,0,1,
0,0,0,0
</data>
 </layer>
 <objectgroup id="2" name="CombatantSpawn">
  <object id="1" x="8" y="8"/>
 </objectgroup>
</map>
`
