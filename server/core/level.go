package core

import (
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/automoto/sixgun/assets"
	"github.com/automoto/sixgun/config"
	"github.com/automoto/sixgun/shared/leveldata"
	"github.com/automoto/sixgun/tags"
	"github.com/rs/zerolog"
	"github.com/solarlune/resolv"
)

// ServerLevel holds the server's collision space and spawn data for an arena.
// Game code works in world units. The resolv space keeps the TMX pixel scale
// its cell math expects, and the helpers below convert at the boundary.
type ServerLevel struct {
	Name   string
	Space  *resolv.Space
	Spawns []leveldata.SpawnPoint
	Width  float64
	Height float64
	Scale  float64 // Space pixels per world unit
}

// NewServerLevel builds a resolv.Space from parsed arena data.
func NewServerLevel(name string, data *leveldata.ArenaData, pixelsPerUnit float64) *ServerLevel {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = 1
	}
	l := newLevel(name, float64(data.MapWidth)/pixelsPerUnit, float64(data.MapHeight)/pixelsPerUnit, pixelsPerUnit)

	for _, r := range data.Solids {
		obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tags.ResolvSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
		l.Space.Add(obj)
	}

	l.Spawns = make([]leveldata.SpawnPoint, len(data.Spawns))
	for i, sp := range data.Spawns {
		sp.X /= pixelsPerUnit
		sp.Y /= pixelsPerUnit
		l.Spawns[i] = sp
	}
	return l
}

// EmptyLevel is an open arena without walls, used when no map could be loaded.
func EmptyLevel(width, height, pixelsPerUnit float64) *ServerLevel {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = 1
	}
	return newLevel("empty", width, height, pixelsPerUnit)
}

func newLevel(name string, width, height, scale float64) *ServerLevel {
	// One world unit per cell, which is one tile in the stock arenas.
	cell := max(int(math.Round(scale)), 1)
	return &ServerLevel{
		Name:   name,
		Space:  resolv.NewSpace(int(math.Ceil(width*scale)), int(math.Ceil(height*scale)), cell, cell),
		Width:  width,
		Height: height,
		Scale:  scale,
	}
}

// AddBox adds a w by h box centered on (x, y), all in world units.
func (l *ServerLevel) AddBox(x, y, w, h float64, tag string) *resolv.Object {
	pw, ph := w*l.Scale, h*l.Scale
	obj := resolv.NewObject(x*l.Scale-pw/2, y*l.Scale-ph/2, pw, ph, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, pw, ph))
	l.Space.Add(obj)
	return obj
}

// Center returns the center of obj in world units.
func (l *ServerLevel) Center(obj *resolv.Object) (x, y float64) {
	return (obj.X + obj.W/2) / l.Scale, (obj.Y + obj.H/2) / l.Scale
}

// MoveTo centers obj on (x, y) in world units.
func (l *ServerLevel) MoveTo(obj *resolv.Object, x, y float64) {
	obj.X = x*l.Scale - obj.W/2
	obj.Y = y*l.Scale - obj.H/2
	obj.Update()
}

// Sweep returns how far obj can move along (dx, dy) before touching a solid,
// in world units. blocked reports whether a solid cut the move short.
func (l *ServerLevel) Sweep(obj *resolv.Object, dx, dy float64) (mx, my float64, blocked bool) {
	check := obj.Check(dx*l.Scale, dy*l.Scale, tags.ResolvSolid)
	if check == nil {
		return dx, dy, false
	}
	solids := check.ObjectsByTags(tags.ResolvSolid)
	if len(solids) == 0 {
		return dx, dy, false
	}
	contact := check.ContactWithObject(solids[0])
	t := math.Min(axisFraction(contact.X(), dx*l.Scale), axisFraction(contact.Y(), dy*l.Scale))
	return dx * t, dy * t, true
}

// axisFraction is the share of move along one axis that fits before contact.
func axisFraction(contact, move float64) float64 {
	if move == 0 || contact*move < 0 || math.Abs(contact) > math.Abs(move) {
		return 1
	}
	return contact / move
}

// SpawnPoint returns the i-th spawn, cycling through the map's spawns. An
// arena without spawns uses its center.
func (l *ServerLevel) SpawnPoint(i int) leveldata.SpawnPoint {
	if len(l.Spawns) == 0 {
		return leveldata.SpawnPoint{X: l.Width / 2, Y: l.Height / 2}
	}
	if i < 0 {
		i = -i
	}
	return l.Spawns[i%len(l.Spawns)]
}

// Contains reports whether a point lies inside the arena bounds.
func (l *ServerLevel) Contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x <= l.Width && y <= l.Height
}

// LoadServerLevel loads the arena called name from dir within fsys, or the
// first arena in alphabetical order when name is empty.
func LoadServerLevel(fsys fs.FS, dir, name string, pixelsPerUnit float64) (*ServerLevel, error) {
	arenas, names, err := leveldata.LoadAllArenas(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("load arenas: %w", err)
	}
	if name == "" {
		name = names[0]
	}
	data, ok := arenas[name]
	if !ok {
		return nil, fmt.Errorf("arena %q not found in %s (have %v)", name, dir, names)
	}
	return NewServerLevel(name, data, pixelsPerUnit), nil
}

// levelSource resolves the configured level directory. An empty directory
// selects the arenas embedded in the binary.
func levelSource(levelDir string) (fs.FS, string) {
	if levelDir == "" {
		return assets.Levels, assets.LevelDir
	}
	return os.DirFS(filepath.Dir(levelDir)), filepath.Base(levelDir)
}

// loadLevelOrFallback keeps the server bootable without map assets.
func loadLevelOrFallback(lc config.LevelConfig, logger zerolog.Logger) *ServerLevel {
	fsys, dir := levelSource(lc.Dir)
	level, err := LoadServerLevel(fsys, dir, lc.Name, lc.PixelsPerUnit)
	if err != nil {
		logger.Warn().Err(err).
			Float64("width", lc.Width).
			Float64("height", lc.Height).
			Msg("using empty arena")
		return EmptyLevel(lc.Width, lc.Height, lc.PixelsPerUnit)
	}
	logger.Info().
		Str("level", level.Name).
		Int("spawns", len(level.Spawns)).
		Float64("width", level.Width).
		Float64("height", level.Height).
		Msg("loaded level")
	return level
}
