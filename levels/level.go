// Package levels holds the level descriptors: tile rows, placements and the
// camera and water settings of each stage.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/lionheart/collision"
)

//go:embed *.yaml
var LevelsFS embed.FS

var ErrNoPlayer = errors.New("levels: no player template")

type Level struct {
	Name       string            `yaml:"name"`
	TileSize   float64           `yaml:"tile_size"`
	Player     string            `yaml:"player"`
	Spawn      Point             `yaml:"spawn"`
	Legend     map[string]string `yaml:"legend"`
	Rows       []string          `yaml:"rows"`
	Placements []Placement       `yaml:"placements"`
	Camera     CameraSpec        `yaml:"camera"`
	Water      *WaterSpec        `yaml:"water"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Placement spawns template Name at X, Y when the level loads.
type Placement struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

type CameraSpec struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	IntervalH float64 `yaml:"interval_h"`
	IntervalV float64 `yaml:"interval_v"`
}

type WaterSpec struct {
	Height   float64 `yaml:"height"`
	Speed    float64 `yaml:"speed"`
	RaiseMax float64 `yaml:"raise_max"`
}

// Load reads levels/<name>.yaml from disk when present, the embedded copy
// otherwise.
func Load(name string) (*Level, error) {
	file := strings.TrimSuffix(filepath.ToSlash(name), ".yaml") + ".yaml"
	file = strings.TrimPrefix(file, "levels/")
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(file)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, file)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(filepath.Base(file), ".yaml")
	}
	if lvl.Player == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoPlayer, lvl.Name)
	}
	return &lvl, nil
}

// TileMap builds the collision grid of the level.
func (l *Level) TileMap() (*collision.TileMap, error) {
	m, err := collision.NewTileMap(l.TileSize, l.Rows, l.Legend)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", l.Name, err)
	}
	return m, nil
}
