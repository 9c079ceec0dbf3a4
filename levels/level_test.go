package levels

import (
	"errors"
	"testing"

	"github.com/milk9111/lionheart/collision"
)

func TestLoadEmbedded(t *testing.T) {
	tests := []struct {
		name       string
		placements int
		water      bool
	}{
		{name: "stage1", placements: 9},
		{name: "norka.yaml", placements: 1, water: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := Load(tt.name)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(lvl.Placements) != tt.placements {
				t.Fatalf("placements = %d, want %d", len(lvl.Placements), tt.placements)
			}
			if (lvl.Water != nil) != tt.water {
				t.Fatalf("water = %+v", lvl.Water)
			}
			m, err := lvl.TileMap()
			if err != nil {
				t.Fatalf("TileMap: %v", err)
			}
			if m.Rows() != len(lvl.Rows) {
				t.Fatalf("rows = %d, want %d", m.Rows(), len(lvl.Rows))
			}
			if got := m.At(lvl.Spawn.X, lvl.Spawn.Y-1); got != collision.Ground {
				t.Fatalf("player spawns above %q, want ground", got)
			}
		})
	}
}

func TestStage1Tiles(t *testing.T) {
	lvl, err := Load("stage1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m, err := lvl.TileMap()
	if err != nil {
		t.Fatalf("TileMap: %v", err)
	}
	if got := m.Tile(53, 2); got != "slope_left" {
		t.Fatalf("tile = %q, want slope_left", got)
	}
	if got := m.Tile(33, 7); got != collision.Liana {
		t.Fatalf("tile = %q, want liana", got)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("moon"); err == nil {
		t.Fatal("missing level should fail")
	}
}

func TestUnknownRune(t *testing.T) {
	lvl := &Level{Name: "broken", Rows: []string{"#?"}, Legend: map[string]string{"#": collision.Ground}}
	if _, err := lvl.TileMap(); !errors.Is(err, collision.ErrUnknownTile) {
		t.Fatalf("err = %v, want ErrUnknownTile", err)
	}
}
