package collision

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownTile = errors.New("collision: unknown tile rune")
	ErrEmptyMap    = errors.New("collision: empty tile map")
)

const DefaultTileSize = 16

// TileMap is a grid of collision formula names. Row 0 is the bottom row and
// world Y grows upward.
type TileMap struct {
	tileSize float64
	cols     int
	rows     int
	names    []string
}

// NewTileMap builds a map from rows listed top first. Runes missing from the
// legend are an error, except '.' and ' ' which are empty.
func NewTileMap(tileSize float64, rows []string, legend map[string]string) (*TileMap, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyMap
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	cols := 0
	for _, r := range rows {
		if n := len([]rune(r)); n > cols {
			cols = n
		}
	}
	m := &TileMap{
		tileSize: tileSize,
		cols:     cols,
		rows:     len(rows),
		names:    make([]string, cols*len(rows)),
	}
	for i, r := range rows {
		row := len(rows) - 1 - i
		for col, ch := range []rune(r) {
			if ch == '.' || ch == ' ' {
				continue
			}
			name, ok := legend[string(ch)]
			if !ok {
				return nil, fmt.Errorf("%w: %q at row %d col %d", ErrUnknownTile, ch, i, col)
			}
			m.names[row*cols+col] = name
		}
	}
	return m, nil
}

func (m *TileMap) TileSize() float64 { return m.tileSize }
func (m *TileMap) Cols() int         { return m.cols }
func (m *TileMap) Rows() int         { return m.rows }

// Width returns the map width in world units.
func (m *TileMap) Width() float64 {
	return float64(m.cols) * m.tileSize
}

func (m *TileMap) Height() float64 {
	return float64(m.rows) * m.tileSize
}

// Tile returns the formula name at a grid cell, empty outside the map.
func (m *TileMap) Tile(col, row int) string {
	if m == nil || col < 0 || row < 0 || col >= m.cols || row >= m.rows {
		return ""
	}
	return m.names[row*m.cols+col]
}

// At returns the formula name at a world location.
func (m *TileMap) At(x, y float64) string {
	if m == nil {
		return ""
	}
	return m.Tile(m.cell(x), m.cell(y))
}

func (m *TileMap) cell(v float64) int {
	return int(math.Floor(v / m.tileSize))
}

// Resolve tests one category of an entity that moved from (oldX, oldY) to
// (x, y). Floor points only collide when not moving up and when the point
// started above the tile top; wall points only collide when moving.
func (m *TileMap) Resolve(x, y, oldX, oldY float64, c Category) (Result, bool) {
	if m == nil {
		return Result{}, false
	}
	if c.Axis == AxisX {
		return m.resolveX(x, y, oldX, c)
	}
	return m.resolveY(x, y, oldY, c)
}

func (m *TileMap) resolveY(x, y, oldY float64, c Category) (Result, bool) {
	if y > oldY {
		return Result{}, false
	}
	px := x + c.OffsetX
	py := y + c.OffsetY
	oldPy := oldY + c.OffsetY
	col := m.cell(px)
	for row := m.cell(oldPy); row >= m.cell(py); row-- {
		name := m.Tile(col, row)
		if !c.accepts(name) {
			continue
		}
		top := float64(row+1) * m.tileSize
		if top > oldPy+1e-9 {
			continue
		}
		return Result{Y: name, SnapX: x, SnapY: top - c.OffsetY}, true
	}
	return Result{}, false
}

func (m *TileMap) resolveX(x, y, oldX float64, c Category) (Result, bool) {
	if x == oldX {
		return Result{}, false
	}
	px := x + c.OffsetX
	py := y + c.OffsetY
	col := m.cell(px)
	name := m.Tile(col, m.cell(py))
	if !c.accepts(name) {
		return Result{}, false
	}
	r := Result{X: name, SnapY: y}
	if x > oldX {
		r.Side = 1
		r.SnapX = float64(col)*m.tileSize - c.OffsetX - 0.01
	} else {
		r.Side = -1
		r.SnapX = float64(col+1)*m.tileSize - c.OffsetX
	}
	return r, true
}
