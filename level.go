package main

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/entity"
)

var tileColors = []struct {
	prefix string
	color  color.RGBA
}{
	{collision.Ground, colornames.Saddlebrown},
	{collision.Block, colornames.Dimgray},
	{collision.Slope, colornames.Peru},
	{collision.Incline, colornames.Burlywood},
	{collision.Liana, colornames.Forestgreen},
	{collision.Spike, colornames.Crimson},
}

func tileColor(name string) color.RGBA {
	for _, tc := range tileColors {
		if strings.HasPrefix(name, tc.prefix) {
			return tc.color
		}
	}
	return colornames.Gray
}

// LevelView is the tile map rendered once into an image.
type LevelView struct {
	img    *ebiten.Image
	height float64
}

func NewLevelView(tiles *collision.TileMap) *LevelView {
	size := tiles.TileSize()
	img := ebiten.NewImage(int(tiles.Width()), int(tiles.Height()))
	for row := 0; row < tiles.Rows(); row++ {
		for col := 0; col < tiles.Cols(); col++ {
			name := tiles.Tile(col, row)
			if name == "" {
				continue
			}
			x := float32(float64(col) * size)
			y := float32(tiles.Height() - float64(row+1)*size)
			s := float32(size)
			c := tileColor(name)
			switch {
			case strings.HasPrefix(name, collision.Slope) && strings.HasSuffix(name, collision.Right):
				vector.StrokeLine(img, x, y+s, x+s, y, 2, c, false)
			case strings.HasPrefix(name, collision.Slope):
				vector.StrokeLine(img, x, y, x+s, y+s, 2, c, false)
			case strings.HasPrefix(name, collision.Liana):
				vector.StrokeLine(img, x, y+s/2, x+s, y+s/2, 2, c, false)
			default:
				vector.FillRect(img, x, y, s, s, c, false)
			}
		}
	}
	return &LevelView{img: img, height: tiles.Height()}
}

func (v *LevelView) Draw(screen *ebiten.Image, cam *entity.Camera, water *entity.Water) {
	top := cam.Y + cam.Height/2 + cam.ShakeY
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-cam.X, top-v.height)
	screen.DrawImage(v.img, op)

	if water != nil && water.Height > 0 {
		y := float32(top - water.Height)
		vector.FillRect(screen, 0, y, float32(cam.Width), float32(cam.Height)-y, color.RGBA{R: 30, G: 80, B: 200, A: 120}, false)
	}
}
