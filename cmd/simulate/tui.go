package main

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/sim"
)

var errInterrupted = errors.New("simulate: interrupted")

var tileGlyphs = map[string]rune{
	collision.Ground: '#',
	collision.Block:  'B',
	"slope_right":    '/',
	"slope_left":     '\\',
	collision.Liana:  '|',
	collision.Spike:  '^',
}

var (
	tileStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	waterStyle  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	modelStyle  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// terminalView draws the running level one character per tile.
type terminalView struct {
	screen tcell.Screen
	events chan tcell.Event
}

func newTerminalView() (*terminalView, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newTerminalViewOn(screen), nil
}

func newTerminalViewOn(screen tcell.Screen) *terminalView {
	v := &terminalView{screen: screen, events: make(chan tcell.Event, 8)}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(v.events)
				return
			}
			v.events <- ev
		}
	}()
	return v
}

func (v *terminalView) Close() {
	v.screen.Fini()
}

// Run steps the simulation frames times, drawing after each step. Escape or
// Ctrl-C stops it early.
func (v *terminalView) Run(s *sim.Sim, frames int, delay time.Duration, counts map[ecs.EventType]int) error {
	ticker := time.NewTicker(max(delay, time.Millisecond))
	defer ticker.Stop()
	for i := 0; i < frames; i++ {
		select {
		case ev, ok := <-v.events:
			if !ok {
				return errInterrupted
			}
			if key, isKey := ev.(*tcell.EventKey); isKey &&
				(key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC) {
				return errInterrupted
			}
		default:
		}
		s.Step()
		countEvents(s, counts)
		v.Draw(s)
		<-ticker.C
	}
	return nil
}

// Draw renders the camera view of s. The camera X is the left edge and its
// Y the vertical center.
func (v *terminalView) Draw(s *sim.Sim) {
	v.screen.Clear()
	services := s.Services()
	tiles, cam := services.Tiles, services.Camera
	size := tiles.TileSize()
	width, height := v.screen.Size()
	height-- // status line

	left := int(cam.X / size)
	top := int((cam.Y + cam.Height/2) / size)

	for y := 0; y < height; y++ {
		row := top - y
		for x := 0; x < width; x++ {
			name := tiles.Tile(left+x, row)
			if name == "" {
				if w := services.Water; w != nil && float64(row)*size < w.Height {
					v.screen.SetContent(x, y, '~', nil, waterStyle)
				}
				continue
			}
			glyph, ok := tileGlyphs[name]
			if !ok {
				glyph = '?'
			}
			v.screen.SetContent(x, y, glyph, nil, tileStyle)
		}
	}

	player, _ := s.Player()
	for _, e := range ecs.Entities(s.World()) {
		m, ok := entity.ModelOf(s.World(), e)
		if !ok || !m.Alive() || m.Transform == nil {
			continue
		}
		x := int(m.Transform.X/size) - left
		y := top - int(m.Transform.Y/size)
		if x < 0 || y < 0 || x >= width || y >= height {
			continue
		}
		if m == player {
			v.screen.SetContent(x, y, '@', nil, playerStyle)
			continue
		}
		v.screen.SetContent(x, y, glyphOf(m.Name), nil, modelStyle)
	}

	status := []rune(statusLine(s))
	for x := 0; x < width && x < len(status); x++ {
		v.screen.SetContent(x, height, status[x], nil, statusStyle)
	}
	v.screen.Show()
}

func glyphOf(name string) rune {
	for _, r := range name {
		return unicode.ToUpper(r)
	}
	return '?'
}

func statusLine(s *sim.Sim) string {
	line := fmt.Sprintf("frame %d", s.Frame())
	if p, ok := s.Player(); ok && p.States != nil {
		line += fmt.Sprintf("  %s  x %.0f y %.0f", p.States.Current(), p.Transform.X, p.Transform.Y)
	}
	return line
}
