package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/lionheart/audio"
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs/component"
)

// Spawner creates entities from named templates.
type Spawner interface {
	Spawn(name string, at cp.Vector) (*Model, error)
}

// Viewer tells whether a location is on screen.
type Viewer interface {
	IsViewable(t *component.Transform) bool
}

// SfxPlayer plays sound effects.
type SfxPlayer interface {
	Play(id audio.Sfx)
}

// PlayerView is the per frame read only copy of the tracked player.
type PlayerView struct {
	Found      bool
	X, Y       float64
	OldX, OldY float64
}

// Services are the collaborators shared by every model of a world.
type Services struct {
	Spawner Spawner
	Viewer  Viewer
	Sfx     SfxPlayer
	Tiles   *collision.TileMap
	Water   *Water
	Camera  *Camera

	player *Model
	view   PlayerView
}

func (s *Services) SetPlayer(m *Model) {
	s.player = m
	s.Snapshot()
}

// Player returns the tracked player if it is alive.
func (s *Services) Player() (*Model, bool) {
	if s == nil || s.player == nil || !s.player.Alive() {
		return nil, false
	}
	return s.player, true
}

// Snapshot refreshes PlayerView. It runs once per frame before features.
func (s *Services) Snapshot() {
	p, ok := s.Player()
	if !ok || p.Transform == nil {
		s.view = PlayerView{}
		return
	}
	t := p.Transform
	s.view = PlayerView{Found: true, X: t.X, Y: t.Y, OldX: t.OldX, OldY: t.OldY}
}

func (s *Services) PlayerView() PlayerView {
	if s == nil {
		return PlayerView{}
	}
	return s.view
}

func (s *Services) PlaySfx(id audio.Sfx) {
	if s == nil || s.Sfx == nil || id == "" {
		return
	}
	s.Sfx.Play(id)
}

// IsViewable defaults to true without a viewer.
func (s *Services) IsViewable(t *component.Transform) bool {
	if s == nil || s.Viewer == nil {
		return true
	}
	return s.Viewer.IsViewable(t)
}

func (s *Services) Spawn(name string, x, y float64) (*Model, error) {
	if s == nil || s.Spawner == nil {
		return nil, ErrNoSpawner
	}
	return s.Spawner.Spawn(name, cp.Vector{X: x, Y: y})
}
