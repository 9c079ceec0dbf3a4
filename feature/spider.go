package feature

import (
	"github.com/milk9111/lionheart/audio"
	"github.com/milk9111/lionheart/common"
	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/state"
)

const (
	spiderTrackedDistance = 80
	spiderFallDistance    = 16
	spiderTrackSpeed      = 0.5
	spiderGravity         = 6.5
	spiderGravityCeil     = 4.5
)

type SpiderConfig struct {
	// Follow makes the spider jump at a close player. Defaults to true.
	Follow *bool `yaml:"follow"`
}

// Spider waits for the player, drops from the ceiling or jumps at it, then
// walks toward it.
type Spider struct {
	cfg SpiderConfig
	m   *entity.Model

	distance int
	move     float64
	tracked  bool
	enabled  bool
}

func NewSpider(cfg SpiderConfig) *Spider {
	return &Spider{cfg: cfg}
}

func (s *Spider) Prepare(m *entity.Model) error {
	s.m = m
	if err := m.Require(string(entity.FeatureSpider), entity.CapTransform, entity.CapBody, entity.CapControl, entity.CapStates); err != nil {
		return err
	}
	m.Control.Device = s
	return nil
}

func (s *Spider) Recycle() {
	s.move = 0
	s.tracked = false
	s.gravity(spiderGravity)
	if s.cfg.Follow == nil || *s.cfg.Follow {
		s.track(spiderTrackedDistance)
	} else {
		s.track(0)
	}
}

func (s *Spider) track(distance int) {
	s.distance = distance
	s.enabled = true
	s.m.ChangeState(state.Idle)
}

func (s *Spider) gravity(g float64) {
	s.m.Body.Gravity = g
	s.m.Body.GravityMax = g
}

func (s *Spider) Horizontal() float64 { return s.move }
func (s *Spider) Vertical() float64   { return 0 }
func (s *Spider) Fire() bool          { return false }
func (s *Spider) FireOnce() bool      { return false }

func (s *Spider) Update(float64) {
	p := s.m.Services.PlayerView()
	if !p.Found {
		return
	}
	t := s.m.Transform
	ceil := s.m.IsState(state.PatrolCeil)
	if s.distance < 0 ||
		common.Distance(p.X, p.Y, t.X, t.Y) < float64(s.distance) ||
		ceil && abs(p.X-t.X) < spiderFallDistance {
		switch {
		case ceil:
			s.m.ChangeState(state.Fall)
			s.gravity(spiderGravityCeil)
		case s.enabled && !s.tracked:
			s.tracked = true
			s.gravity(spiderGravity)
			s.m.ChangeState(state.JumpSpider)
			if s.distance > 0 {
				s.m.Services.PlaySfx(audio.MonsterSpider)
			}
		}
	}

	if s.tracked && s.m.IsState(state.Patrol) {
		switch {
		case p.X > t.X:
			s.move = spiderTrackSpeed
			s.m.SetMirror(component.MirrorNone)
		case p.X < t.X:
			s.move = -spiderTrackSpeed
			s.m.SetMirror(component.MirrorHorizontal)
		}
	}
}
