package entity

import (
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/fsm"
)

// Nil safe shortcuts used by states and features. Missing capabilities turn
// them into no-ops.

func (m *Model) Device() component.Device {
	return m.Control.Current()
}

func (m *Model) PlayAnim(name string) bool {
	if m.Anim == nil {
		return false
	}
	return m.Anim.Play(name)
}

func (m *Model) AnimFinished() bool {
	return m.Anim.Is(component.AnimFinished)
}

func (m *Model) ApplyTile(r collision.Result) {
	if m.TileCollidable == nil {
		return
	}
	m.TileCollidable.Apply(m.Transform, r)
}

func (m *Model) ResetGravity() {
	if m.Body != nil {
		m.Body.ResetGravity()
	}
}

// ZeroMovement clears the walk force.
func (m *Model) ZeroMovement() {
	if m.Movement != nil {
		m.Movement.Move.Zero()
	}
}

func (m *Model) SetMirror(mode component.MirrorMode) {
	if m.Mirror != nil {
		m.Mirror.Set(mode)
	}
}

func (m *Model) Mirrored() bool {
	return m.Mirror.Is(component.MirrorHorizontal)
}

// MirrorToward faces the sign of h. Zero keeps the current facing.
func (m *Model) MirrorToward(h float64) {
	switch {
	case h < 0:
		m.SetMirror(component.MirrorHorizontal)
	case h > 0:
		m.SetMirror(component.MirrorNone)
	}
}

func (m *Model) ChangeState(id fsm.StateID) bool {
	if m.States == nil {
		return false
	}
	return m.States.ChangeState(id)
}

func (m *Model) IsState(id fsm.StateID) bool {
	return m.States != nil && m.States.IsState(id)
}

// Hurtable returns the model's hurtable feature, if any.
func (m *Model) Hurtable() (Hurter, bool) {
	return GetFeature[Hurter](m, FeatureHurtable)
}

// Snapshot returns the read only variables scripted guards see.
func (m *Model) Snapshot() map[string]any {
	vars := map[string]any{
		"x":             0.0,
		"y":             0.0,
		"old_x":         0.0,
		"old_y":         0.0,
		"collide_x":     false,
		"collide_y":     false,
		"collide_hand":  false,
		"anim_finished": m.AnimFinished(),
		"life":          0,
		"player_dx":     0.0,
		"player_dy":     0.0,
		"player_found":  false,
		"input_h":       0.0,
		"input_v":       0.0,
		"fire":          false,
	}
	if t := m.Transform; t != nil {
		vars["x"], vars["y"], vars["old_x"], vars["old_y"] = t.X, t.Y, t.OldX, t.OldY
		if v := m.Services.PlayerView(); v.Found {
			vars["player_dx"], vars["player_dy"], vars["player_found"] = v.X-t.X, v.Y-t.Y, true
		}
	}
	if m.States != nil {
		c := m.States.Contacts()
		vars["collide_x"], vars["collide_y"], vars["collide_hand"] = c.CollideX, c.CollideY, c.CollideHand
	}
	if h, ok := m.Hurtable(); ok {
		vars["life"] = h.Life()
	}
	d := m.Device()
	vars["input_h"], vars["input_v"], vars["fire"] = d.Horizontal(), d.Vertical(), d.Fire()
	return vars
}
