package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/sim"
)

// PlayerInput is the keyboard device of the player. Every polled frame is
// appended to a replay that can be copied for the simulate command.
type PlayerInput struct {
	component.DeviceState
	Replay sim.Replay
}

func NewPlayerInput() *PlayerInput {
	return &PlayerInput{}
}

func (p *PlayerInput) Poll() {
	h, v := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		h--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		h++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		v++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		v--
	}
	p.H, p.V = h, v
	p.FireHeld = ebiten.IsKeyPressed(ebiten.KeyX) || ebiten.IsKeyPressed(ebiten.KeySpace)
	p.FirePressed = inpututil.IsKeyJustPressed(ebiten.KeyX) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	p.Replay.Record(sim.Input{H: p.H, V: p.V, Fire: p.FireHeld})
}

// Reset clears the device and the recorded replay, used on level reload.
func (p *PlayerInput) Reset() {
	p.DeviceState = component.DeviceState{}
	p.Replay = sim.Replay{}
}
