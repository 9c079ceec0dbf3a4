package fsm

import (
	"errors"
	"testing"

	"github.com/milk9111/lionheart/collision"
)

type fakeState struct {
	Base
	enters, exits int
	post          int
}

func newFake(id StateID) *fakeState {
	return &fakeState{Base: NewBase(id)}
}

func (s *fakeState) Enter() {
	s.Base.Enter()
	s.enters++
}

func (s *fakeState) Exit() {
	s.exits++
}

func (s *fakeState) PostUpdate() {
	s.post++
}

func always() bool { return true }

func newHandler(t *testing.T, states ...State) *Handler {
	t.Helper()
	h := NewHandler("test")
	if err := h.Register(states...); err != nil {
		t.Fatalf("register: %v", err)
	}
	return h
}

func TestChangeStateSameIsNoop(t *testing.T) {
	idle := newFake("idle")
	walk := newFake("walk")
	h := newHandler(t, idle, walk)
	if err := h.Start("idle"); err != nil {
		t.Fatal(err)
	}

	if h.ChangeState("idle") {
		t.Fatalf("changing to the active state must report false")
	}
	if idle.enters != 1 || idle.exits != 0 {
		t.Fatalf("enter/exit re-invoked: enters=%d exits=%d", idle.enters, idle.exits)
	}

	if !h.ChangeState("walk") {
		t.Fatalf("expected change to walk")
	}
	if idle.exits != 1 || walk.enters != 1 || !h.IsState("walk") || h.Previous() != "idle" {
		t.Fatalf("unexpected machine after change: current=%s previous=%s", h.Current(), h.Previous())
	}
}

func TestFirstRegisteredTransitionWins(t *testing.T) {
	idle := newFake("idle")
	walk := newFake("walk")
	jump := newFake("jump")
	idle.AddTransition("walk", always)
	idle.AddTransition("jump", always)
	h := newHandler(t, idle, walk, jump)
	if err := h.Start("idle"); err != nil {
		t.Fatal(err)
	}

	h.PostUpdate()

	if !h.IsState("walk") {
		t.Fatalf("expected walk, got %s", h.Current())
	}
	if jump.enters != 0 {
		t.Fatalf("second transition must not fire")
	}
}

func TestOneTransitionPerFrame(t *testing.T) {
	a := newFake("a")
	b := newFake("b")
	c := newFake("c")
	a.AddTransition("b", always)
	b.AddTransition("c", always)
	h := newHandler(t, a, b, c)
	if err := h.Start("a"); err != nil {
		t.Fatal(err)
	}

	h.PostUpdate()
	if !h.IsState("b") {
		t.Fatalf("expected b after one frame, got %s", h.Current())
	}
	h.PostUpdate()
	if !h.IsState("c") {
		t.Fatalf("expected c after two frames, got %s", h.Current())
	}
}

func TestExactlyOneStateActive(t *testing.T) {
	ids := []StateID{"idle", "walk", "jump", "fall"}
	var states []State
	fakes := map[StateID]*fakeState{}
	for _, id := range ids {
		p := newFake(id)
		fakes[id] = p
		states = append(states, p)
	}
	h := newHandler(t, states...)
	if err := h.Start("idle"); err != nil {
		t.Fatal(err)
	}
	for i, next := range []StateID{"walk", "walk", "jump", "fall", "idle", "last", "last"} {
		h.ChangeState(next)
		active := 0
		for _, p := range fakes {
			if p.enters > p.exits {
				active++
			}
		}
		if active != 1 {
			t.Fatalf("step %d: %d states active", i, active)
		}
	}
}

func TestStateLastReturnsToPrevious(t *testing.T) {
	patrol := newFake("patrol")
	turn := newFake("turn")
	turn.AddTransition(StateLast, always)
	h := newHandler(t, patrol, turn)
	if err := h.Start("patrol"); err != nil {
		t.Fatal(err)
	}
	h.ChangeState("turn")
	h.PostUpdate()
	if !h.IsState("patrol") {
		t.Fatalf("expected return to patrol, got %s", h.Current())
	}
}

func TestStateLastUnwindsNestedChanges(t *testing.T) {
	patrol := newFake("patrol")
	turn := newFake("turn")
	hurt := newFake("hurt")
	h := newHandler(t, patrol, turn, hurt)
	if err := h.Start("patrol"); err != nil {
		t.Fatal(err)
	}
	h.ChangeState("turn")
	h.ChangeState("hurt")

	tests := []struct {
		want     StateID
		previous StateID
	}{
		{"turn", "patrol"},
		{"patrol", ""},
	}
	for i, tt := range tests {
		if !h.ChangeState(StateLast) {
			t.Fatalf("step %d: StateLast refused", i)
		}
		if h.Current() != tt.want || h.Previous() != tt.previous {
			t.Fatalf("step %d: current=%s previous=%s, want %s/%s", i, h.Current(), h.Previous(), tt.want, tt.previous)
		}
	}
	if h.ChangeState(StateLast) {
		t.Fatalf("StateLast with empty history changed to %s", h.Current())
	}
}

func TestHistoryIsBounded(t *testing.T) {
	a, b := newFake("a"), newFake("b")
	h := newHandler(t, a, b)
	if err := h.Start("a"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3*historyMax; i++ {
		if i%2 == 0 {
			h.ChangeState("b")
		} else {
			h.ChangeState("a")
		}
	}
	if len(h.history) != historyMax {
		t.Fatalf("history holds %d states, want %d", len(h.history), historyMax)
	}
}

func TestValidateRejectsUnknownTarget(t *testing.T) {
	idle := newFake("idle")
	idle.AddTransition("liana_soar", always)
	idle.AddTransition(StateLast, always)
	h := newHandler(t, idle)
	err := h.Validate()
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	h := NewHandler("test")
	if err := h.Register(newFake("idle"), newFake("idle")); !errors.Is(err, ErrDuplicateState) {
		t.Fatalf("expected ErrDuplicateState, got %v", err)
	}
}

func TestChangeToUnknownStateIsNoop(t *testing.T) {
	h := newHandler(t, newFake("patrol"))
	if err := h.Start("patrol"); err != nil {
		t.Fatal(err)
	}
	if h.ChangeState("turn") || !h.IsState("patrol") {
		t.Fatalf("unknown target must leave the machine untouched")
	}
}

func TestLegFlagLifetime(t *testing.T) {
	idle := newFake("idle")
	fall := newFake("fall")

	var seen []bool
	idle.AddTransition("fall", func() bool {
		seen = append(seen, idle.Contacts.CollideY)
		return !idle.Contacts.CollideY
	})
	h := newHandler(t, idle, fall)
	if err := h.Start("idle"); err != nil {
		t.Fatal(err)
	}

	// frame N: leg collides
	h.Update(1)
	h.NotifyLeg(collision.Result{Y: collision.Ground}, collision.Category{Name: collision.Leg})
	h.PostUpdate()
	if !seen[0] || !h.IsState("idle") {
		t.Fatalf("flag set during collision phase must be visible to the same frame's transitions")
	}
	if h.Contacts().CollideY {
		t.Fatalf("flag must be cleared before the next collision phase")
	}

	// frame N+1: no collision
	h.Update(1)
	h.PostUpdate()
	if seen[1] || !h.IsState("fall") {
		t.Fatalf("flag leaked into the next frame")
	}
}

func TestListenerSeesChange(t *testing.T) {
	h := newHandler(t, newFake("patrol"), newFake("turn"))
	if err := h.Start("patrol"); err != nil {
		t.Fatal(err)
	}
	var got [][2]StateID
	h.AddListener(func(from, to StateID) { got = append(got, [2]StateID{from, to}) })
	h.ChangeState("turn")
	if len(got) != 1 || got[0] != [2]StateID{"patrol", "turn"} {
		t.Fatalf("unexpected notifications %v", got)
	}
}

func TestScriptGuard(t *testing.T) {
	g, err := CompileGuard("collide_y && math.abs(player_dx) < 48")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	vars := map[string]any{"collide_y": true, "player_dx": -20.0}
	p := g.Bind(func() map[string]any { return vars })
	if !p() {
		t.Fatalf("expected guard to hold")
	}
	vars["player_dx"] = 64.0
	if p() {
		t.Fatalf("expected guard to fail when the player is far")
	}
}

func TestScriptGuardCompileError(t *testing.T) {
	if _, err := CompileGuard("collide_y &&"); err == nil {
		t.Fatalf("expected compile error")
	}
}
