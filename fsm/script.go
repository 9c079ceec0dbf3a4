package fsm

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const guardResult = "__transition"

// GuardVars are the variables a scripted guard may read. Every snapshot
// passed to Bind should provide them.
var GuardVars = []string{
	"x", "y", "old_x", "old_y",
	"collide_x", "collide_y", "collide_hand",
	"anim_finished", "life",
	"player_dx", "player_dy", "player_found",
	"input_h", "input_v", "fire",
}

// ScriptGuard is a transition predicate written as a tengo expression, for
// example "collide_y && math.abs(player_dx) < 48".
type ScriptGuard struct {
	source   string
	compiled *tengo.Compiled
}

// CompileGuard compiles expr once. Bind it per entity.
func CompileGuard(expr string) (*ScriptGuard, error) {
	script := tengo.NewScript([]byte(fmt.Sprintf("math := import(\"math\")\n%s := (%s)", guardResult, expr)))
	script.SetImports(stdlib.GetModuleMap("math"))
	for _, name := range GuardVars {
		if err := script.Add(name, 0); err != nil {
			return nil, fmt.Errorf("fsm: guard %q: %w", expr, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("fsm: compile guard %q: %w", expr, err)
	}
	return &ScriptGuard{source: expr, compiled: compiled}, nil
}

func (g *ScriptGuard) Source() string {
	return g.source
}

// Bind returns a predicate evaluating the guard against snapshot. The
// predicate owns a private copy of the compiled script. A failing run
// evaluates to false.
func (g *ScriptGuard) Bind(snapshot func() map[string]any) Predicate {
	c := g.compiled.Clone()
	return func() bool {
		for name, v := range snapshot() {
			if err := c.Set(name, v); err != nil {
				return false
			}
		}
		if err := c.Run(); err != nil {
			return false
		}
		return c.Get(guardResult).Bool()
	}
}
