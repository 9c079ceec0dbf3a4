package spawn

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/feature"
	"github.com/milk9111/lionheart/fsm"
	"github.com/milk9111/lionheart/prefabs"
	"github.com/milk9111/lionheart/state"
)

var ErrInvalidTemplate = errors.New("spawn: invalid template")

type scriptTransition struct {
	from, to fsm.StateID
	guard    *fsm.ScriptGuard
}

type featureEntry struct {
	id   entity.FeatureID
	node *yaml.Node
}

// template is a checked descriptor. Guards are compiled once and bound per
// instance.
type template struct {
	spec       prefabs.EntitySpec
	states     []fsm.StateID
	initial    fsm.StateID
	scripts    []scriptTransition
	features   []featureEntry
	categories []collision.Category
}

func compile(spec prefabs.EntitySpec) (*template, error) {
	t := &template{spec: spec, initial: fsm.StateID(spec.Initial)}
	var errs []error

	for _, s := range spec.States {
		id := fsm.StateID(s)
		if !state.Known(id) {
			errs = append(errs, fmt.Errorf("%w: %s", fsm.ErrUnknownState, id))
			continue
		}
		t.states = append(t.states, id)
	}
	if len(spec.States) > 0 && !slices.Contains(t.states, t.initial) {
		errs = append(errs, fmt.Errorf("%w: %s starts in undeclared state %s", ErrInvalidTemplate, spec.Name, t.initial))
	}

	for _, st := range spec.ScriptTransitions {
		from, to := fsm.StateID(st.From), fsm.StateID(st.To)
		if !slices.Contains(t.states, from) {
			errs = append(errs, fmt.Errorf("%w: %s scripted transition from undeclared state %s", ErrInvalidTemplate, spec.Name, from))
			continue
		}
		if to != fsm.StateLast && !slices.Contains(t.states, to) {
			errs = append(errs, fmt.Errorf("%w: %s -> %s", fsm.ErrIllegalTransition, from, to))
			continue
		}
		g, err := fsm.CompileGuard(st.When)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		t.scripts = append(t.scripts, scriptTransition{from: from, to: to, guard: g})
	}

	for i := range spec.Features {
		fs := &spec.Features[i]
		id := entity.FeatureID(fs.Name)
		if !feature.Known(id) {
			errs = append(errs, fmt.Errorf("%w: %s", feature.ErrUnknownFeature, id))
			continue
		}
		t.features = append(t.features, featureEntry{id: id, node: &fs.Config})
	}

	if tc := spec.Components.TileCollidable; tc != nil {
		for _, c := range tc.Categories {
			c.Axis = collision.AxisOf(c.Name)
			t.categories = append(t.categories, c)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("spawn: template %s: %w", spec.Name, err)
	}
	return t, nil
}
