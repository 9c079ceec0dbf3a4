package prefabs

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs/component"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EntitySpec is one entity template. States lists the states the entity
// owns; the transition tables come with the states and only link to states
// listed here.
type EntitySpec struct {
	Name              string                 `yaml:"name"`
	Initial           string                 `yaml:"initial"`
	States            []string               `yaml:"states"`
	ScriptTransitions []ScriptTransitionSpec `yaml:"script_transitions"`
	Features          []FeatureSpec          `yaml:"features"`
	Components        ComponentsSpec         `yaml:"components"`
}

// ScriptTransitionSpec adds a tengo guarded transition after the built in
// ones of From.
type ScriptTransitionSpec struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	When string `yaml:"when"`
}

// FeatureSpec names a feature. Config is decoded by the feature itself.
type FeatureSpec struct {
	Name   string    `yaml:"name"`
	Config yaml.Node `yaml:"config"`
}

// ComponentsSpec holds the optional capabilities of a template. Missing
// blocks leave the capability out.
type ComponentsSpec struct {
	Transform      *TransformSpec                 `yaml:"transform"`
	Mirror         *MirrorSpec                    `yaml:"mirror"`
	Body           *BodySpec                      `yaml:"body"`
	Movement       *MovementSpec                  `yaml:"movement"`
	Anim           map[string]component.Animation `yaml:"anim"`
	Collidable     *CollidableSpec                `yaml:"collidable"`
	TileCollidable *TileCollidableSpec            `yaml:"tile_collidable"`
	Control        *ControlSpec                   `yaml:"control"`
	Stats          *StatsSpec                     `yaml:"stats"`
	Launchable     *ForceSpec                     `yaml:"launchable"`
}

type TransformSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type MirrorSpec struct {
	Horizontal bool `yaml:"horizontal"`
}

type BodySpec struct {
	Gravity    float64 `yaml:"gravity"`
	GravityMax float64 `yaml:"gravity_max"`
	Disabled   bool    `yaml:"disabled"`
}

type ForceSpec struct {
	Velocity    float64 `yaml:"velocity"`
	Sensibility float64 `yaml:"sensibility"`
}

type MovementSpec struct {
	Move ForceSpec `yaml:"move"`
	Jump ForceSpec `yaml:"jump"`
}

type CollidableSpec struct {
	Group    int                `yaml:"group"`
	Accept   []int              `yaml:"accept"`
	Hitboxes []collision.Hitbox `yaml:"hitboxes"`
	Disabled bool               `yaml:"disabled"`
}

type TileCollidableSpec struct {
	Categories []collision.Category `yaml:"categories"`
}

// ControlSpec selects the input device. "player" is the keyboard or replay
// device of the shell; anything else is left to features.
type ControlSpec struct {
	Device string `yaml:"device"`
}

type StatsSpec struct {
	Health    int `yaml:"health"`
	HealthMax int `yaml:"health_max"`
	Talisment int `yaml:"talisment"`
	Life      int `yaml:"life"`
}

// Validate checks what can be checked without the state and feature
// registries.
func (s EntitySpec) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, fmt.Errorf("%w: missing name", ErrInvalidSpec))
	}
	if s.Components.Transform == nil {
		errs = append(errs, fmt.Errorf("%w: %s has no transform", ErrInvalidSpec, s.Name))
	}
	if len(s.States) > 0 && s.Initial == "" {
		errs = append(errs, fmt.Errorf("%w: %s has states but no initial state", ErrInvalidSpec, s.Name))
	}
	seen := make(map[string]bool, len(s.Features))
	for _, f := range s.Features {
		if seen[f.Name] {
			errs = append(errs, fmt.Errorf("%w: %s lists feature %s twice", ErrInvalidSpec, s.Name, f.Name))
		}
		seen[f.Name] = true
	}
	return errors.Join(errs...)
}

// LoadEntitySpec loads the template called name, with or without the .yaml
// extension.
func LoadEntitySpec(name string) (EntitySpec, error) {
	spec, err := LoadSpec[EntitySpec](FileName(name))
	if err != nil {
		return EntitySpec{}, err
	}
	if spec.Name == "" {
		spec.Name = TemplateName(name)
	}
	if err := spec.Validate(); err != nil {
		return EntitySpec{}, err
	}
	return spec, nil
}

// FileName adds the .yaml extension when missing.
func FileName(name string) string {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return name
	}
	return name + ".yaml"
}

// TemplateName strips directories and the extension from a prefab path.
func TemplateName(p string) string {
	base := path.Base(cleanPrefabPath(p))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Names lists the embedded templates.
func Names() ([]string, error) {
	files, err := fs.Glob(PrefabsFS, "*.yaml")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, TemplateName(f))
	}
	sort.Strings(names)
	return names, nil
}
