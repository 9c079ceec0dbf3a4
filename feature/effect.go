package feature

import (
	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/entity"
)

// Effect plays its idle animation once and destroys the model when it ends.
type Effect struct {
	m *entity.Model
}

func (f *Effect) Prepare(m *entity.Model) error {
	f.m = m
	if err := m.Require(string(entity.FeatureEffect), entity.CapAnim); err != nil {
		return err
	}
	m.Anim.AddListener(func(s component.AnimState) {
		if s == component.AnimFinished {
			f.m.Destroy()
		}
	})
	return nil
}

func (f *Effect) Recycle() {
	if !f.m.PlayAnim(animIdle) {
		f.m.Destroy()
	}
}
