package feature

import (
	"fmt"

	"github.com/milk9111/lionheart/common"
	"github.com/milk9111/lionheart/entity"
)

const (
	sheetCurveForce = 6.0
	sheetCurveSpeed = 7.0
)

// Sheet is a cloth that sags under the entity standing on it, in degrees of
// a half sine.
type Sheet struct {
	start bool
	done  bool
	curve float64
	abort bool
}

func (s *Sheet) Prepare(m *entity.Model) error {
	glue, ok := entity.GetFeature[*Glue](m, entity.FeatureGlue)
	if !ok {
		return fmt.Errorf("%w: sheet of %s needs glue", entity.ErrMissingCapability, m.Name)
	}
	glue.AddListener(GlueListener{
		Start: func(*entity.Model) {
			glue.SetOffsetY(s.Offset)
			s.start = true
			s.done = false
			glue.SetEnabled(true)
			s.abort = false
		},
		End: func(*entity.Model) {
			glue.SetEnabled(false)
			s.abort = true
		},
	})
	return nil
}

func (s *Sheet) Recycle() {
	s.start = false
	s.done = false
	s.curve = 0
	s.abort = false
}

// Offset is how deep the sheet currently sags.
func (s *Sheet) Offset() float64 {
	return common.Sin(s.curve) * sheetCurveForce
}

func (s *Sheet) Update(float64) {
	if !s.start {
		return
	}
	if !s.done {
		if s.abort && s.curve < 90 {
			s.curve -= sheetCurveSpeed
		} else {
			s.curve += sheetCurveSpeed
		}
	}
	if s.curve < 0 || s.curve > 180 {
		s.curve = 0
		s.done = true
	}
}
