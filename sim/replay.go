package sim

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/lionheart/ecs/component"
)

var ErrBadReplay = errors.New("sim: bad replay")

// Input is the device state of one frame.
type Input struct {
	H    float64 `yaml:"h,omitempty"`
	V    float64 `yaml:"v,omitempty"`
	Fire bool    `yaml:"fire,omitempty"`
}

// ReplayStep holds Input for Frames frames.
type ReplayStep struct {
	Frames int `yaml:"frames"`
	Input  `yaml:",inline"`
}

// Replay is a run length encoded input log.
type Replay struct {
	Steps []ReplayStep `yaml:"steps"`
}

// ReadReplay decodes a YAML replay.
func ReadReplay(r io.Reader) (*Replay, error) {
	var rp Replay
	if err := yaml.NewDecoder(r).Decode(&rp); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("sim: decode replay: %w", err)
	}
	for i, s := range rp.Steps {
		if s.Frames <= 0 {
			return nil, fmt.Errorf("%w: step %d lasts %d frames", ErrBadReplay, i, s.Frames)
		}
	}
	return &rp, nil
}

func (r *Replay) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// Frames returns the length of the replay.
func (r *Replay) Frames() int {
	n := 0
	for _, s := range r.Steps {
		n += s.Frames
	}
	return n
}

// Record appends one frame, merging it into the last step when equal.
func (r *Replay) Record(in Input) {
	if n := len(r.Steps); n > 0 && r.Steps[n-1].Input == in {
		r.Steps[n-1].Frames++
		return
	}
	r.Steps = append(r.Steps, ReplayStep{Frames: 1, Input: in})
}

// ReplayDevice plays a replay back, one frame per Poll. Once the log is
// exhausted the device stays idle.
type ReplayDevice struct {
	component.DeviceState
	replay *Replay
	step   int
	left   int
}

func NewReplayDevice(r *Replay) *ReplayDevice {
	return &ReplayDevice{replay: r}
}

func (d *ReplayDevice) Poll() {
	fired := d.FireHeld
	in := d.next()
	d.H, d.V, d.FireHeld = in.H, in.V, in.Fire
	d.FirePressed = in.Fire && !fired
}

// Done reports whether every step was played.
func (d *ReplayDevice) Done() bool {
	return d.left == 0 && d.step >= len(d.replay.Steps)
}

func (d *ReplayDevice) next() Input {
	for d.left == 0 {
		if d.step >= len(d.replay.Steps) {
			return Input{}
		}
		d.left = d.replay.Steps[d.step].Frames
		d.step++
	}
	d.left--
	return d.replay.Steps[d.step-1].Input
}
