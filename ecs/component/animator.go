package component

import "math"

type AnimState int

const (
	AnimStopped AnimState = iota
	AnimPlaying
	AnimFinished
)

func (s AnimState) String() string {
	switch s {
	case AnimPlaying:
		return "playing"
	case AnimFinished:
		return "finished"
	}
	return "stopped"
}

// Animation is a frame range played at Speed frames per update. A negative
// speed plays backward.
type Animation struct {
	Name   string  `yaml:"-"`
	First  int     `yaml:"first"`
	Last   int     `yaml:"last"`
	Speed  float64 `yaml:"speed"`
	Repeat bool    `yaml:"repeat"`
}

type Animator struct {
	Anims map[string]Animation

	// Frame offsets applied by some states while hanging or riding.
	OffsetX, OffsetY float64

	current   Animation
	frame     float64
	speed     float64
	state     AnimState
	listeners []func(AnimState)
}

func (a *Animator) Has(name string) bool {
	if a == nil {
		return false
	}
	_, ok := a.Anims[name]
	return ok
}

func (a *Animator) Get(name string) (Animation, bool) {
	if a == nil {
		return Animation{}, false
	}
	anim, ok := a.Anims[name]
	return anim, ok
}

// Play starts name from its first frame. Unknown names leave the animator
// untouched.
func (a *Animator) Play(name string) bool {
	anim, ok := a.Get(name)
	if !ok {
		return false
	}
	anim.Name = name
	a.current = anim
	a.frame = float64(anim.First)
	a.speed = anim.Speed
	a.state = AnimPlaying
	return true
}

func (a *Animator) Stop() {
	a.state = AnimStopped
}

// Reset stops and forgets the current animation and offsets. Listeners stay.
func (a *Animator) Reset() {
	a.current = Animation{}
	a.frame, a.speed = 0, 0
	a.state = AnimStopped
	a.OffsetX, a.OffsetY = 0, 0
}

func (a *Animator) Current() Animation {
	return a.current
}

func (a *Animator) Frame() int {
	return int(math.Floor(a.frame))
}

func (a *Animator) SetFrame(frame int) {
	a.frame = float64(frame)
}

func (a *Animator) Speed() float64 {
	return a.speed
}

func (a *Animator) SetSpeed(speed float64) {
	a.speed = speed
}

func (a *Animator) State() AnimState {
	return a.state
}

func (a *Animator) Is(state AnimState) bool {
	return a != nil && a.state == state
}

// AddListener registers fn for animation state changes.
func (a *Animator) AddListener(fn func(AnimState)) {
	if fn != nil {
		a.listeners = append(a.listeners, fn)
	}
}

// ClearListeners drops listeners, used before an instance is rebuilt.
func (a *Animator) ClearListeners() {
	a.listeners = nil
}

func (a *Animator) Update(extrp float64) {
	if a.state != AnimPlaying {
		return
	}
	first, last := float64(a.current.First), float64(a.current.Last)
	a.frame += a.speed * extrp
	switch {
	case a.speed >= 0 && a.frame >= last+1:
		if a.current.Repeat {
			a.frame = first + math.Mod(a.frame-first, last-first+1)
			return
		}
		a.frame = last
		a.finish()
	case a.speed < 0 && a.frame < first:
		if a.current.Repeat {
			a.frame = last
			return
		}
		a.frame = first
		a.finish()
	}
}

func (a *Animator) finish() {
	a.state = AnimFinished
	for _, fn := range a.listeners {
		fn(AnimFinished)
	}
}

var AnimatorComponent = NewComponent[Animator]()
