package component

// Device is the input source of an entity: keyboard for the player, a replay
// for tests or a feature driven function for monsters.
type Device interface {
	Horizontal() float64
	Vertical() float64
	Fire() bool
	FireOnce() bool
}

// DeviceState is a device whose values are written by the caller each frame.
type DeviceState struct {
	H, V        float64
	FireHeld    bool
	FirePressed bool
}

func (d *DeviceState) Horizontal() float64 { return d.H }
func (d *DeviceState) Vertical() float64   { return d.V }
func (d *DeviceState) Fire() bool          { return d.FireHeld }
func (d *DeviceState) FireOnce() bool      { return d.FirePressed }

// DeviceFuncs reads its axes from functions and never fires.
type DeviceFuncs struct {
	H, V func() float64
}

func (d DeviceFuncs) Horizontal() float64 {
	if d.H == nil {
		return 0
	}
	return d.H()
}

func (d DeviceFuncs) Vertical() float64 {
	if d.V == nil {
		return 0
	}
	return d.V()
}

func (DeviceFuncs) Fire() bool     { return false }
func (DeviceFuncs) FireOnce() bool { return false }

type Control struct {
	Device Device
}

// Current never returns nil.
func (c *Control) Current() Device {
	if c == nil || c.Device == nil {
		return DeviceFuncs{}
	}
	return c.Device
}

var ControlComponent = NewComponent[Control]()
