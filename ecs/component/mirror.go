package component

type MirrorMode int

const (
	MirrorNone MirrorMode = iota
	MirrorHorizontal
	MirrorVertical
)

type Mirror struct {
	Mode MirrorMode
}

func (m *Mirror) Set(mode MirrorMode) {
	m.Mode = mode
}

func (m *Mirror) Is(mode MirrorMode) bool {
	return m != nil && m.Mode == mode
}

var MirrorComponent = NewComponent[Mirror]()
