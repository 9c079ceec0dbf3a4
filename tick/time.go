package tick

// Time measures durations in milliseconds on top of a frame Tick.
type Time struct {
	tick Tick
	rate int
}

// NewTime returns a stopped Time running at rate frames per second.
func NewTime(rate int) *Time {
	return &Time{rate: rate}
}

func (t *Time) Start()   { t.tick.Start() }
func (t *Time) Stop()    { t.tick.Stop() }
func (t *Time) Restart() { t.tick.Restart() }

func (t *Time) Update(extrp float64) {
	t.tick.Update(extrp)
}

func (t *Time) IsStarted() bool {
	return t.tick.IsStarted()
}

// IsBefore reports whether less than ms milliseconds elapsed.
func (t *Time) IsBefore(ms int64) bool {
	return t.tick.IsStarted() && !t.tick.ElapsedTime(t.rate, ms)
}

// IsAfter reports whether at least ms milliseconds elapsed.
func (t *Time) IsAfter(ms int64) bool {
	return t.tick.ElapsedTime(t.rate, ms)
}

// IsBetween reports whether the elapsed time lies in [from, to).
func (t *Time) IsBetween(from, to int64) bool {
	return t.IsAfter(from) && t.IsBefore(to)
}
