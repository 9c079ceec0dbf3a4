// Package tick provides frame counted timers. A Tick only advances when
// Update is called, so replays with the same frame sequence are identical.
package tick

// Tick counts frames once started. The zero value is stopped and reports
// nothing as elapsed.
type Tick struct {
	count   float64
	started bool
	actions actionHeap
}

// Start resumes counting without resetting the count.
func (t *Tick) Start() {
	t.started = true
}

// Stop halts the tick and resets its count.
func (t *Tick) Stop() {
	t.started = false
	t.count = 0
}

// Restart resets the count to zero and starts counting.
func (t *Tick) Restart() {
	t.count = 0
	t.started = true
}

// Set forces the current count.
func (t *Tick) Set(count float64) {
	t.count = count
}

// Update fires the actions whose offset has been reached, then advances the
// count by extrp. A stopped tick does nothing.
func (t *Tick) Update(extrp float64) {
	if !t.started {
		return
	}
	for {
		do, ok := t.actions.due(t.count)
		if !ok {
			break
		}
		do()
		if !t.started {
			return
		}
	}
	t.count += extrp
}

// Elapsed reports whether at least n frames were counted since the last start.
func (t *Tick) Elapsed(n int) bool {
	return t.started && t.count >= float64(n)
}

// ElapsedTime reports whether ms milliseconds elapsed at rate frames per second.
func (t *Tick) ElapsedTime(rate int, ms int64) bool {
	return t.started && t.count >= float64(ms)*float64(rate)/1000
}

func (t *Tick) IsStarted() bool {
	return t.started
}

// Count returns the whole number of frames counted.
func (t *Tick) Count() int {
	return int(t.count)
}

// AddAction schedules do to run during the Update where the count reaches at.
// Actions sharing an offset run in insertion order.
func (t *Tick) AddAction(do func(), at int) {
	if do == nil {
		return
	}
	t.actions.schedule(float64(at), do)
}

// Pending returns the number of scheduled actions not fired yet.
func (t *Tick) Pending() int {
	return t.actions.len()
}

// ClearActions drops every pending action. The tick then behaves like
// one that never had any.
func (t *Tick) ClearActions() {
	t.actions.clear()
}
