package audio

import (
	"hash/fnv"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/milk9111/lionheart/logger"
)

const toneDuration = 120 * time.Millisecond

// DefaultFormat is the format used by the shells.
var DefaultFormat = beep.Format{SampleRate: beep.SampleRate(44100), NumChannels: 2, Precision: 2}

// Sink receives streamers to play, usually the beep speaker.
type Sink interface {
	Play(s beep.Streamer)
}

// Bank caches one buffer per effect and plays them through a sink.
type Bank struct {
	settings Settings
	format   beep.Format
	sink     Sink

	mu      sync.Mutex
	buffers map[Sfx]*beep.Buffer
}

func NewBank(settings Settings, format beep.Format, sink Sink) *Bank {
	return &Bank{
		settings: settings,
		format:   format,
		sink:     sink,
		buffers:  make(map[Sfx]*beep.Buffer),
	}
}

// Play starts id on the sink. Muted banks and banks without sink skip it.
func (b *Bank) Play(id Sfx) {
	if b == nil || b.sink == nil || b.settings.VolumeSfx <= 0 {
		return
	}
	buf, err := b.buffer(id)
	if err != nil {
		logger.Log.WithError(err).WithField("sfx", id).Warn("sfx unavailable")
		return
	}
	b.sink.Play(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   math.Log2(float64(min(b.settings.VolumeSfx, 100)) / 100),
	})
}

// Cached reports whether id is already synthesized.
func (b *Bank) Cached(id Sfx) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.buffers[id]
	return ok
}

func (b *Bank) buffer(id Sfx) (*beep.Buffer, error) {
	b.mu.Lock()
	buf, ok := b.buffers[id]
	b.mu.Unlock()
	if ok {
		return buf, nil
	}

	buf, err := Synthesize(id, b.format)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if cached, ok := b.buffers[id]; ok {
		return cached, nil
	}
	b.buffers[id] = buf
	return buf, nil
}

// Synthesize renders the placeholder tone of id. The pitch is derived from
// the id so every effect sounds different.
func Synthesize(id Sfx, format beep.Format) (*beep.Buffer, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	freq := 220 + float64(h.Sum32()%660)

	tone, err := generators.SineTone(format.SampleRate, freq)
	if err != nil {
		return nil, err
	}
	buf := beep.NewBuffer(format)
	buf.Append(beep.Take(format.SampleRate.N(toneDuration), tone))
	return buf, nil
}
