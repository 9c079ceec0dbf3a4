package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// speakerSink plays the bank's effects on the beep speaker.
type speakerSink struct{}

// openSpeaker opens the audio device for format with a tenth of a second of
// buffering.
func openSpeaker(format beep.Format) (*speakerSink, error) {
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &speakerSink{}, nil
}

func (*speakerSink) Play(s beep.Streamer) { speaker.Play(s) }
