// Command simulate runs a level without a window, optionally driven by a
// replay recorded in the game, and prints where the player ended up.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/ecs/system"
	"github.com/milk9111/lionheart/logger"
	"github.com/milk9111/lionheart/sim"
)

const defaultFrames = 600

type options struct {
	level  string
	frames int
	inputs string
	tui    bool
	delay  time.Duration
}

func main() {
	var opts options
	flag.StringVar(&opts.level, "level", "stage1", "level name in levels/")
	flag.IntVar(&opts.frames, "frames", 0, "frames to run, defaults to the replay length")
	flag.StringVar(&opts.inputs, "inputs", "", "replay file recorded in the game")
	flag.BoolVar(&opts.tui, "tui", false, "draw the level in the terminal")
	flag.DurationVar(&opts.delay, "delay", time.Second/60, "frame delay of the terminal view")
	flag.Parse()

	logger.Init()

	if err := run(opts, os.Stdout); err != nil {
		logger.Log.WithError(err).Fatal("simulation failed")
	}
}

func run(opts options, out io.Writer) error {
	replay := &sim.Replay{}
	if opts.inputs != "" {
		f, err := os.Open(opts.inputs)
		if err != nil {
			return err
		}
		replay, err = sim.ReadReplay(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	frames := opts.frames
	if frames <= 0 {
		frames = replay.Frames()
	}
	if frames <= 0 {
		frames = defaultFrames
	}

	device := sim.NewReplayDevice(replay)
	s := sim.New(sim.Config{Device: device, Pollers: []system.Poller{device}})
	if err := s.LoadLevel(opts.level); err != nil {
		return err
	}

	counts := make(map[ecs.EventType]int)
	if opts.tui {
		view, err := newTerminalView()
		if err != nil {
			return err
		}
		err = view.Run(s, frames, opts.delay, counts)
		view.Close()
		if err != nil {
			return err
		}
	} else {
		for i := 0; i < frames; i++ {
			s.Step()
			countEvents(s, counts)
		}
	}

	return report(s, counts, out)
}

func countEvents(s *sim.Sim, counts map[ecs.EventType]int) {
	for _, ev := range s.Events() {
		counts[ev.Type]++
	}
}

func report(s *sim.Sim, counts map[ecs.EventType]int, out io.Writer) error {
	p, ok := s.Player()
	if !ok {
		_, err := fmt.Fprintf(out, "frame %d: player dead\n", s.Frame())
		return err
	}
	st := "none"
	if p.States != nil {
		st = fmt.Sprint(p.States.Current())
	}
	stats := component.Stats{}
	if p.Stats != nil {
		stats = *p.Stats
	}
	_, err := fmt.Fprintf(out, "frame %d: %s at (%.2f, %.2f) state %s health %d/%d talisment %d life %d spawned %d reaped %d\n",
		s.Frame(), p.Name, p.Transform.X, p.Transform.Y, st,
		stats.Health, stats.HealthMax, stats.Talisment, stats.Life,
		counts[ecs.EventSpawned], counts[ecs.EventReaped])
	return err
}
