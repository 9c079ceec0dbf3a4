package main

import (
	"context"
	"errors"
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/lionheart/audio"
	"github.com/milk9111/lionheart/logger"
	"github.com/milk9111/lionheart/prefabs"
)

func main() {
	levelName := flag.String("level", "stage1", "level name in levels/ (basename, .yaml optional)")
	debug := flag.Bool("debug", false, "draw hitboxes and player stats")
	watch := flag.Bool("watch", false, "reload prefab templates edited on disk")
	mute := flag.Bool("mute", false, "disable sound effects")
	scale := flag.Int("scale", 3, "window scale")
	flag.Parse()

	logger.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bank := newBank(ctx, *mute)

	var watcher *prefabs.Watcher
	if *watch {
		w, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			logger.Log.WithError(err).Warn("template watcher disabled")
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	game, err := NewGame(*levelName, bank, watcher, *debug)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to start")
	}

	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w**scale, h**scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("lionheart")

	if err := ebiten.RunGame(game); err != nil {
		logger.Log.WithError(err).Fatal("game stopped")
	}
}

// newBank opens the speaker and starts filling the effect cache. A muted or
// silent game gets a bank without sink.
func newBank(ctx context.Context, mute bool) *audio.Bank {
	settings := audio.Settings{VolumeSfx: 80}
	if mute {
		settings.VolumeSfx = 0
		return audio.NewBank(settings, audio.DefaultFormat, nil)
	}
	var sink audio.Sink
	if sp, err := openSpeaker(audio.DefaultFormat); err != nil {
		logger.Log.WithError(err).Warn("no audio device")
	} else {
		sink = sp
	}
	bank := audio.NewBank(settings, audio.DefaultFormat, sink)

	prewarm := bank.StartPrewarm(ctx, audio.All())
	go func() {
		err := prewarm.Wait(audio.PrewarmTimeout)
		switch {
		case err == nil:
			logger.Log.Debug("sfx cache ready")
		case errors.Is(err, audio.ErrPrewarmTimeout), errors.Is(err, context.Canceled):
			logger.Log.WithError(err).Warn("sfx cache incomplete")
		default:
			logger.Log.WithError(err).Error("sfx cache failed")
		}
	}()
	return bank
}
