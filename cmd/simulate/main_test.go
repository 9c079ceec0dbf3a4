package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/lionheart/sim"
)

func TestRunWithoutReplay(t *testing.T) {
	var out bytes.Buffer
	if err := run(options{level: "stage1", frames: 30}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); !strings.HasPrefix(got, "frame 30: valdyn at (32.00, 48.00)") {
		t.Fatalf("report = %q", got)
	}
}

func TestRunReplayFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	if err := os.WriteFile(path, []byte("steps:\n  - {frames: 40, h: 1}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	var out bytes.Buffer
	if err := run(options{level: "stage1", inputs: path}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "frame 40: valdyn") {
		t.Fatalf("report = %q", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{"missing level", options{level: "no_such_level", frames: 1}},
		{"missing replay", options{level: "stage1", inputs: filepath.Join(t.TempDir(), "nope.yaml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.opts, &bytes.Buffer{}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestTerminalViewDrawsPlayer(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(40, 14)
	view := newTerminalViewOn(screen)
	defer view.Close()

	s := sim.New(sim.Config{})
	if err := s.LoadLevel("stage1"); err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	view.Draw(s)

	found, ground := false, false
	for y := 0; y < 14; y++ {
		for x := 0; x < 40; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			found = found || r == '@'
			ground = ground || r == '#'
		}
	}
	if !found || !ground {
		t.Fatalf("player drawn %v, ground drawn %v", found, ground)
	}
}

func TestGlyphOf(t *testing.T) {
	tests := []struct {
		name string
		want rune
	}{
		{"spider", 'S'},
		{"", '?'},
	}
	for _, tt := range tests {
		if got := glyphOf(tt.name); got != tt.want {
			t.Fatalf("glyphOf(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
