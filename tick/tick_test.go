package tick

import (
	"reflect"
	"testing"
)

func TestTickElapsed(t *testing.T) {
	cases := []struct {
		name    string
		start   bool
		updates int
		n       int
		want    bool
	}{
		{"not_started", false, 10, 0, false},
		{"started_zero", true, 0, 0, true},
		{"before", true, 3, 4, false},
		{"reached", true, 4, 4, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var tk Tick
			if c.start {
				tk.Restart()
			}
			for i := 0; i < c.updates; i++ {
				tk.Update(1)
			}
			if got := tk.Elapsed(c.n); got != c.want {
				t.Fatalf("Elapsed(%d) = %v, want %v", c.n, got, c.want)
			}
		})
	}
}

func TestTickStopResets(t *testing.T) {
	var tk Tick
	tk.Restart()
	tk.Update(1)
	tk.Update(1)
	tk.Stop()
	if tk.IsStarted() || tk.Count() != 0 {
		t.Fatalf("expected stopped tick at 0, got started=%v count=%d", tk.IsStarted(), tk.Count())
	}
	tk.Update(1)
	if tk.Count() != 0 {
		t.Fatalf("stopped tick advanced to %d", tk.Count())
	}
}

func TestTickSet(t *testing.T) {
	var tk Tick
	tk.Restart()
	tk.Set(4)
	if !tk.Elapsed(4) {
		t.Fatalf("expected elapsed after Set(4)")
	}
}

func TestTickActionsFireAtOffsets(t *testing.T) {
	var tk Tick
	tk.Restart()

	var fired []int
	for _, at := range []int{18, 0, 9} {
		tk.AddAction(func() { fired = append(fired, tk.Count()) }, at)
	}
	for i := 0; i < 20; i++ {
		tk.Update(1)
	}

	want := []int{0, 9, 18}
	if len(fired) != len(want) {
		t.Fatalf("expected %d actions, got %v", len(want), fired)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("action %d fired at %d, want %d", i, fired[i], want[i])
		}
	}
	if tk.Pending() != 0 {
		t.Fatalf("expected no pending actions, got %d", tk.Pending())
	}
}

func TestTickActionsSameOffsetKeepOrder(t *testing.T) {
	var tk Tick
	tk.Restart()
	var order []string
	tk.AddAction(func() { order = append(order, "a") }, 2)
	tk.AddAction(func() { order = append(order, "b") }, 2)
	for i := 0; i < 3; i++ {
		tk.Update(1)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestTickClearActionsForgets(t *testing.T) {
	var tk Tick
	tk.Restart()
	fired := 0
	tk.AddAction(func() { fired++ }, 0)
	tk.AddAction(func() { fired++ }, 5)
	tk.Update(1)
	tk.ClearActions()
	tk.Stop()
	if !reflect.DeepEqual(tk, Tick{}) {
		t.Fatalf("cleared tick = %+v, want the zero value", tk)
	}
	tk.Restart()
	for i := 0; i < 6; i++ {
		tk.Update(1)
	}
	if fired != 1 || tk.Pending() != 0 {
		t.Fatalf("fired %d pending %d", fired, tk.Pending())
	}
}

func TestTime(t *testing.T) {
	tm := NewTime(60)
	if tm.IsAfter(0) || tm.IsBefore(100) {
		t.Fatalf("stopped time must report neither before nor after")
	}
	tm.Restart()
	for i := 0; i < 30; i++ {
		tm.Update(1)
	}
	if !tm.IsAfter(500) {
		t.Fatalf("expected 500ms elapsed after 30 frames at 60fps")
	}
	if !tm.IsBetween(400, 600) {
		t.Fatalf("expected elapsed time between 400 and 600ms")
	}
	if tm.IsBefore(500) {
		t.Fatalf("IsBefore(500) should be false at 500ms")
	}
}
