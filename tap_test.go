package skooppi

import "testing"

func pushFrames(t *Tap, samples ...float32) {
	buf := make(AudioBuffer, len(samples))
	for i, s := range samples {
		buf[i] = [2]float32{s, -s}
	}
	t.Push(buf)
}

func TestTapIgnoresPushWithoutSubscribers(t *testing.T) {
	var tap Tap
	pushFrames(&tap, 1, 2, 3)
	l, r := tap.PopAll()
	if len(l) != 0 || len(r) != 0 {
		t.Fatalf("expected empty pop, got %d/%d samples", len(l), len(r))
	}
}

func TestTapAccumulatesAndPops(t *testing.T) {
	var tap Tap
	tap.Subscribe()
	pushFrames(&tap, 1, 2)
	pushFrames(&tap, 3)
	l, r := tap.PopAll()
	if len(l) != 3 || len(r) != 3 {
		t.Fatalf("expected 3 samples per channel, got %d/%d", len(l), len(r))
	}
	for i, want := range []float32{1, 2, 3} {
		if l[i] != want || r[i] != -want {
			t.Errorf("sample %d: got %v/%v, want %v/%v", i, l[i], r[i], want, -want)
		}
	}
	if l, r = tap.PopAll(); len(l) != 0 || len(r) != 0 {
		t.Fatalf("second pop should be empty, got %d/%d samples", len(l), len(r))
	}
}

func TestTapUnsubscribeDropsBuffered(t *testing.T) {
	var tap Tap
	tap.Subscribe()
	pushFrames(&tap, 1, 2, 3)
	tap.Unsubscribe()
	tap.Subscribe()
	l, _ := tap.PopAll()
	if len(l) != 0 {
		t.Fatalf("expected buffer to be dropped on unsubscribe, got %d samples", len(l))
	}
}

func TestTapDropsOldestWhenFull(t *testing.T) {
	var tap Tap
	tap.Subscribe()
	buf := make(AudioBuffer, tapLimit)
	for i := range buf {
		buf[i] = [2]float32{0, 0}
	}
	tap.Push(buf)
	pushFrames(&tap, 42)
	l, r := tap.PopAll()
	if len(l) != tapLimit {
		t.Fatalf("expected %d samples, got %d", tapLimit, len(l))
	}
	if l[len(l)-1] != 42 || r[len(r)-1] != -42 {
		t.Errorf("expected newest sample to survive, got %v/%v", l[len(l)-1], r[len(r)-1])
	}
}

func TestTeePushesToTap(t *testing.T) {
	var tap Tap
	tap.Subscribe()
	src := Tee(constSource(0.5), &tap)
	buf := make(AudioBuffer, 16)
	if err := src.ReadAudio(buf); err != nil {
		t.Fatalf("ReadAudio: %v", err)
	}
	l, _ := tap.PopAll()
	if len(l) != 16 {
		t.Fatalf("expected 16 samples in tap, got %d", len(l))
	}
	if l[0] != 0.5 {
		t.Errorf("expected tapped sample 0.5, got %v", l[0])
	}
}

type constSource float32

func (c constSource) ReadAudio(buf AudioBuffer) error {
	for i := range buf {
		buf[i] = [2]float32{float32(c), float32(c)}
	}
	return nil
}
