package skooppi

import "sync"

// tapLimit is the maximum number of buffered samples per channel. If a
// subscriber stops pulling, older samples are dropped so the tap never grows
// without bound.
const tapLimit = 32768

// Tap accumulates the audio sent to the output so that analysis code (e.g.
// the oscilloscope) can pull it at its own pace. The tap only accumulates
// when it has at least one subscriber; otherwise Push is a no-op. All methods
// are safe to call from multiple goroutines, but there should be only one
// consumer calling PopAll.
type Tap struct {
	mu          sync.Mutex
	subscribers int

	left, right           []float32
	spareLeft, spareRight []float32
}

func (t *Tap) Subscribe() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers++
}

func (t *Tap) Unsubscribe() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.subscribers > 0 {
		t.subscribers--
	}
	if t.subscribers == 0 {
		t.left = t.left[:0]
		t.right = t.right[:0]
	}
}

// Push appends the contents of buf to the tap, deinterleaved. Called by the
// audio producing context; never blocks on the consumer.
func (t *Tap) Push(buf AudioBuffer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.subscribers == 0 {
		return
	}
	for _, frame := range buf {
		t.left = append(t.left, frame[0])
		t.right = append(t.right, frame[1])
	}
	if d := len(t.left) - tapLimit; d > 0 {
		t.left = t.left[:copy(t.left, t.left[d:])]
		t.right = t.right[:copy(t.right, t.right[d:])]
	}
}

// PopAll returns all samples accumulated since the previous call, one slice
// per channel, of equal length. Non-blocking; the slices are empty if nothing
// was buffered. The returned slices are valid until the next call to PopAll.
func (t *Tap) PopAll() (left, right []float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	left, right = t.left, t.right
	t.left, t.spareLeft = t.spareLeft[:0], left
	t.right, t.spareRight = t.spareRight[:0], right
	return left, right
}

// Tee returns an AudioSource that reads from src and pushes everything it
// read into the tap.
func Tee(src AudioSource, tap *Tap) AudioSource {
	return &teeSource{src: src, tap: tap}
}

type teeSource struct {
	src AudioSource
	tap *Tap
}

func (t *teeSource) ReadAudio(buf AudioBuffer) error {
	if err := t.src.ReadAudio(buf); err != nil {
		return err
	}
	t.tap.Push(buf)
	return nil
}
