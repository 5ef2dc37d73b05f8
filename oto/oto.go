package oto

import (
	"fmt"
	"io"

	"github.com/ebitengine/oto/v3"
	"github.com/vtervo/skooppi"
)

// Context wraps an oto audio context for playing skooppi.AudioSources.
type Context struct {
	context *oto.Context
}

// playFrames is the number of stereo frames pulled from the source per read.
const playFrames = 2048

// NewContext creates a stereo float32 output context at the given sample
// rate and waits until the audio device is ready.
func NewContext(sampleRate int) (*Context, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{context: context}, nil
}

// Play starts playing audio pulled from the source. The returned closer stops
// the playback and releases the player.
func (c *Context) Play(source skooppi.AudioSource) io.Closer {
	r := &sourceReader{
		source: source,
		buf:    make(skooppi.AudioBuffer, playFrames),
	}
	player := c.context.NewPlayer(r)
	player.Play()
	return player
}

// sourceReader adapts an AudioSource into the io.Reader the oto player pulls
// from, converting float32 frames into little-endian bytes.
type sourceReader struct {
	source  skooppi.AudioSource
	buf     skooppi.AudioBuffer
	pending []byte
	off     int
}

func (r *sourceReader) Read(p []byte) (int, error) {
	if r.off >= len(r.pending) {
		if err := r.source.ReadAudio(r.buf); err != nil {
			return 0, err
		}
		r.pending = FloatBufferToBytes(r.buf, r.pending[:0])
		r.off = 0
	}
	n := copy(p, r.pending[r.off:])
	r.off += n
	return n, nil
}
