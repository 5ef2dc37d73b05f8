package oto

import (
	"encoding/binary"
	"math"

	"github.com/vtervo/skooppi"
)

// FloatBufferToBytes converts a stereo buffer into interleaved little-endian
// float32 bytes, appending to out. Pass out with zero length (but possibly
// nonzero capacity) to reuse the same byte slice across calls.
func FloatBufferToBytes(buf skooppi.AudioBuffer, out []byte) []byte {
	for _, frame := range buf {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(frame[0]))
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(frame[1]))
	}
	return out
}
