package skooppi

// AudioBuffer is a buffer of stereo audio samples of the form
// [[l1, r1], [l2, r2], ...]
type AudioBuffer [][2]float32

// AudioSource produces stereo audio. ReadAudio should fill the whole buffer
// and return a non-nil error only when no more audio can be produced.
type AudioSource interface {
	ReadAudio(buf AudioBuffer) error
}
