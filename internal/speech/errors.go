package speech

import "errors"

var (
	// ErrRecognitionUnavailable means no speech-recognition backend is
	// configured. The pronunciation feature degrades to a disabled state.
	ErrRecognitionUnavailable = errors.New("speech: recognition unavailable")

	// ErrRecognitionTimeout means no final transcript arrived after the
	// maximum number of retries.
	ErrRecognitionTimeout = errors.New("speech: could not recognize speech after multiple attempts")
)
