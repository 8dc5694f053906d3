// Package speech abstracts speech synthesis and recognition. The rest of
// the application talks to a Speaker and a Manager; the concrete backends
// (Google TTS playback, a disabled recognizer) live here too.
package speech

import "verblearn/internal/models"

// Options are the per-utterance synthesis knobs.
type Options struct {
	Rate     float64
	Volume   float64
	Pitch    float64
	Language string
}

// OptionsFromSettings maps saved user settings onto utterance options.
func OptionsFromSettings(s models.Settings) Options {
	return Options{
		Rate:     s.SpeechSpeed,
		Volume:   s.VoiceVolume,
		Pitch:    s.VoicePitch,
		Language: s.Language,
	}
}

// Speaker speaks text aloud. Starting a new utterance cancels any prior
// one; onDone fires when playback completes, not when it is canceled.
type Speaker interface {
	Speak(text string, opts Options, onDone func())
	Stop()
}

// Alternative is one candidate transcription with its confidence score.
type Alternative struct {
	Transcript string
	Confidence float64
}

// RecognitionHandlers receive the events of a single recognition attempt.
type RecognitionHandlers struct {
	OnInterim func(transcript string)
	OnFinal   func(alternatives []Alternative)
	OnError   func(err error)
	OnEnd     func()
}

// Recognizer is a single raw speech-to-text attempt. OnEnd must fire when
// the attempt finishes, whether or not a final result was produced.
type Recognizer interface {
	Start(handlers RecognitionHandlers) error
	Stop()
}
