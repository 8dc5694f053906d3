package models

// Settings holds the user-adjustable speech and playback preferences.
type Settings struct {
	SpeechSpeed   float64 `json:"speechSpeed"`
	VoiceVolume   float64 `json:"voiceVolume"`
	VoicePitch    float64 `json:"voicePitch"`
	AutoPlayAudio bool    `json:"autoPlayAudio"`
	Language      string  `json:"language"`
	Theme         string  `json:"theme"`
}

// DefaultSettings returns the settings applied before any saved values are
// merged in.
func DefaultSettings() Settings {
	return Settings{
		SpeechSpeed:   0.9,
		VoiceVolume:   0.8,
		VoicePitch:    1.0,
		AutoPlayAudio: true,
		Language:      "en-US",
		Theme:         "light",
	}
}
