package speech

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const ttsRequestTimeout = 10 * time.Second

// TTSSpeaker fetches MP3 pronunciations from Google Translate's
// text-to-speech endpoint (free, no API key needed), caches them on disk
// and plays them through an external audio player.
type TTSSpeaker struct {
	audioDir string
	player   string

	// play runs one utterance to completion or until ctx is canceled.
	play func(ctx context.Context, text, language string) error

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewTTSSpeaker creates a speaker caching audio under audioDir and playing
// files with the given player command (e.g. mpg123).
func NewTTSSpeaker(audioDir, player string) *TTSSpeaker {
	s := &TTSSpeaker{audioDir: audioDir, player: player}
	s.play = s.fetchAndPlay
	return s
}

// Speak fetches (or reuses) the audio for text and plays it. Any prior
// utterance is canceled first. onDone fires after playback completes; it is
// skipped when the utterance is canceled or playback fails. Safe to call
// from playback completion callbacks and other goroutines.
func (s *TTSSpeaker) Speak(text string, opts Options, onDone func()) {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer cancel()

		if err := s.play(ctx, text, opts.Language); err != nil {
			if ctx.Err() == nil {
				log.Printf("Error speaking %q: %v", text, err)
			}
			return
		}
		if ctx.Err() == nil && onDone != nil {
			onDone()
		}
	}()
}

// Stop cancels the in-flight utterance, if any.
func (s *TTSSpeaker) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *TTSSpeaker) fetchAndPlay(ctx context.Context, text, language string) error {
	path, err := s.ensureAudioFile(ctx, text, language)
	if err != nil {
		return err
	}
	return exec.CommandContext(ctx, s.player, path).Run()
}

// ensureAudioFile returns the cached MP3 path for text, fetching it first
// if missing.
func (s *TTSSpeaker) ensureAudioFile(ctx context.Context, text, language string) (string, error) {
	sanitized := strings.ToLower(strings.TrimSpace(text))
	sanitized = strings.ReplaceAll(sanitized, " ", "_")

	filename := fmt.Sprintf("word_%s.mp3", sanitized)
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}
	if err := s.fetchGoogleTTS(ctx, text, language, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}
	return path, nil
}

func (s *TTSSpeaker) fetchGoogleTTS(ctx context.Context, text, language, outputPath string) error {
	lang := "en"
	if language != "" {
		if idx := strings.Index(language, "-"); idx > 0 {
			lang = language[:idx]
		} else {
			lang = language
		}
	}

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", lang)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := "https://translate.google.com/translate_tts?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent (required by Google)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	client := &http.Client{Timeout: ttsRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return nil
}

// NullSpeaker discards all utterances. Used when audio output is disabled.
type NullSpeaker struct{}

func (NullSpeaker) Speak(text string, opts Options, onDone func()) {
	if onDone != nil {
		onDone()
	}
}

func (NullSpeaker) Stop() {}
