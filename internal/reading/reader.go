package reading

import (
	"strconv"
	"sync"
	"time"

	"verblearn/internal/models"
	"verblearn/internal/score"
	"verblearn/internal/speech"
)

const reciteInterval = 5 * time.Second

// Reader walks one essay sentence by sentence, reads it aloud and runs the
// recite loop. Leaving the screen must call Stop so no timer or utterance
// outlives it.
type Reader struct {
	speaker speech.Speaker
	opts    speech.Options
	essay   Essay

	mu            sync.Mutex
	sentenceIndex int
	reciting      bool
	reciteTimer   *time.Timer
	onSentence    func(index int)
}

// NewReader starts on the first essay.
func NewReader(speaker speech.Speaker, opts speech.Options) *Reader {
	r := &Reader{speaker: speaker, opts: opts}
	if essays := Essays(); len(essays) > 0 {
		r.essay = essays[0]
	}
	return r
}

// OnSentence registers a callback fired whenever the active sentence
// changes, recite loop included.
func (r *Reader) OnSentence(fn func(index int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onSentence = fn
}

// SelectEssay switches texts and rewinds to the first sentence.
func (r *Reader) SelectEssay(id string) bool {
	essay, ok := EssayByID(id)
	if !ok {
		return false
	}
	r.StopReciting()
	r.mu.Lock()
	r.essay = essay
	r.sentenceIndex = 0
	r.mu.Unlock()
	return true
}

// Essay returns the active text.
func (r *Reader) Essay() Essay {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.essay
}

// SentenceIndex returns the active sentence position.
func (r *Reader) SentenceIndex() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sentenceIndex
}

// CurrentSentence returns the active sentence: plain text normally,
// verbs masked while reciting.
func (r *Reader) CurrentSentence() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renderLocked(r.sentenceIndex)
}

func (r *Reader) renderLocked(index int) string {
	if index < 0 || index >= len(r.essay.Sentences) {
		return ""
	}
	if r.reciting {
		return MaskVerbs(r.essay.Sentences[index])
	}
	return PlainText(r.essay.Sentences[index])
}

// NextSentence advances; it stops at the last sentence.
func (r *Reader) NextSentence() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sentenceIndex >= len(r.essay.Sentences)-1 {
		return false
	}
	r.sentenceIndex++
	r.notifyLocked()
	return true
}

// PrevSentence steps back; it stops at the first sentence.
func (r *Reader) PrevSentence() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sentenceIndex <= 0 {
		return false
	}
	r.sentenceIndex--
	r.notifyLocked()
	return true
}

func (r *Reader) notifyLocked() {
	if r.onSentence != nil {
		r.onSentence(r.sentenceIndex)
	}
}

// ReadSentence speaks the active sentence without markup.
func (r *Reader) ReadSentence() {
	r.mu.Lock()
	text := PlainText(r.essay.Sentences[r.sentenceIndex])
	r.mu.Unlock()
	r.speaker.Speak(text, r.opts, nil)
}

// ReadEssay reads from the active sentence to the end, chaining each
// sentence off the previous one's completion.
func (r *Reader) ReadEssay() {
	r.speaker.Stop()
	r.mu.Lock()
	start := r.sentenceIndex
	r.mu.Unlock()
	r.readFrom(start)
}

func (r *Reader) readFrom(index int) {
	r.mu.Lock()
	if index >= len(r.essay.Sentences) {
		r.mu.Unlock()
		return
	}
	r.sentenceIndex = index
	text := PlainText(r.essay.Sentences[index])
	r.notifyLocked()
	r.mu.Unlock()

	r.speaker.Speak(text, r.opts, func() {
		r.readFrom(index + 1)
	})
}

// Reciting reports whether the recite loop is running.
func (r *Reader) Reciting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reciting
}

// StartReciting hides the verbs and paces through the essay, one sentence
// every five seconds, wrapping around at the end.
func (r *Reader) StartReciting() {
	r.mu.Lock()
	if r.reciting {
		r.mu.Unlock()
		return
	}
	r.reciting = true
	r.sentenceIndex = 0
	r.mu.Unlock()
	r.reciteStep()
}

func (r *Reader) reciteStep() {
	r.mu.Lock()
	if !r.reciting {
		r.mu.Unlock()
		return
	}
	if r.sentenceIndex >= len(r.essay.Sentences) {
		r.sentenceIndex = 0
	}
	text := PlainText(r.essay.Sentences[r.sentenceIndex])
	r.notifyLocked()
	r.reciteTimer = time.AfterFunc(reciteInterval, func() {
		r.mu.Lock()
		if !r.reciting {
			r.mu.Unlock()
			return
		}
		r.sentenceIndex++
		r.mu.Unlock()
		r.reciteStep()
	})
	r.mu.Unlock()

	r.speaker.Speak(text, r.opts, nil)
}

// StopReciting halts the loop, cancels the pending timer and silences the
// speaker.
func (r *Reader) StopReciting() {
	r.mu.Lock()
	r.reciting = false
	if r.reciteTimer != nil {
		r.reciteTimer.Stop()
		r.reciteTimer = nil
	}
	r.mu.Unlock()
	r.speaker.Stop()
}

// Stop tears the reader down when leaving the screen.
func (r *Reader) Stop() {
	r.StopReciting()
}

// RecordScore logs a reading session for the student: the completion
// percentage is the score, with the essay context in the details.
func (r *Reader) RecordScore(scores *score.Store, studentID string, completionPercentage, recitedWords int) (models.Session, error) {
	essay := r.Essay()
	details := map[string]string{
		"essayId":              essay.ID,
		"title":                essay.Title,
		"completionPercentage": strconv.Itoa(completionPercentage),
		"recitedWords":         strconv.Itoa(recitedWords),
	}
	return scores.RecordScore(studentID, "reading", completionPercentage, details)
}
