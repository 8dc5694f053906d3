package engine

import (
	"math/rand"
	"sync"
	"time"

	"verblearn/internal/game"
	"verblearn/internal/models"
)

const (
	letterChoiceAdvance = 2 * time.Second
	alphabet            = "abcdefghijklmnopqrstuvwxyz"
)

// LetterChoiceGame removes one letter from a word and offers four choices:
// the missing letter and three distinct distractors. A wrong pick reveals
// the correct letter and lets the user try again on the same word. The
// scheduled auto-advance runs Setup on a timer goroutine, so round state
// is mutex-guarded.
type LetterChoiceGame struct {
	session *game.Session
	points  PointsConfig
	pool    []models.Verb
	sched   *Scheduler

	mu           sync.Mutex
	onRound      func()
	verb         models.Verb
	word         []rune
	missingIndex int
	correct      string
	choices      []string
	answered     bool
}

func NewLetterChoiceGame(session *game.Session, pool []models.Verb, points PointsConfig) *LetterChoiceGame {
	g := &LetterChoiceGame{
		session: session,
		points:  points,
		pool:    pool,
		sched:   NewScheduler(),
	}
	g.Setup()
	return g
}

// OnRound registers a callback fired whenever a fresh round is set up.
func (g *LetterChoiceGame) OnRound(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onRound = fn
}

// Setup picks a random verb's past form and removes one letter: a non-edge
// position for words of three or more letters, any position otherwise.
func (g *LetterChoiceGame) Setup() {
	verb := g.pool[rand.Intn(len(g.pool))]
	word := []rune(verb.Past)

	var missingIndex int
	if len(word) >= 3 {
		missingIndex = 1 + rand.Intn(len(word)-2)
	} else {
		missingIndex = rand.Intn(len(word))
	}
	correct := string(word[missingIndex])

	distractors := make(map[string]bool)
	for len(distractors) < 3 {
		letter := string(alphabet[rand.Intn(len(alphabet))])
		if letter != correct && !distractors[letter] {
			distractors[letter] = true
		}
	}
	choices := []string{correct}
	for letter := range distractors {
		choices = append(choices, letter)
	}

	g.mu.Lock()
	g.verb = verb
	g.word = word
	g.missingIndex = missingIndex
	g.correct = correct
	g.choices = shuffled(choices)
	g.answered = false
	onRound := g.onRound
	g.mu.Unlock()

	if onRound != nil {
		onRound()
	}
}

// Masked returns the word with the missing letter replaced by an underscore.
func (g *LetterChoiceGame) Masked() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	masked := make([]rune, len(g.word))
	copy(masked, g.word)
	masked[g.missingIndex] = '_'
	return string(masked)
}

// Choices returns the four shuffled letter options.
func (g *LetterChoiceGame) Choices() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.choices
}

// Choose submits a letter. Correct picks lock the round and schedule the
// next one; wrong picks reveal the correct letter and keep the round open.
func (g *LetterChoiceGame) Choose(letter string) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.answered {
		return Result{}, ErrAlreadyAnswered
	}

	result := Result{
		Answer:   letter,
		Expected: g.correct,
	}
	result.Correct = Normalize(letter) == Normalize(g.correct)
	if result.Correct {
		result.Points = g.points.Correct
		g.answered = true
		g.sched.After(letterChoiceAdvance, g.Setup)
	} else {
		result.Points = g.points.Incorrect
	}
	result.State = g.session.UpdateScore(result.Points)
	return result, nil
}

// Teardown cancels any pending auto-advance.
func (g *LetterChoiceGame) Teardown() {
	g.sched.CancelAll()
}
