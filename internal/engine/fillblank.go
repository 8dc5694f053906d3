package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"verblearn/internal/game"
	"verblearn/internal/models"
)

const fillBlankAdvance = 2 * time.Second

// FillBlankGame scrambles the target word's letters into bubbles; the user
// assembles them into ordered slots and submits once every slot is filled.
// The scheduled auto-advance runs Setup on a timer goroutine, so round
// state is mutex-guarded.
type FillBlankGame struct {
	session *game.Session
	points  PointsConfig
	pool    []models.Verb
	sched   *Scheduler

	mu       sync.Mutex
	onRound  func()
	verb     models.Verb
	question string
	target   []rune
	letters  []rune // scrambled bubbles
	used     []bool
	slots    []int // bubble index per slot, -1 when empty
	answered bool
}

func NewFillBlankGame(session *game.Session, pool []models.Verb, points PointsConfig) *FillBlankGame {
	g := &FillBlankGame{
		session: session,
		points:  points,
		pool:    pool,
		sched:   NewScheduler(),
	}
	g.Setup()
	return g
}

// OnRound registers a callback fired whenever a fresh round is set up.
func (g *FillBlankGame) OnRound(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onRound = fn
}

// Setup picks a random verb and scrambles its past form.
func (g *FillBlankGame) Setup() {
	verb := g.pool[rand.Intn(len(g.pool))]
	target := []rune(verb.Past)
	letters := shuffled(target)
	slots := make([]int, len(target))
	for i := range slots {
		slots[i] = -1
	}

	g.mu.Lock()
	g.verb = verb
	g.question = blankQuestion(verb)
	g.target = target
	g.letters = letters
	g.used = make([]bool, len(letters))
	g.slots = slots
	g.answered = false
	onRound := g.onRound
	g.mu.Unlock()

	if onRound != nil {
		onRound()
	}
}

// blankQuestion rebuilds the example sentence with the verb blanked out,
// keeping the tail of the past-tense example and hinting the infinitive.
func blankQuestion(verb models.Verb) string {
	words := strings.Fields(verb.PastExample)
	tail := ""
	if len(words) > 3 {
		tail = strings.Join(words[3:], " ")
	}
	return fmt.Sprintf("Yesterday, I _____ %s (%s)", tail, verb.Infinitive)
}

// Question returns the prompt sentence.
func (g *FillBlankGame) Question() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.question
}

// Letters returns the scrambled letter bubbles.
func (g *FillBlankGame) Letters() []rune {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.letters
}

// LetterUsed reports whether a bubble has been placed into a slot.
func (g *FillBlankGame) LetterUsed(bubble int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return bubble >= 0 && bubble < len(g.used) && g.used[bubble]
}

// PlaceLetter puts bubble letter into the given slot. The slot must be
// empty and the bubble unused.
func (g *FillBlankGame) PlaceLetter(bubble, slot int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.answered {
		return ErrAlreadyAnswered
	}
	if bubble < 0 || bubble >= len(g.letters) {
		return fmt.Errorf("engine: no letter bubble %d", bubble)
	}
	if slot < 0 || slot >= len(g.slots) {
		return fmt.Errorf("engine: no slot %d", slot)
	}
	if g.used[bubble] {
		return fmt.Errorf("engine: letter bubble %d already placed", bubble)
	}
	if g.slots[slot] != -1 {
		return fmt.Errorf("engine: slot %d already filled", slot)
	}
	g.slots[slot] = bubble
	g.used[bubble] = true
	return nil
}

// ClearSlot removes the letter from a slot, returning its bubble.
func (g *FillBlankGame) ClearSlot(slot int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.answered || slot < 0 || slot >= len(g.slots) {
		return
	}
	if bubble := g.slots[slot]; bubble != -1 {
		g.used[bubble] = false
		g.slots[slot] = -1
	}
}

// AllFilled reports whether every slot holds a letter.
func (g *FillBlankGame) AllFilled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.allFilledLocked()
}

func (g *FillBlankGame) allFilledLocked() bool {
	for _, bubble := range g.slots {
		if bubble == -1 {
			return false
		}
	}
	return true
}

// Answer returns the currently assembled word.
func (g *FillBlankGame) Answer() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.answerLocked()
}

func (g *FillBlankGame) answerLocked() string {
	var b strings.Builder
	for _, bubble := range g.slots {
		if bubble != -1 {
			b.WriteRune(g.letters[bubble])
		}
	}
	return b.String()
}

// Submit validates the assembled word. Submission requires all slots
// filled. A correct answer locks the round and schedules the next one;
// an incorrect answer costs points but the round stays open for retry.
func (g *FillBlankGame) Submit() (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.answered {
		return Result{}, ErrAlreadyAnswered
	}
	if !g.allFilledLocked() {
		return Result{}, fmt.Errorf("engine: fill all %d letters before submitting", len(g.slots))
	}

	result := Result{
		Answer:   g.answerLocked(),
		Expected: g.verb.Past,
	}
	result.Correct = Normalize(result.Answer) == Normalize(result.Expected)
	if result.Correct {
		result.Points = g.points.Correct
		g.answered = true
		g.sched.After(fillBlankAdvance, g.Setup)
	} else {
		result.Points = g.points.Incorrect
	}
	result.State = g.session.UpdateScore(result.Points)
	return result, nil
}

// Teardown cancels any pending auto-advance.
func (g *FillBlankGame) Teardown() {
	g.sched.CancelAll()
}
