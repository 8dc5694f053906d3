package engine

import (
	"math/rand"
	"sync"
	"time"

	"verblearn/internal/game"
	"verblearn/internal/models"
	"verblearn/internal/speech"
)

const pronunciationAdvance = 2 * time.Second

// PronunciationOutcome is the result of one listening attempt.
type PronunciationOutcome struct {
	Err     error
	Heard   string
	Correct bool
	Points  int
	State   game.ScoreState
}

// PronunciationGame asks the user to pronounce a random verb form and
// scores the recognized transcript against it. Recognition details
// (alternatives, interim fallback, retries) live in the speech manager.
// Recognition callbacks and the scheduled auto-advance arrive on other
// goroutines, so round state is mutex-guarded.
type PronunciationGame struct {
	session *game.Session
	points  PointsConfig
	pool    []models.Verb
	manager *speech.Manager
	sched   *Scheduler

	mu       sync.Mutex
	onRound  func()
	target   string
	answered bool
}

func NewPronunciationGame(session *game.Session, pool []models.Verb, manager *speech.Manager, points PointsConfig) *PronunciationGame {
	g := &PronunciationGame{
		session: session,
		points:  points,
		pool:    pool,
		manager: manager,
		sched:   NewScheduler(),
	}
	g.Setup()
	return g
}

// OnRound registers a callback fired whenever a fresh round is set up.
func (g *PronunciationGame) OnRound(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onRound = fn
}

// Available reports whether speech recognition is configured at all.
func (g *PronunciationGame) Available() bool {
	return g.manager.Available()
}

// Setup picks a random verb and asks for its infinitive or past form with
// equal probability.
func (g *PronunciationGame) Setup() {
	verb := g.pool[rand.Intn(len(g.pool))]
	target := verb.Infinitive
	if rand.Intn(2) == 1 {
		target = verb.Past
	}

	g.mu.Lock()
	g.target = target
	g.answered = false
	onRound := g.onRound
	g.mu.Unlock()

	if onRound != nil {
		onRound()
	}
}

// Target returns the word the user should pronounce.
func (g *PronunciationGame) Target() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.target
}

// StartListening begins a recognition session. The outcome callback fires
// once: with a comparison result, or with the recognition error.
func (g *PronunciationGame) StartListening(onOutcome func(PronunciationOutcome)) {
	g.manager.StartListening(func(text string) {
		g.mu.Lock()
		outcome := PronunciationOutcome{Heard: text}
		outcome.Correct = Normalize(text) == Normalize(g.target)
		if outcome.Correct && !g.answered {
			g.answered = true
			outcome.Points = g.points.Correct
			outcome.State = g.session.UpdateScore(outcome.Points)
			g.sched.After(pronunciationAdvance, g.Setup)
		}
		g.mu.Unlock()
		onOutcome(outcome)
	}, func(err error) {
		onOutcome(PronunciationOutcome{Err: err})
	})
}

// StopListening cancels the in-flight recognition; its late result is
// discarded.
func (g *PronunciationGame) StopListening() {
	g.manager.StopListening()
}

// Teardown stops listening and cancels any pending auto-advance.
func (g *PronunciationGame) Teardown() {
	g.manager.StopListening()
	g.sched.CancelAll()
}
