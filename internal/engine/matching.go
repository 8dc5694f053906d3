package engine

import (
	"sync"
	"time"

	"verblearn/internal/game"
	"verblearn/internal/models"
)

// DefaultMatchingVerbs is the number of verbs per matching round.
const DefaultMatchingVerbs = 5

const (
	matchingAdvanceAllCorrect = 3 * time.Second
	matchingAdvancePartial    = 4 * time.Second
)

// MatchingCard is one draggable infinitive or one past-tense drop slot.
type MatchingCard struct {
	VerbID int
	Text   string
}

// MatchResult is the outcome of checking a matching round.
type MatchResult struct {
	Correct    int
	Total      int
	Points     int
	AllCorrect bool
	State      game.ScoreState
}

// MatchingGame presents N infinitives and N past forms in two independently
// shuffled sequences; the user assigns each infinitive to a past-tense slot.
// The scheduled auto-advance runs Setup on a timer goroutine, so round
// state is mutex-guarded.
type MatchingGame struct {
	session *game.Session
	points  PointsConfig
	pool    []models.Verb
	count   int
	sched   *Scheduler

	mu          sync.Mutex
	onRound     func()
	infinitives []MatchingCard
	pastSlots   []MatchingCard
	assignments map[int]int // slot verb ID -> assigned verb ID
	submitted   bool
}

func NewMatchingGame(session *game.Session, pool []models.Verb, count int, points PointsConfig) *MatchingGame {
	if count <= 0 {
		count = DefaultMatchingVerbs
	}
	g := &MatchingGame{
		session: session,
		points:  points,
		pool:    pool,
		count:   count,
		sched:   NewScheduler(),
	}
	g.Setup()
	return g
}

// OnRound registers a callback fired whenever a fresh round is set up.
func (g *MatchingGame) OnRound(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onRound = fn
}

// Setup starts a fresh round: picks verbs and shuffles the two card
// sequences independently.
func (g *MatchingGame) Setup() {
	selected := shuffled(g.pool)
	if g.count < len(selected) {
		selected = selected[:g.count]
	}

	infinitives := make([]MatchingCard, 0, len(selected))
	for _, verb := range selected {
		infinitives = append(infinitives, MatchingCard{VerbID: verb.ID, Text: verb.Infinitive})
	}
	pastSlots := make([]MatchingCard, 0, len(selected))
	for _, verb := range shuffled(selected) {
		pastSlots = append(pastSlots, MatchingCard{VerbID: verb.ID, Text: verb.Past})
	}

	g.mu.Lock()
	g.infinitives = infinitives
	g.pastSlots = pastSlots
	g.assignments = make(map[int]int)
	g.submitted = false
	onRound := g.onRound
	g.mu.Unlock()

	if onRound != nil {
		onRound()
	}
}

// Infinitives returns the draggable cards in display order.
func (g *MatchingGame) Infinitives() []MatchingCard {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.infinitives
}

// PastSlots returns the drop slots in display order.
func (g *MatchingGame) PastSlots() []MatchingCard {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pastSlots
}

// Assign drops an infinitive onto a past-tense slot. Re-assigning a slot
// overwrites the previous drop.
func (g *MatchingGame) Assign(slotVerbID, draggedVerbID int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.submitted {
		return
	}
	g.assignments[slotVerbID] = draggedVerbID
}

// CheckMatches validates the round. Correctness compares each slot's owning
// verb ID to the assigned verb ID; unassigned slots simply do not score.
// A new round is scheduled automatically.
func (g *MatchingGame) CheckMatches() (MatchResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.submitted {
		return MatchResult{}, ErrAlreadyAnswered
	}
	g.submitted = true

	correct := 0
	for _, slot := range g.pastSlots {
		if assigned, ok := g.assignments[slot.VerbID]; ok && assigned == slot.VerbID {
			correct++
		}
	}

	result := MatchResult{
		Correct:    correct,
		Total:      len(g.pastSlots),
		Points:     correct * g.points.Correct,
		AllCorrect: correct == len(g.pastSlots),
	}
	result.State = g.session.UpdateScore(result.Points)

	delay := matchingAdvancePartial
	if result.AllCorrect {
		delay = matchingAdvanceAllCorrect
	}
	g.sched.After(delay, g.Setup)

	return result, nil
}

// Teardown cancels any pending auto-advance.
func (g *MatchingGame) Teardown() {
	g.sched.CancelAll()
}
