package engine

import (
	"fmt"

	"verblearn/internal/game"
	"verblearn/internal/models"
)

// Question is one multiple-choice challenge entry.
type Question struct {
	Prompt  string
	Options []string
	Correct string
	Verb    models.Verb
}

// FinalResults summarizes a completed challenge run.
type FinalResults struct {
	FinalScore    int
	TotalPossible int
	Percentage    int
	Achievements  []string
}

// ChallengeGame generates exactly one question per verb in the pool, each
// with three distractor past forms drawn from other verbs. Questions never
// repeat; wrong answers advance without penalty.
type ChallengeGame struct {
	session *game.Session
	points  PointsConfig

	questions []Question
	current   int
	answered  bool
}

func NewChallengeGame(session *game.Session, pool []models.Verb, points PointsConfig) *ChallengeGame {
	g := &ChallengeGame{session: session, points: points}

	for _, verb := range shuffled(pool) {
		var others []models.Verb
		for _, v := range pool {
			if v.ID != verb.ID {
				others = append(others, v)
			}
		}
		wrong := shuffled(others)
		if len(wrong) > 3 {
			wrong = wrong[:3]
		}
		options := []string{verb.Past}
		for _, v := range wrong {
			options = append(options, v.Past)
		}
		g.questions = append(g.questions, Question{
			Prompt:  fmt.Sprintf("What is the past form of %q?", verb.Infinitive),
			Options: shuffled(options),
			Correct: verb.Past,
			Verb:    verb,
		})
	}
	return g
}

// Questions returns the full generated question list.
func (g *ChallengeGame) Questions() []Question { return g.questions }

// Current returns the active question, or false once the run is finished.
func (g *ChallengeGame) Current() (Question, bool) {
	if g.current >= len(g.questions) {
		return Question{}, false
	}
	return g.questions[g.current], true
}

// Progress returns the 1-based question number and the total.
func (g *ChallengeGame) Progress() (int, int) {
	return g.current + 1, len(g.questions)
}

// Answer submits an option for the current question. Each question accepts
// exactly one submission.
func (g *ChallengeGame) Answer(option string) (Result, error) {
	question, ok := g.Current()
	if !ok {
		return Result{}, fmt.Errorf("engine: challenge already finished")
	}
	if g.answered {
		return Result{}, ErrAlreadyAnswered
	}
	g.answered = true

	result := Result{
		Answer:   option,
		Expected: question.Correct,
	}
	result.Correct = Normalize(option) == Normalize(question.Correct)
	if result.Correct {
		result.Points = g.points.Correct
		result.State = g.session.UpdateScore(result.Points)
	} else {
		result.State = game.ScoreState{
			Score:     g.session.Score(),
			Streak:    g.session.Streak(),
			HighScore: g.session.HighScore(),
		}
	}
	return result, nil
}

// Next moves to the following question after an answer was given.
func (g *ChallengeGame) Next() bool {
	if !g.answered || g.current >= len(g.questions) {
		return false
	}
	g.current++
	g.answered = false
	return g.current < len(g.questions)
}

// IsLast reports whether the active question is the final one.
func (g *ChallengeGame) IsLast() bool {
	return g.current == len(g.questions)-1
}

// Finished reports whether every question has been consumed.
func (g *ChallengeGame) Finished() bool {
	return g.current >= len(g.questions)
}

// TotalPossible is the maximum achievable score for the run.
func (g *ChallengeGame) TotalPossible() int {
	return len(g.questions) * g.points.Correct
}

// Results computes the final summary and achievement badges.
func (g *ChallengeGame) Results() FinalResults {
	totalPossible := g.TotalPossible()
	finalScore := g.session.Score()
	percentage := 0
	if totalPossible > 0 {
		percentage = int(float64(finalScore)/float64(totalPossible)*100 + 0.5)
	}
	return FinalResults{
		FinalScore:    finalScore,
		TotalPossible: totalPossible,
		Percentage:    percentage,
		Achievements:  game.GenerateAchievements(finalScore, totalPossible, g.session.Streak()),
	}
}
