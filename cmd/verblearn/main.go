package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"verblearn/internal/config"
	"verblearn/internal/database"
	"verblearn/internal/engine"
	"verblearn/internal/game"
	"verblearn/internal/models"
	"verblearn/internal/reading"
	"verblearn/internal/report"
	"verblearn/internal/score"
	"verblearn/internal/settings"
	"verblearn/internal/speech"
	"verblearn/internal/storage"
	"verblearn/internal/student"
	"verblearn/internal/syncer"
	"verblearn/internal/verbs"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	kv := storage.NewKVRepository(db)
	scores := score.NewStore(kv)
	session := game.NewSession(kv)
	students := student.NewManager(kv, scores)
	prefs := settings.NewService(kv)

	speaker := speech.NewTTSSpeaker(cfg.AudioCachePath, cfg.AudioPlayer)
	// No speech-to-text backend is wired on the command line; the
	// pronunciation mode reports itself unavailable.
	recognition := speech.NewManager(nil)

	var sync *syncer.Syncer
	if cfg.SyncBaseURL != "" {
		sync = syncer.New(scores, kv, syncer.NewHTTPClient(cfg.SyncBaseURL, cfg.SyncAPIKey))
		scores.OnChange(sync.OnScoreRecorded)
		if sync.AutoSyncEnabled() {
			sync.StartAutoSync()
			log.Println("Auto-sync enabled")
		}
	}

	mailer, err := report.NewMailer(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize report mailer: %v", err)
	}

	a := &app{
		in:          bufio.NewScanner(os.Stdin),
		pool:        verbs.All(),
		scores:      scores,
		session:     session,
		students:    students,
		prefs:       prefs,
		speaker:     speaker,
		recognition: recognition,
		sync:        sync,
		mailer:      mailer,
	}
	a.run()

	if sync != nil {
		sync.StopAutoSync()
	}
	speaker.Stop()
}

type app struct {
	in          *bufio.Scanner
	pool        []models.Verb
	scores      *score.Store
	session     *game.Session
	students    *student.Manager
	prefs       *settings.Service
	speaker     speech.Speaker
	recognition *speech.Manager
	sync        *syncer.Syncer
	mailer      *report.Mailer
}

// waitForAdvance pauses slightly past a game's auto-advance delay so the
// next round is in place before the prompt redraws.
func waitForAdvance(delay time.Duration) {
	time.Sleep(delay + 100*time.Millisecond)
}

func (a *app) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *app) speechOpts() speech.Options {
	return speech.OptionsFromSettings(a.prefs.Load())
}

func (a *app) run() {
	fmt.Println("VerbLearn - past tense practice")
	for {
		who := a.students.Current()
		if who == "" {
			who = "nobody"
		}
		fmt.Printf("\n[%s] 1)login 2)learn 3)matching 4)fill-blank 5)letter-choice 6)pronunciation 7)challenge 8)reading 9)stats 10)settings 11)sync 12)report q)quit\n", who)
		choice, ok := a.prompt("> ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			a.login()
		case "2":
			a.learnMode()
		case "3":
			a.matchingMode()
		case "4":
			a.fillBlankMode()
		case "5":
			a.letterChoiceMode()
		case "6":
			a.pronunciationMode()
		case "7":
			a.challengeMode()
		case "8":
			a.readingMode()
		case "9":
			a.showStats()
		case "10":
			a.editSettings()
		case "11":
			a.syncMenu()
		case "12":
			a.sendReport()
		case "q", "quit", "exit":
			return
		}
	}
}

func (a *app) login() {
	known := a.students.KnownStudents()
	if len(known) > 0 {
		fmt.Printf("Known students: %s\n", strings.Join(known, ", "))
	}
	name, ok := a.prompt("Student name: ")
	if !ok {
		return
	}
	id, err := a.students.Login(name)
	if err != nil {
		fmt.Printf("Invalid name: %v\n", err)
		return
	}
	fmt.Printf("Welcome, %s!\n", id)
}

// recordActivity stores the finished session score for the active student
// and resets the session for the next mode.
func (a *app) recordActivity(activity string, details map[string]string) {
	points := a.session.Score()
	defer a.session.Reset()
	if points == 0 {
		return
	}
	if _, err := a.scores.RecordScore(a.students.Current(), activity, points, details); err != nil {
		log.Printf("Dropping %s score of %d: %v", activity, points, err)
		return
	}
	fmt.Printf("Recorded %d points for %s.\n", points, activity)
}

func (a *app) learnMode() {
	opts := a.speechOpts()
	autoPlay := a.prefs.Load().AutoPlayAudio
	i := 0
	for {
		verb := a.pool[i]
		fmt.Printf("\n%d/%d  %s → %s  (%s)\n", i+1, len(a.pool), verb.Infinitive, verb.Past, verb.Definition)
		fmt.Printf("  %s\n  %s\n", verb.Example, verb.PastExample)
		if autoPlay {
			a.speaker.Speak(verb.Infinitive, opts, nil)
		}
		cmd, ok := a.prompt("n)ext p)rev s)peak past q)uit: ")
		if !ok || cmd == "q" {
			a.speaker.Stop()
			return
		}
		switch cmd {
		case "n", "":
			i = (i + 1) % len(a.pool)
		case "p":
			i = (i - 1 + len(a.pool)) % len(a.pool)
		case "s":
			a.speaker.Speak(verb.Past, opts, nil)
		}
	}
}

func (a *app) matchingMode() {
	g := engine.NewMatchingGame(a.session, a.pool, engine.DefaultMatchingVerbs, engine.DefaultPoints())
	defer g.Teardown()
	rounds := 0

	for {
		fmt.Println("\nMatch each infinitive to its past form:")
		for i, card := range g.Infinitives() {
			fmt.Printf("  %d) %s\n", i+1, card.Text)
		}
		fmt.Println("Slots:")
		for i, card := range g.PastSlots() {
			fmt.Printf("  %c) %s\n", 'a'+i, card.Text)
		}

		cmd, ok := a.prompt("assign '<num> <slot>', c)heck, q)uit: ")
		if !ok || cmd == "q" {
			a.recordActivity("matching", map[string]string{"rounds": strconv.Itoa(rounds)})
			return
		}
		if cmd == "c" {
			result, err := g.CheckMatches()
			if err != nil {
				fmt.Println(err)
				continue
			}
			rounds++
			fmt.Printf("%d/%d correct, %+d points (score %d, streak %d)\n",
				result.Correct, result.Total, result.Points, result.State.Score, result.State.Streak)
			// The next round is scheduled by the game itself.
			waitForAdvance(4 * time.Second)
			continue
		}

		fields := strings.Fields(cmd)
		if len(fields) != 2 {
			continue
		}
		num, err := strconv.Atoi(fields[0])
		if err != nil || num < 1 || num > len(g.Infinitives()) {
			continue
		}
		slot := int(fields[1][0] - 'a')
		if slot < 0 || slot >= len(g.PastSlots()) {
			continue
		}
		g.Assign(g.PastSlots()[slot].VerbID, g.Infinitives()[num-1].VerbID)
	}
}

// placeWord maps a typed word onto the letter bubbles, clearing any
// previous placement first.
func placeWord(g *engine.FillBlankGame, word string) error {
	for slot := range g.Letters() {
		g.ClearSlot(slot)
	}
	slot := 0
	for _, r := range word {
		placed := false
		for bubble, letter := range g.Letters() {
			if letter == r && !g.LetterUsed(bubble) {
				if err := g.PlaceLetter(bubble, slot); err != nil {
					return err
				}
				slot++
				placed = true
				break
			}
		}
		if !placed {
			return fmt.Errorf("letter %q is not available", string(r))
		}
	}
	return nil
}

func (a *app) fillBlankMode() {
	g := engine.NewFillBlankGame(a.session, a.pool, engine.DefaultPoints())
	defer g.Teardown()
	rounds := 0

	for {
		fmt.Printf("\n%s\n", g.Question())
		fmt.Printf("Letters: %s\n", string(g.Letters()))
		answer, ok := a.prompt("Assemble the word (q to quit): ")
		if !ok || answer == "q" {
			a.recordActivity("fill-blank", map[string]string{"rounds": strconv.Itoa(rounds)})
			return
		}
		if err := placeWord(g, answer); err != nil {
			fmt.Println(err)
			continue
		}
		result, err := g.Submit()
		if err != nil {
			fmt.Println(err)
			continue
		}
		if result.Correct {
			rounds++
			fmt.Printf("Correct! %+d points (score %d, streak %d)\n", result.Points, result.State.Score, result.State.Streak)
			waitForAdvance(2 * time.Second)
		} else {
			fmt.Printf("Not quite, %+d points. Try again.\n", result.Points)
		}
	}
}

func (a *app) letterChoiceMode() {
	g := engine.NewLetterChoiceGame(a.session, a.pool, engine.DefaultPoints())
	defer g.Teardown()
	rounds := 0

	for {
		fmt.Printf("\nFill the blank: %s\n", g.Masked())
		for i, letter := range g.Choices() {
			fmt.Printf("  %d) %s\n", i+1, letter)
		}
		cmd, ok := a.prompt("Pick a letter (q to quit): ")
		if !ok || cmd == "q" {
			a.recordActivity("letter-choice", map[string]string{"rounds": strconv.Itoa(rounds)})
			return
		}
		num, err := strconv.Atoi(cmd)
		if err != nil || num < 1 || num > len(g.Choices()) {
			continue
		}
		result, err := g.Choose(g.Choices()[num-1])
		if err != nil {
			fmt.Println(err)
			continue
		}
		if result.Correct {
			rounds++
			fmt.Printf("Correct! %+d points (score %d, streak %d)\n", result.Points, result.State.Score, result.State.Streak)
			waitForAdvance(2 * time.Second)
		} else {
			fmt.Printf("The missing letter was %q, %+d points. Try again.\n", result.Expected, result.Points)
		}
	}
}

func (a *app) pronunciationMode() {
	g := engine.NewPronunciationGame(a.session, a.pool, a.recognition, engine.DefaultPoints())
	defer g.Teardown()

	if !g.Available() {
		fmt.Println("Speech recognition is not available on this device.")
		return
	}

	opts := a.speechOpts()
	rounds := 0
	for {
		fmt.Printf("\nSay the word: %s\n", g.Target())
		a.speaker.Speak(g.Target(), opts, nil)
		cmd, ok := a.prompt("Enter to listen, q to quit: ")
		if !ok || cmd == "q" {
			a.recordActivity("pronunciation", map[string]string{"rounds": strconv.Itoa(rounds)})
			return
		}

		done := make(chan engine.PronunciationOutcome, 1)
		g.StartListening(func(outcome engine.PronunciationOutcome) {
			done <- outcome
		})
		outcome := <-done
		switch {
		case outcome.Err != nil:
			fmt.Printf("Recognition failed: %v\n", outcome.Err)
		case outcome.Correct:
			rounds++
			fmt.Printf("Heard %q - correct! %+d points\n", outcome.Heard, outcome.Points)
			waitForAdvance(2 * time.Second)
		default:
			fmt.Printf("Heard %q - try again.\n", outcome.Heard)
		}
	}
}

func (a *app) challengeMode() {
	a.session.Reset()
	g := engine.NewChallengeGame(a.session, a.pool, engine.DefaultPoints())

	for {
		question, ok := g.Current()
		if !ok {
			break
		}
		num, total := g.Progress()
		fmt.Printf("\nQuestion %d/%d: %s\n", num, total, question.Prompt)
		for i, option := range question.Options {
			fmt.Printf("  %d) %s\n", i+1, option)
		}
		cmd, okIn := a.prompt("> ")
		if !okIn || cmd == "q" {
			a.session.Reset()
			return
		}
		pick, err := strconv.Atoi(cmd)
		if err != nil || pick < 1 || pick > len(question.Options) {
			continue
		}
		result, err := g.Answer(question.Options[pick-1])
		if err != nil {
			fmt.Println(err)
			continue
		}
		if result.Correct {
			fmt.Printf("Correct! %+d points\n", result.Points)
		} else {
			fmt.Printf("The answer was %q.\n", result.Expected)
		}
		g.Next()
	}

	results := g.Results()
	fmt.Printf("\nChallenge complete: %d/%d (%d%%)\n", results.FinalScore, results.TotalPossible, results.Percentage)
	for _, badge := range results.Achievements {
		fmt.Println("  " + badge)
	}
	a.recordActivity("challenge", map[string]string{
		"totalPossible": strconv.Itoa(results.TotalPossible),
		"percentage":    strconv.Itoa(results.Percentage),
	})
}

func (a *app) readingMode() {
	r := reading.NewReader(a.speaker, a.speechOpts())
	defer r.Stop()

	fmt.Println("\nEssays:")
	for i, essay := range reading.Essays() {
		fmt.Printf("  %d) %s (%s)\n", i+1, essay.Title, essay.ChineseTitle)
	}
	if pick, ok := a.prompt("> "); ok {
		if num, err := strconv.Atoi(pick); err == nil {
			all := reading.Essays()
			if num >= 1 && num <= len(all) {
				r.SelectEssay(all[num-1].ID)
			}
		}
	}

	for {
		fmt.Printf("\n%s\n", r.CurrentSentence())
		cmd, ok := a.prompt("n)ext p)rev s)peak e)ssay r)ecite w)ord lookup d)one: ")
		if !ok || cmd == "d" {
			break
		}
		switch cmd {
		case "n":
			r.NextSentence()
		case "p":
			r.PrevSentence()
		case "s":
			r.ReadSentence()
		case "e":
			r.ReadEssay()
		case "r":
			if r.Reciting() {
				r.StopReciting()
			} else {
				r.StartReciting()
			}
		case "w":
			if word, ok := a.prompt("Word: "); ok {
				if gloss, found := reading.Define(word); found {
					fmt.Printf("%s: %s\n", word, gloss)
				} else {
					fmt.Println("Not in the dictionary.")
				}
			}
		}
	}

	essay := r.Essay()
	completion := (r.SentenceIndex() + 1) * 100 / len(essay.Sentences)
	if a.students.LoggedIn() {
		if _, err := r.RecordScore(a.scores, a.students.Current(), completion, 0); err != nil {
			log.Printf("Failed to record reading score: %v", err)
		} else {
			fmt.Printf("Recorded %d%% completion of %q.\n", completion, essay.Title)
		}
	}
}

func (a *app) showStats() {
	id := a.students.Current()
	overall := a.scores.GetOverallStats(id)
	if overall == nil {
		fmt.Println("No scores recorded yet.")
		return
	}
	fmt.Printf("\n%s: %d sessions, average %d, best %d, %d activities\n",
		id, overall.TotalSessions, overall.AverageScore, overall.BestScore, overall.ActivitiesCompleted)

	record := a.scores.GetStudentScores(id)
	for activity, stats := range record.Activities {
		fmt.Printf("  %s: %d sessions, average %d, best %d\n",
			activity, stats.TotalSessions, stats.AverageScore, stats.BestScore)
	}
	for _, rec := range a.scores.GetLearningRecommendations(id) {
		fmt.Println("  → " + rec)
	}
}

func (a *app) editSettings() {
	current := a.prefs.Load()
	fmt.Printf("\nSpeed %.1f, volume %.1f, pitch %.1f, auto-play %v, language %s, theme %s\n",
		current.SpeechSpeed, current.VoiceVolume, current.VoicePitch, current.AutoPlayAudio, current.Language, current.Theme)

	if raw, ok := a.prompt("Speech speed (blank keeps): "); ok && raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			current.SpeechSpeed = v
		}
	}
	if raw, ok := a.prompt("Volume (blank keeps): "); ok && raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			current.VoiceVolume = v
		}
	}
	if raw, ok := a.prompt("Auto-play audio (y/n, blank keeps): "); ok && raw != "" {
		current.AutoPlayAudio = raw == "y"
	}
	if raw, ok := a.prompt("Language (blank keeps): "); ok && raw != "" {
		current.Language = raw
	}
	if raw, ok := a.prompt("Theme (blank keeps): "); ok && raw != "" {
		current.Theme = raw
	}
	if err := a.prefs.Save(current); err != nil {
		log.Printf("Failed to save settings: %v", err)
		return
	}
	fmt.Println("Settings saved.")
}

func (a *app) syncMenu() {
	if a.sync == nil {
		fmt.Println("Sync is not configured (set SYNC_BASE_URL).")
		return
	}
	fmt.Printf("\nDevice %s, auto-sync %v\n", a.sync.DeviceID(), a.sync.AutoSyncEnabled())
	cmd, ok := a.prompt("u)pload d)ownload t)oggle auto-sync: ")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	switch cmd {
	case "u":
		if err := a.sync.Upload(ctx); err != nil {
			fmt.Printf("Upload failed: %v\n", err)
		} else {
			fmt.Println("Scores uploaded.")
		}
	case "d":
		if err := a.sync.Download(ctx); err != nil {
			fmt.Printf("Download failed: %v\n", err)
		} else {
			fmt.Println("Scores downloaded and merged.")
		}
	case "t":
		a.sync.SetAutoSync(!a.sync.AutoSyncEnabled())
		fmt.Printf("Auto-sync now %v\n", a.sync.AutoSyncEnabled())
	}
}

func (a *app) sendReport() {
	id := a.students.Current()
	r := report.Build(a.scores, id)
	if r == nil {
		fmt.Println("No scores to report yet.")
		return
	}
	fmt.Print("\n" + r.TextBody())

	if !a.mailer.IsEnabled() {
		return
	}
	email, ok := a.prompt("Email the report to (blank skips): ")
	if !ok || email == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.mailer.SendProgressReport(ctx, email, r); err != nil {
		fmt.Printf("Send failed: %v\n", err)
	} else {
		fmt.Println("Report sent.")
	}
}
