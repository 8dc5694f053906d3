package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"verblearn/internal/config"
	"verblearn/internal/database"
	"verblearn/internal/report"
	"verblearn/internal/score"
	"verblearn/internal/storage"
	"verblearn/internal/syncer"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOutput := exportCmd.String("output", "", "Output file path (default: scores_YYYYMMDD_HHMMSS.json)")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing scores before import (WARNING: destructive)")

	reportCmd := flag.NewFlagSet("report", flag.ExitOnError)
	reportStudent := reportCmd.String("student", "", "Student ID (required)")
	reportEmail := reportCmd.String("email", "", "Send the report to this address via SES")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	godotenv.Load()
	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	kv := storage.NewKVRepository(db)
	scores := score.NewStore(kv)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(scores, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(scores, *importInput, *importClear)

	case "push":
		handlePush(scores, kv, cfg)

	case "pull":
		handlePull(scores, kv, cfg)

	case "report":
		reportCmd.Parse(os.Args[2:])
		if *reportStudent == "" {
			fmt.Println("Error: -student flag is required")
			reportCmd.PrintDefaults()
			os.Exit(1)
		}
		handleReport(scores, cfg, *reportStudent, *reportEmail)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(scores *score.Store, outputPath string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("scores_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	snapshot := scores.ExportSnapshot()
	blob, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode snapshot: %v", err)
	}
	if err := os.WriteFile(outputPath, blob, 0644); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	log.Printf("Exported %d students to %s (%d bytes)", len(snapshot.Scores), outputPath, len(blob))
}

func handleImport(scores *score.Store, inputPath string, clearData bool) {
	blob, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}

	if clearData {
		fmt.Print("WARNING: This will delete all existing scores. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Println("Import cancelled")
			return
		}
		scores.ClearAll()
		log.Println("Cleared existing scores")
	}

	if err := scores.ImportSnapshot(blob); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import complete: %d students in store", len(scores.AllStudentIDs()))
}

func newRemote(cfg *config.Config) *syncer.HTTPClient {
	if cfg.SyncBaseURL == "" {
		log.Fatal("Sync is not configured (set SYNC_BASE_URL)")
	}
	return syncer.NewHTTPClient(cfg.SyncBaseURL, cfg.SyncAPIKey)
}

func handlePush(scores *score.Store, kv storage.Store, cfg *config.Config) {
	s := syncer.New(scores, kv, newRemote(cfg))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Upload(ctx); err != nil {
		log.Fatalf("Push failed: %v", err)
	}
	log.Printf("Pushed scores for %d students (device %s)", len(scores.AllStudentIDs()), s.DeviceID())
}

func handlePull(scores *score.Store, kv storage.Store, cfg *config.Config) {
	s := syncer.New(scores, kv, newRemote(cfg))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Download(ctx); err != nil {
		log.Fatalf("Pull failed: %v", err)
	}
	log.Printf("Pulled and merged; %d students in store", len(scores.AllStudentIDs()))
}

func handleReport(scores *score.Store, cfg *config.Config, studentID, email string) {
	r := report.Build(scores, studentID)
	if r == nil {
		log.Fatalf("No scores recorded for student %q", studentID)
	}

	fmt.Print(r.TextBody())
	if email == "" {
		return
	}

	mailer, err := report.NewMailer(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}
	if !mailer.IsEnabled() {
		log.Fatal("Mailer is not configured (set SES_FROM_EMAIL)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := mailer.SendProgressReport(ctx, email, r); err != nil {
		log.Fatalf("Send failed: %v", err)
	}
	log.Printf("Report for %s sent to %s", studentID, email)
}

func printUsage() {
	fmt.Println("VerbLearn Score Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export scores to a JSON file")
	fmt.Println("  backup import [options]    Import scores from a JSON file")
	fmt.Println("  backup push                Upload scores to the sync endpoint")
	fmt.Println("  backup pull                Download and merge scores from the sync endpoint")
	fmt.Println("  backup report [options]    Print or email a student progress report")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: scores_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear existing scores before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Report Options:")
	fmt.Println("  -student <id>     Student ID (required)")
	fmt.Println("  -email <address>  Send the report to this address via SES")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./verblearn.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
	fmt.Println("  SYNC_BASE_URL    Remote score sync endpoint")
	fmt.Println("  SES_FROM_EMAIL   Sender address for emailed reports")
}
