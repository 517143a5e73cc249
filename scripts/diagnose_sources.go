package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"
)

// TitleDiagnostic represents the diagnostic result for a single source list line
type TitleDiagnostic struct {
	Line         int    `json:"line"`
	Title        string `json:"title"`
	Status       string `json:"status"` // "OK", "EMPTY", "DUPLICATE", "STORED"
	ErrorMessage string `json:"error_message,omitempty"`
}

func main() {
	// Load the source list (URL takes precedence over file)
	lines, origin, err := loadSourceList()
	if err != nil {
		log.Fatalf("Failed to load source list: %v", err)
	}
	log.Printf("Diagnosing %d lines from %s...\n", len(lines), origin)

	// Database connection (optional: stored-title check is skipped without it)
	db := openDatabase()
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				log.Printf("Failed to close database: %v", err)
			}
		}()
	}

	diagnostics := diagnoseTitles(lines, db)

	generateReport(origin, diagnostics)
	generateJSONReport(diagnostics)
	generateFixedList(diagnostics)
}

// loadSourceList reads the title list from SEED_SOURCE_URL or
// SEED_SOURCE_PATH, mirroring the loaders used by the seeding pipeline.
func loadSourceList() ([]string, string, error) {
	if url := os.Getenv("SEED_SOURCE_URL"); url != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return nil, url, err
		}
		req.Header.Set("User-Agent", "Ponder-Diagnostic/1.0")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, url, err
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				log.Printf("Failed to close response body: %v", err)
			}
		}()

		if resp.StatusCode != 200 {
			return nil, url, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, url, err
		}
		return strings.Split(string(body), "\n"), url, nil
	}

	path := os.Getenv("SEED_SOURCE_PATH")
	if path == "" {
		path = "data/sources.txt"
		log.Println("SEED_SOURCE_PATH not set, using default")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close source file: %v", err)
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, path, scanner.Err()
}

// openDatabase connects via DATABASE_URL. Returns nil when unset or
// unreachable; the stored-title check is then skipped.
func openDatabase() *sql.DB {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("DATABASE_URL not set, skipping stored-title check")
		return nil
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Printf("Failed to open database, skipping stored-title check: %v", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Printf("Failed to ping database, skipping stored-title check: %v", err)
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
		return nil
	}

	return db
}

// diagnoseTitles classifies each line the way the seeding pipeline would
// treat it: blanks are dropped, duplicates repeat work, and stored titles
// are skipped.
func diagnoseTitles(lines []string, db *sql.DB) []TitleDiagnostic {
	diagnostics := make([]TitleDiagnostic, 0, len(lines))
	seen := make(map[string]int)

	for i, line := range lines {
		diag := TitleDiagnostic{Line: i + 1, Title: strings.TrimSpace(line)}

		switch {
		case diag.Title == "":
			diag.Status = "EMPTY"
			diag.ErrorMessage = "Blank line, dropped by normalization"
		case seen[diag.Title] > 0:
			diag.Status = "DUPLICATE"
			diag.ErrorMessage = fmt.Sprintf("Duplicate of line %d", seen[diag.Title])
		default:
			diag.Status = "OK"
		}

		if diag.Title != "" && seen[diag.Title] == 0 {
			seen[diag.Title] = i + 1
		}
		diagnostics = append(diagnostics, diag)
	}

	if db == nil {
		return diagnostics
	}

	// Stored-title checks hit the database once per remaining line; run
	// them with bounded concurrency. Each goroutine writes to a distinct
	// element.
	g := new(errgroup.Group)
	g.SetLimit(8)
	for i := range diagnostics {
		if diagnostics[i].Status != "OK" {
			continue
		}
		d := &diagnostics[i]
		g.Go(func() error {
			if titleStored(db, d.Title) {
				d.Status = "STORED"
				d.ErrorMessage = "Already in the questions table, will be skipped"
			}
			return nil
		})
	}
	_ = g.Wait()

	return diagnostics
}

func titleStored(db *sql.DB, title string) bool {
	if db == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var exists bool
	err := db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM questions WHERE title = $1)", title).Scan(&exists)
	if err != nil {
		log.Printf("Stored-title check failed for %q: %v", title, err)
		return false
	}
	return exists
}

// writef is a helper to write to file and handle errors
func writef(f *os.File, format string, args ...interface{}) error {
	_, err := fmt.Fprintf(f, format, args...)
	return err
}

func generateReport(origin string, diagnostics []TitleDiagnostic) {
	f, err := os.Create("source_diagnostic_report.txt")
	if err != nil {
		log.Printf("Failed to create report file: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close report file: %v", err)
		}
	}()

	_ = writef(f, "===============================================\n")
	_ = writef(f, "Source List Diagnostic Report\n")
	_ = writef(f, "Generated: %s\n", time.Now().Format(time.RFC3339))
	_ = writef(f, "Source: %s\n", origin)
	_ = writef(f, "Total Lines: %d\n", len(diagnostics))
	_ = writef(f, "===============================================\n\n")

	// Summary statistics
	statusCount := make(map[string]int)
	for _, d := range diagnostics {
		statusCount[d.Status]++
	}

	_ = writef(f, "SUMMARY:\n")
	_ = writef(f, "  ✅ Seedable: %d\n", statusCount["OK"])
	_ = writef(f, "  ⏭️  Already stored: %d\n", statusCount["STORED"])
	_ = writef(f, "  ⚠️  Duplicates: %d\n", statusCount["DUPLICATE"])
	_ = writef(f, "  ⚠️  Blank lines: %d\n", statusCount["EMPTY"])
	_ = writef(f, "\n")

	// Problem lines only; a clean list produces an empty section
	_ = writef(f, "PROBLEM LINES:\n")
	_ = writef(f, "-------------------------------------------\n")
	for _, d := range diagnostics {
		if d.Status == "OK" || d.Status == "STORED" {
			continue
		}
		_ = writef(f, "Line %d: %s\n", d.Line, d.Status)
		if d.Title != "" {
			_ = writef(f, "  Title: %s\n", d.Title)
		}
		_ = writef(f, "  Note: %s\n\n", d.ErrorMessage)
	}

	log.Println("✅ Text report generated: source_diagnostic_report.txt")
}

func generateJSONReport(diagnostics []TitleDiagnostic) {
	f, err := os.Create("source_diagnostic_report.json")
	if err != nil {
		log.Printf("Failed to create JSON report: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close JSON report file: %v", err)
		}
	}()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(diagnostics); err != nil {
		log.Printf("Failed to write JSON report: %v", err)
		return
	}

	log.Println("✅ JSON report generated: source_diagnostic_report.json")
}

// generateFixedList writes a cleaned list with blank lines and duplicates
// removed, ready to replace the original.
func generateFixedList(diagnostics []TitleDiagnostic) {
	f, err := os.Create("sources_fixed.txt")
	if err != nil {
		log.Printf("Failed to create fixed list file: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close fixed list file: %v", err)
		}
	}()

	for _, d := range diagnostics {
		if d.Status == "OK" || d.Status == "STORED" {
			_ = writef(f, "%s\n", d.Title)
		}
	}

	log.Println("✅ Cleaned source list generated: sources_fixed.txt")
}
