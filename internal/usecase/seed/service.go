package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ponder/internal/domain/entity"
	"ponder/internal/observability/metrics"
	"ponder/internal/repository"
	"ponder/internal/usecase/notify"
)

// SourceList supplies the raw question titles for a seeding run.
type SourceList interface {
	// Load returns the raw lines of the list in order, without normalization.
	// A missing list yields an error wrapping ErrSourceListNotFound.
	Load(ctx context.Context) ([]string, error)
}

// Generator is an interface for AI-powered answer generation.
// Implementations make exactly one attempt per call; the pipeline records a
// failed title rather than retrying. A call already in flight runs to
// completion regardless of run-level cancellation.
type Generator interface {
	Generate(ctx context.Context, title string) (string, error)
}

// Service provides the question seeding use case.
// It orchestrates loading the title list, generating answers, and storing
// question records while tracking per-run statistics.
type Service struct {
	QuestionRepo  repository.QuestionRepository
	Generator     Generator
	SourceList    SourceList
	NotifyService notify.Service
}

// NewService creates a new seed Service with the provided dependencies.
//
// Parameters:
//   - questionRepo: Repository for question records
//   - generator: AI service producing answers (nil means not configured; Run fails)
//   - sourceList: Supplier of question titles
//   - notifyService: Service for run-report notifications (can be nil to disable)
//
// Returns:
//   - Service: Configured seed service ready to use
func NewService(
	questionRepo repository.QuestionRepository,
	generator Generator,
	sourceList SourceList,
	notifyService notify.Service,
) Service {
	return Service{
		QuestionRepo:  questionRepo,
		Generator:     generator,
		SourceList:    sourceList,
		NotifyService: notifyService,
	}
}

// Run executes one seeding pass over the source list.
// It performs the following steps for each normalized title:
//  1. Polls the cancellation monitor and stops before the next title once cancelled
//  2. Skips titles that already have a stored question, counting them as processed
//  3. Generates a Markdown answer for the title
//  4. Inserts the title/answer pair as an independently durable write
//
// Titles are processed strictly in list order with at most one generation in
// flight. A nil monitor never cancels.
//
// Error Handling:
//   - Missing source list: Returns error wrapping ErrSourceListNotFound, no work done
//   - Nil generator: Returns ErrGeneratorNotConfigured, no work done
//   - Per-title failures (existence check, generation, insert, lost duplicate
//     race): Recorded in FailedTitles, processing continues with remaining titles
//   - Cancellation: Stops between titles, already-stored records are kept
func (s *Service) Run(ctx context.Context, monitor CancellationMonitor) (*entity.SeedRun, error) {
	logger := slog.Default()
	start := time.Now()
	run := &entity.SeedRun{Status: entity.SeedRunCompleted}

	lines, err := s.SourceList.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load source list: %w", err)
	}
	if s.Generator == nil {
		return nil, ErrGeneratorNotConfigured
	}

	titles := normalizeTitles(lines)
	logger.Info("seed run started",
		slog.Int("raw_lines", len(lines)),
		slog.Int("titles", len(titles)))

	// Item operations must land even if the trigger disconnects mid-run;
	// the monitor polls the original context between titles instead.
	safeCtx := context.WithoutCancel(ctx)

	for _, title := range titles {
		if monitor != nil && monitor.Cancelled() {
			run.Status = entity.SeedRunCancelled
			logger.Warn("seed run cancelled, stopping before next title",
				slog.Int("processed", run.ProcessedCount),
				slog.Int("failed", len(run.FailedTitles)))
			break
		}

		exists, err := s.QuestionRepo.Exists(safeCtx, title)
		if err != nil {
			logger.Warn("existence check failed, marking title failed",
				slog.String("title", title),
				slog.Any("error", err))
			recordFailure(run, title, "exists_check_failed")
			continue
		}
		if exists {
			run.ProcessedCount++
			metrics.RecordSeedItem("skipped")
			logger.Debug("title already stored, skipping generation",
				slog.String("title", title))
			continue
		}

		answer, err := s.Generator.Generate(safeCtx, title)
		if err != nil {
			logger.Warn("generation failed, marking title failed",
				slog.String("title", title),
				slog.Any("error", err))
			recordFailure(run, title, "generation_failed")
			continue
		}

		if _, err := s.QuestionRepo.Insert(safeCtx, title, answer); err != nil {
			if errors.Is(err, entity.ErrDuplicateTitle) {
				// Another writer stored this title between the existence
				// check and the insert.
				logger.Warn("lost insert race, marking title failed",
					slog.String("title", title))
				recordFailure(run, title, "duplicate_race")
			} else {
				logger.Warn("insert failed, marking title failed",
					slog.String("title", title),
					slog.Any("error", err))
				recordFailure(run, title, "insert_failed")
			}
			continue
		}

		run.ProcessedCount++
		metrics.RecordSeedItem("inserted")
	}

	if run.Status != entity.SeedRunCancelled && len(run.FailedTitles) > 0 {
		run.Status = entity.SeedRunPartial
	}
	run.Duration = time.Since(start)
	metrics.RecordSeedRun(string(run.Status), run.Duration)

	logger.Info("seed run completed",
		slog.Int("titles", len(titles)),
		slog.Int("processed", run.ProcessedCount),
		slog.Int("failed", len(run.FailedTitles)),
		slog.String("status", string(run.Status)),
		slog.Duration("duration", run.Duration),
	)

	s.dispatchReport(run)

	return run, nil
}

// normalizeTitles trims surrounding whitespace from each line and drops
// blanks, preserving order and duplicates.
func normalizeTitles(lines []string) []string {
	titles := make([]string, 0, len(lines))
	for _, line := range lines {
		title := strings.TrimSpace(line)
		if title == "" {
			continue
		}
		titles = append(titles, title)
	}
	return titles
}

// recordFailure marks a title failed and keeps the run going.
func recordFailure(run *entity.SeedRun, title, reason string) {
	run.FailedTitles = append(run.FailedTitles, title)
	metrics.RecordSeedItem("failed")
	metrics.RecordSeedItemError(reason)
}

// dispatchReport sends the finished run to notification channels.
// Note: NotifyService handles goroutines internally, no need for go func() here.
func (s *Service) dispatchReport(run *entity.SeedRun) {
	if s.NotifyService == nil {
		return
	}
	if err := s.NotifyService.NotifySeedRun(context.Background(), run); err != nil {
		slog.Warn("Failed to dispatch run notification",
			slog.String("status", string(run.Status)),
			slog.Any("error", err))
	}
}
