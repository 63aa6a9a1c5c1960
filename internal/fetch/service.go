// Package fetch implements the animation acquisition pipeline on top of
// the Mixamo client: keyword search, export, download to sanitized paths
// and the strictly sequential batch runner.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/raphaelgruber/animcp/internal/config"
	"github.com/raphaelgruber/animcp/internal/mixamo"
)

// Service wires the Mixamo client and configuration into the user-facing
// operations. Safe for sequential use; batches are deliberately never
// parallelized to stay under the service's rate limits.
type Service struct {
	client     *mixamo.Client
	outputDir  string
	batchDelay time.Duration
	logger     *slog.Logger
}

// NewService creates the pipeline service.
func NewService(client *mixamo.Client, cfg config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:     client,
		outputDir:  cfg.OutputDir,
		batchDelay: cfg.BatchDelay,
		logger:     logger,
	}
}

// Search runs a synonym-expanded catalog search. Zero matches from an
// otherwise working service is ErrNotFound; a dead service is
// ErrSearchFailed from the client.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]mixamo.Animation, error) {
	results, err := s.client.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w for %q", mixamo.ErrNotFound, query)
	}
	return results, nil
}

// Fetch runs the full pipeline for one animation request: resolve the
// character and animation, export, poll to completion and download. The
// query may be a keyword ("run") or a product UUID for a direct export.
func (s *Service) Fetch(ctx context.Context, query string, opts Options) (*DownloadRecord, error) {
	character, err := s.resolveCharacter(ctx, opts.CharacterID)
	if err != nil {
		return nil, err
	}

	animationID, name, err := s.resolveAnimation(ctx, query)
	if err != nil {
		return nil, err
	}
	if opts.Name != "" {
		name = opts.Name
	}

	s.logger.Info("exporting animation",
		"keyword", query,
		"animation_id", animationID,
		"character", character.Name,
	)

	job, err := s.client.ExportAnimation(ctx, character.ID, animationID, name)
	if err != nil {
		return nil, err
	}

	base := opts.FileName
	if base == "" {
		base = job.AnimationName
	}
	path := filepath.Join(s.resolveOutputDir(opts.OutputDir), SafeFileName(base))

	written, err := s.client.DownloadExport(ctx, job, path)
	if err != nil {
		return nil, err
	}

	s.logger.Info("animation saved", "path", path, "bytes", written)
	return &DownloadRecord{
		Keyword:       query,
		Success:       true,
		AnimationName: job.AnimationName,
		FilePath:      path,
		Bytes:         written,
	}, nil
}

// FetchBatch processes keywords strictly in order, pacing consecutive
// items and recording per-item failures without aborting the run. The
// returned summary lists one record per keyword in input order. On
// cancellation the summary covers the items finished so far and the
// context error is returned.
func (s *Service) FetchBatch(ctx context.Context, keywords []string, opts BatchOptions) (*BatchSummary, error) {
	if !s.client.HasToken() {
		return nil, mixamo.ErrNotAuthenticated
	}

	character, err := s.resolveCharacter(ctx, opts.CharacterID)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.resolveOutputDir(opts.OutputDir), SafeName(character.Name))
	delay := opts.Delay
	if delay <= 0 {
		delay = s.batchDelay
	}

	s.logger.Info("starting batch",
		"keywords", len(keywords),
		"character", character.Name,
		"output_dir", dir,
	)

	summary := &BatchSummary{
		Total:   len(keywords),
		Records: make([]DownloadRecord, 0, len(keywords)),
	}

	for i, keyword := range keywords {
		if i > 0 && delay > 0 {
			if err := sleepCtx(ctx, delay); err != nil {
				return summary, err
			}
		}

		opts.emit(ProgressEvent{Index: i, Total: len(keywords), Keyword: keyword})

		record, err := s.Fetch(ctx, keyword, Options{
			CharacterID: character.ID,
			FileName:    character.Name + "_" + keyword,
			OutputDir:   dir,
		})
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			s.logger.Warn("batch item failed", "keyword", keyword, "error", err)
			record = &DownloadRecord{Keyword: keyword, Error: err.Error()}
			summary.Failed++
		} else {
			summary.Successful++
		}

		summary.Records = append(summary.Records, *record)
		opts.emit(ProgressEvent{Index: i, Total: len(keywords), Keyword: keyword, Record: record})
	}

	s.logger.Info("batch finished",
		"total", summary.Total,
		"successful", summary.Successful,
		"failed", summary.Failed,
	)
	return summary, nil
}

// UploadCharacter sends a character model for auto-rigging and waits for
// the rigging to finish.
func (s *Service) UploadCharacter(ctx context.Context, filePath, name string) (*mixamo.Character, error) {
	s.logger.Info("uploading character", "file", filePath)
	character, err := s.client.UploadCharacter(ctx, filePath, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("character rigged", "id", character.ID, "name", character.Name)
	return character, nil
}

// resolveCharacter picks the export target: an explicit UUID is used
// as-is, otherwise the account's primary character, falling back to the
// stock Y Bot when none is selected.
func (s *Service) resolveCharacter(ctx context.Context, explicit string) (*mixamo.Character, error) {
	if explicit != "" {
		if _, err := uuid.Parse(explicit); err != nil {
			return nil, fmt.Errorf("invalid character id %q: %w", explicit, err)
		}
		return &mixamo.Character{ID: explicit, Name: explicit}, nil
	}

	character, err := s.client.PrimaryCharacter(ctx)
	if err != nil {
		if errors.Is(err, mixamo.ErrNotAuthenticated) {
			return nil, err
		}
		s.logger.Debug("primary character unavailable, using Y Bot", "error", err)
		return &mixamo.Character{ID: mixamo.CharacterYBot, Name: "Y Bot"}, nil
	}
	return character, nil
}

// resolveAnimation maps free text onto exactly one product ID. A query
// that parses as a UUID is treated as the product ID itself and skips
// search; anything else searches and takes the best (first) match.
func (s *Service) resolveAnimation(ctx context.Context, query string) (id, name string, err error) {
	q := strings.TrimSpace(query)
	if _, err := uuid.Parse(q); err == nil {
		return q, "", nil
	}

	results, err := s.Search(ctx, q, 1)
	if err != nil {
		return "", "", err
	}

	best := results[0]
	name = best.Name
	if name == "" {
		name = best.Description
	}
	return best.ID, name, nil
}

// resolveOutputDir applies the directory precedence: per-call value,
// configured value, then Unity project detection.
func (s *Service) resolveOutputDir(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if s.outputDir != "" {
		return s.outputDir
	}
	return DetectOutputDir()
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
