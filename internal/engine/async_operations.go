package engine

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/gcbaptista/go-emoji-video/internal/jobs"
	"github.com/gcbaptista/go-emoji-video/model"
)

// ReloadAsync reloads the lexicon in the background. The job result is the
// new lexicon's stats.
func (e *Engine) ReloadAsync() (string, error) {
	jobID := e.jobManager.CreateJob(model.JobTypeReloadLexicon, map[string]string{
		"lexicon_path": e.settings.Lexicon.Path,
	})

	err := e.jobManager.ExecuteJob(jobID, func(_ context.Context, progress jobs.ProgressFunc) (any, error) {
		progress(0, 1, "Loading lexicon")
		if err := e.Reload(); err != nil {
			return nil, err
		}
		stats := e.current.Load().Lexicon.Stats
		progress(1, 1, "Lexicon loaded")
		log.Printf("Lexicon reloaded asynchronously: %d glyphs, %d keywords", stats.Glyphs, stats.Keywords)
		return stats, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start lexicon reload job: %w", err)
	}
	return jobID, nil
}

// ProcessAsync processes text in the background, reporting progress per
// token. The job result is the *model.ProcessedText. Input errors that can be
// detected up front are returned directly instead of as a failed job.
func (e *Engine) ProcessAsync(text string) (string, error) {
	inst, err := e.instance()
	if err != nil {
		return "", err
	}
	tokens, err := processTokens(inst, text)
	if err != nil {
		return "", err
	}

	jobID := e.jobManager.CreateJob(model.JobTypeProcessText, map[string]string{
		"tokens": strconv.Itoa(len(tokens)),
	})

	err = e.jobManager.ExecuteJob(jobID, func(ctx context.Context, progress jobs.ProgressFunc) (any, error) {
		return e.process(ctx, inst, text, tokens, func(done, total int, token string) {
			progress(done, total, fmt.Sprintf("Searched '%s'", token))
		})
	})
	if err != nil {
		return "", fmt.Errorf("failed to start text processing job: %w", err)
	}
	return jobID, nil
}
