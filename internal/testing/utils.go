// Package testing provides fixtures and helpers for testing the emoji video core.
package testing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-emoji-video/config"
	"github.com/gcbaptista/go-emoji-video/internal/analytics"
	"github.com/gcbaptista/go-emoji-video/internal/engine"
	"github.com/gcbaptista/go-emoji-video/internal/tokenizer"
	"github.com/gcbaptista/go-emoji-video/model"
	"github.com/gcbaptista/go-emoji-video/services"
)

// FixtureLexicon is a small glyph -> keywords lexicon. The heart carries a
// variation selector, so its identifier is 2764-FE0F.
const FixtureLexicon = `{
	"\uD83D\uDC31": ["猫", "小猫", "Cat"],
	"\uD83D\uDC08": ["猫咪"],
	"\uD83D\uDE00": ["笑", "开心"],
	"\uD83D\uDE02": ["大笑", "笑哭"],
	"\uD83D\uDCF1": ["手机"],
	"\uD83E\uDD6E": ["月饼", "中秋节"],
	"\uD83C\uDF15": ["中秋", "月亮"],
	"\u2764\uFE0F": ["爱", "爱心"]
}`

// Fixture identifiers.
const (
	CatID      = "1F431"
	KittyID    = "1F408"
	GrinID     = "1F600"
	LaughID    = "1F602"
	PhoneID    = "1F4F1"
	MooncakeID = "1F96E"
	MoonID     = "1F315"
	HeartID    = "2764-FE0F"
)

// FixtureTwoPhrases and FixtureThreePhrases are the priority phrase files of
// the fixture lexicon.
const (
	FixtureTwoPhrases   = `["手机", "月饼", "中秋", "开心", "大笑"]`
	FixtureThreePhrases = `["中秋节"]`
)

// WriteFixtureLexicon writes the fixture lexicon and phrase files into a
// temporary directory and returns settings pointing at them.
func WriteFixtureLexicon(t *testing.T) config.Settings {
	t.Helper()
	dir := t.TempDir()

	settings := config.DefaultSettings()
	settings.Lexicon.Path = WriteFile(t, dir, "emojiNames.json", FixtureLexicon)
	settings.Lexicon.TwoPhrasePath = WriteFile(t, dir, "2.json", FixtureTwoPhrases)
	settings.Lexicon.ThreePhrasePath = WriteFile(t, dir, "3.json", FixtureThreePhrases)
	settings.Assets.Dir = filepath.Join(dir, "emoji_export")
	settings.Tokenizer.Segmenter = config.SegmenterNone
	return settings
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// WriteAsset creates an empty asset file for identifier under the asset directory.
func WriteAsset(t *testing.T, settings config.Settings, identifier string) string {
	t.Helper()
	name := "U+" + identifier
	return WriteFile(t, filepath.Join(settings.Assets.Dir, name), name+".gif", "GIF89a")
}

// CreateTestEngine creates an engine over settings that segments without a
// dictionary and tracks searches. It is closed when the test ends.
func CreateTestEngine(t *testing.T, settings config.Settings) *engine.Engine {
	t.Helper()
	eng := engine.NewEngine(settings,
		engine.WithSegmenter(tokenizer.PassthroughSegmenter{}),
		engine.WithAnalytics(analytics.NewService()),
	)
	t.Cleanup(eng.Close)
	return eng
}

// CreateFixtureEngine creates a test engine over the fixture lexicon.
func CreateFixtureEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return CreateTestEngine(t, WriteFixtureLexicon(t))
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      5 * time.Second,
		PollInterval: 10 * time.Millisecond,
		LogProgress:  false,
	}
}

// WaitForJob polls a job until it reaches a terminal status or times out
func WaitForJob(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not finish within %v timeout", jobID, opts.Timeout)
			return nil
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			if job.Status.IsTerminal() {
				return job
			}
			if opts.LogProgress && job.Progress != nil {
				t.Logf("Job %s progress: %d/%d - %s",
					jobID,
					job.Progress.Current,
					job.Progress.Total,
					job.Progress.Message)
			}
		}
	}
}

// WaitForJobCompletion waits for a job and fails the test unless it completed
func WaitForJobCompletion(t *testing.T, jobManager services.JobManager, jobID string) *model.Job {
	t.Helper()
	job := WaitForJob(t, jobManager, jobID, DefaultJobPollingOptions())
	if job.Status != model.JobStatusCompleted {
		t.Fatalf("Job %s ended as %s: %s", jobID, job.Status, job.Error)
	}
	return job
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType) {
	t.Helper()
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}

// SearchTestCase represents a test case for keyword searches
type SearchTestCase struct {
	Name     string
	Keyword  string
	Limit    int
	Expected []string // Expected identifiers, in order
}

// RunSearchTests runs a suite of search tests against a searcher
func RunSearchTests(t *testing.T, searcher services.Searcher, tests []SearchTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result, err := searcher.Search(tt.Keyword, tt.Limit)
			require.NoError(t, err, "Search should not fail")
			assert.Equal(t, tt.Expected, result.Identifiers)
		})
	}
}
