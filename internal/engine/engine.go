// Package engine ties the lexicon, tokenizer, resolver and sequence builder
// into the pipeline the CLI and the HTTP API drive.
package engine

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/gcbaptista/go-emoji-video/config"
	"github.com/gcbaptista/go-emoji-video/internal/analytics"
	"github.com/gcbaptista/go-emoji-video/internal/assets"
	"github.com/gcbaptista/go-emoji-video/internal/errors"
	"github.com/gcbaptista/go-emoji-video/internal/jobs"
	"github.com/gcbaptista/go-emoji-video/internal/lexicon"
	"github.com/gcbaptista/go-emoji-video/internal/sequence"
	"github.com/gcbaptista/go-emoji-video/internal/tokenizer"
	"github.com/gcbaptista/go-emoji-video/model"
)

// Engine owns the currently loaded lexicon. The lexicon is loaded on first
// use; concurrent first callers wait for that single load. Reload swaps in a
// freshly built Instance atomically, so readers never see a partial lexicon.
// It implements the services.Pipeline interface.
type Engine struct {
	settings config.Settings

	mu        sync.Mutex // Serializes loads and reloads
	current   atomic.Pointer[Instance]
	segmenter tokenizer.Segmenter

	assets     *assets.Locator
	builder    *sequence.Builder
	jobManager *jobs.Manager
	analytics  *analytics.Service
}

// Option customizes an Engine.
type Option func(*Engine)

// WithSegmenter uses seg instead of the segmenter named in the settings.
func WithSegmenter(seg tokenizer.Segmenter) Option {
	return func(e *Engine) { e.segmenter = seg }
}

// WithAnalytics records every search in svc.
func WithAnalytics(svc *analytics.Service) Option {
	return func(e *Engine) { e.analytics = svc }
}

// NewEngine creates an engine for settings. Nothing is loaded until the first
// call that needs the lexicon, or an explicit Load.
func NewEngine(settings config.Settings, opts ...Option) *Engine {
	settings.ApplyDefaults()
	e := &Engine{
		settings: settings,
		assets:   assets.NewLocator(settings.Assets.Dir),
		builder:  sequence.NewBuilder(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.jobManager = jobs.NewManager(settings.Jobs.Workers)
	e.jobManager.Start()
	return e
}

// Close stops background jobs.
func (e *Engine) Close() {
	e.jobManager.Stop()
}

// Settings returns the settings the engine was created with.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// JobManager exposes the engine's background jobs.
func (e *Engine) JobManager() *jobs.Manager {
	return e.jobManager
}

// Analytics returns the analytics service, or nil when searches are not tracked.
func (e *Engine) Analytics() *analytics.Service {
	return e.analytics
}

// Loaded reports whether a lexicon has been loaded.
func (e *Engine) Loaded() bool {
	return e.current.Load() != nil
}

// Load loads the lexicon if it is not loaded yet.
func (e *Engine) Load() error {
	_, err := e.instance()
	return err
}

// instance returns the loaded Instance, loading it on first use.
// A failed load is not remembered: the next call tries again.
func (e *Engine) instance() (*Instance, error) {
	if inst := e.current.Load(); inst != nil {
		return inst, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if inst := e.current.Load(); inst != nil {
		return inst, nil
	}
	inst, err := e.buildInstanceUnsafe()
	if err != nil {
		return nil, err
	}
	e.current.Store(inst)
	return inst, nil
}

// Reload rebuilds the lexicon from its sources and swaps it in. On failure
// the previously loaded lexicon, if any, stays in service.
func (e *Engine) Reload() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst, err := e.buildInstanceUnsafe()
	if err != nil {
		if e.current.Load() != nil {
			log.Printf("Warning: Lexicon reload failed, keeping the previous lexicon: %v", err)
		}
		return err
	}
	e.current.Store(inst)
	return nil
}

// buildInstanceUnsafe loads the lexicon and builds an Instance over it.
// Callers must hold e.mu.
func (e *Engine) buildInstanceUnsafe() (*Instance, error) {
	if e.segmenter == nil {
		seg, err := e.newSegmenter()
		if err != nil {
			return nil, err
		}
		e.segmenter = seg
	}

	lex, err := lexicon.Load(e.sources())
	if err != nil {
		return nil, err
	}

	inst, err := NewInstance(lex, e.segmenter, e.settings.Search.MaxResults)
	if err != nil {
		return nil, errors.NewConfigError(e.settings.Lexicon.Path, err)
	}
	return inst, nil
}

func (e *Engine) newSegmenter() (tokenizer.Segmenter, error) {
	seg, err := tokenizer.NewSegmenter(e.settings.Tokenizer.Segmenter, e.settings.Tokenizer.Dict)
	if err != nil {
		return nil, errors.NewConfigError(e.settings.Tokenizer.Dict, err)
	}
	return seg, nil
}

func (e *Engine) sources() lexicon.Sources {
	return lexicon.Sources{
		LexiconPath:     e.settings.Lexicon.Path,
		TwoPhrasePath:   e.settings.Lexicon.TwoPhrasePath,
		ThreePhrasePath: e.settings.Lexicon.ThreePhrasePath,
		SnapshotPath:    e.settings.Lexicon.SnapshotPath,
	}
}

// Stats describes the loaded lexicon.
func (e *Engine) Stats() (model.LexiconStats, error) {
	inst, err := e.instance()
	if err != nil {
		return model.LexiconStats{}, err
	}
	return inst.Lexicon.Stats, nil
}

// Pictogram returns a lexicon entry and where its asset is. A missing asset
// file is reported in AssetExists; an unknown identifier is an
// errors.PictogramNotFoundError.
func (e *Engine) Pictogram(identifier string) (model.Pictogram, error) {
	inst, err := e.instance()
	if err != nil {
		return model.Pictogram{}, err
	}

	glyph, ok := inst.Lexicon.Index.Glyph(identifier)
	if !ok {
		return model.Pictogram{}, errors.NewPictogramNotFoundError(identifier)
	}

	path, exists := e.assets.Find(identifier)
	keywords := append([]string{}, inst.Lexicon.Index.KeywordsFor(identifier)...)
	return model.Pictogram{
		Identifier:  identifier,
		Glyph:       glyph,
		Keywords:    keywords,
		AssetPath:   path,
		AssetExists: exists,
	}, nil
}
