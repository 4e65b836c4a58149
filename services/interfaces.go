package services

import (
	"github.com/gcbaptista/go-emoji-video/model"
)

// Tokenizer splits free text into searchable tokens
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// Searcher resolves a keyword to ranked pictogram identifiers.
// limit caps the result when positive.
type Searcher interface {
	Search(keyword string, limit int) (model.SearchResult, error)
}

// SequenceBuilder lays selected candidates out over character slots
type SequenceBuilder interface {
	BuildSequence(tokens []string, selections [][]string, charCounts []int) (*model.Sequence, error)
}

// TextProcessor tokenizes a text and searches every token
type TextProcessor interface {
	Process(text string) (*model.ProcessedText, error)
	ProcessAsync(text string) (string, error) // Returns job ID
}

// LexiconManager manages the lifecycle of the loaded lexicon
type LexiconManager interface {
	Loaded() bool
	Stats() (model.LexiconStats, error)
	Pictogram(identifier string) (model.Pictogram, error)
	Reload() error
	ReloadAsync() (string, error) // Returns job ID
}

// JobManager defines operations for reading background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(status *model.JobStatus) []*model.Job
}

// Pipeline is everything the text to pictogram surface needs
type Pipeline interface {
	Tokenizer
	Searcher
	SequenceBuilder
	TextProcessor
	LexiconManager
}
