package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	Flags      *pflag.FlagSet // Flags registered with RegisterFlags, may be nil
	ConfigFile string         // Explicit config file; when empty emoji_video.* is searched in "."
	Defaults   Settings
}

// RegisterFlags registers one flag per setting on fs.
func RegisterFlags(fs *pflag.FlagSet, defaults Settings) {
	fs.String("lexicon-path", defaults.Lexicon.Path, "Path to the glyph -> keywords JSON lexicon")
	fs.String("two-phrase-path", defaults.Lexicon.TwoPhrasePath, "Path to the 2-character priority phrase JSON array")
	fs.String("three-phrase-path", defaults.Lexicon.ThreePhrasePath, "Path to the 3-character priority phrase JSON array")
	fs.String("snapshot-path", defaults.Lexicon.SnapshotPath, "Optional gob snapshot of the compiled lexicon")
	fs.String("asset-dir", defaults.Assets.Dir, "Directory holding U+<id>/U+<id>.gif pictograms")
	fs.Int("max-results", defaults.Search.MaxResults, "Maximum candidates per keyword (0 = unbounded)")
	fs.String("segmenter", defaults.Tokenizer.Segmenter, "Word segmenter: gse|none")
	fs.String("segmenter-dict", defaults.Tokenizer.Dict, "Extra dictionary file for the gse segmenter")
	fs.String("listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int64("max-body-bytes", defaults.Server.MaxBodyBytes, "Maximum HTTP request body size")
	fs.Int("job-workers", defaults.Jobs.Workers, "Maximum concurrent background jobs")
}

// flagKeys maps flag names to their nested config keys.
var flagKeys = map[string]string{
	"lexicon-path":      "lexicon.path",
	"two-phrase-path":   "lexicon.two_phrase_path",
	"three-phrase-path": "lexicon.three_phrase_path",
	"snapshot-path":     "lexicon.snapshot_path",
	"asset-dir":         "assets.dir",
	"max-results":       "search.max_results",
	"segmenter":         "tokenizer.segmenter",
	"segmenter-dict":    "tokenizer.dict",
	"listen-addr":       "server.listen_addr",
	"max-body-bytes":    "server.max_body_bytes",
	"job-workers":       "jobs.workers",
}

// Load resolves settings from defaults, a config file, EMOJIVIDEO_* environment
// variables and flags, in increasing order of precedence. The result has
// defaults applied and is validated.
func Load(opts LoadOptions) (Settings, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetEnvPrefix("EMOJIVIDEO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("emoji_video")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Settings{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	settings.ApplyDefaults()

	if conflicts := settings.Validate(); len(conflicts) > 0 {
		return Settings{}, fmt.Errorf("invalid settings: %s", strings.Join(conflicts, "; "))
	}
	return settings, nil
}

func setDefaults(v *viper.Viper, s Settings) {
	v.SetDefault("lexicon.path", s.Lexicon.Path)
	v.SetDefault("lexicon.two_phrase_path", s.Lexicon.TwoPhrasePath)
	v.SetDefault("lexicon.three_phrase_path", s.Lexicon.ThreePhrasePath)
	v.SetDefault("lexicon.snapshot_path", s.Lexicon.SnapshotPath)
	v.SetDefault("assets.dir", s.Assets.Dir)
	v.SetDefault("search.max_results", s.Search.MaxResults)
	v.SetDefault("tokenizer.segmenter", s.Tokenizer.Segmenter)
	v.SetDefault("tokenizer.dict", s.Tokenizer.Dict)
	v.SetDefault("server.listen_addr", s.Server.ListenAddr)
	v.SetDefault("server.max_body_bytes", s.Server.MaxBodyBytes)
	v.SetDefault("jobs.workers", s.Jobs.Workers)
}
