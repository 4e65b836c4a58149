package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-emoji-video/config"
	"github.com/gcbaptista/go-emoji-video/internal/engine"
)

var (
	cfgFile        string
	activeSettings config.Settings
	settingsLoaded bool
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultSettings()

	cmd := &cobra.Command{
		Use:           "emoji_video",
		Short:         "Turn Chinese text into pictogram sequences",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Flags:      cmd.Flags(),
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeSettings = loaded
			settingsLoaded = true
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newTokenizeCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newProcessCmd())
	cmd.AddCommand(newSequenceCmd())
	cmd.AddCommand(newPhrasesCmd())
	cmd.AddCommand(newLexiconCmd())

	return cmd
}

func requireSettings() (config.Settings, error) {
	if !settingsLoaded {
		return config.Settings{}, fmt.Errorf("configuration not loaded")
	}
	return activeSettings, nil
}

// openEngine creates an engine over the active settings. Callers close it.
func openEngine(opts ...engine.Option) (*engine.Engine, error) {
	settings, err := requireSettings()
	if err != nil {
		return nil, err
	}
	return engine.NewEngine(settings, opts...), nil
}

// inputText joins args, or reads all of in when there are none.
func inputText(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
