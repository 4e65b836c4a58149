package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPhrasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phrases",
		Short: "Generate the 2- and 3-character priority phrase files from the lexicon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Close()

			two, three, err := eng.GeneratePhrases()
			if err != nil {
				return err
			}
			settings := eng.Settings()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d phrases to %s and %d phrases to %s\n",
				two, settings.Lexicon.TwoPhrasePath, three, settings.Lexicon.ThreePhrasePath)
			return err
		},
	}
}

func newLexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect and compile the lexicon",
	}
	cmd.AddCommand(newLexiconCompileCmd())
	cmd.AddCommand(newLexiconStatsCmd())
	return cmd
}

func newLexiconCompileCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Write a gob snapshot of the compiled lexicon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Close()

			stats, err := eng.CompileSnapshot(out)
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = eng.Settings().Lexicon.SnapshotPath
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "compiled %d glyphs and %d keywords into %s\n",
				stats.Glyphs, stats.Keywords, path)
			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Snapshot file (defaults to lexicon.snapshot_path)")

	return cmd
}

func newLexiconStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the sizes of the lexicon and priority phrase sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Close()

			stats, err := eng.Stats()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), stats)
		},
	}
}
