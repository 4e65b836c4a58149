package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize [text...]",
		Short: "Split text into tokens (reads stdin without arguments)",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Close()

			tokens, err := eng.Tokenize(text)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tokens, " "))
			return err
		},
	}
}

func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Rank the pictograms matching a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Close()

			result, err := eng.Search(args[0], limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum candidates to print (0 = configured maximum)")

	return cmd
}

func newProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process [text...]",
		Short: "Tokenize text and list the candidates of every token",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Close()

			processed, err := eng.Process(text)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), processed)
		},
	}
}

// sequenceInput is the JSON document read by the sequence command.
type sequenceInput struct {
	Tokens     []string   `json:"tokens"`
	Selections [][]string `json:"selections"`
	CharCounts []int      `json:"char_counts"`
}

func newSequenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sequence",
		Short: "Build the per-character sequence from a JSON selection read on stdin",
		Long: `Reads {"tokens": [...], "selections": [[...], ...], "char_counts": [...]}
from stdin and prints one slot per character.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in sequenceInput
			if err := json.NewDecoder(cmd.InOrStdin()).Decode(&in); err != nil {
				return fmt.Errorf("decode selection: %w", err)
			}

			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Close()

			seq, err := eng.BuildSequence(in.Tokens, in.Selections, in.CharCounts)
			if err != nil {
				return err
			}
			if seq.AllNoMatch {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning: "+seq.Warning)
			}
			return writeJSON(cmd.OutOrStdout(), seq)
		},
	}
}
