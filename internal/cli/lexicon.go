package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/readable"
)

func newLexiconCommand(a *app, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Manage lexicon artifacts",
	}
	cmd.AddCommand(newLexiconBuildCommand(a, out))
	cmd.AddCommand(newLexiconLintCommand(a, out))
	return cmd
}

func newLexiconBuildCommand(a *app, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "build [source...]",
		Short: "Generate lexicon artifacts from their sources",
		Long: `build converts newline-delimited keyword sources into JSON artifacts.
With no arguments the configured positive and negative sources are built.
Existing artifacts are kept unless the freshness policy says otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := args
			if len(sources) == 0 {
				sources = []string{a.cfg.Positive, a.cfg.Negative}
			}

			store, err := a.store(cmd.Context())
			if err != nil {
				return err
			}

			for _, source := range sources {
				lex, err := store.Ensure(cmd.Context(), source)
				if err != nil {
					return err
				}
				state := "up to date"
				if store.Generated(source) {
					state = "generated"
				}
				fmt.Fprintf(out, "%s %s (%d keywords)\n", readable.ArtifactName(source), state, lex.Len())
			}
			return nil
		},
	}
}

func newLexiconLintCommand(a *app, out io.Writer) *cobra.Command {
	var (
		lang   string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "lint source",
		Short: "Report blank, duplicate and stop-word keywords in a lexicon source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if lang == "" {
				lang = a.cfg.Language
			}

			f, err := os.DirFS(a.cfg.Assets).Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			keywords, err := readable.ParseLexicon(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			report := readable.Lint(readable.Lexicon{Name: args[0], Keywords: keywords}, readable.Language(lang))
			fmt.Fprintln(out, report.String())

			if strict && !report.Clean() {
				return errors.New("lexicon has lint issues")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "stop-word language (ISO 639-1), defaults to the configured language")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when issues are found")
	return cmd
}
