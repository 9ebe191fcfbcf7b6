// Package cli wires the questions command tree.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-questions/config"
	"github.com/gcbaptista/go-questions/internal/corpus"
	"github.com/gcbaptista/go-questions/internal/engine"
	qerrors "github.com/gcbaptista/go-questions/internal/errors"
	"github.com/gcbaptista/go-questions/internal/logging"
	"github.com/gcbaptista/go-questions/services"
)

const (
	rootUsage  = "questions <corpus>"
	serveUsage = "questions serve <corpus>"
	prompt     = "Query: "
)

// options holds flag values shared by the commands.
type options struct {
	configPath string
	logLevel   string
	verbose    bool

	query           string
	fileMatches     int
	sentenceMatches int
	jsonOutput      bool
	scores          bool
	repeat          bool

	port int
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   rootUsage,
		Short: "Answer questions from a directory of plain-text documents",
		Long: `Reads every file in the corpus directory, ranks the files against a
query by TF-IDF and prints the best-matching sentences from the top files.`,
		Args:          exactCorpusArg(rootUsage),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts, args[0])
		},
	}

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	persistent.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	persistent.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	flags := cmd.Flags()
	flags.StringVarP(&opts.query, "query", "q", "", "answer this query instead of prompting")
	flags.IntVarP(&opts.fileMatches, "files", "f", 0, "number of top files to search for sentences")
	flags.IntVarP(&opts.sentenceMatches, "sentences", "n", 0, "number of sentences to print")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print the answer as JSON")
	flags.BoolVar(&opts.scores, "scores", false, "print file and sentence scores")
	flags.BoolVar(&opts.repeat, "repeat", false, "keep prompting until end of input")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return qerrors.NewUsageError(c.UseLine(), err.Error())
	})

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// exactCorpusArg requires a single corpus directory argument.
func exactCorpusArg(usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return qerrors.NewUsageError(usage, fmt.Sprintf("expected 1 argument, got %d", len(args)))
		}
		return nil
	}
}

// environment is what every command needs before it can answer queries.
type environment struct {
	cfg    *config.Config
	logger *logrus.Logger
	engine *engine.Engine
}

// prepare loads configuration, reads the corpus and builds the engine.
func prepare(ctx context.Context, cmd *cobra.Command, opts *options, dir string) (*environment, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewWithOutput(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

	docs, err := corpus.Load(ctx, dir, corpus.Options{
		Concurrency: cfg.Corpus.Concurrency,
		Extensions:  cfg.Corpus.Extensions,
		Logger:      logging.Component(logger, "corpus"),
	})
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(docs, cfg.Pipeline, logging.Component(logger, "engine"))
	if err != nil {
		return nil, err
	}

	return &environment{cfg: cfg, logger: logger, engine: eng}, nil
}

// applyFlagOverrides lets explicitly set flags win over file and environment config.
func applyFlagOverrides(cmd *cobra.Command, opts *options, cfg *config.Config) {
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	if cmd.Flags().Changed("files") {
		cfg.Pipeline.FileMatches = opts.fileMatches
	}
	if cmd.Flags().Changed("sentences") {
		cfg.Pipeline.SentenceMatches = opts.sentenceMatches
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = opts.port
	}
}

func runAsk(cmd *cobra.Command, opts *options, dir string) error {
	ctx := cmd.Context()
	env, err := prepare(ctx, cmd, opts, dir)
	if err != nil {
		return err
	}
	settings := env.engine.Settings()
	out := cmd.OutOrStdout()

	if cmd.Flags().Changed("query") {
		return ask(ctx, env.engine, opts, out, opts.query, settings)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ask(ctx, env.engine, opts, out, scanner.Text(), settings); err != nil {
			return err
		}
		if !opts.repeat {
			return nil
		}
	}
}

func ask(ctx context.Context, answerer services.Answerer, opts *options, out io.Writer, query string, settings config.PipelineSettings) error {
	answer, err := answerer.Answer(ctx, strings.TrimSpace(query), settings.FileMatches, settings.SentenceMatches)
	if err != nil {
		return fmt.Errorf("answering query: %w", err)
	}

	switch {
	case opts.jsonOutput:
		return writeJSON(out, answer)
	case opts.scores:
		writeScores(out, answer)
	default:
		writeSentences(out, answer)
	}
	return nil
}
