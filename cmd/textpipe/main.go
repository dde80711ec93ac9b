// Command textpipe runs a text processing pipeline over documents and prints what every step produced.
//
// Usage:
//
//	textpipe -steps sentenceSplit,wordTokenize,scoreSentiment doc.txt page.html
//	echo "Dogs are great. I hate snakes." | textpipe -steps sentenceSplit,scoreSentiment
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/askiada/go-textpipe/internal/logging"
	"github.com/askiada/go-textpipe/internal/source"
	"github.com/askiada/go-textpipe/pkg/config"
)

type options struct {
	configPath string
	envPath    string
	text       string
	files      []string
}

func main() {
	fs := flag.NewFlagSet("textpipe", flag.ExitOnError)

	cfg, opts, err := parseConfig(fs, os.Args[1:], os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "textpipe:", err)
		os.Exit(2)
	}

	logger := logging.New(cfg.Log, os.Stderr)

	docs, err := readDocuments(opts, cfg.HTML, os.Stdin)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to read input")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, docs, logger, os.Stdout)
	if err != nil {
		logger.Error().Err(err).Msg("textpipe failed")
		stop()
		os.Exit(1)
	}
}

// parseConfig builds the configuration from, in increasing priority: defaults, the YAML file,
// the environment (including the .env file) and the command line flags.
func parseConfig(fs *flag.FlagSet, args []string, lookup func(string) (string, bool)) (*config.Config, options, error) {
	var opts options

	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.envPath, "env", ".env", "environment file loaded when present")
	fs.StringVar(&opts.text, "text", "", "inline input text, instead of files or stdin")
	steps := fs.String("steps", "", "comma separated steps (sentenceSplit, wordTokenize, scoreSentiment)")
	strict := fs.Bool("strict", false, "fail steps receiving a value of the wrong kind")
	lexicon := fs.String("lexicon", "", "sentiment lexicon YAML file")
	forceHTML := fs.Bool("html", false, "extract text from every input as HTML")
	dot := fs.String("dot", "", "write a DOT diagram of each run to this file")
	jobs := fs.Int("jobs", 1, "documents processed at once")
	logLevel := fs.String("log-level", "", "log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "log format (console, json)")

	err := fs.Parse(args)
	if err != nil {
		return nil, opts, errors.Wrap(err, "unable to parse flags")
	}
	opts.files = fs.Args()

	err = config.LoadDotEnv(opts.envPath)
	if err != nil {
		return nil, opts, err
	}

	cfg := config.Default()
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return nil, opts, err
		}
	}

	err = cfg.ApplyEnv(lookup)
	if err != nil {
		return nil, opts, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "steps":
			cfg.Steps = config.SplitSteps(*steps)
		case "strict":
			cfg.Strict = *strict
		case "lexicon":
			cfg.Lexicon = *lexicon
		case "html":
			cfg.HTML = *forceHTML
		case "dot":
			cfg.DOT = *dot
		case "jobs":
			cfg.Jobs = *jobs
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		}
	})

	err = cfg.Validate()
	if err != nil {
		return nil, opts, err
	}

	return cfg, opts, nil
}

func readDocuments(opts options, forceHTML bool, stdin io.Reader) ([]source.Document, error) {
	if opts.text != "" {
		return []source.Document{{Name: "text", Text: opts.text}}, nil
	}

	if len(opts.files) == 0 {
		doc, err := source.Read("stdin", stdin, forceHTML)
		if err != nil {
			return nil, err
		}

		return []source.Document{doc}, nil
	}

	docs := make([]source.Document, 0, len(opts.files))
	for _, path := range opts.files {
		doc, err := source.ReadFile(path, forceHTML)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
