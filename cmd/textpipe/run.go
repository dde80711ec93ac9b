package main

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-textpipe/internal/source"
	"github.com/askiada/go-textpipe/pkg/config"
	"github.com/askiada/go-textpipe/pkg/pipeline"
	"github.com/askiada/go-textpipe/pkg/pipeline/drawer"
	"github.com/askiada/go-textpipe/pkg/pipeline/measure"
	"github.com/askiada/go-textpipe/pkg/pipeline/model"
	"github.com/askiada/go-textpipe/pkg/text/sentiment"
)

// ErrRunFailed is returned when at least one document failed.
var ErrRunFailed = errors.New("pipeline run failed")

// run processes every document with its own pipeline and writes one YAML report per
// document to out, in input order.
func run(ctx context.Context, cfg *config.Config, docs []source.Document, logger zerolog.Logger, out io.Writer) error {
	scorer, err := newScorer(cfg.Lexicon)
	if err != nil {
		return err
	}

	reports := make([]report, len(docs))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(cfg.Jobs)

	for idx, doc := range docs {
		idx, doc := idx, doc
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			reports[idx] = process(cfg, doc, dotPath(cfg.DOT, idx, len(docs)), scorer, logger)

			return nil
		})
	}

	err = grp.Wait()
	if err != nil {
		return errors.Wrap(err, "unable to process documents")
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)

	failed := 0
	for _, rep := range reports {
		if rep.Error != "" {
			failed++
		}

		err := enc.Encode(rep)
		if err != nil {
			return errors.Wrap(err, "unable to write report")
		}
	}

	err = enc.Close()
	if err != nil {
		return errors.Wrap(err, "unable to write report")
	}

	if failed > 0 {
		return errors.Wrapf(ErrRunFailed, "%d of %d documents", failed, len(docs))
	}

	return nil
}

func process(cfg *config.Config, doc source.Document, dot string, scorer pipeline.SentimentScorer, logger zerolog.Logger) report {
	msr := measure.NewDefaultMeasure()
	hooks := []model.PipelineOption{measure.PipelineMeasure(msr)}
	if dot != "" {
		hooks = append(hooks, drawer.PipelineDrawer(drawer.NewDOTDrawer(dot), msr))
	}

	pipe, err := pipeline.New(doc.Text, cfg.Steps,
		pipeline.WithLogger(logger.With().Str("source", doc.Name).Logger()),
		pipeline.WithStrict(cfg.Strict),
		pipeline.WithScorer(scorer),
		pipeline.WithHooks(hooks...),
	)
	if err != nil {
		return report{Source: doc.Name, Steps: cfg.Steps, Snapshots: []snapshotReport{}, Error: err.Error()}
	}

	runErr := pipe.Run()
	if runErr != nil {
		logger.Error().Err(runErr).Str("source", doc.Name).Msg("pipeline run failed")
	}

	return newReport(doc.Name, pipe, msr, runErr)
}

func newScorer(lexiconPath string) (*sentiment.Scorer, error) {
	if lexiconPath == "" {
		return sentiment.NewScorer(nil), nil
	}

	lex, err := sentiment.LoadLexicon(lexiconPath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load sentiment lexicon")
	}

	return sentiment.NewScorer(lex), nil
}

// dotPath numbers the diagram file of each document when there are several.
func dotPath(path string, idx, total int) string {
	if path == "" || total <= 1 {
		return path
	}

	ext := filepath.Ext(path)

	return strings.TrimSuffix(path, ext) + "." + strconv.Itoa(idx) + ext
}
