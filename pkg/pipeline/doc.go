// Package pipeline provides a pipeline for processing text.
//
// A pipeline is built from a raw text and an ordered list of step names. Running it resolves every
// name against a fixed set of steps (sentenceSplit, wordTokenize, scoreSentiment), invokes the step
// with the value produced by the previous one and records what each step returned. The value threaded
// between steps is a tagged Value: a text, a sequence of texts, a sequence of token sequences or a
// sequence of scores.
//
// Names that match no step do not stop the pipeline. They are reported through the logger and
// Warnings, and the running value is left untouched. Any other failure stops the pipeline on the
// spot: steps not reached leave no snapshot behind.
//
// The pipeline does not check that one step's output fits the next step's input unless strict mode
// is enabled. In the default mode a per-text step fed with a single raw text works on its characters,
// so callers are expected to put sentenceSplit before wordTokenize or scoreSentiment.
//
// Options implementing model.PipelineOption, such as measure.PipelineMeasure and drawer.PipelineDrawer,
// are notified of every step and can collect timings or draw the executed chain.
package pipeline
