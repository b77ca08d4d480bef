// Package pipeline runs the validation stages in their canonical order.
package pipeline

import (
	"context"
	"io"
	"os"

	"github.com/dataroadmap/dsdcheck/internal/config"
	"github.com/dataroadmap/dsdcheck/internal/consistency"
	"github.com/dataroadmap/dsdcheck/internal/corpus"
	"github.com/dataroadmap/dsdcheck/internal/descriptions"
	"github.com/dataroadmap/dsdcheck/internal/output"
	"github.com/dataroadmap/dsdcheck/internal/schema"
	"github.com/dataroadmap/dsdcheck/internal/templates"
)

// Stage names one step of a run.
type Stage string

const (
	StageSchema       Stage = "schema"
	StageDescriptions Stage = "descriptions"
	StageConsistency  Stage = "consistency"
	StageCorpus       Stage = "corpus"
	StageTemplate     Stage = "template"
)

// Pipeline defines the interface for a validation run.
type Pipeline interface {
	// Run executes the stages in order and stops at the first failure.
	//
	// The context is checked between stages and between corpus files.
	// The returned Result is non-nil even on failure and records the
	// stages that completed.
	Run(ctx context.Context) (*Result, error)
}

// Options selects which stages run.
type Options struct {
	// SkipCorpus skips corpus validation.
	SkipCorpus bool

	// SkipTemplate skips writing the template.
	SkipTemplate bool

	// CollectAll validates every corpus file instead of stopping at the first failure.
	CollectAll bool

	// Files validates these documents instead of discovering the corpus directory.
	Files []string

	// Out receives the corpus progress lines. Defaults to os.Stdout.
	Out io.Writer
}

// Result summarises a run.
type Result struct {
	// Completed lists the stages that finished successfully, in order.
	Completed []Stage

	// Schema is the loaded schema. Nil if loading failed.
	Schema *schema.Schema

	// Descriptions is the loaded description map. Nil if loading failed.
	Descriptions *descriptions.Map

	// Corpus is the corpus report. Nil if the stage was skipped or not reached.
	Corpus *corpus.Report

	// TemplatePath is the file written, or "" if the stage did not run.
	TemplatePath string
}

type pipeline struct {
	paths config.Paths
	opts  Options
}

// New creates a Pipeline over the given paths.
func New(paths config.Paths, opts Options) Pipeline {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &pipeline{paths: paths, opts: opts}
}

// Run executes the pipeline.
//
// Stage sequence:
//  1. SCHEMA:        schema.Load()          → *schema.Schema
//  2. DESCRIPTIONS:  descriptions.Load()    → *descriptions.Map
//  3. CONSISTENCY:   consistency.Check()
//  4. CORPUS:        corpus.ValidateDir()   → *corpus.Report
//  5. TEMPLATE:      templates.Write()
func (p *pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	log := output.StageLogger(string(StageSchema))
	s, err := schema.Load(p.paths.Schema)
	if err != nil {
		return res, err
	}
	res.Schema = s
	res.Completed = append(res.Completed, StageSchema)
	log.Debug("loaded", "path", p.paths.Schema, "fields", s.Len())

	if err := ctx.Err(); err != nil {
		return res, err
	}
	log = output.StageLogger(string(StageDescriptions))
	d, err := descriptions.Load(p.paths.Descriptions)
	if err != nil {
		return res, err
	}
	res.Descriptions = d
	res.Completed = append(res.Completed, StageDescriptions)
	log.Debug("loaded", "path", p.paths.Descriptions, "entries", d.Len())

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := consistency.Check(s, d); err != nil {
		return res, err
	}
	res.Completed = append(res.Completed, StageConsistency)
	output.StageLogger(string(StageConsistency)).Debug("every field is described", "fields", s.Len())

	if !p.opts.SkipCorpus {
		report, err := p.validateCorpus(ctx, s)
		res.Corpus = report
		if err != nil {
			return res, err
		}
		res.Completed = append(res.Completed, StageCorpus)
	}

	if !p.opts.SkipTemplate {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := templates.Write(p.paths.Template, s, d); err != nil {
			return res, err
		}
		res.TemplatePath = p.paths.Template
		res.Completed = append(res.Completed, StageTemplate)
		output.StageLogger(string(StageTemplate)).Debug("written", "path", p.paths.Template)
	}

	return res, nil
}

func (p *pipeline) validateCorpus(ctx context.Context, s *schema.Schema) (*corpus.Report, error) {
	v, err := corpus.New(s, corpus.Options{
		Out:        p.opts.Out,
		Pattern:    p.paths.Pattern,
		CollectAll: p.opts.CollectAll,
	})
	if err != nil {
		return nil, err
	}

	log := output.StageLogger(string(StageCorpus))
	if len(p.opts.Files) > 0 {
		log.Debug("validating files", "count", len(p.opts.Files))
		return v.ValidateFiles(ctx, p.opts.Files)
	}

	log.Debug("validating directory", "dir", p.paths.CorpusDir, "pattern", p.paths.Pattern)
	return v.ValidateDir(ctx, p.paths.CorpusDir)
}
