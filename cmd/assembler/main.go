// Command assembler runs the build-time assembly pass: it loads a cycle's
// published datasets, verifies their cross-references, joins every candidate
// and constituency into its render-ready view and writes the views out as
// static JSON. The web service never does these joins at request time for
// anything the assembler already produced.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/election-directory/helpers/utils"
	"github.com/election-directory/internal/assemble"
	"github.com/election-directory/internal/dataset"
)

func main() {
	var (
		cycle   = flag.String("cycle", "", "cycle id to assemble (required)")
		dataDir = flag.String("data", "public", "root of the published dataset tree")
		outDir  = flag.String("out", "assembled", "output directory for assembled views")
		strict  = flag.Bool("strict", false, "treat integrity warnings as errors")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *cycle == "" {
		logger.Fatal("missing -cycle")
	}

	runID := utils.GenerateShortID()
	logger.Info("Assembly run starting",
		zap.String("run_id", runID),
		zap.String("cycle", *cycle),
		zap.String("data", *dataDir))

	loader := dataset.NewLoader(dataset.NewFSFetcher(*dataDir), logger)
	store := dataset.NewStore(loader, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	b, err := store.Bundle(ctx, *cycle)
	if err != nil {
		logger.Fatal("cannot load cycle bundle", zap.Error(err))
	}

	report := assemble.Check(b)
	assembler := assemble.NewAssembler(logger)

	candDir := filepath.Join(*outDir, *cycle, "candidates")
	unitDir := filepath.Join(*outDir, *cycle, "constituencies")
	for _, dir := range []string{candDir, unitDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatal("cannot create output directory", zap.String("dir", dir), zap.Error(err))
		}
	}

	// Candidate views, one per index entry. A missing detail file is a gap in
	// the published data, not a reason to abort the run.
	assembled, missing := 0, 0
	for _, rec := range b.Candidates.Records {
		detail, err := store.CandidateDetail(ctx, *cycle, rec.EntryID)
		if err != nil {
			if errors.Is(err, dataset.ErrUnavailable) {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("candidate %s has no detail payload", rec.EntryID))
				missing++
				continue
			}
			logger.Fatal("cannot load candidate detail", zap.String("entry_id", rec.EntryID), zap.Error(err))
		}
		assemble.CheckDetail(report, detail)

		view := assembler.CandidateView(b, detail)
		if err := writeJSON(filepath.Join(candDir, rec.EntryID+".json"), view); err != nil {
			logger.Fatal("cannot write candidate view", zap.String("entry_id", rec.EntryID), zap.Error(err))
		}
		assembled++
	}

	// Constituency views.
	for _, unit := range b.Constituencies.Records {
		view, err := assembler.ConstituencyView(b, unit.ID)
		if err != nil {
			logger.Fatal("cannot assemble constituency view", zap.String("id", unit.ID), zap.Error(err))
		}
		if err := writeJSON(filepath.Join(unitDir, unit.ID+".json"), view); err != nil {
			logger.Fatal("cannot write constituency view", zap.String("id", unit.ID), zap.Error(err))
		}
	}

	if err := writeJSON(filepath.Join(*outDir, *cycle, "integrity_report.json"), report); err != nil {
		logger.Fatal("cannot write integrity report", zap.Error(err))
	}

	for _, w := range report.Warnings {
		logger.Warn("Integrity warning", zap.String("warning", w))
	}
	for _, e := range report.Errors {
		logger.Error("Integrity error", zap.String("error", e))
	}

	logger.Info("Assembly run finished",
		zap.String("run_id", runID),
		zap.Int("candidates_assembled", assembled),
		zap.Int("candidates_missing_detail", missing),
		zap.Int("constituencies", len(b.Constituencies.Records)),
		zap.Int("errors", len(report.Errors)),
		zap.Int("warnings", len(report.Warnings)))

	if len(report.Errors) > 0 || (*strict && len(report.Warnings) > 0) {
		os.Exit(1)
	}
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
