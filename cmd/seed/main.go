// Command seed nạp document directory của một kỳ bầu cử vào Meilisearch.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/election-directory/internal/dataset"
	"github.com/election-directory/internal/search"
)

func main() {
	var (
		cycle   = flag.String("cycle", "", "cycle id to seed (required)")
		dataDir = flag.String("data", "public", "root of the published dataset tree")
		index   = flag.String("index", "election_documents", "Meilisearch index name")
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

	meiliURL := os.Getenv("MEILI_URL")
	if meiliURL == "" {
		logger.Fatal("missing MEILI_URL")
	}

	searcher, err := search.NewDocumentSearcher(search.SearchConfig{
		Host:      meiliURL,
		APIKey:    os.Getenv("MEILI_MASTER_KEY"),
		IndexName: *index,
		Timeout:   30 * time.Second,
	}, logger)
	if err != nil {
		logger.Fatal("cannot connect to Meilisearch", zap.Error(err))
	}

	loader := dataset.NewLoader(dataset.NewFSFetcher(*dataDir), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	docs, err := loader.Documents(ctx, *cycle)
	if err != nil {
		logger.Fatal("cannot load documents", zap.Error(err))
	}

	if err := searcher.BuildIndexes(); err != nil {
		logger.Warn("cannot configure index", zap.Error(err))
	}
	if err := searcher.SeedDocuments(*cycle, docs.Records); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}

	logger.Info("Seed finished",
		zap.String("cycle", *cycle),
		zap.Int("documents", len(docs.Records)))
}
