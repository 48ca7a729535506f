// Command classify labels a local work-order spreadsheet in one run.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"workorder-classifier-go/internal/classifier"
	"workorder-classifier-go/internal/config"
	"workorder-classifier-go/internal/corpus"
	"workorder-classifier-go/internal/dataset"
	"workorder-classifier-go/internal/embedding"
	"workorder-classifier-go/internal/logger"
	"workorder-classifier-go/internal/stats"
)

func main() {
	_ = godotenv.Load()

	input := flag.String("input", "data/input/ordens_servico.xlsx", "input spreadsheet")
	output := flag.String("output", "", "output spreadsheet (default: ordens_classificadas_<date>.xlsx)")
	flag.Parse()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	store, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load embedding corpus")
	}

	provider, err := embedding.NewGeminiClient(cfg)
	if err != nil {
		log.WithError(err).Fatal("embedding provider not configured")
	}

	engine := classifier.NewEngine(cfg, store, provider)

	table, err := dataset.Load(*input)
	if err != nil {
		log.WithError(err).Fatal("failed to read input spreadsheet")
	}
	log.WithField("records", len(table.Orders)).WithField("input", *input).Info("spreadsheet loaded")

	start := time.Now()
	results, err := engine.Batch(context.Background(), table.Orders)
	if err != nil {
		log.WithError(err).Fatal("batch failed")
	}
	log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("classification finished")

	summary := stats.Aggregate(results)
	fmt.Print(stats.Format(summary))
	advisory := stats.Advise(summary, cfg.ReviewShareAlert)
	fmt.Printf("%s: %s\n", advisory.Insight, advisory.Action)

	outPath := *output
	if outPath == "" {
		outPath = fmt.Sprintf("ordens_classificadas_%s.xlsx", time.Now().Format("2006-01-02"))
	}
	if err := dataset.WriteResults(table, results, outPath); err != nil {
		log.WithError(err).Fatal("failed to write output spreadsheet")
	}
	log.WithField("output", outPath).Info("labeled spreadsheet saved")
}
