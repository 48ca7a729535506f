// Command generate builds embeddings.json from a curated training
// corpus. It runs offline, before the service ever serves traffic, and
// any provider error aborts the whole job.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"workorder-classifier-go/internal/config"
	"workorder-classifier-go/internal/embedding"
	"workorder-classifier-go/internal/logger"
)

type corpusEntry struct {
	Phrase string    `json:"frase"`
	Vector []float64 `json:"embedding"`
}

func main() {
	_ = godotenv.Load()

	input := flag.String("input", "training-data.yaml", "training corpus (category -> phrases)")
	output := flag.String("output", "embeddings.json", "output corpus file")
	flag.Parse()

	log := logger.NewComponent("generate")

	cfg, err := config.Load()
	if err != nil {
		log.WithField("error", err.Error()).Fatal("failed to load config")
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("training corpus not found")
	}
	var training map[string][]string
	if err := yaml.Unmarshal(data, &training); err != nil {
		log.WithField("error", err.Error()).Fatal("failed to parse training corpus")
	}
	if len(training) == 0 {
		log.Fatal("training corpus is empty")
	}

	provider, err := embedding.NewGeminiClient(cfg)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("embedding provider not configured")
	}

	delay := time.Duration(cfg.ProviderDelayMs) * time.Millisecond
	ctx := context.Background()

	categories := make([]string, 0, len(training))
	for cat := range training {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	out := make(map[string][]corpusEntry, len(training))
	for _, cat := range categories {
		catLog := log.WithField("category", cat)
		catLog.WithField("phrases", len(training[cat])).Info("embedding category")
		for _, phrase := range training[cat] {
			vec, err := provider.Embed(ctx, phrase)
			if err != nil {
				catLog.WithField("phrase", phrase).WithField("error", err.Error()).
					Fatal("embedding failed, aborting corpus generation")
			}
			out[cat] = append(out[cat], corpusEntry{Phrase: phrase, Vector: vec})
			time.Sleep(delay) // stay under the provider rate limit
		}
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.WithField("error", err.Error()).Fatal("failed to encode corpus")
	}
	if err := os.WriteFile(*output, encoded, 0o644); err != nil {
		log.WithField("error", err.Error()).Fatal("failed to write corpus")
	}
	log.WithField("output", *output).Info("corpus generated")
}
