package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleConfig holds the thresholds and confidences of the deterministic
// rules so deployments can retune without touching the algorithm.
type RuleConfig struct {
	PreventiveKeywords []string `yaml:"preventive_keywords"`
	CorrectiveKeywords []string `yaml:"corrective_keywords"`

	UrgentBelowDays    int `yaml:"urgent_below_days"`
	ScheduledAboveDays int `yaml:"scheduled_above_days"`
	PlannedAboveDays   int `yaml:"planned_above_days"`

	KeywordConfidence   int `yaml:"keyword_confidence"`
	UrgentConfidence    int `yaml:"urgent_confidence"`
	ScheduledConfidence int `yaml:"scheduled_confidence"`
	PlannedConfidence   int `yaml:"planned_confidence"`
}

type Config struct {
	Port        string `yaml:"port"`
	CorpusPath  string `yaml:"corpus_path"`
	UploadDir   string `yaml:"upload_dir"`
	DownloadDir string `yaml:"download_dir"`

	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`
	GeminiURL    string `yaml:"gemini_url"`

	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MinTextLen          int     `yaml:"min_text_len"`

	Workers         int `yaml:"workers"`
	ProviderDelayMs int `yaml:"provider_delay_ms"`
	EmbedTimeoutSec int `yaml:"embed_timeout_sec"`

	ReviewShareAlert float64 `yaml:"review_share_alert"`

	Rules RuleConfig `yaml:"rules"`
}

// Load reads config.yaml (path overridable via CONFIG_PATH), applies env
// var overrides on top, then fills defaults. A missing file is fine; a
// file that exists but does not parse is not.
func Load() (Config, error) {
	var cfg Config

	path := "config.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	envOverride(&cfg.Port, "PORT")
	envOverride(&cfg.CorpusPath, "CORPUS_PATH")
	envOverride(&cfg.UploadDir, "UPLOAD_DIR")
	envOverride(&cfg.DownloadDir, "DOWNLOAD_DIR")
	envOverride(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	envOverride(&cfg.GeminiModel, "GEMINI_MODEL")
	envOverride(&cfg.GeminiURL, "GEMINI_URL")
	envOverrideFloat(&cfg.SimilarityThreshold, "SIMILARITY_THRESHOLD")
	envOverrideInt(&cfg.MinTextLen, "MIN_TEXT_LEN")
	envOverrideInt(&cfg.Workers, "WORKERS")
	envOverrideInt(&cfg.ProviderDelayMs, "PROVIDER_DELAY_MS")
	envOverrideInt(&cfg.EmbedTimeoutSec, "EMBED_TIMEOUT_SEC")
	envOverrideFloat(&cfg.ReviewShareAlert, "REVIEW_SHARE_ALERT")

	if kw := os.Getenv("PREVENTIVE_KEYWORDS"); kw != "" {
		cfg.Rules.PreventiveKeywords = splitList(kw)
	}
	if kw := os.Getenv("CORRECTIVE_KEYWORDS"); kw != "" {
		cfg.Rules.CorrectiveKeywords = splitList(kw)
	}

	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.CorpusPath == "" {
		cfg.CorpusPath = "embeddings.json"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = "downloads"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "text-embedding-004"
	}
	if cfg.GeminiURL == "" {
		cfg.GeminiURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.SimilarityThreshold == 0 {
		cfg.SimilarityThreshold = 0.55
	}
	if cfg.MinTextLen == 0 {
		cfg.MinTextLen = 3
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}
	if cfg.ProviderDelayMs == 0 {
		cfg.ProviderDelayMs = 100
	}
	if cfg.EmbedTimeoutSec == 0 {
		cfg.EmbedTimeoutSec = 12
	}
	if cfg.ReviewShareAlert == 0 {
		cfg.ReviewShareAlert = 0.35
	}

	r := &cfg.Rules
	if len(r.PreventiveKeywords) == 0 {
		r.PreventiveKeywords = []string{"preventiv"}
	}
	if len(r.CorrectiveKeywords) == 0 {
		r.CorrectiveKeywords = []string{"corretiv"}
	}
	if r.UrgentBelowDays == 0 {
		r.UrgentBelowDays = 2
	}
	if r.ScheduledAboveDays == 0 {
		r.ScheduledAboveDays = 5
	}
	if r.PlannedAboveDays == 0 {
		r.PlannedAboveDays = 7
	}
	if r.KeywordConfidence == 0 {
		r.KeywordConfidence = 99
	}
	if r.UrgentConfidence == 0 {
		r.UrgentConfidence = 95
	}
	if r.ScheduledConfidence == 0 {
		r.ScheduledConfidence = 90
	}
	if r.PlannedConfidence == 0 {
		r.PlannedConfidence = 85
	}
}

func envOverride(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func envOverrideInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

func envOverrideFloat(target *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*target = f
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
