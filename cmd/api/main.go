package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"workorder-classifier-go/internal/classifier"
	"workorder-classifier-go/internal/config"
	"workorder-classifier-go/internal/corpus"
	"workorder-classifier-go/internal/dataset"
	"workorder-classifier-go/internal/embedding"
	"workorder-classifier-go/internal/logger"
	"workorder-classifier-go/internal/stats"
	"workorder-classifier-go/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "workorder-classifier-go").Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	store, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load embedding corpus")
	}
	log.WithField("examples", store.Len()).Info("embedding corpus loaded")

	var provider embedding.Provider
	if p, err := embedding.NewGeminiClient(cfg); err != nil {
		log.WithError(err).Warn("embedding provider unavailable, serving not-ready")
	} else {
		provider = p
	}

	engine := classifier.NewEngine(cfg, store, provider)

	for _, dir := range []string{cfg.UploadDir, cfg.DownloadDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.WithError(err).Fatal("failed to create working dir")
		}
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":          "ok",
			"ready":           engine.Ready(),
			"corpus_examples": store.Len(),
		})
	})

	mux.HandleFunc("/classify", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "classify")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var wo types.WorkOrder
		if err := json.NewDecoder(r.Body).Decode(&wo); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		res, err := engine.Classify(r.Context(), wo)
		if err != nil {
			reqLog.WithError(err).Warn("classifier not ready")
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	mux.HandleFunc("/process", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "process")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !engine.Ready() {
			http.Error(w, "classifier not ready", http.StatusServiceUnavailable)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			reqLog.Warn("missing file field")
			http.Error(w, "missing file upload", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if strings.ToLower(filepath.Ext(header.Filename)) != ".xlsx" {
			http.Error(w, "only .xlsx files are accepted", http.StatusBadRequest)
			return
		}

		uploadPath := filepath.Join(cfg.UploadDir, uuid.New().String()+".xlsx")
		if err := saveUpload(file, uploadPath); err != nil {
			reqLog.WithError(err).Error("failed to persist upload")
			http.Error(w, "failed to store upload", http.StatusInternalServerError)
			return
		}
		defer os.Remove(uploadPath)

		table, err := dataset.Load(uploadPath)
		if err != nil {
			reqLog.WithError(err).Warn("unreadable spreadsheet")
			http.Error(w, fmt.Sprintf("unreadable spreadsheet: %v", err), http.StatusBadRequest)
			return
		}

		start := time.Now()
		results, err := engine.Batch(r.Context(), table.Orders)
		if err != nil {
			reqLog.WithError(err).Error("batch failed")
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		reqLog.WithField("records", len(results)).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("batch classified")

		outName := fmt.Sprintf("classificadas_%d.xlsx", time.Now().UnixMilli())
		outPath := filepath.Join(cfg.DownloadDir, outName)
		if err := dataset.WriteResults(table, results, outPath); err != nil {
			reqLog.WithError(err).Error("failed to write output sheet")
			http.Error(w, "failed to write output", http.StatusInternalServerError)
			return
		}

		summary := stats.Aggregate(results)
		writeJSON(w, http.StatusOK, map[string]any{
			"success":        true,
			"total":          summary.Total,
			"summary":        summary.ByCategory,
			"avg_confidence": fmt.Sprintf("%.1f", summary.AvgConfidence),
			"advisory":       stats.Advise(summary, cfg.ReviewShareAlert),
			"download":       outName,
		})
	})

	mux.HandleFunc("/download/", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "download")
		name := filepath.Base(strings.TrimPrefix(r.URL.Path, "/download/"))
		path := filepath.Join(cfg.DownloadDir, name)
		if _, err := os.Stat(path); err != nil {
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="ordens_classificadas.xlsx"`)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		http.ServeFile(w, r, path)
		if err := os.Remove(path); err != nil {
			reqLog.WithError(err).Warn("failed to clean up download")
		}
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
