// Package classifier composes the rule engine and the semantic matcher
// into the per-record decision pipeline.
package classifier

import (
	"context"
	"errors"
	"strings"

	"workorder-classifier-go/internal/config"
	"workorder-classifier-go/internal/corpus"
	"workorder-classifier-go/internal/embedding"
	"workorder-classifier-go/internal/normalize"
	"workorder-classifier-go/internal/rules"
	"workorder-classifier-go/internal/semantic"
	"workorder-classifier-go/internal/temporal"
	"workorder-classifier-go/internal/types"
)

// ErrNotReady means the corpus or provider was not initialized. Callers
// must reject the whole batch instead of degrading every record to
// NEEDS_REVIEW.
var ErrNotReady = errors.New("classifier not ready: corpus or provider not initialized")

// Engine is immutable after construction and safe for concurrent use:
// the store is read-only and every call owns its own record and result.
type Engine struct {
	cfg     config.Config
	rules   *rules.Engine
	matcher *semantic.Matcher
	ready   bool
}

func NewEngine(cfg config.Config, store *corpus.Store, provider embedding.Provider) *Engine {
	e := &Engine{
		cfg:   cfg,
		rules: rules.New(cfg.Rules),
	}
	if store != nil && store.Len() > 0 && provider != nil {
		e.matcher = semantic.New(store, provider, cfg.SimilarityThreshold, cfg.MinTextLen)
		e.ready = true
	}
	return e
}

// Ready reports whether classification can be served at all.
func (e *Engine) Ready() bool {
	return e.ready
}

// Preprocess builds the immutable record the rule engine and matcher
// consume. It never fails; bad inputs degrade to sentinels.
func (e *Engine) Preprocess(wo types.WorkOrder) types.ProcessedRecord {
	full := strings.TrimSpace(wo.AssetName + " " + wo.ServiceText + " " + wo.Line + " " + wo.Area)
	return types.ProcessedRecord{
		NormalizedText:       normalize.Text(full),
		RawServiceText:       wo.ServiceText,
		LeadTimeDays:         temporal.ExtractLeadTime(wo.ActualStart, wo.ScheduledStart),
		HasPreventiveKeyword: normalize.ContainsAny(wo.ServiceText, e.cfg.Rules.PreventiveKeywords),
		HasCorrectiveKeyword: normalize.ContainsAny(wo.ServiceText, e.cfg.Rules.CorrectiveKeywords),
	}
}

// Classify runs rules first, semantic fallback second. The only error
// it can return is ErrNotReady.
func (e *Engine) Classify(ctx context.Context, wo types.WorkOrder) (types.ClassificationResult, error) {
	if !e.ready {
		return types.ClassificationResult{}, ErrNotReady
	}

	rec := e.Preprocess(wo)

	// Nothing usable to classify on: skip both stages.
	if len(normalize.Text(wo.ServiceText)) < e.cfg.MinTextLen {
		return withOrder(wo, types.ClassificationResult{
			Category:   types.CategoryNeedsReview,
			Confidence: 0,
			Method:     types.MethodNone,
			Rationale:  "text too short",
		}), nil
	}

	if res := e.rules.Apply(rec); res != nil {
		return withOrder(wo, *res), nil
	}

	return withOrder(wo, e.matcher.Match(ctx, rec.NormalizedText)), nil
}

func withOrder(wo types.WorkOrder, res types.ClassificationResult) types.ClassificationResult {
	res.OrderID = wo.OrderID
	return res
}
