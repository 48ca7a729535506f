// Package rules holds the deterministic classification pass that runs
// before any embedding work.
package rules

import (
	"fmt"

	"workorder-classifier-go/internal/config"
	"workorder-classifier-go/internal/types"
)

// Engine evaluates the rule set in priority order; the first match wins
// and evaluation stops.
type Engine struct {
	cfg config.RuleConfig
}

func New(cfg config.RuleConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Apply returns nil when no rule fires, handing the record to the
// semantic fallback. A types.LeadTimeUnknown lead time never satisfies a
// temporal guard.
func (e *Engine) Apply(rec types.ProcessedRecord) *types.ClassificationResult {
	lead := rec.LeadTimeDays
	leadKnown := lead != types.LeadTimeUnknown

	// 1. Preventive keyword beats everything else.
	if rec.HasPreventiveKeyword {
		return &types.ClassificationResult{
			Category:   types.CategoryPreventive,
			Confidence: e.cfg.KeywordConfidence,
			Method:     types.MethodRule,
			Rationale:  "keyword match: preventive",
		}
	}

	// 2. Short notice means emergency work.
	if leadKnown && lead < e.cfg.UrgentBelowDays {
		return &types.ClassificationResult{
			Category:   types.CategoryEmergencyCorrective,
			Confidence: e.cfg.UrgentConfidence,
			Method:     types.MethodRule,
			Rationale:  fmt.Sprintf("lead time %d day(s): urgent", lead),
		}
	}

	// 3. Corrective keyword with comfortable notice.
	if rec.HasCorrectiveKeyword && leadKnown && lead > e.cfg.ScheduledAboveDays {
		return &types.ClassificationResult{
			Category:   types.CategoryScheduledCorrective,
			Confidence: e.cfg.ScheduledConfidence,
			Method:     types.MethodRule,
			Rationale:  fmt.Sprintf("corrective keyword with %d-day lead time", lead),
		}
	}

	// 4. No keyword at all but long notice: almost always planned work.
	if !rec.HasPreventiveKeyword && !rec.HasCorrectiveKeyword &&
		leadKnown && lead > e.cfg.PlannedAboveDays {
		return &types.ClassificationResult{
			Category:   types.CategoryPreventive,
			Confidence: e.cfg.PlannedConfidence,
			Method:     types.MethodRule,
			Rationale:  "long lead time implies planned work",
		}
	}

	return nil
}
