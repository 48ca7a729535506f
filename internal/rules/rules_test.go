package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workorder-classifier-go/internal/config"
	"workorder-classifier-go/internal/types"
)

func defaultEngine() *Engine {
	return New(config.RuleConfig{
		PreventiveKeywords:  []string{"preventiv"},
		CorrectiveKeywords:  []string{"corretiv"},
		UrgentBelowDays:     2,
		ScheduledAboveDays:  5,
		PlannedAboveDays:    7,
		KeywordConfidence:   99,
		UrgentConfidence:    95,
		ScheduledConfidence: 90,
		PlannedConfidence:   85,
	})
}

func TestPreventiveKeywordWinsRegardlessOfLeadTime(t *testing.T) {
	e := defaultEngine()
	for _, lead := range []int{-5, 0, 1, 30, types.LeadTimeUnknown} {
		res := e.Apply(types.ProcessedRecord{
			NormalizedText:       "manutencao preventiva do motor",
			RawServiceText:       "Manutenção PREVENTIVA do motor",
			LeadTimeDays:         lead,
			HasPreventiveKeyword: true,
		})
		require.NotNil(t, res, "lead=%d", lead)
		assert.Equal(t, types.CategoryPreventive, res.Category)
		assert.Equal(t, 99, res.Confidence)
		assert.Equal(t, types.MethodRule, res.Method)
	}
}

func TestUrgencyRule(t *testing.T) {
	e := defaultEngine()
	res := e.Apply(types.ProcessedRecord{
		NormalizedText:       "correcao necessaria",
		HasCorrectiveKeyword: true,
		LeadTimeDays:         1,
	})
	require.NotNil(t, res)
	assert.Equal(t, types.CategoryEmergencyCorrective, res.Category)
	assert.Equal(t, 95, res.Confidence)
	assert.Equal(t, types.MethodRule, res.Method)
	assert.Contains(t, res.Rationale, "1 day(s)")
}

func TestUrgencyRuleIgnoresUnknownLeadTime(t *testing.T) {
	e := defaultEngine()
	// Sentinel is numerically < 2 but must not read as urgent.
	res := e.Apply(types.ProcessedRecord{
		NormalizedText: "troca de rolamento",
		LeadTimeDays:   types.LeadTimeUnknown,
	})
	assert.Nil(t, res)
}

func TestScheduledCorrectiveRule(t *testing.T) {
	e := defaultEngine()
	res := e.Apply(types.ProcessedRecord{
		NormalizedText:       "corretiva no redutor",
		HasCorrectiveKeyword: true,
		LeadTimeDays:         6,
	})
	require.NotNil(t, res)
	assert.Equal(t, types.CategoryScheduledCorrective, res.Category)
	assert.Equal(t, 90, res.Confidence)
	assert.Contains(t, res.Rationale, "6-day")
}

func TestLongLeadTimeImpliesPlanned(t *testing.T) {
	e := defaultEngine()
	res := e.Apply(types.ProcessedRecord{
		NormalizedText: "inspecao do painel eletrico",
		LeadTimeDays:   10,
	})
	require.NotNil(t, res)
	assert.Equal(t, types.CategoryPreventive, res.Category)
	assert.Equal(t, 85, res.Confidence)
}

func TestLongLeadTimeRuleSilentWhenKeywordPresent(t *testing.T) {
	e := defaultEngine()
	// Corrective keyword at 6..7 days lands in rule 3, not rule 4;
	// at exactly ScheduledAboveDays nothing fires.
	res := e.Apply(types.ProcessedRecord{
		NormalizedText:       "corretiva no redutor",
		HasCorrectiveKeyword: true,
		LeadTimeDays:         5,
	})
	assert.Nil(t, res)
}

func TestNoRuleFires(t *testing.T) {
	e := defaultEngine()
	for _, lead := range []int{2, 3, 4, 5, 6, 7} {
		rec := types.ProcessedRecord{
			NormalizedText: "limpeza do tanque",
			LeadTimeDays:   lead,
		}
		assert.Nil(t, e.Apply(rec), "lead=%d", lead)
	}
}

func TestThresholdsComeFromConfig(t *testing.T) {
	e := New(config.RuleConfig{
		UrgentBelowDays:  4,
		UrgentConfidence: 80,
	})
	res := e.Apply(types.ProcessedRecord{NormalizedText: "reparo", LeadTimeDays: 3})
	require.NotNil(t, res)
	assert.Equal(t, types.CategoryEmergencyCorrective, res.Category)
	assert.Equal(t, 80, res.Confidence)
}
