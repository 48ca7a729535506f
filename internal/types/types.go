package types

// Category is the closed set of work-order classifications.
type Category string

const (
	CategoryPreventive          Category = "PREVENTIVE"
	CategoryScheduledCorrective Category = "SCHEDULED_CORRECTIVE"
	CategoryEmergencyCorrective Category = "EMERGENCY_CORRECTIVE"

	// Sentinels: never produced by the rule engine.
	CategoryNeedsReview  Category = "NEEDS_REVIEW"
	CategoryUndetermined Category = "UNDETERMINED"
)

// Method says which stage of the pipeline decided the result.
type Method string

const (
	MethodRule     Method = "rule"
	MethodSemantic Method = "semantic"
	MethodNone     Method = "none"
)

// WorkOrder is one maintenance work-order row after header-alias
// resolution, raw cell values as they appeared in the sheet.
type WorkOrder struct {
	OrderID        string `json:"order_id,omitempty"`
	ServiceText    string `json:"service_text"`
	AssetName      string `json:"asset_name,omitempty"`
	Line           string `json:"line,omitempty"`
	Area           string `json:"area,omitempty"`
	ActualStart    string `json:"actual_start,omitempty"`
	ScheduledStart string `json:"scheduled_start,omitempty"`
}

// LeadTimeUnknown marks a lead time that could not be computed. Rules
// must treat it as "no temporal signal", never as a negative day count.
const LeadTimeUnknown = -1

// ProcessedRecord is the immutable per-record input to the rule engine
// and semantic matcher.
type ProcessedRecord struct {
	NormalizedText       string `json:"normalized_text"`
	RawServiceText       string `json:"raw_service_text"`
	LeadTimeDays         int    `json:"lead_time_days"`
	HasPreventiveKeyword bool   `json:"has_preventive_keyword"`
	HasCorrectiveKeyword bool   `json:"has_corrective_keyword"`
}

// ReferenceExample is one embedded training phrase owned by the
// embedding store, read-only at serving time.
type ReferenceExample struct {
	Phrase   string    `json:"frase"`
	Vector   []float64 `json:"embedding"`
	Category Category  `json:"-"`
}

// ClassificationResult is the per-record output of the engine.
// Confidence is always in [0,100]; Method == none implies a sentinel
// category.
type ClassificationResult struct {
	OrderID    string   `json:"order_id,omitempty"`
	Category   Category `json:"category"`
	Confidence int      `json:"confidence"`
	Method     Method   `json:"method"`
	Rationale  string   `json:"rationale"`
}
