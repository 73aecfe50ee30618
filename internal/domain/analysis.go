package domain

import "time"

// Risk severities, ordered low < medium < high < critical.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Risk categories
const (
	RiskLiability   = "liability"
	RiskTermination = "termination"
	RiskPenalty     = "penalty"
	RiskHiddenCost  = "hidden_cost"
	RiskAmbiguity   = "ambiguity"
	RiskCompliance  = "compliance"
	RiskOther       = "other"
)

// ValidSeverity reports whether s is one of the risk severities.
func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ValidRiskCategory reports whether c is one of the risk categories.
func ValidRiskCategory(c string) bool {
	switch c {
	case RiskLiability, RiskTermination, RiskPenalty, RiskHiddenCost, RiskAmbiguity, RiskCompliance, RiskOther:
		return true
	}
	return false
}

// Analysis is the structured result of one full analysis pass.
// A contract has at most one analysis; a new pass overwrites the old one.
type Analysis struct {
	Summary        string          `json:"summary"`
	KeyTerms       []KeyTerm       `json:"keyTerms"`
	ImportantDates []ImportantDate `json:"importantDates"`
	Obligations    []Obligation    `json:"obligations"`
	Risks          []RiskItem      `json:"risks"`
	AnalyzedAt     time.Time       `json:"analyzedAt"`
}

// KeyTerm is one extracted contract term.
type KeyTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Section    string `json:"section"`
}

// ImportantDate is one extracted milestone. Date may be ISO or descriptive.
type ImportantDate struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"` // start, end, deadline, renewal, other
}

// Obligation is one party obligation.
type Obligation struct {
	Party       string `json:"party"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // high, medium, low
}

// RiskItem is one detected risk. The ID is unique within its analysis only.
type RiskItem struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Severity        string           `json:"severity"`
	Category        string           `json:"category"`
	Suggestion      string           `json:"suggestion"`
	Section         string           `json:"section"`
	Quote           string           `json:"quote,omitempty"`
	Scenarios       []string         `json:"scenarios,omitempty"`
	LegalReferences []LegalReference `json:"legalReferences,omitempty"`
}

// LegalReference points at a statute or regulation backing a risk finding.
type LegalReference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Comparison is the result of comparing two contracts.
type Comparison struct {
	ID              string       `json:"id"`
	Contract1ID     string       `json:"contract1_id"`
	Contract2ID     string       `json:"contract2_id"`
	Summary         string       `json:"summary"`
	Differences     []Difference `json:"differences"`
	Recommendations []string     `json:"recommendations"`
	ComparedAt      time.Time    `json:"comparedAt"`
}

// Difference is one compared aspect between two contracts.
type Difference struct {
	Aspect         string `json:"aspect"`
	Contract1Value string `json:"contract1Value"`
	Contract2Value string `json:"contract2Value"`
	Significance   string `json:"significance"` // major, minor
	Recommendation string `json:"recommendation,omitempty"`
}

// RealityAnalysis is the result of comparing a contract against an actual situation.
type RealityAnalysis struct {
	Gaps        []GapAnalysis `json:"gaps"`
	Suggestions []Suggestion  `json:"suggestions"`
}

// GapAnalysis is one contract-versus-reality gap.
type GapAnalysis struct {
	Clause   string `json:"clause"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Severity string `json:"severity"`
}

// Suggestion is one remediation proposal for a reality gap.
type Suggestion struct {
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
	LegalBasis string `json:"legalBasis,omitempty"`
	Priority   string `json:"priority"`
}

// Categorization is the model's category guess for a contract.
type Categorization struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}
