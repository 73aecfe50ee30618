// Package parse turns raw model completions into typed results. Model output
// is untrusted free text: every parse has a documented fallback value and
// never returns an error to the caller.
package parse

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/liliang-cn/askcontract/internal/domain"
)

const fallbackSummaryChars = 500

// comparisonFallbackSummary is surfaced when a comparison response is unusable.
const comparisonFallbackSummary = "Không thể phân tích so sánh"

// StripFences removes a leading ```json or ``` fence and a trailing ``` fence
// if present, then trims whitespace. Unwrapped input passes through unchanged.
func StripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```json") {
		clean = clean[len("```json"):]
	} else if strings.HasPrefix(clean, "```") {
		clean = clean[len("```"):]
	}
	if strings.HasSuffix(clean, "```") {
		clean = clean[:len(clean)-len("```")]
	}
	return strings.TrimSpace(clean)
}

// FullAnalysis parses a full-analysis completion. On any parse failure the
// raw text becomes the summary and every list stays empty. The analysis
// timestamp is always stamped here; whatever the model produced is ignored.
func FullAnalysis(raw string) *domain.Analysis {
	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(StripFences(raw)), &analysis); err != nil {
		return &domain.Analysis{
			Summary:        truncateRunes(raw, fallbackSummaryChars),
			KeyTerms:       []domain.KeyTerm{},
			ImportantDates: []domain.ImportantDate{},
			Obligations:    []domain.Obligation{},
			Risks:          []domain.RiskItem{},
			AnalyzedAt:     time.Now(),
		}
	}

	analysis.AnalyzedAt = time.Now()
	if analysis.KeyTerms == nil {
		analysis.KeyTerms = []domain.KeyTerm{}
	}
	if analysis.ImportantDates == nil {
		analysis.ImportantDates = []domain.ImportantDate{}
	}
	if analysis.Obligations == nil {
		analysis.Obligations = []domain.Obligation{}
	}
	analysis.Risks = coerceRisks(analysis.Risks)
	for i := range analysis.ImportantDates {
		analysis.ImportantDates[i].Type = coerceDateType(analysis.ImportantDates[i].Type)
	}
	for i := range analysis.Obligations {
		analysis.Obligations[i].Priority = coercePriority(analysis.Obligations[i].Priority)
	}
	return &analysis
}

// Risks parses a risk-scan completion, an array of risk items. Fallback is an
// empty list.
func Risks(raw string) []domain.RiskItem {
	var risks []domain.RiskItem
	if err := json.Unmarshal([]byte(StripFences(raw)), &risks); err != nil {
		return []domain.RiskItem{}
	}
	return coerceRisks(risks)
}

// Categorization parses a categorize completion. Fallback is category "other"
// with confidence 0.5.
func Categorization(raw string) domain.Categorization {
	var result domain.Categorization
	if err := json.Unmarshal([]byte(StripFences(raw)), &result); err != nil {
		return domain.Categorization{Category: domain.CategoryOther, Confidence: 0.5}
	}
	if !domain.ValidCategory(result.Category) {
		result.Category = domain.CategoryOther
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	return result
}

// ChatAnswer parses a chat completion. A completion that is not valid JSON is
// still an answer: it is returned verbatim with no citations.
func ChatAnswer(raw string) domain.ChatAnswer {
	var answer domain.ChatAnswer
	if err := json.Unmarshal([]byte(StripFences(raw)), &answer); err != nil || answer.Answer == "" {
		return domain.ChatAnswer{Answer: raw, Citations: []string{}}
	}
	if answer.Citations == nil {
		answer.Citations = []string{}
	}
	return answer
}

// Comparison parses a comparison completion. Identity fields (ids, timestamp)
// are the caller's concern.
func Comparison(raw string) domain.Comparison {
	var result domain.Comparison
	if err := json.Unmarshal([]byte(StripFences(raw)), &result); err != nil {
		return domain.Comparison{
			Summary:         comparisonFallbackSummary,
			Differences:     []domain.Difference{},
			Recommendations: []string{},
		}
	}
	if result.Differences == nil {
		result.Differences = []domain.Difference{}
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}
	for i := range result.Differences {
		if result.Differences[i].Significance != "major" {
			result.Differences[i].Significance = "minor"
		}
	}
	return result
}

// RealityGap parses a reality-gap completion. Fallback is empty lists.
func RealityGap(raw string) domain.RealityAnalysis {
	var result domain.RealityAnalysis
	if err := json.Unmarshal([]byte(StripFences(raw)), &result); err != nil {
		return domain.RealityAnalysis{Gaps: []domain.GapAnalysis{}, Suggestions: []domain.Suggestion{}}
	}
	if result.Gaps == nil {
		result.Gaps = []domain.GapAnalysis{}
	}
	if result.Suggestions == nil {
		result.Suggestions = []domain.Suggestion{}
	}
	for i := range result.Gaps {
		result.Gaps[i].Severity = coerceSeverity(result.Gaps[i].Severity)
	}
	for i := range result.Suggestions {
		result.Suggestions[i].Priority = coercePriority(result.Suggestions[i].Priority)
	}
	return result
}

// coerceRisks guarantees the severity/category closure on every surfaced
// risk item. Unknown tags are coerced, never dropped.
func coerceRisks(risks []domain.RiskItem) []domain.RiskItem {
	if risks == nil {
		return []domain.RiskItem{}
	}
	for i := range risks {
		risks[i].Severity = coerceSeverity(risks[i].Severity)
		if !domain.ValidRiskCategory(risks[i].Category) {
			risks[i].Category = domain.RiskOther
		}
	}
	return risks
}

func coerceSeverity(s string) string {
	if domain.ValidSeverity(s) {
		return s
	}
	return domain.SeverityLow
}

func coercePriority(p string) string {
	switch p {
	case "high", "medium", "low":
		return p
	}
	return "medium"
}

func coerceDateType(t string) string {
	switch t {
	case "start", "end", "deadline", "renewal", "other":
		return t
	}
	return "other"
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
