package prompt

import (
	"strings"
	"testing"

	"github.com/liliang-cn/askcontract/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFullAnalysis_EmbedsTextAndSchema(t *testing.T) {
	text := "Hợp đồng thuê nhà giữa Bên A và Bên B"
	p := FullAnalysis(text)

	assert.Contains(t, p, text)
	assert.Contains(t, p, `"keyTerms"`)
	assert.Contains(t, p, `"importantDates"`)
	assert.Contains(t, p, `"obligations"`)
	assert.Contains(t, p, `"risks"`)
	assert.Contains(t, p, "critical|high|medium|low")
	assert.Contains(t, p, "liability|termination|penalty|hidden_cost|ambiguity|compliance|other")
	assert.Contains(t, p, "không có markdown")
}

func TestRiskScan_StressTestFraming(t *testing.T) {
	text := "Điều 5: phạt vi phạm 50% giá trị hợp đồng"
	p := RiskScan(text)

	assert.Contains(t, p, text)
	assert.Contains(t, p, "Stress-test")
	assert.Contains(t, p, "Phạt vi phạm quá cao")
	assert.Contains(t, p, "Chi phí ẩn")
	assert.Contains(t, p, "JSON array")
}

func TestCategorize_TruncatesTo2000Chars(t *testing.T) {
	long := strings.Repeat("đ", 3000)
	p := Categorize(long)

	assert.NotContains(t, p, long)
	assert.Contains(t, p, strings.Repeat("đ", 2000))
	assert.Contains(t, p, "- labor:")
	assert.Contains(t, p, `{"category": "category_code", "confidence": 0.0-1.0}`)
}

func TestCategorize_ShortTextPassesThrough(t *testing.T) {
	p := Categorize("Hợp đồng lao động")
	assert.Contains(t, p, "Hợp đồng lao động")
}

func TestChat_InjectsHistoryBeforeQuestion(t *testing.T) {
	history := []string{
		"Assistant: Xin chào!",
		"User: Thời hạn hợp đồng là bao lâu?",
		"Assistant: 12 tháng.",
	}
	p := Chat("văn bản hợp đồng", "Có gia hạn được không?", history)

	assert.Contains(t, p, "văn bản hợp đồng")
	assert.Contains(t, p, "Lịch sử hội thoại:")
	assert.Contains(t, p, "User: Thời hạn hợp đồng là bao lâu?")
	assert.Contains(t, p, "CÂU HỎI: Có gia hạn được không?")

	// History comes before the question
	assert.Less(t, strings.Index(p, "Lịch sử hội thoại"), strings.Index(p, "CÂU HỎI"))
}

func TestChat_NoHistorySection(t *testing.T) {
	p := Chat("văn bản", "câu hỏi?", nil)
	assert.NotContains(t, p, "Lịch sử hội thoại")
}

func TestCompare_EmbedsBothContracts(t *testing.T) {
	p := Compare("nội dung hợp đồng một", "nội dung hợp đồng hai")

	assert.Contains(t, p, "nội dung hợp đồng một")
	assert.Contains(t, p, "nội dung hợp đồng hai")
	assert.Contains(t, p, "major|minor")
	assert.Less(t, strings.Index(p, "hợp đồng một"), strings.Index(p, "hợp đồng hai"))
}

func TestRealityGap_NumbersIssues(t *testing.T) {
	issues := []domain.RealityIssue{
		{Clause: "Điều 3", CurrentSituation: "Chưa bàn giao", Gap: "Trễ 2 tháng"},
		{Clause: "Điều 7", CurrentSituation: "Không bảo trì", Gap: "Vi phạm nghĩa vụ"},
	}
	p := RealityGap("văn bản hợp đồng", "chủ nhà không thực hiện cam kết", issues)

	assert.Contains(t, p, "văn bản hợp đồng")
	assert.Contains(t, p, "chủ nhà không thực hiện cam kết")
	assert.Contains(t, p, "1. Điều khoản: Điều 3")
	assert.Contains(t, p, "2. Điều khoản: Điều 7")
	assert.Contains(t, p, `"gaps"`)
	assert.Contains(t, p, `"suggestions"`)
}
