// Package prompt builds the task prompts sent to the model. Every JSON task
// embeds its inputs verbatim and spells out the output schema as a literal
// JSON skeleton, with an instruction to answer in plain JSON only.
package prompt

import (
	"fmt"
	"strings"

	"github.com/liliang-cn/askcontract/internal/domain"
)

// categorizeMaxChars caps the text sent for categorization.
const categorizeMaxChars = 2000

// FullAnalysis builds the prompt for a complete contract analysis pass.
func FullAnalysis(contractText string) string {
	return fmt.Sprintf(`Bạn là Luật sư cao cấp chuyên trách rà soát hợp đồng.
Hãy phân tích hợp đồng dưới đây và trích xuất dữ liệu chính xác vào định dạng JSON.

NHIỆM VỤ CỤ THỂ:
1. Xác định các rủi ro tiềm ẩn (bất lợi về phạt vi phạm, đơn phương chấm dứt, hoặc câu từ mơ hồ).
2. Trích xuất các mốc thời gian quan trọng.
3. Tóm tắt nghĩa vụ trọng yếu của từng bên.

HỢP ĐỒNG:
%s

Trả về JSON với cấu trúc sau (không có markdown, chỉ JSON thuần):
{
  "summary": "Tóm tắt ngắn gọn về hợp đồng (2-3 câu)",
  "keyTerms": [
    {"term": "Tên điều khoản", "definition": "Giải thích", "section": "Điều X"}
  ],
  "importantDates": [
    {"date": "YYYY-MM-DD hoặc mô tả", "description": "Mô tả", "type": "start|end|deadline|renewal|other"}
  ],
  "obligations": [
    {"party": "Bên A/Bên B", "description": "Nghĩa vụ", "priority": "high|medium|low"}
  ],
  "risks": [
    {
      "id": "risk_1",
      "title": "Tên rủi ro ngắn gọn",
      "description": "Phân tích sâu tại sao điều khoản này gây bất lợi",
      "severity": "critical|high|medium|low",
      "category": "liability|termination|penalty|hidden_cost|ambiguity|compliance|other",
      "suggestion": "Đề xuất sửa đổi cụ thể",
      "section": "Điều khoản liên quan (VD: Điều 5.1)",
      "quote": "Trích dẫn nguyên văn đoạn văn bản gây rủi ro",
      "scenarios": ["Ví dụ thực tế 1", "Ví dụ thực tế 2"],
      "legalReferences": [
        { "title": "Tên văn bản (VD: Bộ luật Dân sự 2015, Điều 401)", "url": "Link đến văn bản pháp luật uy tín" }
      ]
    }
  ]
}

CHÚ Ý: Ở phần "risks", bạn hãy thực hiện "Stress-test" hợp đồng để tìm ra các bẫy pháp lý, điều khoản mâu thuẫn hoặc bất lợi tiềm ẩn dựa trên pháp luật Việt Nam hiện hành.`, contractText)
}

// RiskScan builds the adversarial stress-test prompt. It returns a bare JSON
// array of risks rather than a full analysis object.
func RiskScan(contractText string) string {
	return fmt.Sprintf(`Bạn là một Luật sư tranh tụng sắc sảo. Hãy thực hiện "Stress-test" hợp đồng này để tìm ra các bẫy pháp lý và rủi ro tiềm ẩn dựa trên pháp luật Việt Nam hiện hành.

HỢP ĐỒNG:
%s

YÊU CẦU:
Với mỗi rủi ro tìm thấy, bạn phải phân tích cực kỳ chi tiết theo định dạng JSON bên dưới.
1. "description": Phân tích sâu tại sao điều khoản này gây bất lợi.
2. "scenarios": Đưa ra ít nhất 1 ví dụ cụ thể về tình huống thực tế mà rủi ro này sẽ gây thiệt hại cho người dùng.
3. "legal_reference": Chỉ rõ điều khoản này có khả năng vi phạm hoặc mâu thuẫn với luật mới nhất nào.

Trả về JSON array với cấu trúc sau (không có markdown, chỉ JSON thuần):
[
  {
    "id": "risk_1",
    "title": "Tên rủi ro ngắn gọn",
    "description": "Mô tả chi tiết rủi ro và tác động",
    "severity": "critical|high|medium|low",
    "category": "liability|termination|penalty|hidden_cost|ambiguity|compliance|other",
    "suggestion": "Đề xuất sửa đổi cụ thể",
    "section": "Điều khoản liên quan (VD: Điều 5.1)",
    "quote": "Trích dẫn nguyên văn đoạn văn bản gây rủi ro trong hợp đồng",
    "scenarios": ["Ví dụ thực tế 1", "Ví dụ thực tế 2"],
    "legalReferences": [
      { "title": "Tên văn bản (VD: Bộ luật Dân sự 2015, Điều 401)", "url": "Link đến văn bản trên thuvienphapluat.vn hoặc link uy tín khác" }
    ]
  }
]

Chú ý phát hiện:
- Điều khoản bất lợi cho một bên
- Phạt vi phạm quá cao
- Giới hạn trách nhiệm không hợp lý
- Điều khoản chấm dứt có lợi cho một bên
- Chi phí ẩn
- Điều khoản mơ hồ, thiếu rõ ràng
- Vi phạm quy định pháp luật`, contractText)
}

// Categorize builds the classification prompt. Only the first 2000 characters
// of the contract are sent.
func Categorize(contractText string) string {
	truncated := contractText
	if runes := []rune(truncated); len(runes) > categorizeMaxChars {
		truncated = string(runes[:categorizeMaxChars])
	}

	return fmt.Sprintf(`Phân loại hợp đồng sau vào một trong các danh mục:
- labor: Hợp đồng lao động
- sales: Hợp đồng mua bán
- rental: Hợp đồng thuê/cho thuê
- service: Hợp đồng dịch vụ
- partnership: Hợp đồng hợp tác kinh doanh
- other: Khác

HỢP ĐỒNG:
%s

Trả về JSON (không có markdown):
{"category": "category_code", "confidence": 0.0-1.0}`, truncated)
}

// Chat builds the grounded question-answering prompt. History lines must be
// pre-rendered "User: ..." / "Assistant: ..." strings in chronological order.
func Chat(contractText, question string, history []string) string {
	historyText := ""
	if len(history) > 0 {
		historyText = fmt.Sprintf("\nLịch sử hội thoại:\n%s\n", strings.Join(history, "\n"))
	}

	return fmt.Sprintf(`Bạn là trợ lý pháp lý AI giúp giải đáp thắc mắc về hợp đồng. Hãy trả lời câu hỏi dựa trên nội dung hợp đồng được cung cấp.

HỢP ĐỒNG:
%s
%s
CÂU HỎI: %s

Hãy trả lời bằng tiếng Việt, rõ ràng và chính xác. Nếu câu hỏi liên quan đến điều khoản cụ thể, hãy trích dẫn phần liên quan. Nếu không tìm thấy thông tin trong hợp đồng, hãy nói rõ điều đó.

Trả về JSON với cấu trúc (không có markdown, chỉ JSON thuần):
{
  "answer": "Câu trả lời chi tiết",
  "citations": ["Trích dẫn 1 từ hợp đồng", "Trích dẫn 2 nếu có"]
}`, contractText, historyText, question)
}

// Compare builds the two-contract comparison prompt.
func Compare(contract1, contract2 string) string {
	return fmt.Sprintf(`Bạn là chuyên gia pháp lý so sánh hợp đồng. Hãy so sánh chi tiết 2 hợp đồng sau:

HỢP ĐỒNG 1:
%s

HỢP ĐỒNG 2:
%s

Trả về JSON với cấu trúc sau (không có markdown, chỉ JSON thuần):
{
  "summary": "Tóm tắt sự khác biệt chính giữa 2 hợp đồng",
  "differences": [
    {
      "aspect": "Khía cạnh so sánh (VD: Thời hạn, Giá trị, Phạt vi phạm...)",
      "contract1Value": "Giá trị trong HĐ1",
      "contract2Value": "Giá trị trong HĐ2",
      "significance": "major|minor",
      "recommendation": "Khuyến nghị chọn phương án nào và tại sao"
    }
  ],
  "recommendations": [
    "Khuyến nghị 1",
    "Khuyến nghị 2"
  ]
}`, contract1, contract2)
}

// RealityGap builds the contract-versus-reality gap analysis prompt.
func RealityGap(contractText, description string, issues []domain.RealityIssue) string {
	lines := make([]string, 0, len(issues))
	for i, issue := range issues {
		lines = append(lines, fmt.Sprintf("%d. Điều khoản: %s\n   Tình trạng thực tế: %s\n   Khoảng cách: %s",
			i+1, issue.Clause, issue.CurrentSituation, issue.Gap))
	}

	return fmt.Sprintf(`Bạn là chuyên gia pháp lý phân tích khoảng cách giữa hợp đồng và thực tế. Hãy phân tích tình huống sau:

HỢP ĐỒNG:
%s

MÔ TẢ TÌNH TRẠNG THỰC TẾ:
%s

CÁC VẤN ĐỀ PHÁT HIỆN:
%s

Trả về JSON với cấu trúc (không có markdown, chỉ JSON thuần):
{
  "gaps": [
    {
      "clause": "Điều khoản liên quan",
      "expected": "Nội dung theo hợp đồng",
      "actual": "Tình trạng thực tế",
      "severity": "critical|high|medium|low"
    }
  ],
  "suggestions": [
    {
      "issue": "Vấn đề cần giải quyết",
      "suggestion": "Đề xuất cách giải quyết chi tiết",
      "legalBasis": "Căn cứ pháp lý (nếu có)",
      "priority": "high|medium|low"
    }
  ]
}`, contractText, description, strings.Join(lines, "\n"))
}
