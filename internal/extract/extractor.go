package extract

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/liliang-cn/askcontract/internal/domain"
	"github.com/liliang-cn/askcontract/internal/llm"
)

// File type constants
const (
	FileTypePDF  = "pdf"
	FileTypeTXT  = "txt"
	FileTypeDOC  = "doc"
	FileTypeDOCX = "docx"
	FileTypePNG  = "png"
	FileTypeJPG  = "jpg"
	FileTypeJPEG = "jpeg"
)

// transcribeInstruction asks a vision-capable model for a verbatim transcript.
const transcribeInstruction = `Hãy trích xuất toàn bộ văn bản nhìn thấy được trong ảnh này. Giữ nguyên văn từng câu chữ và cấu trúc trình bày (tiêu đề, điều khoản, danh sách). Chỉ trả về phần văn bản, không thêm bình luận.`

// Upload is a raw uploaded file.
type Upload struct {
	Name string
	Data []byte
}

// Extractor converts uploaded files into plain text, dispatching on the file
// extension. Image formats are transcribed through the LLM gateway.
type Extractor struct {
	gateway llm.Gateway
}

// NewExtractor creates an extractor backed by the given gateway.
func NewExtractor(gateway llm.Gateway) *Extractor {
	return &Extractor{gateway: gateway}
}

// DetectFileType returns the lower-cased extension of filename without the dot.
func DetectFileType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.TrimPrefix(ext, ".")
}

// IsSupported checks if the file type is in the accepted set.
func IsSupported(fileType string) bool {
	switch fileType {
	case FileTypePDF, FileTypeTXT, FileTypeDOC, FileTypeDOCX, FileTypePNG, FileTypeJPG, FileTypeJPEG:
		return true
	}
	return false
}

// Extract converts the upload to plain text. Image formats require a provider
// API key in cfg; every other format needs no credentials and performs no
// network I/O.
func (e *Extractor) Extract(ctx context.Context, file Upload, cfg llm.Config) (string, error) {
	fileType := DetectFileType(file.Name)
	if !IsSupported(fileType) {
		return "", &domain.UnsupportedFormatError{Extension: fileType}
	}

	switch fileType {
	case FileTypePDF:
		return extractPDF(file.Data)
	case FileTypeTXT:
		return string(file.Data), nil
	case FileTypeDOC, FileTypeDOCX:
		return extractWord(file.Data, fileType)
	default:
		return e.extractImage(ctx, file.Data, fileType, cfg)
	}
}

func (e *Extractor) extractImage(ctx context.Context, data []byte, fileType string, cfg llm.Config) (string, error) {
	if cfg.APIKey == "" {
		return "", &domain.MissingCredentialsError{}
	}

	mimeType := "image/jpeg"
	if fileType == FileTypePNG {
		mimeType = "image/png"
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return e.gateway.Transcribe(ctx, transcribeInstruction, encoded, mimeType, cfg)
}
