package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/liliang-cn/askcontract/internal/domain"
)

const docxHint = "hãy chuyển file sang định dạng DOCX rồi thử lại"

// extractWord reads the main document part of an OOXML word file and returns
// its text runs, one line per paragraph. Legacy binary .doc has no zip
// container, so it lands on the ExtractionEmpty path with a conversion hint.
func extractWord(data []byte, fileType string) (string, error) {
	text, err := readDocumentXML(data)
	if err != nil || strings.TrimSpace(text) == "" {
		return "", &domain.ExtractionEmptyError{Format: strings.ToUpper(fileType), Hint: docxHint}
	}
	return strings.TrimSpace(text), nil
}

func readDocumentXML(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var doc io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if doc == nil {
		return "", domain.ErrNotFound
	}
	defer doc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(doc)
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}
