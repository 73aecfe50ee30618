package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls text from every page. Fragments within a page are joined
// by a single space, pages by a blank line.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(newBytesReaderAt(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content := page.Content()
		fragments := make([]string, 0, len(content.Text))
		for _, t := range content.Text {
			if t.S != "" {
				fragments = append(fragments, t.S)
			}
		}
		pages = append(pages, strings.Join(fragments, " "))
	}

	return strings.TrimSpace(strings.Join(pages, "\n\n")), nil
}

// bytesReaderAt implements io.ReaderAt for a byte slice. The pdf library
// wants a ReaderAt, not a file path.
type bytesReaderAt struct {
	data []byte
}

func newBytesReaderAt(data []byte) *bytesReaderAt {
	return &bytesReaderAt{data: data}
}

func (r *bytesReaderAt) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset")
	}
	if off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n = copy(p, r.data[off:])
	if n < len(p) {
		err = io.EOF
	}
	return n, err
}
