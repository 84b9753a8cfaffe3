package extract

import (
	"fmt"
	"log/slog"

	"github.com/ledongthuc/pdf"
)

func extractPDF(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	defer f.Close()

	numPages := r.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A malformed page is not fatal to the document.
			slog.Warn("skipping unparseable PDF page", "path", path, "page", i, "err", err)
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}
	return pages, nil
}
