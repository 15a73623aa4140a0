package files

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pageCountFor extracts the page count of PDF content. Non-PDF content and
// unreadable PDFs yield nil; page count is advisory metadata, never a
// reason to fail the operation.
func (r *repo) pageCountFor(contentType string, data []byte) *int {
	if contentType != "application/pdf" {
		return nil
	}

	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		r.logger.Warn("failed to extract pdf page count", "error", err)
		return nil
	}

	return &count
}
