// Package pdf implements core.Exporter using gofpdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/jotvault/jot/pkg/core"
)

// Exporter renders notes as A4 PDF documents.
type Exporter struct{}

// NewExporter creates a PDF exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Render produces the PDF bytes for a document.
func (e *Exporter) Render(ctx context.Context, doc core.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	// Core fonts are cp1252; translate UTF-8 note text.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(doc.Title), "", "L", false)
	pdf.Ln(2)

	stamp := time.UnixMilli(doc.UpdatedAt).Format("Jan 2, 2006 15:04")
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s - %s", doc.Category, stamp)), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, tr(doc.Content), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

var _ core.Exporter = (*Exporter)(nil)
