package services

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"ahp_profiler/models"
)

// PageTextSource yields the linear text lines of a document, page by page
// in document order. The parser never touches the binary structure of the
// document itself.
type PageTextSource interface {
	ExtractLines(data []byte) ([]string, error)
}

// pdfTextSource extracts text from PDFs with a text layer. Fragments are
// regrouped into visual rows by their Y coordinate, which also flattens the
// two-column transcript layout into usable lines.
type pdfTextSource struct{}

// NewPDFTextSource returns the production PDF-backed text source.
func NewPDFTextSource() PageTextSource {
	return &pdfTextSource{}
}

// rowTolerance is the maximum vertical distance (points) between fragments
// that still belong to the same printed row.
const rowTolerance = 2.0

func (s *pdfTextSource) ExtractLines(data []byte) (lines []string, err error) {
	// The pdf package panics on some corrupted inputs; a broken upload is
	// a request error, not a process error.
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("%w: %v", models.ErrDocumentExtraction, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDocumentExtraction, err)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		lines = append(lines, rowsFromContent(page.Content())...)
	}

	return lines, nil
}

// rowsFromContent sorts the page's text fragments top-to-bottom then
// left-to-right and joins fragments sharing a baseline into one line.
func rowsFromContent(content pdf.Content) []string {
	texts := content.Text
	if len(texts) == 0 {
		return nil
	}

	sort.SliceStable(texts, func(i, j int) bool {
		if math.Abs(texts[i].Y-texts[j].Y) > rowTolerance {
			return texts[i].Y > texts[j].Y // PDF Y grows upward
		}
		return texts[i].X < texts[j].X
	})

	var rows []string
	var sb strings.Builder
	lastY := texts[0].Y
	lastEnd := texts[0].X

	flush := func() {
		if row := strings.TrimSpace(sb.String()); row != "" {
			rows = append(rows, row)
		}
		sb.Reset()
	}

	for _, t := range texts {
		if math.Abs(t.Y-lastY) > rowTolerance {
			flush()
			lastY = t.Y
			lastEnd = t.X
		}
		// Horizontal gaps between fragments become word separators.
		if sb.Len() > 0 && t.X-lastEnd > 1.0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.S)
		lastEnd = t.X + t.W
	}
	flush()

	return rows
}
