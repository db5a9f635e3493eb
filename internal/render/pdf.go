// Package render draws assembled reports as PDF documents.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"parking-maintenance-backend/internal/report"
)

const (
	fontFamily   = "Helvetica"
	rowHeight    = 6.0
	headerHeight = 7.0
)

// PDF renders report artifacts with fpdf, one section per page.
type PDF struct{}

// NewPDF creates a PDF renderer.
func NewPDF() *PDF {
	return &PDF{}
}

// Ext implements report.Renderer.
func (r *PDF) Ext() string {
	return "pdf"
}

// Render implements report.Renderer.
func (r *PDF) Render(w io.Writer, a *report.Artifact) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(a.Title+" - "+a.Period.Label(), true)
	pdf.SetCreationDate(a.GeneratedAt)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(0, 10, tr(a.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 12)
	pdf.CellFormat(0, 8, tr(a.Period.Label()), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 9)
	pdf.CellFormat(0, 6, "Generated "+a.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for i, s := range a.Sections {
		if s.PageBreak {
			pdf.AddPage()
		}
		pdf.SetFont(fontFamily, "B", 14)
		pdf.CellFormat(0, 9, tr(s.Title), "", 1, "L", false, 0, "")
		pdf.Ln(1)
		writeTable(pdf, tr, s.Table)

		img, err := chartPNG(s.Chart)
		if err != nil {
			return err
		}
		if img != nil {
			pdf.Ln(4)
			writeChart(pdf, tr, fmt.Sprintf("chart-%d", i), s.Chart, img)
		}
		if pdf.Err() {
			return pdf.Error()
		}
	}

	return pdf.Output(w)
}

func usableWidth(pdf *fpdf.Fpdf) float64 {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	return pageWidth - left - right
}

func writeTable(pdf *fpdf.Fpdf, tr func(string) string, t report.Table) {
	if len(t.Columns) == 0 {
		return
	}
	colWidth := usableWidth(pdf) / float64(len(t.Columns))
	fontSize := 9.0
	if len(t.Columns) > 6 {
		fontSize = 7
	}

	header := func() {
		pdf.SetFont(fontFamily, "B", fontSize)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range t.Columns {
			pdf.CellFormat(colWidth, headerHeight, fit(pdf, tr(c), colWidth), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(fontFamily, "", fontSize)
	}

	header()
	if len(t.Rows) == 0 {
		pdf.SetFont(fontFamily, "I", fontSize)
		pdf.CellFormat(colWidth*float64(len(t.Columns)), rowHeight, "No records", "1", 1, "C", false, 0, "")
		return
	}

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range t.Rows {
		if pdf.GetY()+rowHeight > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		for _, cell := range row {
			pdf.CellFormat(colWidth, rowHeight, fit(pdf, tr(cell), colWidth), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// fit shortens s so that it fits a cell of width w.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	limit := w - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"..") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ".."
}

func writeChart(pdf *fpdf.Fpdf, tr func(string) string, name string, c *report.Chart, img []byte) {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
	left, _, _, _ := pdf.GetMargins()
	pdf.ImageOptions(name, left, -1, usableWidth(pdf), 0, true, opts, 0, "")

	if len(c.Series) < 2 {
		return
	}
	pdf.SetFont(fontFamily, "", 9)
	for i, s := range c.Series {
		col := seriesColor(i)
		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.Rect(pdf.GetX(), pdf.GetY()+1.5, 3, 3, "F")
		pdf.SetX(pdf.GetX() + 4)
		pdf.CellFormat(pdf.GetStringWidth(tr(s.Name))+6, 6, tr(s.Name), "", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}
