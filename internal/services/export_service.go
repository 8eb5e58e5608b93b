package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"advocates/internal/domain"
	"advocates/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ExportService renders one page of search results as a PDF table.
type ExportService struct {
	Search    AdvocateService
	RequestID string
	Now       func() time.Time
}

type exportColumn struct {
	title string
	width float64
	align string
}

var exportColumns = []exportColumn{
	{"First Name", 32, "L"},
	{"Last Name", 32, "L"},
	{"City", 34, "L"},
	{"Degree", 20, "L"},
	{"Specialties", 104, "L"},
	{"Years", 16, "R"},
	{"Phone", 39, "R"},
}

const exportRowHeight = 7.0

// GeneratePDF runs the same query as the JSON endpoint and renders the page.
func (s ExportService) GeneratePDF(ctx context.Context, req domain.QueryRequest) ([]byte, string, error) {
	search := s.Search
	if search.RequestID == "" {
		search.RequestID = s.RequestID
	}
	page, err := search.Search(ctx, req)
	if err != nil {
		return nil, "", err
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	body, err := buildAdvocatesPDF(page, now())
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render pdf", Err: err}
	}
	utils.LogEvent(s.RequestID, "export", "advocates_pdf", fmt.Sprintf("page=%d rows=%d", page.Page, len(page.Data)))

	filename := fmt.Sprintf("ADVOCATES_%s_p%d.pdf", utils.SafeFilenamePart(utils.Fallback(page.Query, "all")), page.Page)
	return body, filename, nil
}

func buildAdvocatesPDF(page domain.AdvocatePage, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Advocates", true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s - sheet %d/{nb}", generated.Format("2006-01-02 15:04"), pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Advocates")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr("Searching for: "+utils.Fallback(page.Query, "(all)")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Page %d of %d - %d total", page.Page, page.TotalPages, page.Total))
	pdf.Ln(9)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(243, 244, 246)
		for _, col := range exportColumns {
			pdf.CellFormat(col.width, exportRowHeight, col.title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	if len(page.Data) == 0 {
		total := 0.0
		for _, col := range exportColumns {
			total += col.width
		}
		pdf.CellFormat(total, exportRowHeight, "No results", "1", 1, "C", false, 0, "")
	}

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, a := range page.Data {
		if pdf.GetY()+exportRowHeight > pageHeight-bottom-12 {
			pdf.AddPage()
			header()
		}
		cells := []string{
			a.FirstName,
			a.LastName,
			a.City,
			a.Degree,
			a.Specialties.Join(", "),
			strconv.Itoa(a.YearsOfExperience),
			strconv.FormatInt(a.PhoneNumber, 10),
		}
		for i, col := range exportColumns {
			text := fitText(pdf, tr(cells[i]), col.width-2)
			pdf.CellFormat(col.width, exportRowHeight, text, "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fitText truncates s with "..." so it fits width.
func fitText(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
