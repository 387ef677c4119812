package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
)

// Colors follow the web client's palette.
var (
	pdfPrimary   = [3]int{147, 51, 234}
	pdfSubmitted = [3]int{16, 185, 129}
	pdfDraft     = [3]int{245, 158, 11}
)

// PDF renders the report as an A4 PDF.
func PDF(r *entity.Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	writePDFHeader(pdf, r)

	y := 50.0
	pdf.SetY(y)

	if r.Summary != "" {
		writePDFSection(pdf, "SUMMARY")
		writePDFParagraph(pdf, r.Summary)
	}

	if len(r.TasksCompleted) > 0 {
		writePDFSection(pdf, "TASKS COMPLETED")
		writePDFTaskTable(pdf, r.TasksCompleted)
	}

	if len(r.WorkInProgress) > 0 {
		writePDFSection(pdf, "WORK IN PROGRESS")
		writePDFTaskTable(pdf, r.WorkInProgress)
	}

	if len(r.Challenges) > 0 {
		writePDFSection(pdf, "CHALLENGES")
		for i, ch := range r.Challenges {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetTextColor(0, 0, 0)
			pdf.MultiCell(170, 5, fmt.Sprintf("%d. %s", i+1, ch.Description), "", "L", false)
			if ch.Solution != "" {
				pdf.SetFont("Helvetica", "", 9)
				pdf.SetTextColor(60, 60, 60)
				pdf.MultiCell(170, 5, "Solution: "+ch.Solution, "", "L", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}

	if r.Improvements != "" {
		writePDFSection(pdf, "IMPROVEMENTS & LEARNINGS")
		writePDFParagraph(pdf, r.Improvements)
	}

	if r.NextWeekPlan != "" {
		writePDFSection(pdf, "NEXT WEEK PLAN")
		writePDFParagraph(pdf, r.NextWeekPlan)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePDFHeader(pdf *fpdf.Fpdf, r *entity.Report) {
	pdf.SetFillColor(pdfPrimary[0], pdfPrimary[1], pdfPrimary[2])
	pdf.Rect(0, 0, 210, 40, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(20, 20, "Weekly Work Report")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(20, 30, fmt.Sprintf("%s - %s", formatDate(r.WeekStartDate), formatDate(r.WeekEndDate)))

	badge := pdfDraft
	label := "DRAFT"
	if r.IsSubmitted() {
		badge = pdfSubmitted
		label = "SUBMITTED"
	}
	pdf.SetFillColor(badge[0], badge[1], badge[2])
	pdf.RoundedRect(150, 22, 40, 10, 2, "1234", "F")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(150, 25)
	pdf.CellFormat(40, 5, label, "", 0, "C", false, 0, "")
}

func writePDFSection(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(pdfPrimary[0], pdfPrimary[1], pdfPrimary[2])
	pdf.CellFormat(170, 8, title, "", 1, "L", false, 0, "")
}

func writePDFParagraph(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.MultiCell(170, 5, text, "", "L", false)
	pdf.Ln(4)
}

func writePDFTaskTable(pdf *fpdf.Fpdf, tasks []entity.Task) {
	widths := []float64{10, 110, 20, 30}
	headers := []string{"#", "Task", "Time", "Priority"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(pdfPrimary[0], pdfPrimary[1], pdfPrimary[2])
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for i, t := range tasks {
		fill := i%2 == 1
		pdf.SetFillColor(243, 244, 246)
		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", i+1), "", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 6, t.Title, "", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 6, formatTimeSpent(t.TimeSpent), "", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[3], 6, orMedium(t.Priority), "", 0, "L", fill, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}
