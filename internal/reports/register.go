package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"timeoff/internal/leave"
)

// RequestRegister renders the full request list as a PDF register, one row
// per request.
func RequestRegister(requests []leave.Request, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Time-Off Request Register")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", generatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	widths := []float64{55, 30, 30, 25, 22, 55, 60}
	headers := []string{"Employee", "Start", "End", "Type", "Status", "Reason", "Location"}
	pdf.SetFont("Helvetica", "B", 9)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, request := range requests {
		row := []string{
			truncate(request.EmployeeName, 32),
			request.StartDate,
			request.EndDate,
			request.Type,
			request.Status,
			truncate(request.Reason, 34),
			truncate(request.StoreLocation, 36),
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit-3] + "..."
}
