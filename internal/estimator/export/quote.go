package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"carpet-estimator/internal/estimator/models"
)

// ============================================================
// Quote documents
// ============================================================

// Quote is everything printed on a customer quote.
type Quote struct {
	Customer models.Customer
	Rooms    models.RoomSet
	Created  time.Time

	// RollWidth is printed next to the linear metre total when set.
	RollWidth float64
}

func (q Quote) customerLines() [][2]string {
	c := q.Customer
	return [][2]string{
		{"Customer", c.Name},
		{"Phone", c.Phone},
		{"Email", c.Email},
		{"Address", c.Address},
		{"Install Date", c.InstallDate},
		{"Notes", c.Notes},
	}
}

func carpetLabel(r models.Room) string {
	if r.Carpetable {
		return "Yes"
	}
	return "No"
}

// BuildQuotePDF renders a one-page quote: customer header, room table and
// totals.
func BuildQuotePDF(q Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Carpet Quote")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	for _, line := range q.customerLines() {
		if line[1] == "" {
			continue
		}
		pdf.Cell(0, 6, fmt.Sprintf("%s: %s", line[0], line[1]))
		pdf.Ln(5)
	}
	if !q.Created.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", q.Created.Format("2006-01-02 15:04")))
		pdf.Ln(5)
	}
	if q.Rooms.AnalysisMethod != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Method: %s", q.Rooms.AnalysisMethod))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Rooms table
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(40, 6, "Room", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Category", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "L x W (m)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Area", "1", 0, "C", false, 0, "")
	pdf.CellFormat(15, 6, "Carpet", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Carpet Area", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Linear m", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i, r := range q.Rooms.Rooms {
		pdf.CellFormat(40, 6, r.DisplayName(i), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, r.Category.Label(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f x %.2f", r.Dimensions.Length, r.Dimensions.Width), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.2f", r.Area), "1", 0, "R", false, 0, "")
		pdf.CellFormat(15, 6, carpetLabel(r), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", r.CarpetableArea), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", r.LinearMetres), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total Carpet Area (m2): %.2f", q.Rooms.TotalCarpetableArea))
	pdf.Ln(5)
	if q.RollWidth > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Total Linear Metres (%.2fm roll): %.2f", q.RollWidth, q.Rooms.TotalLinearMetres))
	} else {
		pdf.Cell(0, 6, fmt.Sprintf("Total Linear Metres: %.2f", q.Rooms.TotalLinearMetres))
	}
	pdf.Ln(5)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildQuoteXLSX renders the quote as a workbook with a summary sheet and
// a rooms sheet.
func BuildQuoteXLSX(q Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	roomsSheet := "rooms"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(roomsSheet); err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	_ = f.SetCellValue(summarySheet, "A1", "Carpet Quote")
	row := 3
	for _, line := range q.customerLines() {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), line[0])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), line[1])
		row++
	}
	row++
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Analysis Method")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), q.Rooms.AnalysisMethod)
	row++
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Total Carpet Area (m2)")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), q.Rooms.TotalCarpetableArea)
	row++
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Total Linear Metres")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), q.Rooms.TotalLinearMetres)

	headers := []string{"Room", "Category", "Length (m)", "Width (m)", "Area (m2)", "Carpetable", "Obstacle Reduction", "Carpet Area (m2)", "Linear Metres"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(roomsSheet, cell, h)
	}
	for i, r := range q.Rooms.Rooms {
		values := []any{
			r.DisplayName(i),
			r.Category.Label(),
			r.Dimensions.Length,
			r.Dimensions.Width,
			r.Area,
			carpetLabel(r),
			r.ObstacleReduction,
			r.CarpetableArea,
			r.LinearMetres,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(roomsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write room row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
