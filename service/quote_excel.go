package service

import (
	"bytes"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
)

const quoteSheet = "Devis"

// GenerateQuoteWorkbook writes the quote to a single-sheet xlsx workbook.
// Amounts are stored as numbers with a currency format so they stay usable
// in formulas.
func GenerateQuoteWorkbook(q *Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), quoteSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	widths := map[string]float64{"A": 18, "B": 44, "C": 18}
	for col, width := range widths {
		if err := f.SetColWidth(quoteSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	amountFormat := fmt.Sprintf(`#,##0.00 "%s"`, q.Currency)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Color: "#3B82F6"},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10, Color: "#6B7280"},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#3B82F6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lineStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &amountFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("create amount style: %w", err)
	}
	totalLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create total label style: %w", err)
	}
	totalValueStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 12},
		CustomNumFmt: &amountFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("create total value style: %w", err)
	}

	// Rows 1-3: title, reference and date.
	if err := f.MergeCell(quoteSheet, "A1", "C1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(quoteSheet, "A1", q.Title)
	f.SetCellStyle(quoteSheet, "A1", "C1", titleStyle)
	f.SetCellValue(quoteSheet, "A2", "Réf : "+q.Reference)
	f.SetCellValue(quoteSheet, "A3", "Date : "+q.CreatedDate)
	f.SetCellStyle(quoteSheet, "A2", "A3", subtitleStyle)

	// Row 5: column headers.
	for i, h := range []string{"Poste", "Détail", "Montant"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(quoteSheet, cell, h)
	}
	f.SetCellStyle(quoteSheet, "A5", "C5", headerStyle)

	row := 6
	f.SetCellValue(quoteSheet, fmt.Sprintf("A%d", row), "Type")
	f.SetCellValue(quoteSheet, fmt.Sprintf("B%d", row), sanitizeExcelCell(q.Options))
	f.SetCellStyle(quoteSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row), lineStyle)
	row++

	for _, line := range q.Lines {
		f.SetCellValue(quoteSheet, fmt.Sprintf("A%d", row), sanitizeExcelCell(line.Label))
		f.SetCellValue(quoteSheet, fmt.Sprintf("B%d", row), sanitizeExcelCell(line.Detail))
		f.SetCellValue(quoteSheet, fmt.Sprintf("C%d", row), round2(line.Amount))
		f.SetCellStyle(quoteSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), lineStyle)
		f.SetCellStyle(quoteSheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), amountStyle)
		row++
	}

	row++
	f.SetCellValue(quoteSheet, fmt.Sprintf("B%d", row), "Prix Total TTC")
	f.SetCellStyle(quoteSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), totalLabelStyle)
	f.SetCellValue(quoteSheet, fmt.Sprintf("C%d", row), round2(q.Breakdown.TotalPrice))
	f.SetCellStyle(quoteSheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), totalValueStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#D1D5DB", Style: 1},
		{Type: "right", Color: "#D1D5DB", Style: 1},
		{Type: "top", Color: "#D1D5DB", Style: 1},
		{Type: "bottom", Color: "#D1D5DB", Style: 1},
	}
}

// sanitizeExcelCell prefixes text that Excel would read as a formula.
// Zone labels come from the tariff tables and are not trusted.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
