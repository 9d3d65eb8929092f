package service

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	accentColor = &props.Color{Red: 59, Green: 130, Blue: 246}
	mutedColor  = &props.Color{Red: 107, Green: 114, Blue: 128}
)

// GenerateQuotePDF renders the quote as a one-page A4 PDF with maroto
func GenerateQuotePDF(q *Quote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, q)
	addQuoteTotal(m, q)
	addQuoteDetails(m, q)
	addQuoteFooter(m, q)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func addQuoteHeader(m core.Maroto, q *Quote) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(q.Title, props.Text{
					Size:  18,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: accentColor,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Réf : %s", q.Reference), props.Text{
					Size:  9,
					Align: align.Left,
					Color: mutedColor,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date : %s", q.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: mutedColor,
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

func addQuoteTotal(m core.Maroto, q *Quote) {
	totalCell := &props.Cell{BackgroundColor: &props.Color{Red: 239, Green: 246, Blue: 255}}

	m.AddRows(
		row.New(14).Add(
			col.New(6).Add(
				text.New("Prix Total TTC", props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Left,
					Top:   4,
					Left:  3,
					Color: accentColor,
				}),
			).WithStyle(totalCell),
			col.New(6).Add(
				text.New(q.Total(), props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Right,
					Top:   3,
					Right: 3,
				}),
			).WithStyle(totalCell),
		),
	)

	m.AddRows(row.New(6))
}

func addQuoteDetails(m core.Maroto, q *Quote) {
	m.AddRows(
		row.New(9).Add(
			col.New(12).Add(
				text.New("Détails du calcul", props.Text{
					Size:  11,
					Style: fontstyle.Bold,
				}),
			),
		),
	)

	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	detailStyle := props.Text{Size: 9, Align: align.Left}
	amountStyle := props.Text{Size: 9, Align: align.Right}

	m.AddRows(
		row.New(7).Add(
			col.New(3).Add(text.New("Type", labelStyle)),
			col.New(9).Add(text.New(q.Options, detailStyle)),
		),
	)

	for i, line := range q.Lines {
		var cellStyle *props.Cell
		if i%2 == 0 {
			cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 243, Green: 244, Blue: 246}}
		}

		colLabel := col.New(3).Add(text.New(line.Label, labelStyle))
		colDetail := col.New(6).Add(text.New(line.Detail, detailStyle))
		colAmount := col.New(3).Add(text.New(q.FormatAmount(line.Amount), amountStyle))
		if cellStyle != nil {
			colLabel = colLabel.WithStyle(cellStyle)
			colDetail = colDetail.WithStyle(cellStyle)
			colAmount = colAmount.WithStyle(cellStyle)
		}

		m.AddRows(row.New(7).Add(colLabel, colDetail, colAmount))
	}
}

func addQuoteFooter(m core.Maroto, q *Quote) {
	m.AddRows(row.New(8))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Prix en %s, %s incluse. Devis généré le %s.", q.Currency, q.TaxLabel, q.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: mutedColor,
					},
				),
			),
		),
	)
}
