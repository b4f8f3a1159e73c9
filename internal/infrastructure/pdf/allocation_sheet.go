// Package pdf implementa la hoja imprimible de asignación de una orden:
// cabecera con orden y cliente, tabla de líneas con solicitado vs asignado,
// totales y pie con la versión del algoritmo.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// AllocationSheetGenerator genera la hoja de asignación usando Maroto v2.
type AllocationSheetGenerator struct{}

// NewAllocationSheetGenerator construye el generador.
func NewAllocationSheetGenerator() *AllocationSheetGenerator { return &AllocationSheetGenerator{} }

// GenerateAllocationSheet genera el PDF de una orden y devuelve sus bytes.
func (g *AllocationSheetGenerator) GenerateAllocationSheet(
	_ context.Context,
	order *entity.Order,
	customer *entity.Customer,
	rows []repository.AllocationHistoryRow,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de Asignación", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(rows) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: cliente (izq) y orden + fecha (der).
func headerRow(order *entity.Order, customer *entity.Customer) core.Row {
	fecha := order.OrderDate.Format("02/01/2006")
	name := "—"
	if customer != nil {
		name = customer.Name
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+order.Status, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("HOJA DE ASIGNACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Orden "+order.ID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Solicitado", 2, align.Right),
		h("Asignado", 2, align.Right),
		h("%", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea asignada.
func tableDetailRows(rows []repository.AllocationHistoryRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		var pct float64
		if r.RequestedQuantity > 0 {
			pct = r.AllocatedQuantity / r.RequestedQuantity * 100
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				r.ProductCode,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				r.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%.2f %s", r.RequestedQuantity, r.Unit),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%.2f %s", r.AllocatedQuantity, r.Unit),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%.1f%%", pct),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: totales solicitado vs asignado.
func totalsRow(rows []repository.AllocationHistoryRow) core.Row {
	var requested, allocated float64
	for _, r := range rows {
		requested += r.RequestedQuantity
		allocated += r.AllocatedQuantity
	}
	var pct float64
	if requested > 0 {
		pct = allocated / requested * 100
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Total solicitado:"),
			label("Total asignado:"),
			label("Cobertura:"),
		),
		col.New(4).Add(
			value(fmt.Sprintf("%.2f", requested)),
			value(fmt.Sprintf("%.2f", allocated)),
			value(fmt.Sprintf("%.1f%%", pct)),
		),
	)
}

// footerRow: versión del algoritmo y fecha de la última corrida.
func footerRow(rows []repository.AllocationHistoryRow) core.Row {
	version := entity.AlgorithmVersion
	fecha := "—"
	if len(rows) > 0 {
		version = rows[0].AlgorithmVersion
		fecha = rows[0].AllocationDate.Format("02/01/2006 15:04")
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Algoritmo %s   |   Última corrida: %s", version, fecha), props.Text{
				Size: 7, Color: colorGray, Top: 2,
			}),
		),
	)
}
