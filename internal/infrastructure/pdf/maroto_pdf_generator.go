// Package pdf implementa la generación del comprobante de conversión de
// inventario (consumo de insumos → producto terminado).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comprobante + N° Conversión + Fecha + Estado        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA ENTRADAS: Código | Insumo | Cant | C.Unit | Total     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA SALIDAS:  Variante | Cant | P.Unit | Valor            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Costo de insumos / Valor producido                 │
//	│  FOOTER: creado por / aprobado por                           │
//	└─────────────────────────────────────────────────────────────┘
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

	appconversion "github.com/tu-usuario/insumos-api/internal/application/conversion"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appconversion.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa conversion.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateConversionPDF genera el comprobante y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateConversionPDF(
	_ context.Context,
	conversion *entity.Conversion,
	inputs []*entity.ConversionInputItem,
	outputs []*entity.ConversionOutputItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Conversión "+conversion.ConversionNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(conversion))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Tabla de entradas (insumos consumidos)
	m.AddRows(sectionTitleRow("INSUMOS CONSUMIDOS"))
	m.AddRows(inputsHeaderRow())
	for _, r := range inputRows(inputs) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(2))

	// Tabla de salidas (producto terminado)
	m.AddRows(sectionTitleRow("PRODUCTO TERMINADO"))
	m.AddRows(outputsHeaderRow())
	for _, r := range outputRows(outputs) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(conversion))

	// Footer de auditoría
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(auditFooterRow(conversion))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + número (izq) y fecha + estado (der).
func headerRow(c *entity.Conversion) core.Row {
	fecha := c.ConversionDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE CONVERSIÓN", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(c.ConversionNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Estado: "+c.Status, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
			text.New("Tipo: "+c.ConversionType, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 1, Left: 1, Right: 1,
	}))
}

func inputsHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("Código", 2, align.Left),
		headerCell("Insumo", 4, align.Left),
		headerCell("Cant.", 2, align.Right),
		headerCell("C. Unit.", 2, align.Right),
		headerCell("Costo Total", 2, align.Right),
	)
}

// inputRows: una fila por línea de consumo.
func inputRows(items []*entity.ConversionInputItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(it.InputCode, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(4).Add(text.New(it.InputName, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(it.Quantity.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("$"+formatMoney(it.UnitCost.StringFixed(0)), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("$"+formatMoney(it.TotalCost.StringFixed(0)), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

func outputsHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("Variante", 6, align.Left),
		headerCell("Cant.", 2, align.Right),
		headerCell("P. Unit.", 2, align.Right),
		headerCell("Valor", 2, align.Right),
	)
}

// outputRows: una fila por línea de producción.
func outputRows(items []*entity.ConversionOutputItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(it.VariantName, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(it.Quantity.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("$"+formatMoney(it.UnitPrice.StringFixed(0)), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("$"+formatMoney(it.TotalValue.StringFixed(0)), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(c *entity.Conversion) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(18).Add(
		col.New(4),
		col.New(4).Add(
			label("Costo de insumos:"),
			label("Valor producido:"),
		),
		col.New(4).Add(
			grandValue("$"+formatMoney(c.TotalInputCost.StringFixed(0))),
			grandValue("$"+formatMoney(c.TotalOutputCost.StringFixed(0))),
		),
	)
}

// auditFooterRow: quién creó y quién aprobó.
func auditFooterRow(c *entity.Conversion) core.Row {
	aprobado := "—"
	if c.ApprovedAt != nil {
		aprobado = fmt.Sprintf("%s el %s", c.ApprovedByName, c.ApprovedAt.Format("02/01/2006 15:04"))
	}
	return row.New(12).Add(
		col.New(6).Add(
			text.New("Creado por: "+c.CreatedByName, props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("Aprobado por: "+aprobado, props.Text{
				Size: 8, Top: 2, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
