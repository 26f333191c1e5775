// Package pdf genera el desprendible de pago de nómina.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa              │  Desprendible N° + Fecha     │
//	│  EMPLEADO: Nombre / Documento / Cargo / Periodo              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Devengado | Deducción                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Devengos / Deducciones / NETO A PAGAR              │
//	│  FOOTER: Estado + método + observaciones                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/application/payment"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

var _ payment.PayslipGenerator = (*MarotoPayslipGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPayslipGenerator implementa payment.PayslipGenerator usando Maroto v2.
type MarotoPayslipGenerator struct {
	companyName string
}

// NewMarotoPayslipGenerator construye el generador con el nombre que encabeza el documento.
func NewMarotoPayslipGenerator(companyName string) *MarotoPayslipGenerator {
	return &MarotoPayslipGenerator{companyName: companyName}
}

// GeneratePayslipPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPayslipGenerator) GeneratePayslipPDF(_ context.Context, slip payment.Payslip) ([]byte, error) {
	if slip.Payment == nil {
		return nil, fmt.Errorf("pdf: desprendible sin pago")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Desprendible de pago", true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.companyName, slip.Payment))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(slip))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(detailRows(slip.Details)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(slip))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(slip.Payment)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, p *entity.Payment) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "Nómina"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de pago de nómina", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("DESPRENDIBLE DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", p.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha de pago: "+p.PaymentDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func employeeRow(slip payment.Payslip) core.Row {
	p := slip.Payment
	document, jobRole := "-", "-"
	if e := slip.Employee; e != nil {
		document = e.Document
		jobRole = nonEmpty(e.JobRoleName, "-")
	}
	period := "-"
	if p.PeriodStart != nil && p.PeriodEnd != nil {
		period = p.PeriodStart.Format("02/01/2006") + " a " + p.PeriodEnd.Format("02/01/2006")
	}

	return row.New(16).Add(
		col.New(12).Add(
			text.New("EMPLEADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(p.EmployeeName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Documento: %s   |   Cargo: %s   |   Periodo: %s", document, jobRole, period),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 6, align.Left),
		h("Devengado", 3, align.Right),
		h("Deducción", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func detailRows(details []*entity.PaymentDetail) []core.Row {
	rows := make([]core.Row, 0, len(details))
	for _, d := range details {
		earning, deduction := "", ""
		if d.Kind == entity.DetailDeduction {
			deduction = "$" + formatMoney(d.Value)
		} else {
			earning = "$" + formatMoney(d.Value)
		}
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(d.Concept, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(earning, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(deduction, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(slip payment.Payslip) core.Row {
	earnings, deductions := decimal.Zero, decimal.Zero
	for _, d := range slip.Details {
		if d.Kind == entity.DetailDeduction {
			deductions = deductions.Add(d.Value)
		} else {
			earnings = earnings.Add(d.Value)
		}
	}

	label := func(s string, top float64, grand bool) core.Component {
		p := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}
		if grand {
			p.Size, p.Color = 10, colorPrimary
		}
		return text.New(s, p)
	}
	value := func(d decimal.Decimal, top float64, grand bool) core.Component {
		p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}
		if grand {
			p.Style, p.Size, p.Color = fontstyle.Bold, 10, colorPrimary
		}
		return text.New("$"+formatMoney(d), p)
	}

	return row.New(20).Add(
		col.New(5),
		col.New(4).Add(
			label("Total devengado:", 0, false),
			label("Total deducciones:", 5, false),
			label("NETO A PAGAR:", 10, true),
		),
		col.New(3).Add(
			value(earnings, 0, false),
			value(deductions, 5, false),
			value(slip.Payment.Amount, 10, true),
		),
	)
}

func footerRows(p *entity.Payment) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Estado: %s   |   Método: %s", strings.ToUpper(p.Status), p.Method),
				props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
		)),
	}
	if p.Notes != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Observaciones: "+p.Notes, props.Text{Size: 7, Color: colorGray, Top: 1}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney separa miles con punto y decimales con coma.
// Ej: 3477000 → "3.477.000,00"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}
