// Package xlsx exporta el libro de pagos a Excel con excelize.
package xlsx

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Nomina-api/internal/application/payment"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

var _ payment.PaymentsExporter = (*PaymentsExporter)(nil)

const sheetName = "Pagos"

var paymentHeaders = []string{
	"ID", "Empleado", "Periodo inicio", "Periodo fin", "Fecha de pago",
	"Método", "Estado", "Monto", "Pagado en", "Observaciones",
}

// PaymentsExporter implementa payment.PaymentsExporter.
type PaymentsExporter struct {
	log *logger.Logger
}

// NewPaymentsExporter construye el exportador.
func NewPaymentsExporter(log *logger.Logger) *PaymentsExporter {
	if log == nil {
		log = logger.Nop()
	}
	return &PaymentsExporter{log: log.Named("xlsx")}
}

// ExportPayments una fila por pago y una fila final con el total de los no anulados.
func (e *PaymentsExporter) ExportPayments(_ context.Context, payments []*entity.Payment) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.log.Error().Err(err).Msg("cerrar libro xlsx")
		}
	}()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	row, err := writeHeader(f, sheetName, 0, paymentHeaders)
	if err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	row, err = writePaymentRows(f, sheetName, payments, row)
	if err != nil {
		return nil, fmt.Errorf("xlsx: filas de pagos: %w", err)
	}
	if err := writeTotal(f, sheetName, payments, row+1); err != nil {
		return nil, fmt.Errorf("xlsx: total: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writePaymentRows(f *excelize.File, sheet string, payments []*entity.Payment, row int) (int, error) {
	if len(payments) == 0 {
		return row, nil
	}
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(paymentHeaders), row+len(payments)); err != nil {
		return row, err
	}
	for _, p := range payments {
		row++
		values := []interface{}{
			p.ID,
			p.EmployeeName,
			formatDatePtr(p.PeriodStart),
			formatDatePtr(p.PeriodEnd),
			p.PaymentDate.Format("2006-01-02"),
			p.Method,
			p.Status,
			p.Amount.InexactFloat64(),
			formatTimePtr(p.PaidAt),
			p.Notes,
		}
		for i, v := range values {
			if err := writeColumn(f, sheet, i+1, row, v); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func writeTotal(f *excelize.File, sheet string, payments []*entity.Payment, row int) error {
	total := decimal.Zero
	for _, p := range payments {
		if !p.IsVoided() {
			total = total.Add(p.Amount)
		}
	}
	if err := writeColumn(f, sheet, 7, row, "Total (sin anulados)"); err != nil {
		return err
	}
	return writeColumn(f, sheet, 8, row, total.InexactFloat64())
}

// ── celdas ───────────────────────────────────────────────────────────────────

func writeColumn(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Family: "Calibri", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCE6F1"}},
	})
	if err != nil {
		return row, err
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return row, err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), row)
	if err != nil {
		return row, err
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return row, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return row, err
	}
	for i, h := range headers {
		if err := writeColumn(f, sheet, i+1, row, h); err != nil {
			return row, err
		}
	}
	return row, nil
}

func applyDataCellStyle(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo int) error {
	numFmt := "#,##0.00"
	style, err := f.NewStyle(&excelize.Style{
		Alignment:    &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Font:         &excelize.Font{Family: "Calibri", Size: 11},
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
