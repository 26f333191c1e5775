package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (pagos + pago_detalle).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// El nombre vigente del empleado tiene prioridad; si fue eliminado queda el snapshot.
const paymentSelect = `
	SELECT p.id, p.empleado_id, COALESCE(e.nombre_empleado, p.nombre_empleado, ''),
		p.periodo_id, pn.fecha_inicio, pn.fecha_fin,
		p.fecha_pago, p.monto, p.metodo_pago, p.estado, p.observaciones, p.pagado_en,
		p.creado_en, p.actualizado_en
	FROM pagos p
	LEFT JOIN empleados e ON e.id = p.empleado_id
	LEFT JOIN periodos_nomina pn ON pn.id = p.periodo_id`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var notes *string
	err := row.Scan(&p.ID, &p.EmployeeID, &p.EmployeeName,
		&p.PeriodID, &p.PeriodStart, &p.PeriodEnd,
		&p.PaymentDate, &p.Amount, &p.Method, &p.Status, &notes, &p.PaidAt,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Notes = deref(notes)
	return &p, nil
}

// Create inserta el encabezado del pago. Si ya hay un pago no anulado para
// (empleado, periodo) devuelve *domain.DuplicatePaymentError.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO pagos (empleado_id, nombre_empleado, periodo_id, fecha_pago, monto,
			metodo_pago, estado, observaciones, pagado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, creado_en, actualizado_en`
	err := r.q.QueryRow(ctx, query,
		p.EmployeeID, nullString(p.EmployeeName), p.PeriodID, p.PaymentDate, p.Amount,
		p.Method, p.Status, nullString(p.Notes), p.PaidAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapPaymentWriteError("insert pago", err)
	}
	return nil
}

// GetByID obtiene un pago. (nil, nil) si no existe.
func (r *PaymentRepo) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, paymentSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pago: %w", err)
	}
	return p, nil
}

// GetByIDForUpdate obtiene el pago bloqueando la fila (transiciones de estado).
func (r *PaymentRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, paymentSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pago for update: %w", err)
	}
	return p, nil
}

// FindActiveForUpdate pago no anulado de (empleado, periodo), bloqueando la fila
// hasta el fin de la transacción. (nil, nil) si no existe.
func (r *PaymentRepo) FindActiveForUpdate(ctx context.Context, employeeID, periodID int64) (*entity.Payment, error) {
	query := paymentSelect + `
		WHERE p.empleado_id = $1 AND p.periodo_id = $2 AND p.estado <> $3
		FOR UPDATE OF p`
	p, err := scanPayment(r.q.QueryRow(ctx, query, employeeID, periodID, entity.PaymentVoided))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar pago activo: %w", err)
	}
	return p, nil
}

// List pagos del más reciente al más antiguo, opcionalmente por periodo o empleado.
func (r *PaymentRepo) List(ctx context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	var where []string
	var args []any
	if f.PeriodID != nil {
		args = append(args, *f.PeriodID)
		where = append(where, fmt.Sprintf("p.periodo_id = $%d", len(args)))
	}
	if f.EmployeeID != nil {
		args = append(args, *f.EmployeeID)
		where = append(where, fmt.Sprintf("p.empleado_id = $%d", len(args)))
	}
	query := paymentSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.fecha_pago DESC, p.id DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update reemplaza los campos del encabezado del pago.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	query := `
		UPDATE pagos SET empleado_id = $2, nombre_empleado = $3, periodo_id = $4, fecha_pago = $5,
			monto = $6, metodo_pago = $7, estado = $8, observaciones = $9, pagado_en = $10,
			actualizado_en = now()
		WHERE id = $1
		RETURNING actualizado_en`
	err := r.q.QueryRow(ctx, query,
		p.ID, p.EmployeeID, nullString(p.EmployeeName), p.PeriodID, p.PaymentDate,
		p.Amount, p.Method, p.Status, nullString(p.Notes), p.PaidAt,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPaymentNotFound
		}
		return mapPaymentWriteError("update pago", err)
	}
	return nil
}

// Delete elimina el pago y sus detalles (ON DELETE CASCADE).
func (r *PaymentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM pagos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pago: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// CountByEmployee pagos (de cualquier estado) que referencian al empleado.
func (r *PaymentRepo) CountByEmployee(ctx context.Context, employeeID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM pagos WHERE empleado_id = $1`, employeeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pagos por empleado: %w", err)
	}
	return n, nil
}

// ReplaceDetails borra los detalles del pago e inserta los nuevos.
// Debe ejecutarse dentro de la misma transacción que el encabezado.
func (r *PaymentRepo) ReplaceDetails(ctx context.Context, paymentID int64, details []*entity.PaymentDetail) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM pago_detalle WHERE pago_id = $1`, paymentID); err != nil {
		return fmt.Errorf("delete detalles: %w", err)
	}
	query := `
		INSERT INTO pago_detalle (pago_id, concepto, valor, tipo)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	for _, d := range details {
		d.PaymentID = paymentID
		if err := r.q.QueryRow(ctx, query, paymentID, d.Concept, d.Value, d.Kind).Scan(&d.ID); err != nil {
			return fmt.Errorf("insert detalle %q: %w", d.Concept, err)
		}
	}
	return nil
}

// GetDetails detalles del pago en orden de inserción.
func (r *PaymentRepo) GetDetails(ctx context.Context, paymentID int64) ([]*entity.PaymentDetail, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, pago_id, concepto, valor, tipo FROM pago_detalle WHERE pago_id = $1 ORDER BY id`, paymentID)
	if err != nil {
		return nil, fmt.Errorf("list detalles: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentDetail
	for rows.Next() {
		var d entity.PaymentDetail
		if err := rows.Scan(&d.ID, &d.PaymentID, &d.Concept, &d.Value, &d.Kind); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func mapPaymentWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err) && violatedConstraint(err) == constraintActivePayment:
		return &domain.DuplicatePaymentError{}
	case isForeignKeyViolation(err) && violatedConstraint(err) == "pagos_periodo_id_fkey":
		return domain.ErrPeriodNotFound
	case isForeignKeyViolation(err):
		return domain.ErrEmployeeNotFound
	case isOutOfRange(err):
		return domain.Invalid("monto", "fuera de rango")
	}
	return fmt.Errorf("%s: %w", op, err)
}
