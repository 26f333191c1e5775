package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación de EmployeeRepository (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeColumns = `
	e.id, e.nombre_empleado, e.documento, e.email, e.telefono, e.direccion,
	e.fecha_ingreso, e.fecha_retiro, e.estado, e.cargo_id, COALESCE(c.nombre, ''),
	e.salario_base, e.eps, e.pension, e.arl, e.creado_en, e.actualizado_en`

const employeeFrom = `
	FROM empleados e
	LEFT JOIN cargos c ON c.id = e.cargo_id`

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	var email, phone, address, eps, pension, arl *string
	err := row.Scan(
		&e.ID, &e.Name, &e.Document, &email, &phone, &address,
		&e.HireDate, &e.TerminationDate, &e.Status, &e.JobRoleID, &e.JobRoleName,
		&e.BaseSalary, &eps, &pension, &arl, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Email, e.Phone, e.Address = deref(email), deref(phone), deref(address)
	e.HealthInsurer, e.PensionFund, e.RiskInsurer = deref(eps), deref(pension), deref(arl)
	return &e, nil
}

// Create persiste un nuevo empleado y completa ID y timestamps.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO empleados (nombre_empleado, documento, email, telefono, direccion,
			fecha_ingreso, fecha_retiro, estado, cargo_id, salario_base, eps, pension, arl)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, creado_en, actualizado_en`
	err := r.q.QueryRow(ctx, query,
		e.Name, e.Document, nullString(e.Email), nullString(e.Phone), nullString(e.Address),
		e.HireDate, e.TerminationDate, e.Status, e.JobRoleID, e.BaseSalary,
		nullString(e.HealthInsurer), nullString(e.PensionFund), nullString(e.RiskInsurer),
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return mapEmployeeWriteError("insert empleado", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID. (nil, nil) si no existe.
func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, `SELECT `+employeeColumns+employeeFrom+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empleado: %w", err)
	}
	return e, nil
}

// FindByName coincidencia exacta sin distinguir mayúsculas. Puede devolver varios (homónimos).
func (r *EmployeeRepo) FindByName(ctx context.Context, name string) ([]*entity.Employee, error) {
	return r.list(ctx, "find empleado por nombre",
		`SELECT `+employeeColumns+employeeFrom+` WHERE lower(e.nombre_empleado) = lower($1) ORDER BY e.id`, name)
}

// GetByDocument obtiene un empleado por documento. (nil, nil) si no existe.
func (r *EmployeeRepo) GetByDocument(ctx context.Context, document string) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, `SELECT `+employeeColumns+employeeFrom+` WHERE e.documento = $1`, document))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empleado por documento: %w", err)
	}
	return e, nil
}

// List todos los empleados con el nombre del cargo.
func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.Employee, error) {
	return r.list(ctx, "list empleados", `SELECT `+employeeColumns+employeeFrom+` ORDER BY e.nombre_empleado, e.id`)
}

// ListActive empleados activos (liquidación masiva).
func (r *EmployeeRepo) ListActive(ctx context.Context) ([]*entity.Employee, error) {
	return r.list(ctx, "list empleados activos",
		`SELECT `+employeeColumns+employeeFrom+` WHERE e.estado = $1 ORDER BY e.id`, entity.EmployeeActive)
}

func (r *EmployeeRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan empleado: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Update actualiza los datos del empleado.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	query := `
		UPDATE empleados SET nombre_empleado = $2, documento = $3, email = $4, telefono = $5,
			direccion = $6, fecha_ingreso = $7, fecha_retiro = $8, estado = $9, cargo_id = $10,
			salario_base = $11, eps = $12, pension = $13, arl = $14, actualizado_en = now()
		WHERE id = $1
		RETURNING actualizado_en`
	err := r.q.QueryRow(ctx, query,
		e.ID, e.Name, e.Document, nullString(e.Email), nullString(e.Phone), nullString(e.Address),
		e.HireDate, e.TerminationDate, e.Status, e.JobRoleID, e.BaseSalary,
		nullString(e.HealthInsurer), nullString(e.PensionFund), nullString(e.RiskInsurer),
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEmployeeNotFound
		}
		return mapEmployeeWriteError("update empleado", err)
	}
	return nil
}

// Delete elimina un empleado por ID.
func (r *EmployeeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM empleados WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete empleado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func mapEmployeeWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err) && violatedConstraint(err) == "empleados_email_key":
		return domain.ErrEmailAlreadyExists
	case isUniqueViolation(err):
		return domain.ErrDocumentExists
	case isForeignKeyViolation(err):
		return domain.ErrJobRoleNotFound
	case isOutOfRange(err):
		return domain.Invalid("salario_base", "fuera de rango")
	}
	return fmt.Errorf("%s: %w", op, err)
}
