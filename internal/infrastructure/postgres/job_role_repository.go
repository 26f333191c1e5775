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

var _ repository.JobRoleRepository = (*JobRoleRepo)(nil)

// JobRoleRepo implementación de JobRoleRepository sobre la tabla cargos.
type JobRoleRepo struct {
	q Querier
}

// NewJobRoleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobRoleRepository(q Querier) *JobRoleRepo {
	return &JobRoleRepo{q: q}
}

const jobRoleSelect = `
	SELECT c.id, c.nombre, c.salario_base, c.departamento_id, COALESCE(d.nombre, ''), c.creado_en
	FROM cargos c
	LEFT JOIN departamentos d ON d.id = c.departamento_id`

func scanJobRole(row pgx.Row) (*entity.JobRole, error) {
	var j entity.JobRole
	if err := row.Scan(&j.ID, &j.Name, &j.BaseSalary, &j.DepartmentID, &j.DepartmentName, &j.CreatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

// Create persiste un nuevo cargo.
func (r *JobRoleRepo) Create(ctx context.Context, j *entity.JobRole) error {
	query := `
		INSERT INTO cargos (nombre, salario_base, departamento_id)
		VALUES ($1, $2, $3)
		RETURNING id, creado_en`
	if err := r.q.QueryRow(ctx, query, j.Name, j.BaseSalary, j.DepartmentID).Scan(&j.ID, &j.CreatedAt); err != nil {
		return mapJobRoleWriteError("insert cargo", err)
	}
	return nil
}

// GetByID obtiene un cargo por ID. (nil, nil) si no existe.
func (r *JobRoleRepo) GetByID(ctx context.Context, id int64) (*entity.JobRole, error) {
	j, err := scanJobRole(r.q.QueryRow(ctx, jobRoleSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cargo: %w", err)
	}
	return j, nil
}

// GetByName búsqueda exacta sin distinguir mayúsculas (el nombre es único).
func (r *JobRoleRepo) GetByName(ctx context.Context, name string) (*entity.JobRole, error) {
	j, err := scanJobRole(r.q.QueryRow(ctx, jobRoleSelect+` WHERE lower(c.nombre) = lower($1)`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cargo por nombre: %w", err)
	}
	return j, nil
}

// List todos los cargos con su departamento.
func (r *JobRoleRepo) List(ctx context.Context) ([]*entity.JobRole, error) {
	rows, err := r.q.Query(ctx, jobRoleSelect+` ORDER BY c.nombre`)
	if err != nil {
		return nil, fmt.Errorf("list cargos: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobRole
	for rows.Next() {
		j, err := scanJobRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cargo: %w", err)
		}
		list = append(list, j)
	}
	return list, rows.Err()
}

// Update actualiza nombre, salario sugerido y departamento.
func (r *JobRoleRepo) Update(ctx context.Context, j *entity.JobRole) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE cargos SET nombre = $2, salario_base = $3, departamento_id = $4 WHERE id = $1`,
		j.ID, j.Name, j.BaseSalary, j.DepartmentID)
	if err != nil {
		return mapJobRoleWriteError("update cargo", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobRoleNotFound
	}
	return nil
}

// Delete elimina un cargo. Si tiene empleados la FK lo impide.
func (r *JobRoleRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM cargos WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrJobRoleInUse
		}
		return fmt.Errorf("delete cargo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobRoleNotFound
	}
	return nil
}

// CountEmployees empleados asignados al cargo.
func (r *JobRoleRepo) CountEmployees(ctx context.Context, id int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM empleados WHERE cargo_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count empleados por cargo: %w", err)
	}
	return n, nil
}

func mapJobRoleWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrJobRoleExists
	case isForeignKeyViolation(err):
		return domain.ErrDepartmentNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ── Departamentos ────────────────────────────────────────────────────────────

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

// DepartmentRepo implementación de DepartmentRepository.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador.
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

func (r *DepartmentRepo) Create(ctx context.Context, d *entity.Department) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO departamentos (nombre, descripcion) VALUES ($1, $2) RETURNING id`,
		d.Name, nullString(d.Description)).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert departamento: %w", err)
	}
	return nil
}

func (r *DepartmentRepo) GetByID(ctx context.Context, id int64) (*entity.Department, error) {
	var d entity.Department
	var desc *string
	err := r.q.QueryRow(ctx, `SELECT id, nombre, descripcion FROM departamentos WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &desc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get departamento: %w", err)
	}
	d.Description = deref(desc)
	return &d, nil
}

func (r *DepartmentRepo) List(ctx context.Context) ([]*entity.Department, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, descripcion FROM departamentos ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list departamentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Department
	for rows.Next() {
		var d entity.Department
		var desc *string
		if err := rows.Scan(&d.ID, &d.Name, &desc); err != nil {
			return nil, fmt.Errorf("scan departamento: %w", err)
		}
		d.Description = deref(desc)
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *DepartmentRepo) Update(ctx context.Context, d *entity.Department) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE departamentos SET nombre = $2, descripcion = $3 WHERE id = $1`,
		d.ID, d.Name, nullString(d.Description))
	if err != nil {
		return fmt.Errorf("update departamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDepartmentNotFound
	}
	return nil
}

// Delete elimina el departamento; los cargos quedan sin departamento (ON DELETE SET NULL).
func (r *DepartmentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM departamentos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete departamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDepartmentNotFound
	}
	return nil
}
