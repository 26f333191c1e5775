package dto

import "github.com/shopspring/decimal"

// EmployeeRequest body para POST/PUT /api/empleados.
// El cargo se indica por cargo_id o por nombre exacto (cargo); no se crean cargos implícitamente.
type EmployeeRequest struct {
	Name            string          `json:"nombre_empleado" validate:"required,max=150"`
	Document        string          `json:"documento" validate:"required,max=50"`
	Email           string          `json:"email" validate:"omitempty,email,max=120"`
	Phone           string          `json:"telefono" validate:"omitempty,max=20"`
	Address         string          `json:"direccion" validate:"omitempty,max=200"`
	HireDate        string          `json:"fecha_ingreso" validate:"required,datetime=2006-01-02"`
	TerminationDate *string         `json:"fecha_retiro" validate:"omitempty,datetime=2006-01-02"`
	Status          string          `json:"estado" validate:"omitempty,oneof=activo inactivo"`
	JobRoleID       *int64          `json:"cargo_id" validate:"omitempty,gt=0"`
	JobRoleName     string          `json:"cargo" validate:"required_without=JobRoleID,max=100"`
	BaseSalary      decimal.Decimal `json:"salario_base"`
	HealthInsurer   string          `json:"eps" validate:"omitempty,max=100"`
	PensionFund     string          `json:"pension" validate:"omitempty,max=100"`
	RiskInsurer     string          `json:"arl" validate:"omitempty,max=100"`
}

// EmployeeResponse empleado con el nombre del cargo.
type EmployeeResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"nombre_empleado"`
	Document        string          `json:"documento"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"telefono,omitempty"`
	Address         string          `json:"direccion,omitempty"`
	HireDate        string          `json:"fecha_ingreso"`
	TerminationDate *string         `json:"fecha_retiro"`
	Status          string          `json:"estado"`
	JobRoleID       int64           `json:"cargo_id"`
	JobRoleName     string          `json:"cargo"`
	BaseSalary      decimal.Decimal `json:"salario_base"`
	HealthInsurer   string          `json:"eps,omitempty"`
	PensionFund     string          `json:"pension,omitempty"`
	RiskInsurer     string          `json:"arl,omitempty"`
}

// JobRoleRequest body para POST/PUT /api/cargos.
type JobRoleRequest struct {
	Name         string          `json:"nombre" validate:"required,max=100"`
	BaseSalary   decimal.Decimal `json:"salario_base"`
	DepartmentID *int64          `json:"departamento_id" validate:"omitempty,gt=0"`
}

// JobRoleResponse cargo con su departamento.
type JobRoleResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"nombre"`
	BaseSalary     decimal.Decimal `json:"salario_base"`
	DepartmentID   *int64          `json:"departamento_id"`
	DepartmentName string          `json:"departamento,omitempty"`
}

// DepartmentRequest body para POST/PUT /api/departamentos.
type DepartmentRequest struct {
	Name        string `json:"nombre" validate:"required,max=100"`
	Description string `json:"descripcion" validate:"omitempty,max=200"`
}

// DepartmentResponse departamento.
type DepartmentResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}
