package apptest

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// store apunta al estado confirmado (tx == nil) o a la copia de una transacción.
type store struct {
	db *MemDB
	tx *state
}

func (st store) do(fn func(s *state) error) error {
	if st.tx != nil {
		return fn(st.tx)
	}
	st.db.mu.Lock()
	defer st.db.mu.Unlock()
	return fn(st.db.committed)
}

func (st store) fail(op string) error {
	if st.tx != nil && st.db.FailOn == op {
		return ErrInjected
	}
	return nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// TxRunner implementa los runners transaccionales de los casos de uso.
type TxRunner struct {
	db *MemDB
}

// TxRunner devuelve el runner transaccional de la base.
func (db *MemDB) TxRunner() *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) run(fn func(st store) error) error {
	r.db.mu.Lock()
	work := r.db.committed.clone()
	r.db.mu.Unlock()

	if hook := r.db.OnBegin; hook != nil {
		r.db.OnBegin = nil
		hook(r.db)
	}

	if err := fn(store{db: r.db, tx: work}); err != nil {
		r.db.mu.Lock()
		r.db.Rollbacks++
		r.db.mu.Unlock()
		return err
	}
	r.db.mu.Lock()
	r.db.committed = work
	r.db.Commits++
	r.db.mu.Unlock()
	return nil
}

// RunLiquidation ver liquidation.TxRunner.
func (r *TxRunner) RunLiquidation(ctx context.Context, fn func(
	periodRepo repository.PayPeriodRepository,
	employeeRepo repository.EmployeeRepository,
	parameterRepo repository.PayrollParameterRepository,
	incidentRepo repository.IncidentRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.run(func(st store) error {
		return fn(&PeriodRepo{st}, &EmployeeRepo{st}, &ParamRepo{st}, &IncidentRepo{st}, &PaymentRepo{st})
	})
}

// RunPayments ver payment.TxRunner.
func (r *TxRunner) RunPayments(ctx context.Context, fn func(paymentRepo repository.PaymentRepository) error) error {
	return r.run(func(st store) error {
		return fn(&PaymentRepo{st})
	})
}

// Repos sobre el estado confirmado (equivalente al pool).
func (db *MemDB) Periods() *PeriodRepo         { return &PeriodRepo{store{db: db}} }
func (db *MemDB) Employees() *EmployeeRepo     { return &EmployeeRepo{store{db: db}} }
func (db *MemDB) Params() *ParamRepo           { return &ParamRepo{store{db: db}} }
func (db *MemDB) Incidents() *IncidentRepo     { return &IncidentRepo{store{db: db}} }
func (db *MemDB) PaymentsRepo() *PaymentRepo   { return &PaymentRepo{store{db: db}} }
func (db *MemDB) JobRoles() *JobRoleRepo       { return &JobRoleRepo{store{db: db}} }
func (db *MemDB) Departments() *DepartmentRepo { return &DepartmentRepo{store{db: db}} }
func (db *MemDB) Users() *UserRepo             { return &UserRepo{store{db: db}} }

// ── Periodos ─────────────────────────────────────────────────────────────────

var _ repository.PayPeriodRepository = (*PeriodRepo)(nil)

type PeriodRepo struct{ st store }

func (r *PeriodRepo) Create(_ context.Context, p *entity.PayPeriod) error {
	return r.st.do(func(s *state) error {
		p.ID = s.next()
		s.periods[p.ID] = *p
		return nil
	})
}

func (r *PeriodRepo) GetByID(_ context.Context, id int64) (*entity.PayPeriod, error) {
	var out *entity.PayPeriod
	err := r.st.do(func(s *state) error {
		if p, ok := s.periods[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *PeriodRepo) List(_ context.Context) ([]*entity.PayPeriod, error) {
	var out []*entity.PayPeriod
	err := r.st.do(func(s *state) error {
		for _, p := range s.periods {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, err
}

func (r *PeriodRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	return r.st.do(func(s *state) error {
		p, ok := s.periods[id]
		if !ok {
			return domain.ErrPeriodNotFound
		}
		p.Status = status
		s.periods[id] = p
		return nil
	})
}

// ── Empleados ────────────────────────────────────────────────────────────────

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

type EmployeeRepo struct{ st store }

func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	return r.st.do(func(s *state) error {
		for _, o := range s.employees {
			if o.Document == e.Document {
				return domain.ErrDocumentExists
			}
		}
		if _, ok := s.jobRoles[e.JobRoleID]; !ok {
			return domain.ErrJobRoleNotFound
		}
		e.ID = s.next()
		e.JobRoleName = s.jobRoles[e.JobRoleID].Name
		s.employees[e.ID] = *e
		return nil
	})
}

func (r *EmployeeRepo) GetByID(_ context.Context, id int64) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.st.do(func(s *state) error {
		if e, ok := s.employees[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *EmployeeRepo) FindByName(_ context.Context, name string) ([]*entity.Employee, error) {
	return r.filter(func(e entity.Employee) bool { return strings.EqualFold(e.Name, name) })
}

func (r *EmployeeRepo) GetByDocument(_ context.Context, document string) (*entity.Employee, error) {
	list, err := r.filter(func(e entity.Employee) bool { return e.Document == document })
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *EmployeeRepo) List(_ context.Context) ([]*entity.Employee, error) {
	return r.filter(func(entity.Employee) bool { return true })
}

func (r *EmployeeRepo) ListActive(_ context.Context) ([]*entity.Employee, error) {
	return r.filter(func(e entity.Employee) bool { return e.IsActive() })
}

func (r *EmployeeRepo) filter(keep func(entity.Employee) bool) ([]*entity.Employee, error) {
	var out []*entity.Employee
	err := r.st.do(func(s *state) error {
		for _, e := range s.employees {
			if keep(e) {
				e := e
				out = append(out, &e)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *EmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	return r.st.do(func(s *state) error {
		if _, ok := s.employees[e.ID]; !ok {
			return domain.ErrEmployeeNotFound
		}
		for _, o := range s.employees {
			if o.ID != e.ID && o.Document == e.Document {
				return domain.ErrDocumentExists
			}
		}
		e.JobRoleName = s.jobRoles[e.JobRoleID].Name
		s.employees[e.ID] = *e
		return nil
	})
}

func (r *EmployeeRepo) Delete(_ context.Context, id int64) error {
	return r.st.do(func(s *state) error {
		if _, ok := s.employees[id]; !ok {
			return domain.ErrEmployeeNotFound
		}
		delete(s.employees, id)
		for pid, p := range s.payments {
			if p.EmployeeID != nil && *p.EmployeeID == id {
				p.EmployeeID = nil
				s.payments[pid] = p
			}
		}
		return nil
	})
}

// ── Parámetros ───────────────────────────────────────────────────────────────

var _ repository.PayrollParameterRepository = (*ParamRepo)(nil)

type ParamRepo struct{ st store }

func (r *ParamRepo) ListAll(_ context.Context) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	err := r.st.do(func(s *state) error {
		for k, v := range s.params {
			out[k] = v
		}
		return nil
	})
	return out, err
}

func (r *ParamRepo) List(ctx context.Context) ([]*entity.PayrollParameter, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.PayrollParameter, 0, len(all))
	for k, v := range all {
		out = append(out, &entity.PayrollParameter{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ParamRepo) Upsert(_ context.Context, p *entity.PayrollParameter) error {
	return r.st.do(func(s *state) error {
		s.params[p.Name] = p.Value
		return nil
	})
}

// ── Novedades ────────────────────────────────────────────────────────────────

var _ repository.IncidentRepository = (*IncidentRepo)(nil)

type IncidentRepo struct{ st store }

func (r *IncidentRepo) Create(_ context.Context, i *entity.Incident) error {
	return r.st.do(func(s *state) error {
		e, ok := s.employees[i.EmployeeID]
		if !ok {
			return domain.ErrEmployeeNotFound
		}
		i.ID = s.next()
		i.EmployeeName = e.Name
		if i.CreatedAt.IsZero() {
			i.CreatedAt = time.Now()
		}
		s.incidents[i.ID] = *i
		return nil
	})
}

func (r *IncidentRepo) GetByID(_ context.Context, id int64) (*entity.Incident, error) {
	var out *entity.Incident
	err := r.st.do(func(s *state) error {
		if i, ok := s.incidents[id]; ok {
			out = &i
		}
		return nil
	})
	return out, err
}

func (r *IncidentRepo) List(_ context.Context, f repository.IncidentFilter) ([]*entity.Incident, error) {
	var out []*entity.Incident
	err := r.st.do(func(s *state) error {
		for _, i := range s.incidents {
			if f.EmployeeID != nil && i.EmployeeID != *f.EmployeeID {
				continue
			}
			if f.Status != "" && i.Status != f.Status {
				continue
			}
			if f.Type != "" && i.Type != f.Type {
				continue
			}
			if f.To != nil && i.StartDate.After(*f.To) {
				continue
			}
			if f.From != nil && i.EndDate != nil && i.EndDate.Before(*f.From) {
				continue
			}
			i := i
			out = append(out, &i)
		}
		return nil
	})
	sort.Slice(out, func(a, b int) bool { return out[a].ID > out[b].ID })
	return out, err
}

func (r *IncidentRepo) Update(_ context.Context, i *entity.Incident) error {
	return r.st.do(func(s *state) error {
		if _, ok := s.incidents[i.ID]; !ok {
			return domain.ErrIncidentNotFound
		}
		if _, ok := s.employees[i.EmployeeID]; !ok {
			return domain.ErrEmployeeNotFound
		}
		s.incidents[i.ID] = *i
		return nil
	})
}

func (r *IncidentRepo) Delete(_ context.Context, id int64) error {
	return r.st.do(func(s *state) error {
		if _, ok := s.incidents[id]; !ok {
			return domain.ErrIncidentNotFound
		}
		delete(s.incidents, id)
		return nil
	})
}

func (r *IncidentRepo) SumApprovedByType(_ context.Context, employeeID int64, start, end time.Time) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	err := r.st.do(func(s *state) error {
		for _, i := range s.incidents {
			if i.EmployeeID != employeeID || i.Status != entity.IncidentApproved || !i.Overlaps(start, end) {
				continue
			}
			out[i.Type] = out[i.Type].Add(i.Amount)
		}
		return nil
	})
	return out, err
}

// ── Pagos ────────────────────────────────────────────────────────────────────

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

type PaymentRepo struct{ st store }

func sameSlot(a, b entity.Payment) bool {
	return a.EmployeeID != nil && b.EmployeeID != nil && a.PeriodID != nil && b.PeriodID != nil &&
		*a.EmployeeID == *b.EmployeeID && *a.PeriodID == *b.PeriodID
}

// violatesActiveIndex emula ux_pagos_empleado_periodo_activo: también ve lo
// confirmado por otras transacciones después de tomar la copia.
func (r *PaymentRepo) violatesActiveIndex(s *state, p entity.Payment) bool {
	if p.Status == entity.PaymentVoided {
		return false
	}
	check := func(m map[int64]entity.Payment) bool {
		for _, o := range m {
			if o.ID != p.ID && o.Status != entity.PaymentVoided && sameSlot(o, p) {
				return true
			}
		}
		return false
	}
	if check(s.payments) {
		return true
	}
	if r.st.tx != nil {
		r.st.db.mu.Lock()
		defer r.st.db.mu.Unlock()
		return check(r.st.db.committed.payments)
	}
	return false
}

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	if err := r.st.fail("Create"); err != nil {
		return err
	}
	return r.st.do(func(s *state) error {
		if r.violatesActiveIndex(s, *p) {
			return &domain.DuplicatePaymentError{}
		}
		p.ID = s.next()
		now := time.Now()
		p.CreatedAt, p.UpdatedAt = now, now
		s.payments[p.ID] = *p
		return nil
	})
}

func (r *PaymentRepo) GetByID(_ context.Context, id int64) (*entity.Payment, error) {
	var out *entity.Payment
	err := r.st.do(func(s *state) error {
		if p, ok := s.payments[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *PaymentRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Payment, error) {
	return r.GetByID(ctx, id)
}

func (r *PaymentRepo) FindActiveForUpdate(_ context.Context, employeeID, periodID int64) (*entity.Payment, error) {
	var out *entity.Payment
	err := r.st.do(func(s *state) error {
		probe := entity.Payment{EmployeeID: &employeeID, PeriodID: &periodID}
		for _, p := range s.payments {
			if p.Status != entity.PaymentVoided && sameSlot(p, probe) {
				p := p
				out = &p
			}
		}
		return nil
	})
	return out, err
}

func (r *PaymentRepo) List(_ context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	var out []*entity.Payment
	err := r.st.do(func(s *state) error {
		for _, p := range s.payments {
			if f.PeriodID != nil && (p.PeriodID == nil || *p.PeriodID != *f.PeriodID) {
				continue
			}
			if f.EmployeeID != nil && (p.EmployeeID == nil || *p.EmployeeID != *f.EmployeeID) {
				continue
			}
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, err
}

func (r *PaymentRepo) Update(_ context.Context, p *entity.Payment) error {
	if err := r.st.fail("Update"); err != nil {
		return err
	}
	return r.st.do(func(s *state) error {
		if _, ok := s.payments[p.ID]; !ok {
			return domain.ErrPaymentNotFound
		}
		if r.violatesActiveIndex(s, *p) {
			return &domain.DuplicatePaymentError{}
		}
		p.UpdatedAt = time.Now()
		s.payments[p.ID] = *p
		return nil
	})
}

func (r *PaymentRepo) Delete(_ context.Context, id int64) error {
	return r.st.do(func(s *state) error {
		if _, ok := s.payments[id]; !ok {
			return domain.ErrPaymentNotFound
		}
		delete(s.payments, id)
		delete(s.details, id)
		return nil
	})
}

func (r *PaymentRepo) CountByEmployee(_ context.Context, employeeID int64) (int, error) {
	n := 0
	err := r.st.do(func(s *state) error {
		for _, p := range s.payments {
			if p.EmployeeID != nil && *p.EmployeeID == employeeID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *PaymentRepo) ReplaceDetails(_ context.Context, paymentID int64, details []*entity.PaymentDetail) error {
	return r.st.do(func(s *state) error {
		delete(s.details, paymentID)
		// El fallo inyectado ocurre con el encabezado escrito y los detalles ya borrados.
		if err := r.st.fail("ReplaceDetails"); err != nil {
			return err
		}
		rows := make([]entity.PaymentDetail, 0, len(details))
		for _, d := range details {
			d.ID = s.next()
			d.PaymentID = paymentID
			rows = append(rows, *d)
		}
		s.details[paymentID] = rows
		return nil
	})
}

func (r *PaymentRepo) GetDetails(_ context.Context, paymentID int64) ([]*entity.PaymentDetail, error) {
	var out []*entity.PaymentDetail
	err := r.st.do(func(s *state) error {
		for _, d := range s.details[paymentID] {
			d := d
			out = append(out, &d)
		}
		return nil
	})
	return out, err
}

// ── Cargos y departamentos ───────────────────────────────────────────────────

var _ repository.JobRoleRepository = (*JobRoleRepo)(nil)

type JobRoleRepo struct{ st store }

func (r *JobRoleRepo) Create(_ context.Context, j *entity.JobRole) error {
	return r.st.do(func(s *state) error {
		for _, o := range s.jobRoles {
			if strings.EqualFold(o.Name, j.Name) {
				return domain.ErrJobRoleExists
			}
		}
		j.ID = s.next()
		s.jobRoles[j.ID] = *j
		return nil
	})
}

func (r *JobRoleRepo) GetByID(_ context.Context, id int64) (*entity.JobRole, error) {
	var out *entity.JobRole
	err := r.st.do(func(s *state) error {
		if j, ok := s.jobRoles[id]; ok {
			out = &j
		}
		return nil
	})
	return out, err
}

func (r *JobRoleRepo) GetByName(_ context.Context, name string) (*entity.JobRole, error) {
	var out *entity.JobRole
	err := r.st.do(func(s *state) error {
		for _, j := range s.jobRoles {
			if strings.EqualFold(j.Name, name) {
				j := j
				out = &j
			}
		}
		return nil
	})
	return out, err
}

func (r *JobRoleRepo) List(_ context.Context) ([]*entity.JobRole, error) {
	var out []*entity.JobRole
	err := r.st.do(func(s *state) error {
		for _, j := range s.jobRoles {
			j := j
			out = append(out, &j)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *JobRoleRepo) Update(_ context.Context, j *entity.JobRole) error {
	return r.st.do(func(s *state) error {
		if _, ok := s.jobRoles[j.ID]; !ok {
			return domain.ErrJobRoleNotFound
		}
		for _, o := range s.jobRoles {
			if o.ID != j.ID && strings.EqualFold(o.Name, j.Name) {
				return domain.ErrJobRoleExists
			}
		}
		s.jobRoles[j.ID] = *j
		return nil
	})
}

func (r *JobRoleRepo) Delete(_ context.Context, id int64) error {
	return r.st.do(func(s *state) error {
		if _, ok := s.jobRoles[id]; !ok {
			return domain.ErrJobRoleNotFound
		}
		for _, e := range s.employees {
			if e.JobRoleID == id {
				return domain.ErrJobRoleInUse
			}
		}
		delete(s.jobRoles, id)
		return nil
	})
}

func (r *JobRoleRepo) CountEmployees(_ context.Context, id int64) (int, error) {
	n := 0
	err := r.st.do(func(s *state) error {
		for _, e := range s.employees {
			if e.JobRoleID == id {
				n++
			}
		}
		return nil
	})
	return n, err
}

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

type DepartmentRepo struct{ st store }

func (r *DepartmentRepo) Create(_ context.Context, d *entity.Department) error {
	return r.st.do(func(s *state) error {
		d.ID = s.next()
		s.departments[d.ID] = *d
		return nil
	})
}

func (r *DepartmentRepo) GetByID(_ context.Context, id int64) (*entity.Department, error) {
	var out *entity.Department
	err := r.st.do(func(s *state) error {
		if d, ok := s.departments[id]; ok {
			out = &d
		}
		return nil
	})
	return out, err
}

func (r *DepartmentRepo) List(_ context.Context) ([]*entity.Department, error) {
	var out []*entity.Department
	err := r.st.do(func(s *state) error {
		for _, d := range s.departments {
			d := d
			out = append(out, &d)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *DepartmentRepo) Update(_ context.Context, d *entity.Department) error {
	return r.st.do(func(s *state) error {
		if _, ok := s.departments[d.ID]; !ok {
			return domain.ErrDepartmentNotFound
		}
		s.departments[d.ID] = *d
		return nil
	})
}

func (r *DepartmentRepo) Delete(_ context.Context, id int64) error {
	return r.st.do(func(s *state) error {
		if _, ok := s.departments[id]; !ok {
			return domain.ErrDepartmentNotFound
		}
		delete(s.departments, id)
		for jid, j := range s.jobRoles {
			if j.DepartmentID != nil && *j.DepartmentID == id {
				j.DepartmentID = nil
				s.jobRoles[jid] = j
			}
		}
		return nil
	})
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct{ st store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.st.do(func(s *state) error {
		for _, o := range s.users {
			if strings.EqualFold(o.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		u.ID = s.next()
		s.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.st.do(func(s *state) error {
		if u, ok := s.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.st.do(func(s *state) error {
		for _, u := range s.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.st.do(func(s *state) error {
		for _, u := range s.users {
			u := u
			out = append(out, &u)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.st.do(func(s *state) error {
		if _, ok := s.users[u.ID]; !ok {
			return domain.ErrUserNotFound
		}
		for _, o := range s.users {
			if o.ID != u.ID && strings.EqualFold(o.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		s.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) Delete(_ context.Context, id int64) error {
	return r.st.do(func(s *state) error {
		if _, ok := s.users[id]; !ok {
			return domain.ErrUserNotFound
		}
		delete(s.users, id)
		return nil
	})
}
