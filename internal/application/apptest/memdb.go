// Package apptest implementa los puertos de repositorio en memoria para tests
// de casos de uso. Las escrituras dentro de TxRunner solo se publican al
// confirmar; un error (o un fallo inyectado) descarta todo lo escrito.
package apptest

import (
	"errors"
	"sync"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ErrInjected fallo simulado (caída a mitad de la escritura).
var ErrInjected = errors.New("apptest: fallo inyectado")

type state struct {
	periods     map[int64]entity.PayPeriod
	employees   map[int64]entity.Employee
	jobRoles    map[int64]entity.JobRole
	departments map[int64]entity.Department
	params      map[string]decimal.Decimal
	incidents   map[int64]entity.Incident
	payments    map[int64]entity.Payment
	details     map[int64][]entity.PaymentDetail
	users       map[int64]entity.User
	seq         int64
}

func newState() *state {
	return &state{
		periods:     map[int64]entity.PayPeriod{},
		employees:   map[int64]entity.Employee{},
		jobRoles:    map[int64]entity.JobRole{},
		departments: map[int64]entity.Department{},
		params:      map[string]decimal.Decimal{},
		incidents:   map[int64]entity.Incident{},
		payments:    map[int64]entity.Payment{},
		details:     map[int64][]entity.PaymentDetail{},
		users:       map[int64]entity.User{},
	}
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

func (s *state) clone() *state {
	c := newState()
	c.seq = s.seq
	for k, v := range s.periods {
		c.periods[k] = v
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.jobRoles {
		c.jobRoles[k] = v
	}
	for k, v := range s.departments {
		c.departments[k] = v
	}
	for k, v := range s.params {
		c.params[k] = v
	}
	for k, v := range s.incidents {
		c.incidents[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.details {
		c.details[k] = append([]entity.PaymentDetail(nil), v...)
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// MemDB base de datos en memoria. Los repos "de pool" leen y escriben el
// estado confirmado; los de TxRunner trabajan sobre una copia.
type MemDB struct {
	mu        sync.Mutex
	committed *state

	// FailOn nombre de la operación ("ReplaceDetails", "Create", "Update")
	// que debe fallar con ErrInjected dentro de una transacción.
	FailOn string
	// OnBegin se ejecuta tras tomar la copia de trabajo; permite simular
	// una transacción concurrente que confirma antes que la actual.
	OnBegin func(db *MemDB)

	Commits   int
	Rollbacks int
}

// NewMemDB base vacía.
func NewMemDB() *MemDB {
	return &MemDB{committed: newState()}
}

// ── Siembra ───────────────────────────────────────────────────────────────────

// AddPeriod inserta un periodo confirmado y devuelve su ID.
func (db *MemDB) AddPeriod(p entity.PayPeriod) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	p.ID = db.committed.next()
	if p.Status == "" {
		p.Status = entity.PeriodOpen
	}
	db.committed.periods[p.ID] = p
	return p.ID
}

// AddJobRole inserta un cargo confirmado.
func (db *MemDB) AddJobRole(j entity.JobRole) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	j.ID = db.committed.next()
	db.committed.jobRoles[j.ID] = j
	return j.ID
}

// AddEmployee inserta un empleado confirmado (estado derivado de fecha_retiro).
func (db *MemDB) AddEmployee(e entity.Employee) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	e.ID = db.committed.next()
	e.DeriveStatus()
	db.committed.employees[e.ID] = e
	return e.ID
}

// AddIncident inserta una novedad confirmada.
func (db *MemDB) AddIncident(i entity.Incident) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	i.ID = db.committed.next()
	db.committed.incidents[i.ID] = i
	return i.ID
}

// AddPayment inserta un pago confirmado sin pasar por el índice único.
func (db *MemDB) AddPayment(p entity.Payment) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	p.ID = db.committed.next()
	db.committed.payments[p.ID] = p
	return p.ID
}

// AddUser inserta un usuario confirmado.
func (db *MemDB) AddUser(u entity.User) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	u.ID = db.committed.next()
	db.committed.users[u.ID] = u
	return u.ID
}

// SetParam fija un parámetro de nómina confirmado.
func (db *MemDB) SetParam(name string, v decimal.Decimal) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.committed.params[name] = v
}

// ── Inspección ────────────────────────────────────────────────────────────────

// Payments pagos confirmados de (empleado, periodo).
func (db *MemDB) Payments(employeeID, periodID int64) []entity.Payment {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []entity.Payment
	for _, p := range db.committed.payments {
		if p.EmployeeID != nil && *p.EmployeeID == employeeID && p.PeriodID != nil && *p.PeriodID == periodID {
			out = append(out, p)
		}
	}
	return out
}

// PaymentCount total de pagos confirmados.
func (db *MemDB) PaymentCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.committed.payments)
}

// Details detalles confirmados de un pago.
func (db *MemDB) Details(paymentID int64) []entity.PaymentDetail {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]entity.PaymentDetail(nil), db.committed.details[paymentID]...)
}

// DetailCount total de líneas de detalle confirmadas.
func (db *MemDB) DetailCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, d := range db.committed.details {
		n += len(d)
	}
	return n
}

// Incident novedad confirmada.
func (db *MemDB) Incident(id int64) (entity.Incident, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	i, ok := db.committed.incidents[id]
	return i, ok
}
