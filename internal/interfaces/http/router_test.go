package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Nomina-api/internal/application/apptest"
	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/liquidation"
	"github.com/jhoicas/Nomina-api/internal/application/payment"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/payroll"
	apphttp "github.com/jhoicas/Nomina-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre repos en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeDocs struct{}

func (fakeDocs) GeneratePayslipPDF(_ context.Context, p payment.Payslip) ([]byte, error) {
	return []byte("%PDF-1.4 pago " + strconv.FormatInt(p.Payment.ID, 10)), nil
}

func (fakeDocs) ExportPayments(_ context.Context, list []*entity.Payment) ([]byte, error) {
	return []byte("xlsx:" + strconv.Itoa(len(list))), nil
}

type apiFixture struct {
	app      *fiber.App
	db       *apptest.MemDB
	periodID int64
	ana      int64
	admin    string
	empleado string
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	db := apptest.NewMemDB()
	for k, v := range map[string]string{
		payroll.ParamHealthPct:        "4",
		payroll.ParamPensionPct:       "4",
		payroll.ParamRiskPct:          "0.5",
		payroll.ParamTransportSubsidy: "140606",
		payroll.ParamMinimumWage:      "1300000",
	} {
		db.SetParam(k, decimal.RequireFromString(v))
	}
	f := &apiFixture{db: db}
	f.periodID = db.AddPeriod(entity.PayPeriod{StartDate: day("2025-08-01"), EndDate: day("2025-08-15")})
	roleID := db.AddJobRole(entity.JobRole{Name: "Analista", BaseSalary: decimal.RequireFromString("3800000")})
	f.ana = db.AddEmployee(entity.Employee{
		Name: "Ana Gómez", Document: "1001", JobRoleID: roleID,
		HireDate: day("2024-01-10"), BaseSalary: decimal.RequireFromString("3800000"),
	})
	db.AddEmployee(entity.Employee{
		Name: "Luis Pérez", Document: "1002", JobRoleID: roleID,
		HireDate: day("2024-03-01"), BaseSalary: decimal.RequireFromString("1200000"),
	})
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	db.AddUser(entity.User{Name: "admin", Email: "admin@empresa.co", PasswordHash: string(hash), Role: entity.RoleAdmin})

	paymentUC := payment.NewPaymentUseCase(db.TxRunner(), db.PaymentsRepo(), db.Employees(), db.Periods(),
		fakeDocs{}, fakeDocs{}, "", nil)
	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(db.Users(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		UserUC:       usecase.NewUserUseCase(db.Users()),
		EmployeeUC:   usecase.NewEmployeeUseCase(db.Employees(), db.JobRoles(), db.PaymentsRepo()),
		JobRoleUC:    usecase.NewJobRoleUseCase(db.JobRoles(), db.Departments()),
		DepartmentUC: usecase.NewDepartmentUseCase(db.Departments()),
		PeriodUC:     usecase.NewPeriodUseCase(db.Periods()),
		IncidentUC:   usecase.NewIncidentUseCase(db.Incidents(), db.Employees()),
		ParameterUC:  usecase.NewParameterUseCase(db.Params()),
		LiquidationUC: liquidation.NewLiquidationUseCase(db.TxRunner(), db.Periods(), db.Employees(),
			db.PaymentsRepo(), payroll.DefaultRules(), liquidation.Options{}, nil),
		PaymentUC: paymentUC,
		JWTSecret: testJWTSecret,
	}
	f.app = apphttp.NewApp(apphttp.AppConfig{Name: "test"}, nil)
	apphttp.Router(f.app, deps)
	f.admin = tokenForRole(t, entity.RoleAdmin)
	f.empleado = tokenForRole(t, entity.RoleEmployee)
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func (f *apiFixture) liquidar(t *testing.T, token string, extra map[string]any) (*http.Response, map[string]any) {
	body := map[string]any{"periodo_id": f.periodID, "empleado_id": f.ana, "fecha_pago": "2025-08-16"}
	for k, v := range extra {
		body[k] = v
	}
	return f.do(t, http.MethodPost, "/api/pagos/liquidar", token, body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Liquidación
// ──────────────────────────────────────────────────────────────────────────────

func TestLiquidar_CreaPagoYResponde201(t *testing.T) {
	f := newAPI(t)
	resp, body := f.liquidar(t, f.admin, nil)

	require.Equal(t, http.StatusCreated, resp.StatusCode, "%v", body)
	pago := body["pago"].(map[string]any)
	assert.Equal(t, 3477000.0, pago["total_neto"])
	assert.Equal(t, "pendiente", pago["estado"])
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}

func TestLiquidar_DuplicadoResponde409ConPagoID(t *testing.T) {
	f := newAPI(t)
	_, first := f.liquidar(t, f.admin, nil)
	firstID := first["pago"].(map[string]any)["id"]

	resp, body := f.liquidar(t, f.admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body["code"])
	assert.Equal(t, firstID, body["pago_id"])
}

func TestLiquidar_SobrescribirResponde200(t *testing.T) {
	f := newAPI(t)
	f.liquidar(t, f.admin, nil)

	resp, body := f.liquidar(t, f.admin, map[string]any{"sobrescribir": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["pago"].(map[string]any)["reemplazado"])
	assert.Equal(t, 1, f.db.PaymentCount())
}

func TestLiquidar_EmpleadoSinPermiso(t *testing.T) {
	f := newAPI(t)
	resp, _ := f.liquidar(t, f.empleado, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, f.db.PaymentCount())
}

func TestLiquidar_ValidacionDeCampos(t *testing.T) {
	f := newAPI(t)
	resp, body := f.do(t, http.MethodPost, "/api/pagos/liquidar", f.admin,
		map[string]any{"metodo_pago": "bitcoin", "fecha_pago": "16/08/2025"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "periodo_id")
	assert.Contains(t, fields, "nombre_empleado")
	assert.Contains(t, fields, "metodo_pago")
	assert.Contains(t, fields, "fecha_pago")
}

func TestLiquidar_PeriodoInexistente404(t *testing.T) {
	f := newAPI(t)
	resp, body := f.do(t, http.MethodPost, "/api/pagos/liquidar", f.admin,
		map[string]any{"periodo_id": 999, "empleado_id": f.ana})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestLiquidarPeriodo_SinCuerpo(t *testing.T) {
	f := newAPI(t)
	path := "/api/nomina/liquidar/" + strconv.FormatInt(f.periodID, 10)
	resp, body := f.do(t, http.MethodPost, path, f.admin, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode, "%v", body)
	assert.Equal(t, 2.0, body["exitosos"])
	assert.Equal(t, 0.0, body["fallidos"])

	req := httptest.NewRequest(http.MethodGet, "/api/nomina/pagos/"+strconv.FormatInt(f.periodID, 10), nil)
	req.Header.Set("Authorization", f.empleado)
	listResp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer listResp.Body.Close()
	var pagos []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&pagos))
	assert.Len(t, pagos, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos, periodos y auth
// ──────────────────────────────────────────────────────────────────────────────

func TestPago_CicloDeEstados(t *testing.T) {
	f := newAPI(t)
	_, liq := f.liquidar(t, f.admin, nil)
	id := strconv.FormatInt(int64(liq["pago"].(map[string]any)["id"].(float64)), 10)

	resp, body := f.do(t, http.MethodPost, "/api/pagos/"+id+"/pagar", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "%v", body)
	assert.Equal(t, "pagado", body["estado"])

	resp, body = f.do(t, http.MethodDelete, "/api/pagos/"+id, f.admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", body["code"])

	resp, body = f.do(t, http.MethodPost, "/api/pagos/"+id+"/anular", f.admin, map[string]any{"motivo": "error de cálculo"})
	require.Equal(t, http.StatusOK, resp.StatusCode, "%v", body)
	assert.Equal(t, "anulado", body["estado"])
}

func TestPago_Desprendible(t *testing.T) {
	f := newAPI(t)
	_, liq := f.liquidar(t, f.admin, nil)
	id := strconv.FormatInt(int64(liq["pago"].(map[string]any)["id"].(float64)), 10)

	req := httptest.NewRequest(http.MethodGet, "/api/pagos/"+id+"/desprendible", nil)
	req.Header.Set("Authorization", f.empleado)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "desprendible_"+id+".pdf")
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestPago_IDInvalido(t *testing.T) {
	f := newAPI(t)
	resp, body := f.do(t, http.MethodGet, "/api/pagos/abc", f.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["fields"], "id")
}

func TestPeriodo_CerrarDosVeces(t *testing.T) {
	f := newAPI(t)
	path := "/api/periodos/" + strconv.FormatInt(f.periodID, 10) + "/cerrar"

	resp, body := f.do(t, http.MethodPost, path, f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cerrado", body["estado"])

	resp, body = f.do(t, http.MethodPost, path, f.admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", body["code"])

	// periodo cerrado: la liquidación se rechaza
	resp, _ = f.liquidar(t, f.admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	f := newAPI(t)

	resp, body := f.do(t, http.MethodPost, "/api/auth/login", "",
		map[string]any{"email": "admin@empresa.co", "password": "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, "%v", body)
	token := body["token"].(string)

	resp, _ = f.do(t, http.MethodGet, "/api/usuarios", "Bearer "+token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = f.do(t, http.MethodPost, "/api/auth/login", "",
		map[string]any{"email": "admin@empresa.co", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestUsuarios_SoloAdmin(t *testing.T) {
	f := newAPI(t)
	resp, _ := f.do(t, http.MethodGet, "/api/usuarios", f.empleado, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// ErrorHandler
// ──────────────────────────────────────────────────────────────────────────────

func TestErrorHandler_ErrorInternoNoSeExpone(t *testing.T) {
	app := apphttp.NewApp(apphttp.AppConfig{}, nil)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("pq: password authentication failed for user postgres")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(apphttp.HeaderRequestID, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(apphttp.HeaderRequestID))
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "INTERNAL")
	assert.NotContains(t, string(raw), "password")
}

func TestErrorHandler_RutaInexistente(t *testing.T) {
	app := apphttp.NewApp(apphttp.AppConfig{}, nil)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nada", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "NOT_FOUND")
}
