package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Nomina-api/internal/application/analytics"
	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/liquidation"
	"github.com/jhoicas/Nomina-api/internal/application/payment"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  string
}

// NewApp crea la app Fiber con el manejador de errores central y los
// middlewares comunes: recover, request id, log de peticiones y CORS.
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log.Named("http")),
	})
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(RequestLogger(log.Named("http")))
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CORSOrigins,
			AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + HeaderRequestID,
			ExposeHeaders: "Content-Disposition, " + HeaderRequestID,
		}))
	}
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	EmployeeUC    *usecase.EmployeeUseCase
	JobRoleUC     *usecase.JobRoleUseCase
	DepartmentUC  *usecase.DepartmentUseCase
	PeriodUC      *usecase.PeriodUseCase
	IncidentUC    *usecase.IncidentUseCase
	ParameterUC   *usecase.ParameterUseCase
	LiquidationUC *liquidation.LiquidationUseCase
	PaymentUC     *payment.PaymentUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
// Lecturas: cualquier usuario autenticado. Escrituras: solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleEmployee)

	// Liquidación
	liqHandler := NewLiquidationHandler(deps.LiquidationUC, deps.PaymentUC)
	protected.Post("/pagos/liquidar", admin, liqHandler.Liquidate)
	protected.Post("/nomina/liquidar/:periodo_id", admin, liqHandler.LiquidatePeriod)
	protected.Get("/nomina/pagos/:periodo_id", anyRole, liqHandler.PeriodPayments)

	// Pagos
	payHandler := NewPaymentHandler(deps.PaymentUC)
	pagos := protected.Group("/pagos")
	pagos.Get("/", anyRole, payHandler.List)
	pagos.Post("/", admin, payHandler.Create)
	pagos.Get("/:id", anyRole, payHandler.GetByID)
	pagos.Put("/:id", admin, payHandler.Update)
	pagos.Delete("/:id", admin, payHandler.Delete)
	pagos.Post("/:id/pagar", admin, payHandler.MarkPaid)
	pagos.Post("/:id/anular", admin, payHandler.Void)
	pagos.Get("/:id/desprendible", anyRole, payHandler.Payslip)

	// Reportes
	incHandler := NewIncidentHandler(deps.IncidentUC)
	reportes := protected.Group("/reportes", anyRole)
	reportes.Get("/pagos.xlsx", payHandler.Export)
	reportes.Get("/novedades", incHandler.Report)

	// Novedades
	novedades := protected.Group("/novedades")
	novedades.Get("/", anyRole, incHandler.List)
	novedades.Post("/", admin, incHandler.Create)
	novedades.Get("/:id", anyRole, incHandler.GetByID)
	novedades.Put("/:id", admin, incHandler.Update)
	novedades.Delete("/:id", admin, incHandler.Delete)
	novedades.Post("/:id/aprobar", admin, incHandler.Approve)
	novedades.Post("/:id/rechazar", admin, incHandler.Reject)

	// Empleados
	empHandler := NewEmployeeHandler(deps.EmployeeUC)
	empleados := protected.Group("/empleados")
	empleados.Get("/", anyRole, empHandler.List)
	empleados.Post("/", admin, empHandler.Create)
	empleados.Get("/:id", anyRole, empHandler.GetByID)
	empleados.Put("/:id", admin, empHandler.Update)
	empleados.Delete("/:id", admin, empHandler.Delete)

	// Cargos y departamentos
	roleHandler := NewJobRoleHandler(deps.JobRoleUC)
	cargos := protected.Group("/cargos")
	cargos.Get("/", anyRole, roleHandler.List)
	cargos.Post("/", admin, roleHandler.Create)
	cargos.Get("/:id", anyRole, roleHandler.GetByID)
	cargos.Put("/:id", admin, roleHandler.Update)
	cargos.Delete("/:id", admin, roleHandler.Delete)

	deptHandler := NewDepartmentHandler(deps.DepartmentUC)
	departamentos := protected.Group("/departamentos")
	departamentos.Get("/", anyRole, deptHandler.List)
	departamentos.Post("/", admin, deptHandler.Create)
	departamentos.Get("/:id", anyRole, deptHandler.GetByID)
	departamentos.Put("/:id", admin, deptHandler.Update)
	departamentos.Delete("/:id", admin, deptHandler.Delete)

	// Periodos
	periodHandler := NewPeriodHandler(deps.PeriodUC)
	periodos := protected.Group("/periodos")
	periodos.Get("/", anyRole, periodHandler.List)
	periodos.Post("/", admin, periodHandler.Create)
	periodos.Get("/:id", anyRole, periodHandler.GetByID)
	periodos.Post("/:id/cerrar", admin, periodHandler.Close)
	periodos.Post("/:id/reabrir", admin, periodHandler.Reopen)

	// Parámetros
	paramHandler := NewParameterHandler(deps.ParameterUC)
	protected.Get("/parametros", anyRole, paramHandler.List)
	protected.Put("/parametros/:nombre", admin, paramHandler.Upsert)

	// Usuarios (solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	usuarios := protected.Group("/usuarios", admin)
	usuarios.Get("/", userHandler.List)
	usuarios.Post("/", userHandler.Create)
	usuarios.Get("/:id", userHandler.GetByID)
	usuarios.Put("/:id", userHandler.Update)
	usuarios.Delete("/:id", userHandler.Delete)

	// Dashboard
	dashHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := protected.Group("/dashboard", anyRole)
	dashboard.Get("/", dashHandler.GetSummary)
	dashboard.Get("/pagos-mensuales", dashHandler.MonthlyPayments)
	dashboard.Get("/empleados-por-cargo", dashHandler.HeadcountByJobRole)
}
