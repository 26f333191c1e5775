// @title           Nómina API
// @version         1.0
// @description     Liquidación de nómina, pagos, novedades y catálogos de personal.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
package main

//go:generate swag init -g cmd/api/main.go -o docs --dir ../../

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/Nomina-api/internal/application/analytics"
	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/liquidation"
	"github.com/jhoicas/Nomina-api/internal/application/payment"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
	"github.com/jhoicas/Nomina-api/internal/domain/payroll"
	infrapdf "github.com/jhoicas/Nomina-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Nomina-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/Nomina-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Nomina-api/internal/interfaces/http"
	"github.com/jhoicas/Nomina-api/pkg/config"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.MigrateOnStart {
		applied, err := postgres.NewMigrator(pool).Up(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("aplicadas", applied).Msg("migraciones al día")
	}

	userRepo := postgres.NewUserRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	jobRoleRepo := postgres.NewJobRoleRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	periodRepo := postgres.NewPayPeriodRepository(pool)
	incidentRepo := postgres.NewIncidentRepository(pool)
	parameterRepo := postgres.NewPayrollParameterRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	rules := payroll.DefaultRules()
	rules.SubsidyWageMultiple = decimal.NewFromInt(int64(cfg.Payroll.SubsidyWageMultiple))

	liquidationUC := liquidation.NewLiquidationUseCase(
		txRunner, periodRepo, employeeRepo, paymentRepo, rules,
		liquidation.Options{
			AllowClosedPeriod: cfg.Payroll.AllowClosedPeriod,
			DefaultMethod:     cfg.Payroll.DefaultPaymentMethod,
		},
		log,
	)

	// Documentos: desprendible PDF y exportación Excel
	payslipGenerator := infrapdf.NewMarotoPayslipGenerator(cfg.App.Name)
	paymentsExporter := infraxlsx.NewPaymentsExporter(log)
	paymentUC := payment.NewPaymentUseCase(
		txRunner, paymentRepo, employeeRepo, periodRepo,
		payslipGenerator, paymentsExporter, cfg.Payroll.DefaultPaymentMethod, log,
	)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
	}, log)

	// Swagger UI en local: http://localhost:<port>/docs (requiere `go generate ./cmd/api`)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Nómina API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado; /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_down", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(userRepo),
		EmployeeUC:    usecase.NewEmployeeUseCase(employeeRepo, jobRoleRepo, paymentRepo),
		JobRoleUC:     usecase.NewJobRoleUseCase(jobRoleRepo, departmentRepo),
		DepartmentUC:  usecase.NewDepartmentUseCase(departmentRepo),
		PeriodUC:      usecase.NewPeriodUseCase(periodRepo),
		IncidentUC:    usecase.NewIncidentUseCase(incidentRepo, employeeRepo),
		ParameterUC:   usecase.NewParameterUseCase(parameterRepo),
		LiquidationUC: liquidationUC,
		PaymentUC:     paymentUC,
		DashboardUC:   appanalytics.NewDashboardUseCase(dashboardRepo),
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
