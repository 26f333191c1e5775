// seed aplica las migraciones y crea el usuario administrador inicial.
// Con el argumento "demo" agrega además un departamento, un cargo, un
// empleado y el periodo quincenal en curso. Es idempotente.
//
// Uso: go run ./cmd/seed [demo]
package main

import (
	"context"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Nomina-api/pkg/config"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

const (
	demoDepartment = "Operaciones"
	demoJobRole    = "Auxiliar operativo"
	demoDocument   = "900000001"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.NewMigrator(pool).Up(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Strs("aplicadas", applied).Msg("migraciones al día")

	if err := seedAdmin(ctx, cfg.Seed, postgres.NewUserRepository(pool), log); err != nil {
		log.Fatal().Err(err).Msg("usuario administrador")
	}

	if len(os.Args) > 1 && os.Args[1] == "demo" {
		if err := seedDemo(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("datos demo")
		}
	}
	log.Info().Msg("seed completado")
}

func seedAdmin(ctx context.Context, cfg config.SeedConfig, repo *postgres.UserRepo, log *logger.Logger) error {
	if cfg.AdminPassword == "" {
		log.Warn().Msg("SEED_ADMIN_PASSWORD vacío; no se crea el administrador")
		return nil
	}
	existing, err := repo.GetByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Info().Str("email", existing.Email).Msg("administrador ya existe")
		return nil
	}
	out, err := usecase.NewUserUseCase(repo).Create(ctx, dto.CreateUserRequest{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		return err
	}
	log.Info().Int64("id", out.ID).Str("email", out.Email).Msg("administrador creado")
	return nil
}

func seedDemo(ctx context.Context, db postgres.DB, log *logger.Logger) error {
	deptRepo := postgres.NewDepartmentRepository(db)
	roleRepo := postgres.NewJobRoleRepository(db)
	employeeRepo := postgres.NewEmployeeRepository(db)
	periodRepo := postgres.NewPayPeriodRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)

	role, err := roleRepo.GetByName(ctx, demoJobRole)
	if err != nil {
		return err
	}
	if role == nil {
		dept, err := usecase.NewDepartmentUseCase(deptRepo).Create(ctx, dto.DepartmentRequest{
			Name: demoDepartment, Description: "Departamento de ejemplo",
		})
		if err != nil {
			return err
		}
		created, err := usecase.NewJobRoleUseCase(roleRepo, deptRepo).Create(ctx, dto.JobRoleRequest{
			Name: demoJobRole, BaseSalary: decimal.NewFromInt(1_423_500), DepartmentID: &dept.ID,
		})
		if err != nil {
			return err
		}
		log.Info().Int64("id", created.ID).Msg("cargo demo creado")
	}

	emp, err := employeeRepo.GetByDocument(ctx, demoDocument)
	if err != nil {
		return err
	}
	if emp == nil {
		out, err := usecase.NewEmployeeUseCase(employeeRepo, roleRepo, paymentRepo).Create(ctx, dto.EmployeeRequest{
			Name:        "Empleado Demo",
			Document:    demoDocument,
			HireDate:    time.Now().UTC().AddDate(0, -6, 0).Format(dto.DateLayout),
			JobRoleName: demoJobRole,
			BaseSalary:  decimal.NewFromInt(1_423_500),
		})
		if err != nil {
			return err
		}
		log.Info().Int64("id", out.ID).Msg("empleado demo creado")
	}

	periods, err := periodRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(periods) == 0 {
		start, end := currentFortnight(time.Now().UTC())
		out, err := usecase.NewPeriodUseCase(periodRepo).Create(ctx, dto.PayPeriodRequest{
			StartDate: start.Format(dto.DateLayout),
			EndDate:   end.Format(dto.DateLayout),
		})
		if err != nil {
			return err
		}
		log.Info().Int64("id", out.ID).Str("inicio", out.StartDate).Msg("periodo demo creado")
	}
	return nil
}

// currentFortnight quincena (1-15 o 16-fin de mes) que contiene t.
func currentFortnight(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	if t.Day() <= 15 {
		return first, first.AddDate(0, 0, 14)
	}
	return first.AddDate(0, 0, 15), first.AddDate(0, 1, -1)
}
