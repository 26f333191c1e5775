package config_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Nomina-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "nomina-api", cfg.App.Name)
	assert.Equal(t, 2, cfg.Payroll.SubsidyWageMultiple)
	assert.False(t, cfg.Payroll.AllowClosedPeriod)
	assert.Equal(t, "transferencia", cfg.Payroll.DefaultPaymentMethod)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.True(t, cfg.DB.MigrateOnStart)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PAYROLL_ALLOW_CLOSED_PERIOD", "true")
	t.Setenv("PAYROLL_SUBSIDY_WAGE_MULTIPLE", "3")
	t.Setenv("DB_PORT", "6543")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Payroll.AllowClosedPeriod)
	assert.Equal(t, 3, cfg.Payroll.SubsidyWageMultiple)
	assert.Equal(t, 6543, cfg.DB.Port)
}

func TestLoad_RechazaMetodoDePagoInvalido(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PAYROLL_DEFAULT_PAYMENT_METHOD", "bitcoin")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "nomina", Password: "p@ss/word", DBName: "nomina", SSLMode: "disable"}

	assert.Equal(t, "postgres://nomina:p%40ss%2Fword@db:5432/nomina?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
