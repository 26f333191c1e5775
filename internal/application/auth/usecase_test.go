package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Nomina-api/internal/application/apptest"
	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	db := apptest.NewMemDB()
	db.AddUser(entity.User{Name: "admin", Email: "admin@empresa.co", PasswordHash: string(hash), Role: entity.RoleAdmin})
	return auth.NewAuthUseCase(db.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "nomina-api"})
}

func TestLogin_OK(t *testing.T) {
	resp, err := newAuth(t).Login(context.Background(), dto.LoginRequest{Email: "Admin@Empresa.co", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.User.Role)

	id, role, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth(t)
	for _, in := range []dto.LoginRequest{
		{Email: "admin@empresa.co", Password: "otra-clave"},
		{Email: "nadie@empresa.co", Password: "clave-segura"},
	} {
		_, err := uc.Login(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, in.Email)
	}
}
