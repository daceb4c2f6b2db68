package service_test

import (
	"context"
	"testing"

	"belezapos/internal/config"
	"belezapos/internal/dto"
	"belezapos/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    72,
	}
}

func createProfessional(t *testing.T, svc service.AuthService, username, password, role string) *dto.ProfessionalResponse {
	t.Helper()
	resp, err := svc.CreateProfessional(context.Background(), dto.CreateProfessionalRequest{
		Username: username,
		Name:     "Profissional Teste",
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return resp
}

func TestLogin(t *testing.T) {
	repo := newStubProfessionalRepo()
	svc := service.NewAuthService(repo, testAuthConfig())
	createProfessional(t, svc, "joana", "segredo123", "manager")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "joana", Password: "segredo123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "joana", resp.User.Username)

	// Token carries the authorization claims the middleware relies on.
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "joana", claims["username"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, resp.User.ID, claims["user_id"])
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := service.NewAuthService(newStubProfessionalRepo(), testAuthConfig())
	createProfessional(t, svc, "joana", "segredo123", "attendant")

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "joana", Password: "errada"})
	assert.EqualError(t, err, "credenciais inválidas")
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := service.NewAuthService(newStubProfessionalRepo(), testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ninguem", Password: "qualquer"})
	assert.EqualError(t, err, "credenciais inválidas")
}

func TestLogin_DeactivatedUser(t *testing.T) {
	svc := service.NewAuthService(newStubProfessionalRepo(), testAuthConfig())
	created := createProfessional(t, svc, "carlos", "segredo123", "attendant")

	require.NoError(t, svc.DeactivateProfessional(context.Background(), uuid.MustParse(created.ID)))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "carlos", Password: "segredo123"})
	assert.EqualError(t, err, "credenciais inválidas")
}

func TestRefresh(t *testing.T) {
	svc := service.NewAuthService(newStubProfessionalRepo(), testAuthConfig())
	createProfessional(t, svc, "joana", "segredo123", "admin")

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "joana", Password: "segredo123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "joana", refreshed.User.Username)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc := service.NewAuthService(newStubProfessionalRepo(), testAuthConfig())

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}

func TestRefresh_DeactivatedUser(t *testing.T) {
	svc := service.NewAuthService(newStubProfessionalRepo(), testAuthConfig())
	created := createProfessional(t, svc, "carlos", "segredo123", "attendant")

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "carlos", Password: "segredo123"})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateProfessional(context.Background(), uuid.MustParse(created.ID)))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.Error(t, err)
}

func TestUpdateProfessional_PartialUpdate(t *testing.T) {
	svc := service.NewAuthService(newStubProfessionalRepo(), testAuthConfig())
	created := createProfessional(t, svc, "ana", "segredo123", "attendant")

	isAssistant := true
	updated, err := svc.UpdateProfessional(context.Background(), uuid.MustParse(created.ID), dto.UpdateProfessionalRequest{
		Role:        "manager",
		IsAssistant: &isAssistant,
	})
	require.NoError(t, err)
	assert.Equal(t, "manager", updated.Role)
	assert.True(t, updated.IsAssistant)
	assert.Equal(t, created.Name, updated.Name, "unset fields keep their values")
}
