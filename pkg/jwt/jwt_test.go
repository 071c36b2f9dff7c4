package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/retail-inventory/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 42, "sam@x.com", "MANAGER", "retail-test", 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "sam@x.com", claims.Email)
	assert.Equal(t, "MANAGER", claims.Role)
	assert.NotEmpty(t, claims.ID, "cada token lleva un jti")
}

func TestGenerate_JTIUnicoPorToken(t *testing.T) {
	a, err := pkgjwt.Generate(testSecret, 1, "a@x.com", "ADMIN", "retail-test", 60)
	require.NoError(t, err)
	b, err := pkgjwt.Generate(testSecret, 1, "a@x.com", "ADMIN", "retail-test", 60)
	require.NoError(t, err)

	ca, _ := pkgjwt.Parse(testSecret, a)
	cb, _ := pkgjwt.Parse(testSecret, b)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "a@x.com", "ADMIN", "retail-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "a@x.com", "ADMIN", "retail-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, "a@x.com", "ADMIN", "retail-test", 60)
	assert.Error(t, err)
}
