package jwt_test

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lztmeat/inventario-api/pkg/jwt"
)

const secret = "secreto-de-prueba"

func TestGenerateYParse(t *testing.T) {
	tok, err := jwt.Generate(secret, "u-1", "Ana Caja", "vendedor", "inventario-api", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Ana Caja", claims.UserName)
	assert.Equal(t, "vendedor", claims.Role)
	assert.Equal(t, "inventario-api", claims.Issuer)
}

func TestParse_UserIDDesdeSubject(t *testing.T) {
	// Tokens emitidos por el servicio de identidad solo traen "sub".
	raw := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub":  "u-9",
		"role": "admin",
	})
	tok, err := raw.SignedString([]byte(secret))
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-9", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParse_Rechazos(t *testing.T) {
	expired, err := jwt.Generate(secret, "u-1", "x", "admin", "i", -1)
	require.NoError(t, err)
	_, err = jwt.Parse(secret, expired)
	assert.Error(t, err, "token expirado")

	valid, err := jwt.Generate(secret, "u-1", "x", "admin", "i", 5)
	require.NoError(t, err)
	_, err = jwt.Parse("otro", valid)
	assert.Error(t, err, "firma con otro secreto")

	none := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{"sub": "u-1"})
	tok, err := none.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = jwt.Parse(secret, tok)
	assert.Error(t, err, "alg none")
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u", "n", "admin", "i", 5)
	assert.Error(t, err)
	_, err = jwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
