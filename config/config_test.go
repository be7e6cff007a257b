package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	c := map[string]string{"PORT": "9090"}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "8080", GetString(c, "MISSING", "8080"))
	assert.Equal(t, "8080", GetString(nil, "PORT", "8080"))
}

func TestGetInt(t *testing.T) {
	c := map[string]string{"READ_TIMEOUT_SECONDS": "30", "BAD": "thirty"}

	assert.Equal(t, 30, GetInt(c, "READ_TIMEOUT_SECONDS", 180))
	assert.Equal(t, 180, GetInt(c, "MISSING", 180))
	assert.Equal(t, 180, GetInt(c, "BAD", 180))
}

func TestGetBool(t *testing.T) {
	c := map[string]string{
		"CORS_ALLOW_CREDENTIALS": "false",
		"ENABLED":                "1",
		"BAD":                    "si",
	}

	assert.False(t, GetBool(c, "CORS_ALLOW_CREDENTIALS", true))
	assert.True(t, GetBool(c, "ENABLED", false))
	assert.True(t, GetBool(c, "BAD", true))
	assert.True(t, GetBool(c, "MISSING", true))
	assert.False(t, GetBool(nil, "ENABLED", false))
}

func TestPostgresDSN(t *testing.T) {
	c := map[string]string{
		"DB_HOST":     "db.internal",
		"DB_USER":     "app",
		"DB_PASSWORD": "pw",
		"DB_NAME":     "proyectos",
		"DB_PORT":     "5433",
		"DB_SSLMODE":  "require",
	}

	assert.Equal(t,
		"host=db.internal user=app password=pw dbname=proyectos port=5433 sslmode=require",
		PostgresDSN(c))

	// defaults fill in when nothing is configured
	assert.Equal(t,
		"host=localhost user=postgres password= dbname=proyectos port=5432 sslmode=disable",
		PostgresDSN(map[string]string{}))
}
