package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/library-duty-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5433, User: "lib", Password: "secret", Name: "duty", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5433 user=lib password=secret dbname=duty sslmode=disable", dsn)
}
