package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PaintToxic22/sistema-rastreo/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{
		Secret:     "test-secret",
		BcryptCost: 4, // MinCost keeps the test fast
	}

	return cfg
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(testConfig())

	password := "secreto123"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher(testConfig())
	password := "secreto123"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("otra-clave", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test malformed hash
	assert.False(t, hasher.Check(password, "not-a-bcrypt-hash"))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(testConfig())
	password := "secreto123"

	first, err := hasher.Hash(password)
	assert.NoError(t, err)
	second, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Same password, different salt, different hash.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check(password, first))
	assert.True(t, hasher.Check(password, second))
}
