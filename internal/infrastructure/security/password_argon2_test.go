package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() Argon2idParams {
	// Low-cost parameters keep the test fast; production values come from
	// config.
	return Argon2idParams{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestNewArgon2idPasswordService_RequiresFullParams(t *testing.T) {
	_, err := NewArgon2idPasswordService(Argon2idParams{})
	assert.Error(t, err)
}

func TestHashPassword_Format(t *testing.T) {
	svc, err := NewArgon2idPasswordService(testParams())
	require.NoError(t, err)

	hash, err := svc.HashPassword("s3cret-passw0rd")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v="))
	assert.Len(t, strings.Split(hash, "$"), 6)
}

func TestCheckPasswordHash(t *testing.T) {
	svc, err := NewArgon2idPasswordService(testParams())
	require.NoError(t, err)

	hash, err := svc.HashPassword("s3cret-passw0rd")
	require.NoError(t, err)

	ok, err := svc.CheckPasswordHash("s3cret-passw0rd", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckPasswordHash("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPasswordHash_DistinctSalts(t *testing.T) {
	svc, err := NewArgon2idPasswordService(testParams())
	require.NoError(t, err)

	first, err := svc.HashPassword("same-password")
	require.NoError(t, err)
	second, err := svc.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	svc, err := NewArgon2idPasswordService(testParams())
	require.NoError(t, err)

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19"},
		{"bad salt encoding", "$argon2id$v=19$m=8192,t=1,p=1$%%%$aGFzaA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CheckPasswordHash("password", tt.hash)
			assert.Error(t, err)
		})
	}
}
