package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
	assert.False(t, CheckPasswordHash("hunter22", "not-a-hash"))
}

func TestCreateUser(t *testing.T) {
	u, err := CreateUser("Jane Doe", "jane@example.com", "secret99")
	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", u.FullName)
	assert.Nil(t, u.DietPlanID)
	assert.True(t, u.CheckPassword("secret99"))
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	_, err := CreateUser("Jane Doe", "not-an-email", "secret99")
	assert.Error(t, err)
}
