package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewService(t *testing.T) {
	secretKey := "test-secret-key"
	service := NewService(secretKey)

	assert.NotNil(t, service)
	assert.Equal(t, []byte(secretKey), service.secretKey)
}

func TestIssue(t *testing.T) {
	service := NewService("test-secret-key")

	token, visitorID, err := service.Issue()

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, visitorID)
}

func TestIssue_DistinctVisitors(t *testing.T) {
	service := NewService("test-secret-key")

	_, first, err := service.Issue()
	assert.NoError(t, err)
	_, second, err := service.Issue()
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestParse(t *testing.T) {
	service := NewService("test-secret-key")

	token, visitorID, err := service.Issue()
	assert.NoError(t, err)

	claims, err := service.Parse(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, visitorID, claims.VisitorID)
}

func TestParse_InvalidToken(t *testing.T) {
	service := NewService("test-secret-key")

	_, err := service.Parse("invalid-token")
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	service1 := NewService("secret-key-1")
	service2 := NewService("secret-key-2")

	token, _, err := service1.Issue()
	assert.NoError(t, err)

	_, err = service2.Parse(token)
	assert.Error(t, err)
}
