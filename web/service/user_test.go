package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndCheckUser(t *testing.T) {
	setupTestDB(t)
	svc := UserService{}

	user, err := svc.Register("carol", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
	assert.NotEqual(t, "s3cret!", user.Password, "password must be stored hashed")

	assert.NotNil(t, svc.CheckUser("carol", "s3cret!"))
	assert.Nil(t, svc.CheckUser("carol", "wrong"))
	assert.Nil(t, svc.CheckUser("nobody", "s3cret!"))
}

func TestRegisterRules(t *testing.T) {
	setupTestDB(t)
	svc := UserService{}

	tests := []struct {
		name     string
		username string
		password string
		expected string
	}{
		{"username too short", "ab", "longenough", "between 3 and 50"},
		{"password too short", "carol", "abc", "at least 6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.username, tt.password)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Error(), tt.expected)
		})
	}
}

func TestRegisterCollectsBothRuleViolations(t *testing.T) {
	setupTestDB(t)
	svc := UserService{}

	_, err := svc.Register("ab", "abc")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Violations, 2)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	setupTestDB(t)
	svc := UserService{}

	_, err := svc.Register("carol", "s3cret!")
	require.NoError(t, err)

	_, err = svc.Register("carol", "another1")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "already exists")
}

func TestUpdateFirstUser(t *testing.T) {
	setupTestDB(t)
	svc := UserService{}

	require.NoError(t, svc.UpdateFirstUser("admin", "changeme"))

	user, err := svc.GetFirstUser()
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.NotNil(t, svc.CheckUser("admin", "changeme"))
}
