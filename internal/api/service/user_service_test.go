package service

import (
	"api"
	"api/internal/api/models"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateByClerkIDCreatesNewUser(t *testing.T) {
	setupTestDB(t)
	svc := NewUserService()

	user, err := svc.GetOrCreateByClerkID("user_2new")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "user_2new", user.ClerkUserID)

	var count int64
	require.NoError(t, api.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateByClerkIDReturnsExistingUser(t *testing.T) {
	setupTestDB(t)
	svc := NewUserService()

	first, err := svc.GetOrCreateByClerkID("user_2repeat")
	require.NoError(t, err)

	second, err := svc.GetOrCreateByClerkID("user_2repeat")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, api.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateByClerkIDKeepsPreexistingRow(t *testing.T) {
	setupTestDB(t)
	existing := createTestUser(t, "user_2seeded")
	svc := NewUserService()

	user, err := svc.GetOrCreateByClerkID("user_2seeded")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
}
