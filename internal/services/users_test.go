package services

import (
	"testing"

	"github.com/monocle-dev/holdings/internal/auth"
	"github.com/monocle-dev/holdings/internal/models"
	"github.com/monocle-dev/holdings/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	cases := [][2]string{
		{"test1@EXAMPLE.com", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.com", "TEST3@example.com"},
		{"test4@example.COM", "test4@example.com"},
		{"  spaced@Example.org ", "spaced@example.org"},
		{"no-at-sign", "no-at-sign"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc[1], NormalizeEmail(tc[0]), tc[0])
	}
}

func TestCreateUserNormalisesEmail(t *testing.T) {
	conn := testutil.SetupDB(t)

	user, err := CreateUser(conn, "Test2@Example.com", "password123", "Test")
	require.NoError(t, err)

	assert.Equal(t, "Test2@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "password123"))
}

func TestCreateUserWithoutEmail(t *testing.T) {
	conn := testutil.SetupDB(t)

	_, err := CreateUser(conn, "  ", "password123", "Test")
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	conn := testutil.SetupDB(t)

	_, err := CreateUser(conn, "user@example.com", "password123", "One")
	require.NoError(t, err)

	_, err = CreateUser(conn, "user@EXAMPLE.com", "password123", "Two")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateSuperuser(t *testing.T) {
	conn := testutil.SetupDB(t)

	user, err := CreateSuperuser(conn, "admin@example.com", "password123")
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, conn.First(&stored, user.ID).Error)
	assert.True(t, stored.IsStaff)
	assert.True(t, stored.IsSuperuser)
}

func TestAuthenticate(t *testing.T) {
	conn := testutil.SetupDB(t)
	user := testutil.CreateUser(t, conn, "user@example.com")

	got, ok, err := Authenticate(conn, "user@EXAMPLE.COM", testutil.Password)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)

	_, ok, err = Authenticate(conn, "user@example.com", "wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = Authenticate(conn, "missing@example.com", testutil.Password)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, conn.Model(&user).Update("is_active", false).Error)
	_, ok, err = Authenticate(conn, "user@example.com", testutil.Password)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteUserCascades(t *testing.T) {
	conn := testutil.SetupDB(t)
	user := testutil.CreateUser(t, conn, "user@example.com")
	other := testutil.CreateUser(t, conn, "other@example.com")

	investment := testutil.CreateInvestment(t, conn, user, nil)
	tag := testutil.CreateTag(t, conn, user, "Crypto")
	testutil.TagInvestment(t, conn, investment, tag)
	testutil.CreateActivity(t, conn, user, investment, nil)

	kept := testutil.CreateInvestment(t, conn, other, nil)
	testutil.CreateActivity(t, conn, other, kept, nil)

	require.NoError(t, DeleteUser(conn, user.ID))

	for _, model := range []interface{}{&models.Investment{}, &models.Tag{}, &models.Activity{}} {
		var count int64
		require.NoError(t, conn.Model(model).Where("user_id = ?", user.ID).Count(&count).Error)
		assert.Zero(t, count)
	}

	var links int64
	require.NoError(t, conn.Table("investment_tags").Count(&links).Error)
	assert.Zero(t, links)

	var remaining int64
	require.NoError(t, conn.Model(&models.Activity{}).Where("user_id = ?", other.ID).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}
