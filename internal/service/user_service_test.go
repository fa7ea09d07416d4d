package service

import (
	"testing"

	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func seedRole(t *testing.T, db *gorm.DB, name string) *model.Role {
	t.Helper()
	role := &model.Role{Name: name}
	require.NoError(t, db.Create(role).Error)
	return role
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, db := newUserService(t)
	role := seedRole(t, db, "Editor")

	user := &model.User{Name: "张三", Email: "zs@example.com", RoleID: role.ID, IsActive: true}
	require.NoError(t, svc.Create(user, "secret123"))

	got, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", got.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("secret123")))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, db := newUserService(t)
	role := seedRole(t, db, "Editor")

	first := &model.User{Name: "A", Email: "dup@example.com", RoleID: role.ID}
	require.NoError(t, svc.Create(first, "pw123456"))

	second := &model.User{Name: "B", Email: "dup@example.com", RoleID: role.ID}
	err := svc.Create(second, "pw123456")
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestCreateUserUnknownRole(t *testing.T) {
	svc, _ := newUserService(t)

	user := &model.User{Name: "A", Email: "a@example.com", RoleID: "missing"}
	err := svc.Create(user, "pw123456")
	assert.ErrorIs(t, err, util.ErrRoleNotFound)
}

func TestUpdateUserSelfDeactivateRejected(t *testing.T) {
	svc, db := newUserService(t)
	role := seedRole(t, db, "Editor")

	user := &model.User{Name: "A", Email: "a@example.com", RoleID: role.ID, IsActive: true}
	require.NoError(t, svc.Create(user, "pw123456"))

	inactive := false
	_, err := svc.Update(user.ID, user.ID, UserUpdate{IsActive: &inactive})
	assert.ErrorIs(t, err, util.ErrSelfDeactivate)

	// 其他管理员可以禁用
	got, err := svc.Update(user.ID, "another-admin", UserUpdate{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestUpdateUserPartialFields(t *testing.T) {
	svc, db := newUserService(t)
	role := seedRole(t, db, "Editor")
	other := seedRole(t, db, "Viewer")

	user := &model.User{Name: "Old", Email: "p@example.com", RoleID: role.ID, IsActive: true}
	require.NoError(t, svc.Create(user, "pw123456"))

	name := "New"
	got, err := svc.Update(user.ID, "admin", UserUpdate{Name: &name, RoleID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, other.ID, got.RoleID)
	// 未提交的字段不变
	assert.True(t, got.IsActive)
}

func TestDeleteUserSelfRejected(t *testing.T) {
	svc, db := newUserService(t)
	role := seedRole(t, db, "Editor")

	user := &model.User{Name: "A", Email: "del@example.com", RoleID: role.ID}
	require.NoError(t, svc.Create(user, "pw123456"))

	err := svc.Delete(user.ID, user.ID)
	assert.ErrorIs(t, err, util.ErrSelfDeactivate)

	require.NoError(t, svc.Delete(user.ID, "another-admin"))
	_, err = svc.Get(user.ID)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
