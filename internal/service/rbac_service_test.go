package service

import (
	"context"
	"testing"

	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPermission(t *testing.T, svc *RBACService, code string) *model.Permission {
	t.Helper()
	p := &model.Permission{Code: code}
	require.NoError(t, svc.CreatePermission(context.Background(), p))
	return p
}

func mustRole(t *testing.T, svc *RBACService, name string) *model.Role {
	t.Helper()
	r := &model.Role{Name: name}
	require.NoError(t, svc.CreateRole(context.Background(), r))
	return r
}

func TestSetRolePermissionsReplacesFullSet(t *testing.T) {
	svc, _ := newRBACService(t)
	ctx := context.Background()

	role := mustRole(t, svc, "Editor")
	p1 := mustPermission(t, svc, "course.manage")
	p2 := mustPermission(t, svc, "media.manage")
	p3 := mustPermission(t, svc, "user.manage")

	got, err := svc.SetRolePermissions(ctx, role.ID, []string{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.Len(t, got.RolePermissions, 2)

	// 整组替换：未出现的权限被移除
	got, err = svc.SetRolePermissions(ctx, role.ID, []string{p3.ID})
	require.NoError(t, err)
	require.Len(t, got.RolePermissions, 1)
	assert.Equal(t, p3.ID, got.RolePermissions[0].PermissionID)

	// 清空
	got, err = svc.SetRolePermissions(ctx, role.ID, []string{})
	require.NoError(t, err)
	assert.Empty(t, got.RolePermissions)
}

func TestSetRolePermissionsUnknownID(t *testing.T) {
	svc, _ := newRBACService(t)
	role := mustRole(t, svc, "Editor")
	p1 := mustPermission(t, svc, "course.manage")

	_, err := svc.SetRolePermissions(context.Background(), role.ID, []string{p1.ID, "missing"})
	assert.ErrorIs(t, err, util.ErrPermissionNotFound)
}

func TestSystemRoleIsImmutable(t *testing.T) {
	svc, db := newRBACService(t)
	ctx := context.Background()

	system := &model.Role{Name: "Administrator", IsSystem: true}
	require.NoError(t, db.Create(system).Error)
	name := "Hacked"

	_, err := svc.UpdateRole(ctx, system.ID, &name, nil)
	assert.ErrorIs(t, err, util.ErrSystemImmutable)

	err = svc.DeleteRole(ctx, system.ID)
	assert.ErrorIs(t, err, util.ErrSystemImmutable)

	_, err = svc.SetRolePermissions(ctx, system.ID, []string{})
	assert.ErrorIs(t, err, util.ErrSystemImmutable)
}

func TestCreateRoleNeverSystem(t *testing.T) {
	svc, _ := newRBACService(t)

	role := &model.Role{Name: "Sneaky", IsSystem: true}
	require.NoError(t, svc.CreateRole(context.Background(), role))
	assert.False(t, role.IsSystem)
}

func TestDeleteRoleInUse(t *testing.T) {
	svc, db := newRBACService(t)
	ctx := context.Background()

	role := mustRole(t, svc, "Editor")
	require.NoError(t, db.Create(&model.User{
		Name:     "U",
		Email:    "u@example.com",
		Password: "x",
		RoleID:   role.ID,
	}).Error)

	err := svc.DeleteRole(ctx, role.ID)
	assert.ErrorIs(t, err, util.ErrRoleInUse)

	// 移除成员后可删
	require.NoError(t, db.Where("email = ?", "u@example.com").Delete(&model.User{}).Error)
	require.NoError(t, svc.DeleteRole(ctx, role.ID))

	_, err = svc.GetRole(role.ID)
	assert.ErrorIs(t, err, util.ErrRoleNotFound)
}

func TestSystemPermissionIsImmutable(t *testing.T) {
	svc, db := newRBACService(t)
	ctx := context.Background()

	perm := &model.Permission{Code: "course.manage", IsSystem: true}
	require.NoError(t, db.Create(perm).Error)
	code := "changed"

	_, err := svc.UpdatePermission(ctx, perm.ID, &code, nil)
	assert.ErrorIs(t, err, util.ErrSystemImmutable)

	err = svc.DeletePermission(ctx, perm.ID)
	assert.ErrorIs(t, err, util.ErrSystemImmutable)
}

func TestDeletePermissionDetachesFromRoles(t *testing.T) {
	svc, _ := newRBACService(t)
	ctx := context.Background()

	role := mustRole(t, svc, "Editor")
	perm := mustPermission(t, svc, "media.manage")
	_, err := svc.SetRolePermissions(ctx, role.ID, []string{perm.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePermission(ctx, perm.ID))

	got, err := svc.GetRole(role.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RolePermissions)
}

func TestHasPermission(t *testing.T) {
	svc, _ := newRBACService(t)
	ctx := context.Background()

	role := mustRole(t, svc, "Editor")
	perm := mustPermission(t, svc, "course.manage")
	_, err := svc.SetRolePermissions(ctx, role.ID, []string{perm.ID})
	require.NoError(t, err)

	ok, err := svc.HasPermission(role.ID, "course.manage")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasPermission(role.ID, "backup.manage")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.HasPermission("missing", "course.manage")
	assert.ErrorIs(t, err, util.ErrRoleNotFound)
}
