package service

import (
	"context"
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/repository"
	"lms_admin_backend/internal/util"
	"lms_admin_backend/pkg/cache"

	"gorm.io/gorm"
)

// RBACService 角色/权限管理。isSystem 条目服务端强制只读，
// 角色权限集的修改是整组替换（不做差量）。
type RBACService struct {
	RoleRepo       *repository.RoleRepository
	PermissionRepo *repository.PermissionRepository
	UserRepo       *repository.UserRepository
	Cache          *cache.Store
	DB             *gorm.DB
}

func NewRBACService(
	roleRepo *repository.RoleRepository,
	permissionRepo *repository.PermissionRepository,
	userRepo *repository.UserRepository,
	store *cache.Store,
	db *gorm.DB,
) *RBACService {
	return &RBACService{
		RoleRepo:       roleRepo,
		PermissionRepo: permissionRepo,
		UserRepo:       userRepo,
		Cache:          store,
		DB:             db,
	}
}

// ---- Role ----

func (s *RBACService) ListRoles(ctx context.Context) ([]model.Role, error) {
	key := cache.RoleList()
	var cached []model.Role
	if hit, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	roles, err := s.RoleRepo.FindAll()
	if err != nil {
		return nil, err
	}
	s.Cache.SetJSON(ctx, key, roles)
	return roles, nil
}

func (s *RBACService) GetRole(id string) (*model.Role, error) {
	role, err := s.RoleRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrRoleNotFound
	}
	return role, err
}

func (s *RBACService) CreateRole(ctx context.Context, role *model.Role) error {
	role.IsSystem = false
	if err := s.RoleRepo.Create(role); err != nil {
		return err
	}
	return s.Cache.Invalidate(ctx, cache.RoleList())
}

func (s *RBACService) UpdateRole(ctx context.Context, id string, name, description *string) (*model.Role, error) {
	role, err := s.GetRole(id)
	if err != nil {
		return nil, err
	}
	if role.IsSystem {
		return nil, util.ErrSystemImmutable
	}

	if name != nil {
		role.Name = *name
	}
	if description != nil {
		role.Description = *description
	}

	if err := s.RoleRepo.Update(role); err != nil {
		return nil, err
	}
	return role, s.Cache.Invalidate(ctx, cache.RoleList())
}

func (s *RBACService) DeleteRole(ctx context.Context, id string) error {
	role, err := s.GetRole(id)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return util.ErrSystemImmutable
	}

	inUse, err := s.UserRepo.CountByRole(id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return util.ErrRoleInUse
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", role.ID).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Role{}, "id = ?", role.ID).Error
	})
	if err != nil {
		return err
	}
	return s.Cache.Invalidate(ctx, cache.RoleList())
}

// SetRolePermissions 整组替换角色权限集。
// 任一 id 不存在即整体拒绝；系统角色的权限集同样不可改。
func (s *RBACService) SetRolePermissions(ctx context.Context, roleID string, permissionIDs []string) (*model.Role, error) {
	role, err := s.GetRole(roleID)
	if err != nil {
		return nil, err
	}
	if role.IsSystem {
		return nil, util.ErrSystemImmutable
	}

	perms, err := s.PermissionRepo.FindByIDs(permissionIDs)
	if err != nil {
		return nil, err
	}
	if len(perms) != len(permissionIDs) {
		return nil, util.ErrPermissionNotFound
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", role.ID).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		for _, p := range perms {
			if err := tx.Create(&model.RolePermission{RoleID: role.ID, PermissionID: p.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.Cache.Invalidate(ctx, cache.RoleList()); err != nil {
		return nil, err
	}
	return s.GetRole(roleID)
}

// ---- Permission ----

func (s *RBACService) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	key := cache.PermissionList()
	var cached []model.Permission
	if hit, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	permissions, err := s.PermissionRepo.FindAll()
	if err != nil {
		return nil, err
	}
	s.Cache.SetJSON(ctx, key, permissions)
	return permissions, nil
}

func (s *RBACService) CreatePermission(ctx context.Context, permission *model.Permission) error {
	permission.IsSystem = false
	if err := s.PermissionRepo.Create(permission); err != nil {
		return err
	}
	return s.Cache.Invalidate(ctx, cache.PermissionList())
}

func (s *RBACService) UpdatePermission(ctx context.Context, id string, code, description *string) (*model.Permission, error) {
	permission, err := s.PermissionRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrPermissionNotFound
	}
	if err != nil {
		return nil, err
	}
	if permission.IsSystem {
		return nil, util.ErrSystemImmutable
	}

	if code != nil {
		permission.Code = *code
	}
	if description != nil {
		permission.Description = *description
	}

	if err := s.PermissionRepo.Update(permission); err != nil {
		return nil, err
	}
	return permission, s.Cache.Invalidate(ctx, cache.PermissionList())
}

func (s *RBACService) DeletePermission(ctx context.Context, id string) error {
	permission, err := s.PermissionRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return util.ErrPermissionNotFound
	}
	if err != nil {
		return err
	}
	if permission.IsSystem {
		return util.ErrSystemImmutable
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("permission_id = ?", permission.ID).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Permission{}, "id = ?", permission.ID).Error
	})
	if err != nil {
		return err
	}
	return s.Cache.Invalidate(ctx, cache.PermissionList(), cache.RoleList())
}

// HasPermission 判断角色是否持有权限码
func (s *RBACService) HasPermission(roleID, code string) (bool, error) {
	role, err := s.GetRole(roleID)
	if err != nil {
		return false, err
	}
	for _, rp := range role.RolePermissions {
		if rp.Permission != nil && rp.Permission.Code == code {
			return true, nil
		}
	}
	return false, nil
}
