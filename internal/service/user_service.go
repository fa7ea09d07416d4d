package service

import (
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/repository"
	"lms_admin_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	RoleRepo *repository.RoleRepository
}

func NewUserService(userRepo *repository.UserRepository, roleRepo *repository.RoleRepository) *UserService {
	return &UserService{UserRepo: userRepo, RoleRepo: roleRepo}
}

func (s *UserService) List(search string, page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.List(search, page, limit)
}

func (s *UserService) Get(id string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) Create(user *model.User, password string) error {
	if _, err := s.UserRepo.FindByEmail(user.Email); err == nil {
		return util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	if user.RoleID != "" {
		if _, err := s.RoleRepo.FindByID(user.RoleID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrRoleNotFound
			}
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	return s.UserRepo.Create(user)
}

// UserUpdate 可选字段，nil 表示不修改
type UserUpdate struct {
	Name     *string
	RoleID   *string
	IsActive *bool
	Password *string
}

// Update 编辑用户。actorID 用于拦截自我禁用。
func (s *UserService) Update(id, actorID string, in UserUpdate) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.RoleID != nil {
		if _, err := s.RoleRepo.FindByID(*in.RoleID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, util.ErrRoleNotFound
			}
			return nil, err
		}
		user.RoleID = *in.RoleID
	}
	if in.IsActive != nil {
		if !*in.IsActive && id == actorID {
			return nil, util.ErrSelfDeactivate
		}
		user.IsActive = *in.IsActive
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(id, actorID string) error {
	if id == actorID {
		return util.ErrSelfDeactivate
	}
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.UserRepo.Delete(id)
}
