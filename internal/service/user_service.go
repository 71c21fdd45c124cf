package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sports-program/backend/config"
	"sports-program/backend/internal/dto"
	"sports-program/backend/internal/model"
	"sports-program/backend/internal/repository"
	pkgerrors "sports-program/backend/pkg/errors"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound     = pkgerrors.New(pkgerrors.ErrNotFound, "用户不存在")
	ErrEmailTaken       = pkgerrors.New(pkgerrors.ErrBadRequest, "该邮箱已被注册")
	ErrRoleChangeDenied = pkgerrors.New(pkgerrors.ErrBadRequest, "不能通过此接口修改角色")
	ErrInvalidRole      = pkgerrors.New(pkgerrors.ErrBadRequest, "角色无效")
	ErrInvalidDate      = pkgerrors.New(pkgerrors.ErrBadRequest, "日期格式应为 YYYY-MM-DD")
	ErrUserAccessDenied = pkgerrors.New(pkgerrors.ErrForbidden, "只能查看或修改自己的账户")
)

// UserService 用户业务接口
type UserService interface {
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	GetByID(ctx context.Context, id string, caller Caller) (*dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, caller Caller) (*dto.UserResponse, error)
	UpdateRole(ctx context.Context, id string, req *dto.UpdateRoleRequest) (*dto.UserResponse, error)
}

type userService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{cfg: cfg, repo: repo, logger: logger}
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) GetByID(ctx context.Context, id string, caller Caller) (*dto.UserResponse, error) {
	if !caller.IsAdmin() && caller.UserID != id {
		return nil, ErrUserAccessDenied
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Update 本人或管理员修改资料；角色不可在此修改，密码重新哈希
func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, caller Caller) (*dto.UserResponse, error) {
	if !caller.IsAdmin() && caller.UserID != id {
		return nil, ErrUserAccessDenied
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil && *req.Role != user.Role {
		return nil, ErrRoleChangeDenied
	}

	if req.Email != nil && !strings.EqualFold(*req.Email, user.Email) {
		existing, err := s.repo.User.GetByEmail(ctx, *req.Email)
		if err == nil && existing.UserID != user.UserID {
			return nil, ErrEmailTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询邮箱失败", zap.Error(err))
			return nil, err
		}
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.About != nil {
		user.About = req.About
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDate
		}
		user.DateOfBirth = dob
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password, s.cfg.Auth.BcryptCost)
		if err != nil {
			s.logger.Error("密码哈希失败", zap.Error(err))
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateRole(ctx context.Context, id string, req *dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if !model.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.User.UpdateRole(ctx, id, req.Role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("修改角色失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	s.logger.Info("用户角色已变更",
		zap.String("user_id", id),
		zap.String("from", user.Role),
		zap.String("to", req.Role),
	)

	user.Role = req.Role
	resp := toUserResponse(user)
	return &resp, nil
}

// ── 内部辅助方法 ──

func (s *userService) getUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func hashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
