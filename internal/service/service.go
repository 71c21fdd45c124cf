package service

import (
	"go.uber.org/zap"

	"sports-program/backend/config"
	"sports-program/backend/internal/model"
	"sports-program/backend/internal/repository"
	"sports-program/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	User        UserService
	Sport       SportService
	Class       ClassService
	Application ApplicationService
	Export      ExportService
}

// NewService 创建 Service 聚合
// blacklist 为 nil 时登出与刷新不做 Token 吊销
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		User:        NewUserService(cfg, repo, logger),
		Sport:       NewSportService(repo, logger),
		Class:       NewClassService(cfg, repo, logger),
		Application: NewApplicationService(repo, logger),
		Export:      NewExportService(repo, logger),
	}
}

// Caller 经鉴权中间件解析出的调用者身份
type Caller struct {
	UserID string
	Role   string
}

// IsAdmin 是否管理员
func (c Caller) IsAdmin() bool { return c.Role == model.RoleAdmin }

// IsTrainer 是否教练
func (c Caller) IsTrainer() bool { return c.Role == model.RoleTrainer }

// IsStudent 是否学员
func (c Caller) IsStudent() bool { return c.Role == model.RoleStudent }
