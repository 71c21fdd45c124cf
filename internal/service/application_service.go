package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sports-program/backend/internal/dto"
	"sports-program/backend/internal/model"
	"sports-program/backend/internal/repository"
	pkgerrors "sports-program/backend/pkg/errors"
	"sports-program/backend/pkg/metrics"
)

// ── 报名申请模块业务错误 ──

var (
	ErrApplicationNotFound      = pkgerrors.New(pkgerrors.ErrNotFound, "申请不存在")
	ErrAlreadyApplied           = pkgerrors.New(pkgerrors.ErrBadRequest, "已提交过该课程班的申请")
	ErrTrainerAlreadyAssigned   = pkgerrors.New(pkgerrors.ErrBadRequest, "该课程班已分配教练")
	ErrClassFull                = pkgerrors.New(pkgerrors.ErrBadRequest, "该课程班已达最大容量")
	ErrInvalidApplicationStatus = pkgerrors.New(pkgerrors.ErrBadRequest, "申请状态只能为 approved 或 rejected")
	ErrApplicationNotPending    = pkgerrors.New(pkgerrors.ErrBadRequest, "只能删除待审批的申请")
	ErrApplicationAccessDenied  = pkgerrors.New(pkgerrors.ErrForbidden, "无权访问该申请")
)

// applicationTypeByRole 角色强制决定申请类型，未列出的角色一律为入班申请
var applicationTypeByRole = map[string]string{
	model.RoleTrainer: model.ApplicationTypeTrainerAssignment,
}

func effectiveApplicationType(role string) string {
	if t, ok := applicationTypeByRole[role]; ok {
		return t
	}
	return model.ApplicationTypeStudentEnrollment
}

// ApplicationService 报名申请业务接口
type ApplicationService interface {
	Create(ctx context.Context, userID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error)
	List(ctx context.Context) ([]dto.ApplicationResponse, error)
	ListByClass(ctx context.Context, classID string, caller Caller) ([]dto.ApplicationResponse, error)
	ListByUser(ctx context.Context, userID string) ([]dto.ApplicationResponse, error)
	GetByID(ctx context.Context, id string, caller Caller) (*dto.ApplicationResponse, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

type applicationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewApplicationService 创建 ApplicationService 实例
func NewApplicationService(repo *repository.Repository, logger *zap.Logger) ApplicationService {
	return &applicationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 提交申请
// 类型由申请人角色决定；申请时不检查容量，容量只在审批时校验
func (s *applicationService) Create(ctx context.Context, userID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询课程班失败", zap.String("class_id", req.ClassID), zap.Error(err))
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	appType := effectiveApplicationType(user.Role)

	if appType == model.ApplicationTypeTrainerAssignment && class.HasTrainer() {
		return nil, ErrTrainerAlreadyAssigned
	}

	// 同一 (用户, 课程班, 类型) 只允许一条申请，已拒绝的申请同样占位
	_, err = s.repo.Application.FindByUserClassType(ctx, user.UserID, class.ClassID, appType)
	if err == nil {
		return nil, ErrAlreadyApplied
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询已有申请失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	app := &model.Application{
		UserID:          user.UserID,
		ClassID:         class.ClassID,
		Type:            appType,
		Status:          model.ApplicationStatusPending,
		ApplicationDate: time.Now().UTC(),
	}
	if err := s.repo.Application.Create(ctx, app); err != nil {
		s.logger.Error("创建申请失败", zap.String("user_id", userID), zap.String("class_id", class.ClassID), zap.Error(err))
		return nil, err
	}
	metrics.ApplicationCreated(appType)

	app.User = user
	app.Class = class
	return toApplicationResponse(app), nil
}

// ────────────────────── UpdateStatus ──────────────────────

// UpdateStatus 审批申请
// 读取、校验、写入在同一事务内完成，课程班行锁串行化同班的并发审批
func (s *applicationService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	status := req.Status
	if status != model.ApplicationStatusApproved && status != model.ApplicationStatusRejected {
		return nil, ErrInvalidApplicationStatus
	}

	var (
		appType      string
		autoRejected int64
	)

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		app, err := tx.Application.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			s.logger.Error("查询申请失败", zap.String("id", id), zap.Error(err))
			return err
		}
		appType = app.Type

		class, err := tx.Class.GetByIDForUpdate(ctx, app.ClassID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			s.logger.Error("锁定课程班失败", zap.String("class_id", app.ClassID), zap.Error(err))
			return err
		}

		if status == model.ApplicationStatusApproved {
			switch app.Type {
			case model.ApplicationTypeTrainerAssignment:
				if autoRejected, err = s.approveTrainer(ctx, tx, app, class); err != nil {
					return err
				}
			case model.ApplicationTypeStudentEnrollment:
				if err := s.checkCapacity(ctx, tx, class); err != nil {
					return err
				}
			}
		}

		if err := tx.Application.UpdateStatus(ctx, app.ApplicationID, status); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			s.logger.Error("更新申请状态失败", zap.String("id", id), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ApplicationDecided(appType, status)
	if autoRejected > 0 {
		metrics.ApplicationsAutoRejected(autoRejected)
		s.logger.Info("教练分配完成，已自动拒绝其他教练申请",
			zap.String("application_id", id),
			zap.Int64("auto_rejected", autoRejected),
		)
	}

	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("重新加载申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toApplicationResponse(app), nil
}

// approveTrainer 写入课程班教练并拒绝同班其他待审教练申请，返回自动拒绝数量
func (s *applicationService) approveTrainer(ctx context.Context, tx *repository.Repository, app *model.Application, class *model.Class) (int64, error) {
	if class.HasTrainer() {
		return 0, ErrTrainerAlreadyAssigned
	}

	assigned, err := tx.Class.AssignTrainer(ctx, class.ClassID, app.UserID)
	if err != nil {
		s.logger.Error("分配教练失败", zap.String("class_id", class.ClassID), zap.Error(err))
		return 0, err
	}
	if !assigned {
		return 0, ErrTrainerAlreadyAssigned
	}

	n, err := tx.Application.RejectPendingTrainerApplications(ctx, class.ClassID, app.ApplicationID)
	if err != nil {
		s.logger.Error("拒绝其他教练申请失败", zap.String("class_id", class.ClassID), zap.Error(err))
		return 0, err
	}
	return n, nil
}

// checkCapacity 已通过的入班申请数达到上限时拒绝
func (s *applicationService) checkCapacity(ctx context.Context, tx *repository.Repository, class *model.Class) error {
	approved, err := tx.Application.CountByClass(ctx, class.ClassID,
		model.ApplicationTypeStudentEnrollment, model.ApplicationStatusApproved)
	if err != nil {
		s.logger.Error("统计已通过申请失败", zap.String("class_id", class.ClassID), zap.Error(err))
		return err
	}
	if approved >= int64(class.MaxCapacity) {
		return ErrClassFull
	}
	return nil
}

// ────────────────────── 查询 ──────────────────────

func (s *applicationService) List(ctx context.Context) ([]dto.ApplicationResponse, error) {
	apps, err := s.repo.Application.List(ctx)
	if err != nil {
		s.logger.Error("列出申请失败", zap.Error(err))
		return nil, err
	}
	return toApplicationResponses(apps), nil
}

// ListByClass 教练只能查看自己所带课程班的申请
func (s *applicationService) ListByClass(ctx context.Context, classID string, caller Caller) ([]dto.ApplicationResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询课程班失败", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}

	if !caller.IsAdmin() && !(caller.IsTrainer() && class.IsTrainedBy(caller.UserID)) {
		return nil, ErrApplicationAccessDenied
	}

	apps, err := s.repo.Application.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("列出课程班申请失败", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}
	return toApplicationResponses(apps), nil
}

func (s *applicationService) ListByUser(ctx context.Context, userID string) ([]dto.ApplicationResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	apps, err := s.repo.Application.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出用户申请失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toApplicationResponses(apps), nil
}

// GetByID 学员只能查看自己的申请；教练可查看自己的申请和所带课程班的申请
func (s *applicationService) GetByID(ctx context.Context, id string, caller Caller) (*dto.ApplicationResponse, error) {
	app, err := s.getApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canViewApplication(caller, app) {
		return nil, ErrApplicationAccessDenied
	}
	return toApplicationResponse(app), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 管理员可删除任意申请，其他用户只能删除自己待审批的申请
func (s *applicationService) Delete(ctx context.Context, id string, caller Caller) error {
	app, err := s.getApplication(ctx, id)
	if err != nil {
		return err
	}

	if !caller.IsAdmin() {
		if app.UserID != caller.UserID {
			return ErrApplicationAccessDenied
		}
		if !app.IsPending() {
			return ErrApplicationNotPending
		}
	}

	if err := s.repo.Application.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		s.logger.Error("删除申请失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *applicationService) getApplication(ctx context.Context, id string) (*model.Application, error) {
	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("查询申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return app, nil
}

func canViewApplication(caller Caller, app *model.Application) bool {
	switch {
	case caller.IsAdmin():
		return true
	case app.UserID == caller.UserID:
		return true
	case caller.IsTrainer():
		return app.Class != nil && app.Class.IsTrainedBy(caller.UserID)
	}
	return false
}
