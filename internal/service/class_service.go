package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sports-program/backend/config"
	"sports-program/backend/internal/dto"
	"sports-program/backend/internal/model"
	"sports-program/backend/internal/repository"
	pkgerrors "sports-program/backend/pkg/errors"
)

// ── 课程班模块业务错误 ──

var (
	ErrClassNotFound         = pkgerrors.New(pkgerrors.ErrNotFound, "课程班不存在")
	ErrClassSportNotFound    = pkgerrors.New(pkgerrors.ErrBadRequest, "指定的运动项目不存在")
	ErrTrainerNotFound       = pkgerrors.New(pkgerrors.ErrBadRequest, "指定的教练不存在")
	ErrNotATrainer           = pkgerrors.New(pkgerrors.ErrBadRequest, "指定用户不是教练")
	ErrInvalidCapacity       = pkgerrors.New(pkgerrors.ErrBadRequest, "课程班容量超出允许范围")
	ErrCapacityBelowEnrolled = pkgerrors.New(pkgerrors.ErrBadRequest, "课程班容量不能低于已通过的学员人数")

	ErrScheduleNotFound     = pkgerrors.New(pkgerrors.ErrNotFound, "时间表不存在")
	ErrInvalidTimeFormat    = pkgerrors.New(pkgerrors.ErrBadRequest, "时间格式应为 HH:MM 或 HH:MM:SS")
	ErrInvalidScheduleTime  = pkgerrors.New(pkgerrors.ErrBadRequest, "开始时间必须早于结束时间")
	ErrInvalidDayOfWeek     = pkgerrors.New(pkgerrors.ErrBadRequest, "day_of_week 取值应为 0-6")
	ErrScheduleAccessDenied = pkgerrors.New(pkgerrors.ErrForbidden, "只能管理自己所带课程班的时间表")
)

// ClassService 课程班与时间表业务接口
type ClassService interface {
	Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ClassResponse, error)
	List(ctx context.Context, req *dto.ClassListRequest) ([]dto.ClassResponse, error)
	ListAvailableForTrainers(ctx context.Context) ([]dto.ClassResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateClassRequest) (*dto.ClassResponse, error)
	Delete(ctx context.Context, id string) error

	CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest, caller Caller) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	ListSchedules(ctx context.Context, classID string) ([]dto.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, id string, req *dto.UpdateScheduleRequest, caller Caller) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, id string, caller Caller) error
}

type classService struct {
	cfg    *config.ClassConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassService 创建 ClassService 实例
func NewClassService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ClassService {
	return &classService{cfg: &cfg.Class, repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *classService) Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	if err := s.ensureSport(ctx, req.SportID); err != nil {
		return nil, err
	}

	class := &model.Class{
		Name:        req.Name,
		Description: req.Description,
		Duration:    s.cfg.DefaultDuration,
		MaxCapacity: s.cfg.DefaultMaxCapacity,
		IsActive:    true,
		SportID:     req.SportID,
	}
	if req.Duration != nil {
		class.Duration = *req.Duration
	}
	if req.MaxCapacity != nil {
		class.MaxCapacity = *req.MaxCapacity
	}
	if req.IsActive != nil {
		class.IsActive = *req.IsActive
	}
	if err := s.checkCapacityRange(class.MaxCapacity); err != nil {
		return nil, err
	}

	if req.TrainerID != nil && *req.TrainerID != "" {
		if err := s.ensureTrainer(ctx, *req.TrainerID); err != nil {
			return nil, err
		}
		class.TrainerID = req.TrainerID
	}

	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.logger.Error("创建课程班失败", zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, class.ClassID)
}

// ────────────────────── 查询 ──────────────────────

func (s *classService) GetByID(ctx context.Context, id string) (*dto.ClassResponse, error) {
	class, err := s.getClass(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClassResponse(class), nil
}

// List 按运动项目名称关键字过滤
func (s *classService) List(ctx context.Context, req *dto.ClassListRequest) ([]dto.ClassResponse, error) {
	classes, err := s.repo.Class.List(ctx, req.Sport)
	if err != nil {
		s.logger.Error("列出课程班失败", zap.String("sport", req.Sport), zap.Error(err))
		return nil, err
	}
	return toClassResponses(classes), nil
}

// ListAvailableForTrainers 尚未分配教练的课程班
func (s *classService) ListAvailableForTrainers(ctx context.Context) ([]dto.ClassResponse, error) {
	classes, err := s.repo.Class.ListWithoutTrainer(ctx)
	if err != nil {
		s.logger.Error("列出待分配教练的课程班失败", zap.Error(err))
		return nil, err
	}
	return toClassResponses(classes), nil
}

// ────────────────────── Update ──────────────────────

// Update 与审批共用课程班行锁，容量下调时核对已通过人数
func (s *classService) Update(ctx context.Context, id string, req *dto.UpdateClassRequest) (*dto.ClassResponse, error) {
	if req.SportID != nil {
		if err := s.ensureSport(ctx, *req.SportID); err != nil {
			return nil, err
		}
	}
	if req.TrainerID != nil && *req.TrainerID != "" {
		if err := s.ensureTrainer(ctx, *req.TrainerID); err != nil {
			return nil, err
		}
	}
	if req.MaxCapacity != nil {
		if err := s.checkCapacityRange(*req.MaxCapacity); err != nil {
			return nil, err
		}
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		class, err := tx.Class.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			s.logger.Error("锁定课程班失败", zap.String("id", id), zap.Error(err))
			return err
		}

		if req.Version != nil && *req.Version != class.Version {
			return pkgerrors.ErrOptimisticLock
		}

		if req.MaxCapacity != nil && *req.MaxCapacity < class.MaxCapacity {
			approved, err := tx.Application.CountByClass(ctx, id,
				model.ApplicationTypeStudentEnrollment, model.ApplicationStatusApproved)
			if err != nil {
				s.logger.Error("统计已通过申请失败", zap.String("class_id", id), zap.Error(err))
				return err
			}
			if approved > int64(*req.MaxCapacity) {
				return ErrCapacityBelowEnrolled
			}
		}

		applyClassUpdate(class, req)

		if err := tx.Class.Update(ctx, class); err != nil {
			if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
				s.logger.Error("更新课程班失败", zap.String("id", id), zap.Error(err))
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *classService) Delete(ctx context.Context, id string) error {
	if _, err := s.getClass(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Class.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程班失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 时间表 ──────────────────────

func (s *classService) CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest, caller Caller) (*dto.ScheduleResponse, error) {
	class, err := s.getClass(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if !canManageSchedule(caller, class) {
		return nil, ErrScheduleAccessDenied
	}

	if req.DayOfWeek == nil {
		return nil, ErrInvalidDayOfWeek
	}
	schedule := &model.Schedule{ClassID: class.ClassID}
	if err := applyScheduleTimes(schedule, *req.DayOfWeek, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("创建时间表失败", zap.String("class_id", class.ClassID), zap.Error(err))
		return nil, err
	}

	resp := toScheduleResponse(schedule)
	return &resp, nil
}

func (s *classService) GetSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	schedule, err := s.getSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toScheduleResponse(schedule)
	return &resp, nil
}

func (s *classService) ListSchedules(ctx context.Context, classID string) ([]dto.ScheduleResponse, error) {
	if _, err := s.getClass(ctx, classID); err != nil {
		return nil, err
	}

	schedules, err := s.repo.Schedule.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("列出时间表失败", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, toScheduleResponse(&schedules[i]))
	}
	return result, nil
}

func (s *classService) UpdateSchedule(ctx context.Context, id string, req *dto.UpdateScheduleRequest, caller Caller) (*dto.ScheduleResponse, error) {
	schedule, err := s.getSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	class, err := s.getClass(ctx, schedule.ClassID)
	if err != nil {
		return nil, err
	}
	if !canManageSchedule(caller, class) {
		return nil, ErrScheduleAccessDenied
	}

	day, start, end := schedule.DayOfWeek, schedule.StartTime, schedule.EndTime
	if req.DayOfWeek != nil {
		day = *req.DayOfWeek
	}
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if err := applyScheduleTimes(schedule, day, start, end); err != nil {
		return nil, err
	}

	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		s.logger.Error("更新时间表失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toScheduleResponse(schedule)
	return &resp, nil
}

func (s *classService) DeleteSchedule(ctx context.Context, id string, caller Caller) error {
	schedule, err := s.getSchedule(ctx, id)
	if err != nil {
		return err
	}
	class, err := s.getClass(ctx, schedule.ClassID)
	if err != nil {
		return err
	}
	if !canManageSchedule(caller, class) {
		return ErrScheduleAccessDenied
	}

	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		s.logger.Error("删除时间表失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *classService) getClass(ctx context.Context, id string) (*model.Class, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询课程班失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return class, nil
}

func (s *classService) getSchedule(ctx context.Context, id string) (*model.Schedule, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询时间表失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return schedule, nil
}

func (s *classService) ensureSport(ctx context.Context, sportID string) error {
	if _, err := s.repo.Sport.GetByID(ctx, sportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassSportNotFound
		}
		s.logger.Error("查询运动项目失败", zap.String("sport_id", sportID), zap.Error(err))
		return err
	}
	return nil
}

func (s *classService) ensureTrainer(ctx context.Context, trainerID string) error {
	user, err := s.repo.User.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrainerNotFound
		}
		s.logger.Error("查询教练失败", zap.String("trainer_id", trainerID), zap.Error(err))
		return err
	}
	if user.Role != model.RoleTrainer {
		return ErrNotATrainer
	}
	return nil
}

func (s *classService) checkCapacityRange(capacity int) error {
	if capacity < 1 || capacity > s.cfg.MaxCapacityLimit {
		return ErrInvalidCapacity
	}
	return nil
}

func applyClassUpdate(class *model.Class, req *dto.UpdateClassRequest) {
	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Description != nil {
		class.Description = req.Description
	}
	if req.Duration != nil {
		class.Duration = *req.Duration
	}
	if req.MaxCapacity != nil {
		class.MaxCapacity = *req.MaxCapacity
	}
	if req.IsActive != nil {
		class.IsActive = *req.IsActive
	}
	if req.SportID != nil {
		class.SportID = *req.SportID
	}
	if req.TrainerID != nil {
		if *req.TrainerID == "" {
			class.TrainerID = nil
		} else {
			trainerID := *req.TrainerID
			class.TrainerID = &trainerID
		}
	}
}

// applyScheduleTimes 校验并写入星期与起止时间，时间规范化为 HH:MM:SS
func applyScheduleTimes(schedule *model.Schedule, day int, start, end string) error {
	if day < 0 || day > 6 {
		return ErrInvalidDayOfWeek
	}
	startNorm, ok := dto.NormalizeClockTime(start)
	if !ok {
		return ErrInvalidTimeFormat
	}
	endNorm, ok := dto.NormalizeClockTime(end)
	if !ok {
		return ErrInvalidTimeFormat
	}
	// HH:MM:SS 定长，字典序即时间先后
	if startNorm >= endNorm {
		return ErrInvalidScheduleTime
	}

	schedule.DayOfWeek = day
	schedule.StartTime = startNorm
	schedule.EndTime = endNorm
	return nil
}

func canManageSchedule(caller Caller, class *model.Class) bool {
	return caller.IsAdmin() || (caller.IsTrainer() && class.IsTrainedBy(caller.UserID))
}

func toClassResponses(classes []model.Class) []dto.ClassResponse {
	result := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, *toClassResponse(&classes[i]))
	}
	return result
}
