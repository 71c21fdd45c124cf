package repository

import (
	"context"

	"gorm.io/gorm"

	"sports-program/backend/internal/model"
)

// ApplicationRepository 报名申请数据访问接口
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	// GetByID 预加载申请人与课程班
	GetByID(ctx context.Context, id string) (*model.Application, error)
	// FindByUserClassType 查找同一 (用户, 课程班, 类型) 的申请，不区分状态
	FindByUserClassType(ctx context.Context, userID, classID, appType string) (*model.Application, error)
	List(ctx context.Context) ([]model.Application, error)
	ListByClass(ctx context.Context, classID string) ([]model.Application, error)
	ListByUser(ctx context.Context, userID string) ([]model.Application, error)
	CountByClass(ctx context.Context, classID, appType, status string) (int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// RejectPendingTrainerApplications 拒绝同班其他待审教练申请，返回受影响行数
	RejectPendingTrainerApplications(ctx context.Context, classID, exceptID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo 创建 ApplicationRepository 实例
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Class").
		Preload("Class.Sport").
		Where("application_id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) FindByUserClassType(ctx context.Context, userID, classID, appType string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND class_id = ? AND type = ?", userID, classID, appType).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) List(ctx context.Context) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Class").
		Order("application_date DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) ListByClass(ctx context.Context, classID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("class_id = ?", classID).
		Order("application_date DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Class.Sport").
		Where("user_id = ?", userID).
		Order("application_date DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) CountByClass(ctx context.Context, classID, appType, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("class_id = ? AND type = ? AND status = ?", classID, appType, status).
		Count(&count).Error
	return count, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("application_id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *applicationRepo) RejectPendingTrainerApplications(ctx context.Context, classID, exceptID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("class_id = ? AND type = ? AND status = ? AND application_id <> ?",
			classID, model.ApplicationTypeTrainerAssignment, model.ApplicationStatusPending, exceptID).
		Update("status", model.ApplicationStatusRejected)
	return result.RowsAffected, result.Error
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("application_id = ?", id).
		Delete(&model.Application{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
