package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sports-program/backend/internal/model"
	pkgerrors "sports-program/backend/pkg/errors"
)

// ClassRepository 课程班数据访问接口
type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	GetByID(ctx context.Context, id string) (*model.Class, error)
	// GetByIDForUpdate 使用 SELECT ... FOR UPDATE 行级锁读取课程班，需在事务内调用
	GetByIDForUpdate(ctx context.Context, id string) (*model.Class, error)
	// List 按运动项目名称关键字过滤（不区分大小写），关键字为空时返回全部
	List(ctx context.Context, sportKeyword string) ([]model.Class, error)
	ListWithoutTrainer(ctx context.Context) ([]model.Class, error)
	Update(ctx context.Context, class *model.Class) error
	// AssignTrainer 仅当课程班尚无教练时写入 trainer_id，返回是否写入成功
	AssignTrainer(ctx context.Context, classID, trainerID string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type classRepo struct {
	db *gorm.DB
}

// NewClassRepo 创建 ClassRepository 实例
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func orderedSchedules(db *gorm.DB) *gorm.DB {
	return db.Order("day_of_week ASC, start_time ASC")
}

func (r *classRepo) Create(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepo) GetByID(ctx context.Context, id string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Preload("Sport").
		Preload("Trainer").
		Preload("Schedules", orderedSchedules).
		Where("class_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("class_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) List(ctx context.Context, sportKeyword string) ([]model.Class, error) {
	var classes []model.Class

	db := r.db.WithContext(ctx).
		Preload("Sport").
		Preload("Schedules", orderedSchedules)

	if kw := strings.TrimSpace(sportKeyword); kw != "" {
		db = db.Joins("JOIN sports ON sports.sport_id = classes.sport_id AND sports.deleted_at IS NULL").
			Where("sports.name ILIKE ?", "%"+kw+"%")
	}

	err := db.Order("classes.created_at DESC").Find(&classes).Error
	return classes, err
}

func (r *classRepo) ListWithoutTrainer(ctx context.Context) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Preload("Sport").
		Preload("Schedules", orderedSchedules).
		Where("trainer_id IS NULL").
		Order("created_at DESC").
		Find(&classes).Error
	return classes, err
}

func (r *classRepo) Update(ctx context.Context, class *model.Class) error {
	oldVersion := class.Version
	result := r.db.WithContext(ctx).
		Model(&model.Class{}).
		Where("class_id = ? AND version = ?", class.ClassID, oldVersion).
		Updates(map[string]interface{}{
			"name":         class.Name,
			"description":  class.Description,
			"duration":     class.Duration,
			"max_capacity": class.MaxCapacity,
			"is_active":    class.IsActive,
			"sport_id":     class.SportID,
			"trainer_id":   class.TrainerID,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	class.Version = oldVersion + 1
	return nil
}

func (r *classRepo) AssignTrainer(ctx context.Context, classID, trainerID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Class{}).
		Where("class_id = ? AND trainer_id IS NULL", classID).
		Updates(map[string]interface{}{
			"trainer_id": trainerID,
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *classRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("class_id = ?", id).
		Delete(&model.Class{}).Error
}
