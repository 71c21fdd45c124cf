package repository

import (
	"context"

	"gorm.io/gorm"

	"sports-program/backend/internal/model"
)

// SportRepository 运动项目数据访问接口
type SportRepository interface {
	Create(ctx context.Context, sport *model.Sport) error
	GetByID(ctx context.Context, id string) (*model.Sport, error)
	GetByName(ctx context.Context, name string) (*model.Sport, error)
	List(ctx context.Context) ([]model.Sport, error)
	Update(ctx context.Context, sport *model.Sport) error
	Delete(ctx context.Context, id string) error
}

type sportRepo struct {
	db *gorm.DB
}

// NewSportRepo 创建 SportRepository 实例
func NewSportRepo(db *gorm.DB) SportRepository {
	return &sportRepo{db: db}
}

func (r *sportRepo) Create(ctx context.Context, sport *model.Sport) error {
	return r.db.WithContext(ctx).Create(sport).Error
}

func (r *sportRepo) GetByID(ctx context.Context, id string) (*model.Sport, error) {
	var sport model.Sport
	if err := r.db.WithContext(ctx).Where("sport_id = ?", id).First(&sport).Error; err != nil {
		return nil, err
	}
	return &sport, nil
}

func (r *sportRepo) GetByName(ctx context.Context, name string) (*model.Sport, error) {
	var sport model.Sport
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&sport).Error; err != nil {
		return nil, err
	}
	return &sport, nil
}

func (r *sportRepo) List(ctx context.Context) ([]model.Sport, error) {
	var sports []model.Sport
	err := r.db.WithContext(ctx).Order("name ASC").Find(&sports).Error
	return sports, err
}

func (r *sportRepo) Update(ctx context.Context, sport *model.Sport) error {
	return r.db.WithContext(ctx).
		Model(&model.Sport{}).
		Where("sport_id = ?", sport.SportID).
		Updates(map[string]interface{}{
			"name":        sport.Name,
			"description": sport.Description,
			"is_active":   sport.IsActive,
		}).Error
}

func (r *sportRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("sport_id = ?", id).
		Delete(&model.Sport{}).Error
}
