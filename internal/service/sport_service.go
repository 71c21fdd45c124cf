package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sports-program/backend/internal/dto"
	"sports-program/backend/internal/model"
	"sports-program/backend/internal/repository"
	pkgerrors "sports-program/backend/pkg/errors"
)

// ── 运动项目模块业务错误 ──

var (
	ErrSportNotFound  = pkgerrors.New(pkgerrors.ErrNotFound, "运动项目不存在")
	ErrSportNameTaken = pkgerrors.New(pkgerrors.ErrBadRequest, "运动项目名称已存在")
)

// SportService 运动项目业务接口
type SportService interface {
	Create(ctx context.Context, req *dto.CreateSportRequest) (*dto.SportResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SportResponse, error)
	List(ctx context.Context) ([]dto.SportResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSportRequest) (*dto.SportResponse, error)
	Delete(ctx context.Context, id string) error
}

type sportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSportService 创建 SportService 实例
func NewSportService(repo *repository.Repository, logger *zap.Logger) SportService {
	return &sportService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *sportService) Create(ctx context.Context, req *dto.CreateSportRequest) (*dto.SportResponse, error) {
	if err := s.ensureNameFree(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	sport := &model.Sport{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		sport.IsActive = *req.IsActive
	}

	if err := s.repo.Sport.Create(ctx, sport); err != nil {
		s.logger.Error("创建运动项目失败", zap.Error(err))
		return nil, err
	}

	return s.toSportResponse(sport), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *sportService) GetByID(ctx context.Context, id string) (*dto.SportResponse, error) {
	sport, err := s.getSport(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toSportResponse(sport), nil
}

// ────────────────────── List ──────────────────────

func (s *sportService) List(ctx context.Context) ([]dto.SportResponse, error) {
	sports, err := s.repo.Sport.List(ctx)
	if err != nil {
		s.logger.Error("列出运动项目失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SportResponse, 0, len(sports))
	for i := range sports {
		result = append(result, *s.toSportResponse(&sports[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *sportService) Update(ctx context.Context, id string, req *dto.UpdateSportRequest) (*dto.SportResponse, error) {
	sport, err := s.getSport(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != sport.Name {
		if err := s.ensureNameFree(ctx, *req.Name, sport.SportID); err != nil {
			return nil, err
		}
		sport.Name = *req.Name
	}
	if req.Description != nil {
		sport.Description = req.Description
	}
	if req.IsActive != nil {
		sport.IsActive = *req.IsActive
	}

	if err := s.repo.Sport.Update(ctx, sport); err != nil {
		s.logger.Error("更新运动项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toSportResponse(sport), nil
}

// ────────────────────── Delete ──────────────────────

func (s *sportService) Delete(ctx context.Context, id string) error {
	if _, err := s.getSport(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Sport.Delete(ctx, id); err != nil {
		s.logger.Error("删除运动项目失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *sportService) getSport(ctx context.Context, id string) (*model.Sport, error) {
	sport, err := s.repo.Sport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSportNotFound
		}
		s.logger.Error("查询运动项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return sport, nil
}

// ensureNameFree 名称已被其他运动项目占用时返回 ErrSportNameTaken
func (s *sportService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.Sport.GetByName(ctx, name)
	if err == nil && existing.SportID != selfID {
		return ErrSportNameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询运动项目名称失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *sportService) toSportResponse(sport *model.Sport) *dto.SportResponse {
	return &dto.SportResponse{
		ID:          sport.SportID,
		Name:        sport.Name,
		Description: sport.Description,
		IsActive:    sport.IsActive,
		CreatedAt:   formatTime(sport.CreatedAt),
		UpdatedAt:   formatTime(sport.UpdatedAt),
	}
}
