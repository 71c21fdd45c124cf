package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sports-program/backend/internal/dto"
	"sports-program/backend/internal/service"
	"sports-program/backend/pkg/response"
)

// SportHandler 运动项目模块 HTTP 处理器
type SportHandler struct {
	sportSvc service.SportService
}

// NewSportHandler 创建 SportHandler
func NewSportHandler(sportSvc service.SportService) *SportHandler {
	return &SportHandler{sportSvc: sportSvc}
}

// ListSports 运动项目列表
// GET /api/v1/sports
func (h *SportHandler) ListSports(c *gin.Context) {
	sports, err := h.sportSvc.List(c.Request.Context())
	if err != nil {
		h.handleSportError(c, err)
		return
	}

	response.OK(c, gin.H{"list": sports})
}

// GetSport 运动项目详情
// GET /api/v1/sports/:id
func (h *SportHandler) GetSport(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrSportNotFound, h.handleSportError)
	if !ok {
		return
	}

	sport, err := h.sportSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSportError(c, err)
		return
	}

	response.OK(c, sport)
}

// CreateSport 创建运动项目
// POST /api/v1/sports
func (h *SportHandler) CreateSport(c *gin.Context) {
	var req dto.CreateSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	sport, err := h.sportSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSportError(c, err)
		return
	}

	response.Created(c, sport)
}

// UpdateSport 更新运动项目
// PUT /api/v1/sports/:id
func (h *SportHandler) UpdateSport(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrSportNotFound, h.handleSportError)
	if !ok {
		return
	}

	var req dto.UpdateSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	sport, err := h.sportSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSportError(c, err)
		return
	}

	response.OK(c, sport)
}

// DeleteSport 删除运动项目
// DELETE /api/v1/sports/:id
func (h *SportHandler) DeleteSport(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrSportNotFound, h.handleSportError)
	if !ok {
		return
	}

	if err := h.sportSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSportError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *SportHandler) handleSportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSportNotFound):
		respondError(c, 13001, err)
	case errors.Is(err, service.ErrSportNameTaken):
		respondError(c, 13002, err)
	default:
		respondError(c, 13000, err)
	}
}
