package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sports-program/backend/internal/dto"
	"sports-program/backend/internal/service"
	"sports-program/backend/pkg/response"
)

// ApplicationHandler 报名申请 HTTP 处理器
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

// NewApplicationHandler 创建 ApplicationHandler
func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

// CreateApplication 提交申请，类型由当前用户角色决定
// POST /api/v1/applications/student
// POST /api/v1/applications/trainer
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	app, err := h.appSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.Created(c, app)
}

// UpdateStatus 审批申请
// PATCH /api/v1/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrApplicationNotFound, h.handleApplicationError)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	app, err := h.appSvc.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, app)
}

// ListApplications 全部申请
// GET /api/v1/applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	apps, err := h.appSvc.List(c.Request.Context())
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"list": apps})
}

// ListByClass 课程班的申请（管理员或本班教练）
// GET /api/v1/applications/class/:classId
func (h *ApplicationHandler) ListByClass(c *gin.Context) {
	classID, ok := pathID(c, "classId", service.ErrClassNotFound, h.handleApplicationError)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	apps, err := h.appSvc.ListByClass(c.Request.Context(), classID, caller)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"list": apps})
}

// ListMine 当前用户的申请
// GET /api/v1/applications/my
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	apps, err := h.appSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"list": apps})
}

// GetApplication 申请详情
// GET /api/v1/applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrApplicationNotFound, h.handleApplicationError)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	app, err := h.appSvc.GetByID(c.Request.Context(), id, caller)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, app)
}

// DeleteApplication 删除申请
// DELETE /api/v1/applications/:id
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrApplicationNotFound, h.handleApplicationError)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.appSvc.Delete(c.Request.Context(), id, caller); err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *ApplicationHandler) handleApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound):
		respondError(c, 16001, err)
	case errors.Is(err, service.ErrAlreadyApplied):
		respondError(c, 16002, err)
	case errors.Is(err, service.ErrTrainerAlreadyAssigned):
		respondError(c, 16003, err)
	case errors.Is(err, service.ErrClassFull):
		respondError(c, 16004, err)
	case errors.Is(err, service.ErrInvalidApplicationStatus):
		respondError(c, 16005, err)
	case errors.Is(err, service.ErrApplicationNotPending):
		respondError(c, 16006, err)
	case errors.Is(err, service.ErrApplicationAccessDenied):
		respondError(c, 16007, err)
	case errors.Is(err, service.ErrClassNotFound):
		respondError(c, 16008, err)
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, 16009, err)
	default:
		respondError(c, 16000, err)
	}
}
