package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sports-program/backend/internal/dto"
	"sports-program/backend/internal/service"
	pkgerrors "sports-program/backend/pkg/errors"
	"sports-program/backend/pkg/response"
)

// ClassHandler 课程班与时间表 HTTP 处理器
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler 创建 ClassHandler
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// ListClasses 课程班列表，可按运动项目名称过滤
// GET /api/v1/classes?sport=xxx
func (h *ClassHandler) ListClasses(c *gin.Context) {
	var req dto.ClassListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	classes, err := h.classSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, gin.H{"list": classes})
}

// ListAvailableForTrainers 尚未分配教练的课程班
// GET /api/v1/applications/classes/available-for-trainers
func (h *ClassHandler) ListAvailableForTrainers(c *gin.Context) {
	classes, err := h.classSvc.ListAvailableForTrainers(c.Request.Context())
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, gin.H{"list": classes})
}

// GetClass 课程班详情
// GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrClassNotFound, h.handleClassError)
	if !ok {
		return
	}

	class, err := h.classSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, class)
}

// CreateClass 创建课程班
// POST /api/v1/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	class, err := h.classSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.Created(c, class)
}

// UpdateClass 更新课程班
// PUT /api/v1/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrClassNotFound, h.handleClassError)
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	class, err := h.classSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, class)
}

// DeleteClass 删除课程班
// DELETE /api/v1/classes/:id
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrClassNotFound, h.handleClassError)
	if !ok {
		return
	}

	if err := h.classSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleClassError(c, err)
		return
	}

	response.NoContent(c)
}

// ── 时间表 ──

// ListSchedules 课程班时间表
// GET /api/v1/classes/:id/schedules
func (h *ClassHandler) ListSchedules(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrClassNotFound, h.handleScheduleError)
	if !ok {
		return
	}

	schedules, err := h.classSvc.ListSchedules(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": schedules})
}

// GetSchedule 时间表详情
// GET /api/v1/classes/schedules/:id
func (h *ClassHandler) GetSchedule(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrScheduleNotFound, h.handleScheduleError)
	if !ok {
		return
	}

	schedule, err := h.classSvc.GetSchedule(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// CreateSchedule 创建时间表（管理员或本班教练）
// POST /api/v1/classes/schedules
func (h *ClassHandler) CreateSchedule(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	schedule, err := h.classSvc.CreateSchedule(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, schedule)
}

// UpdateSchedule 更新时间表
// PUT /api/v1/classes/schedules/:id
func (h *ClassHandler) UpdateSchedule(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrScheduleNotFound, h.handleScheduleError)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	schedule, err := h.classSvc.UpdateSchedule(c.Request.Context(), id, &req, caller)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// DeleteSchedule 删除时间表
// DELETE /api/v1/classes/schedules/:id
func (h *ClassHandler) DeleteSchedule(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrScheduleNotFound, h.handleScheduleError)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.classSvc.DeleteSchedule(c.Request.Context(), id, caller); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *ClassHandler) handleClassError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		respondError(c, 14001, err)
	case errors.Is(err, service.ErrClassSportNotFound):
		respondError(c, 14002, err)
	case errors.Is(err, service.ErrTrainerNotFound):
		respondError(c, 14003, err)
	case errors.Is(err, service.ErrNotATrainer):
		respondError(c, 14004, err)
	case errors.Is(err, service.ErrInvalidCapacity):
		respondError(c, 14005, err)
	case errors.Is(err, service.ErrCapacityBelowEnrolled):
		respondError(c, 14006, err)
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		respondError(c, 14007, err)
	default:
		respondError(c, 14000, err)
	}
}

func (h *ClassHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		respondError(c, 15001, err)
	case errors.Is(err, service.ErrInvalidTimeFormat):
		respondError(c, 15002, err)
	case errors.Is(err, service.ErrInvalidScheduleTime):
		respondError(c, 15003, err)
	case errors.Is(err, service.ErrInvalidDayOfWeek):
		respondError(c, 15004, err)
	case errors.Is(err, service.ErrScheduleAccessDenied):
		respondError(c, 15005, err)
	case errors.Is(err, service.ErrClassNotFound):
		respondError(c, 15006, err)
	default:
		respondError(c, 15000, err)
	}
}
