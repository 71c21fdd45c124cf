package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"sports-program/backend/internal/service"
	"sports-program/backend/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportRoster 导出课程班名单
// GET /api/v1/classes/:id/roster.xlsx
func (h *ExportHandler) ExportRoster(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrClassNotFound, h.handleExportError)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportRoster(c.Request.Context(), id, caller)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	setAttachment(c, filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportScheduleICS 导出课程班时间表
// GET /api/v1/classes/:id/schedule.ics
func (h *ExportHandler) ExportScheduleICS(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrClassNotFound, h.handleExportError)
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.ExportScheduleICS(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	setAttachment(c, filename)
	c.Data(http.StatusOK, icsContentType, data)
}

func setAttachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportAccessDenied):
		respondError(c, 17001, err)
	case errors.Is(err, service.ErrClassNotFound):
		respondError(c, 17002, err)
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		respondError(c, 17000, err)
	}
}
