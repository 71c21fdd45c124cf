package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sports-program/backend/internal/service"
	pkgerrors "sports-program/backend/pkg/errors"
	"sports-program/backend/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Sport       *SportHandler
	Class       *ClassHandler
	Application *ApplicationHandler
	Export      *ExportHandler
	Health      *HealthHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, checker HealthChecker) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(svc.User),
		Sport:       NewSportHandler(svc.Sport),
		Class:       NewClassHandler(svc.Class),
		Application: NewApplicationHandler(svc.Application),
		Export:      NewExportHandler(svc.Export),
		Health:      NewHealthHandler(checker),
	}
}

// respondError 按错误类别写出响应，code 为模块业务码；无法归类的错误统一 500
func respondError(c *gin.Context, code int, err error) {
	switch pkgerrors.Kind(err) {
	case pkgerrors.ErrNotFound:
		response.NotFound(c, code, err.Error())
	case pkgerrors.ErrBadRequest:
		response.BadRequest(c, code, err.Error())
	case pkgerrors.ErrForbidden:
		response.Forbidden(c, code, err.Error())
	case pkgerrors.ErrConflict:
		response.Conflict(c, code, err.Error())
	case pkgerrors.ErrUnauthorized:
		response.Unauthorized(c, code, err.Error())
	default:
		response.InternalError(c)
	}
}

func bindFailed(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
}
