package dto

// ── 报名申请模块 DTO ──

// CreateApplicationRequest 提交申请请求
// Type 仅作参考，实际类型由申请人角色决定
type CreateApplicationRequest struct {
	ClassID string `json:"class_id" binding:"required,uuid"`
	Type    string `json:"type"     binding:"omitempty,oneof=student_enrollment trainer_assignment"`
}

// UpdateApplicationStatusRequest 审批申请请求，status 只接受 approved / rejected
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
