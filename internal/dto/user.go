package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
}

// UpdateUserRequest 更新用户信息请求
// Role 仅用于识别客户端试图改角色的请求，角色修改走 UpdateRoleRequest
type UpdateUserRequest struct {
	FirstName   *string `json:"first_name"    binding:"omitempty,min=1,max=100"`
	LastName    *string `json:"last_name"     binding:"omitempty,min=1,max=100"`
	Email       *string `json:"email"         binding:"omitempty,email,max=255"`
	Password    *string `json:"password"      binding:"omitempty,min=8,max=72"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	About       *string `json:"about"         binding:"omitempty,max=1000"`
	PhoneNumber *string `json:"phone_number"  binding:"omitempty,max=32"`
	Role        *string `json:"role"`
}

// UpdateRoleRequest 修改角色请求
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student trainer admin"`
}
