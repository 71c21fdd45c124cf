package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求（注册用户角色固定为 student）
type RegisterRequest struct {
	FirstName   string  `json:"first_name"    binding:"required,min=1,max=100"`
	LastName    string  `json:"last_name"     binding:"required,min=1,max=100"`
	Email       string  `json:"email"         binding:"required,email,max=255"`
	Password    string  `json:"password"      binding:"required,min=8,max=72"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	About       *string `json:"about"         binding:"omitempty,max=1000"`
	PhoneNumber *string `json:"phone_number"  binding:"omitempty,max=32"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
