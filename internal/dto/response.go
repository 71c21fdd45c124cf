package dto

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（不含密码）
type UserResponse struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	About       *string `json:"about,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// UserBrief 嵌入其他资源时的用户简要信息
type UserBrief struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// ── 运动项目响应 ──

// SportResponse 运动项目响应
type SportResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// SportBrief 运动项目简要信息
type SportBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ── 课程班响应 ──

// ClassResponse 课程班详情响应
type ClassResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	Duration    int                `json:"duration"`
	MaxCapacity int                `json:"max_capacity"`
	IsActive    bool               `json:"is_active"`
	Version     int                `json:"version"`
	SportID     string             `json:"sport_id"`
	Sport       *SportBrief        `json:"sport,omitempty"`
	TrainerID   *string            `json:"trainer_id"`
	Trainer     *UserBrief         `json:"trainer,omitempty"`
	Schedules   []ScheduleResponse `json:"schedules"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
}

// ClassBrief 嵌入申请时的课程班简要信息
type ClassBrief struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	MaxCapacity int         `json:"max_capacity"`
	TrainerID   *string     `json:"trainer_id"`
	Sport       *SportBrief `json:"sport,omitempty"`
}

// ScheduleResponse 时间表响应
type ScheduleResponse struct {
	ID        string `json:"id"`
	ClassID   string `json:"class_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ── 报名申请响应 ──

// ApplicationResponse 申请响应
type ApplicationResponse struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	ClassID         string      `json:"class_id"`
	Type            string      `json:"type"`
	Status          string      `json:"status"`
	ApplicationDate string      `json:"application_date"`
	User            *UserBrief  `json:"user,omitempty"`
	Class           *ClassBrief `json:"class,omitempty"`
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
