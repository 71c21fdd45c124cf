package dto

// ── 课程班模块 DTO ──

// CreateClassRequest 创建课程班请求
// Duration / MaxCapacity 未传时使用配置中的默认值
type CreateClassRequest struct {
	Name        string  `json:"name"         binding:"required,min=1,max=150"`
	Description *string `json:"description"  binding:"omitempty,max=2000"`
	Duration    *int    `json:"duration"     binding:"omitempty,min=1,max=600"`
	MaxCapacity *int    `json:"max_capacity" binding:"omitempty,min=1"`
	IsActive    *bool   `json:"is_active"`
	SportID     string  `json:"sport_id"     binding:"required,uuid"`
	TrainerID   *string `json:"trainer_id"   binding:"omitempty,uuid"`
}

// UpdateClassRequest 更新课程班请求
// Version 为客户端读取时的版本号，不一致时返回冲突
type UpdateClassRequest struct {
	Name        *string `json:"name"         binding:"omitempty,min=1,max=150"`
	Description *string `json:"description"  binding:"omitempty,max=2000"`
	Duration    *int    `json:"duration"     binding:"omitempty,min=1,max=600"`
	MaxCapacity *int    `json:"max_capacity" binding:"omitempty,min=1"`
	IsActive    *bool   `json:"is_active"`
	SportID     *string `json:"sport_id"     binding:"omitempty,uuid"`
	TrainerID   *string `json:"trainer_id"   binding:"omitempty,uuid"`
	Version     *int    `json:"version"      binding:"omitempty,min=1"`
}

// ClassListRequest 课程班列表查询参数
type ClassListRequest struct {
	Sport string `form:"sport" binding:"omitempty,max=100"`
}

// ── 时间表 DTO ──

// CreateScheduleRequest 创建时间表请求
// DayOfWeek 0 = 周一 ... 6 = 周日；时间格式 HH:MM 或 HH:MM:SS
type CreateScheduleRequest struct {
	ClassID   string `json:"class_id"    binding:"required,uuid"`
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime string `json:"start_time"  binding:"required,clocktime"`
	EndTime   string `json:"end_time"    binding:"required,clocktime"`
}

// UpdateScheduleRequest 更新时间表请求
type UpdateScheduleRequest struct {
	DayOfWeek *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	StartTime *string `json:"start_time"  binding:"omitempty,clocktime"`
	EndTime   *string `json:"end_time"    binding:"omitempty,clocktime"`
}
