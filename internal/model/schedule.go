package model

// Schedule 课程班每周时间表，对应 schedules
// DayOfWeek：0 = 周一 ... 6 = 周日；时间统一存储为 HH:MM:SS
type Schedule struct {
	ScheduleID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	ClassID    string `gorm:"type:uuid;not null;index"                       json:"class_id"`
	DayOfWeek  int    `gorm:"type:smallint;not null"                         json:"day_of_week"`
	StartTime  string `gorm:"type:varchar(8);not null"                       json:"start_time"`
	EndTime    string `gorm:"type:varchar(8);not null"                       json:"end_time"`
	BaseModel
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }
