package model

import "time"

// Application 报名申请表，对应 applications
// 学员申请入班（student_enrollment）或教练申请带班（trainer_assignment）
type Application struct {
	ApplicationID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"application_id"`
	UserID          string    `gorm:"type:uuid;not null;index:idx_applications_user_class_type,priority:1" json:"user_id"`
	ClassID         string    `gorm:"type:uuid;not null;index:idx_applications_user_class_type,priority:2" json:"class_id"`
	Type            string    `gorm:"type:varchar(32);not null;index:idx_applications_user_class_type,priority:3" json:"type"`
	Status          string    `gorm:"type:varchar(16);not null;default:'pending'"    json:"status"`
	ApplicationDate time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"application_date"`
	BaseModel

	// 关联
	User  *User  `gorm:"foreignKey:UserID;references:UserID"   json:"user,omitempty"`
	Class *Class `gorm:"foreignKey:ClassID;references:ClassID" json:"class,omitempty"`
}

// TableName 指定表名
func (Application) TableName() string { return "applications" }

// IsPending 是否待审批
func (a *Application) IsPending() bool {
	return a.Status == ApplicationStatusPending
}
