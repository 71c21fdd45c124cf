package model

// Sport 运动项目表，对应 sports
type Sport struct {
	SportID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"sport_id"`
	Name        string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Description *string `gorm:"type:text"                                      json:"description,omitempty"`
	IsActive    bool    `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName 指定表名
func (Sport) TableName() string { return "sports" }
