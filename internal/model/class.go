package model

// Class 课程班表，对应 classes
// TrainerID 为空表示尚未分配教练
type Class struct {
	ClassID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	Name        string  `gorm:"type:varchar(150);not null"                     json:"name"`
	Description *string `gorm:"type:text"                                      json:"description,omitempty"`
	Duration    int     `gorm:"not null;default:60"                            json:"duration"`
	MaxCapacity int     `gorm:"not null;default:20"                            json:"max_capacity"`
	IsActive    bool    `gorm:"not null;default:true"                          json:"is_active"`
	SportID     string  `gorm:"type:uuid;not null;index"                       json:"sport_id"`
	TrainerID   *string `gorm:"type:uuid;index"                                json:"trainer_id,omitempty"`
	VersionedModel

	// 关联
	Sport     *Sport     `gorm:"foreignKey:SportID;references:SportID"     json:"sport,omitempty"`
	Trainer   *User      `gorm:"foreignKey:TrainerID;references:UserID"    json:"trainer,omitempty"`
	Schedules []Schedule `gorm:"foreignKey:ClassID;references:ClassID"     json:"schedules,omitempty"`
}

// TableName 指定表名
func (Class) TableName() string { return "classes" }

// HasTrainer 是否已分配教练
func (c *Class) HasTrainer() bool {
	return c.TrainerID != nil && *c.TrainerID != ""
}

// IsTrainedBy 判断 userID 是否为该班教练
func (c *Class) IsTrainedBy(userID string) bool {
	return c.HasTrainer() && *c.TrainerID == userID
}
