package model

import "time"

// User 用户表，对应 users
type User struct {
	UserID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	FirstName    string     `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName     string     `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                     json:"-"`
	DateOfBirth  *time.Time `gorm:"type:date"                                      json:"date_of_birth,omitempty"`
	About        *string    `gorm:"type:text"                                      json:"about,omitempty"`
	Role         string     `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	PhoneNumber  *string    `gorm:"type:varchar(32)"                               json:"phone_number,omitempty"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// FullName 名 + 姓
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
