package db

import "gorm.io/gorm"

// User 定义了认证账号模型，密码以 bcrypt 哈希存储。
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
}
