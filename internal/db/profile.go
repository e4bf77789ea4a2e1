package db

import "time"

// 角色取值，由服务端指派，应用内不可修改。
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile is the editable identity projection of a user.
// ID always equals the owning user's ID and never changes.
type Profile struct {
	ID          uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Email       string    `gorm:"not null" json:"email"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Role        string    `gorm:"size:20;not null;default:user" json:"role"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
