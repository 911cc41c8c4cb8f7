package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Email       string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Role        Role      `gorm:"type:text;not null;default:'STUDENT'" json:"role"`
	WisdomCoins int       `gorm:"not null;default:0" json:"wisdom_coins"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
