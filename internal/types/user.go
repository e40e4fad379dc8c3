package types

import (
	"time"
	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name         string    `gorm:"column:name" json:"name"`
	Photo        string    `gorm:"column:photo" json:"photo"`
	Role         string    `gorm:"not null;default:'user';column:role" json:"role"`
	IsPremium    bool      `gorm:"not null;default:false;column:is_premium" json:"isPremium"`
	CreatedAt    time.Time `gorm:"not null;column:created_at" json:"created_at"`
	LastLoggedIn time.Time `gorm:"not null;column:last_logged_in" json:"last_loggedIn"`
}

func (User) TableName() string {
	return "users"
}
