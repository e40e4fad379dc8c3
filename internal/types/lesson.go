package types

import (
	"time"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

// Creator is denormalized onto the lesson row so owner-scoped listings
// never need a join against users.
type Creator struct {
	Email string `gorm:"index;column:email" json:"email"`
	Name  string `gorm:"column:name" json:"name"`
}

type Lesson struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Creator       Creator        `gorm:"embedded;embeddedPrefix:creator_" json:"creator"`
	Title         string         `gorm:"not null;column:title" json:"title"`
	Description   string         `gorm:"column:description" json:"description"`
	Category      string         `gorm:"index;column:category" json:"category"`
	EmotionalTone string         `gorm:"index;column:emotional_tone" json:"emotionalTone"`
	Privacy       string         `gorm:"not null;default:'public';index;column:privacy" json:"privacy"`
	AccessLevel   string         `gorm:"not null;default:'free';column:access_level" json:"accessLevel"`
	IsFeatured    bool           `gorm:"not null;default:false;column:is_featured" json:"isFeatured"`
	Extra         datatypes.JSON `gorm:"type:jsonb;column:extra" json:"extra,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;column:created_at" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"not null;column:updated_at" json:"updatedAt"`
}

func (Lesson) TableName() string {
	return "lessons"
}
