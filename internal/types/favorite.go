package types

import (
	"time"
	"github.com/google/uuid"
)

// The (user_email, lesson_id) unique index is what keeps concurrent
// duplicate saves out; inserts go through ON CONFLICT DO NOTHING.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserEmail string    `gorm:"not null;index:idx_user_lesson,unique;column:user_email" json:"userEmail"`
	LessonID  uuid.UUID `gorm:"type:uuid;not null;index:idx_user_lesson,unique;column:lesson_id" json:"lessonId"`
	SavedAt   time.Time `gorm:"not null;column:saved_at" json:"savedAt"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// FavoriteWithLesson is the joined row returned by the favorites
// listing: the favorite itself plus the lesson it points at.
type FavoriteWithLesson struct {
	Favorite
	Lesson *Lesson `json:"lesson,omitempty"`
}

// SavedLessonCount is one row of the most-saved aggregation.
type SavedLessonCount struct {
	LessonID  uuid.UUID `json:"lessonId"`
	SaveCount int64     `json:"saveCount"`
	Lesson    *Lesson   `json:"lesson,omitempty"`
}
