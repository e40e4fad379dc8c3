package types

import (
	"time"
	"github.com/google/uuid"
)

// Reports are append-only; there is no update path.
type Report struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID          uuid.UUID `gorm:"type:uuid;not null;index;column:lesson_id" json:"lessonId"`
	ReporterUserID    string    `gorm:"not null;column:reporter_user_id" json:"reporterUserId"`
	ReportedUserEmail string    `gorm:"not null;column:reported_user_email" json:"reportedUserEmail"`
	Reason            string    `gorm:"not null;column:reason" json:"reason"`
	Description       string    `gorm:"column:description" json:"description"`
	CreatedAt         time.Time `gorm:"not null;column:created_at" json:"timestamp"`
}

func (Report) TableName() string {
	return "reports"
}

// ReportCount is one row of the per-lesson report aggregation.
type ReportCount struct {
	LessonID    uuid.UUID `json:"lessonId"`
	ReportCount int64     `json:"reportCount"`
}
