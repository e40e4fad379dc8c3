package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/repos"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/types"
)

type CreateReportInput struct {
	LessonID          uuid.UUID `json:"lessonId"`
	ReporterUserID    string    `json:"reporterUserId"`
	ReportedUserEmail string    `json:"reportedUserEmail"`
	Reason            string    `json:"reason"`
	Description       string    `json:"description"`
}

type ReportService interface {
	Create(ctx context.Context, in CreateReportInput) (*types.Report, error)
	ListAll(ctx context.Context) ([]*types.Report, error)
	CountsPerLesson(ctx context.Context) ([]*types.ReportCount, error)
}

type reportService struct {
	db         *gorm.DB
	log        *logger.Logger
	reportRepo repos.ReportRepo
}

func NewReportService(db *gorm.DB, log *logger.Logger, reportRepo repos.ReportRepo) ReportService {
	serviceLog := log.With("service", "ReportService")
	return &reportService{db: db, log: serviceLog, reportRepo: reportRepo}
}

// Create is the one write in the system with strict required-field
// validation.
func (rs *reportService) Create(ctx context.Context, in CreateReportInput) (*types.Report, error) {
	if in.LessonID == uuid.Nil {
		return nil, fmt.Errorf("%w: lessonId is required", ErrInvalidInput)
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	reportedEmail := strings.TrimSpace(strings.ToLower(in.ReportedUserEmail))
	if reportedEmail == "" {
		return nil, fmt.Errorf("%w: reportedUserEmail is required", ErrInvalidInput)
	}

	report := &types.Report{
		ID:                uuid.New(),
		LessonID:          in.LessonID,
		ReporterUserID:    strings.TrimSpace(in.ReporterUserID),
		ReportedUserEmail: reportedEmail,
		Reason:            reason,
		Description:       strings.TrimSpace(in.Description),
		CreatedAt:         time.Now().UTC(),
	}
	if err := rs.reportRepo.Create(ctx, nil, report); err != nil {
		rs.log.Error("Create report failed", "error", err, "lesson_id", in.LessonID)
		return nil, fmt.Errorf("error inserting report: %w", err)
	}
	return report, nil
}

func (rs *reportService) ListAll(ctx context.Context) ([]*types.Report, error) {
	reports, err := rs.reportRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error fetching reports: %w", err)
	}
	return reports, nil
}

func (rs *reportService) CountsPerLesson(ctx context.Context) ([]*types.ReportCount, error) {
	counts, err := rs.reportRepo.CountsPerLesson(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error aggregating report counts: %w", err)
	}
	return counts, nil
}
