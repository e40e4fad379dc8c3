package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/repos"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/types"
)

const recommendedLimit = 6

type LessonService interface {
	Create(ctx context.Context, payload map[string]interface{}) (*types.Lesson, error)
	ListPublic(ctx context.Context) ([]*types.Lesson, error)
	ListAll(ctx context.Context) ([]*types.Lesson, error)
	GetByID(ctx context.Context, lessonID uuid.UUID) (*types.Lesson, error)
	ListByCreator(ctx context.Context, email string) ([]*types.Lesson, error)
	ListPublicByCreator(ctx context.Context, email string) ([]*types.Lesson, error)
	ListRecentByCreator(ctx context.Context, email string, limit int) ([]*types.Lesson, error)
	CountByCreator(ctx context.Context, email string) (int64, error)
	ListFeatured(ctx context.Context) ([]*types.Lesson, error)
	Recommended(ctx context.Context, lessonID uuid.UUID) ([]*types.Lesson, error)
	Update(ctx context.Context, lessonID uuid.UUID, payload map[string]interface{}) error
	SetVisibility(ctx context.Context, lessonID uuid.UUID, privacy string) error
	SetAccessLevel(ctx context.Context, lessonID uuid.UUID, accessLevel string) error
	SetFeatured(ctx context.Context, lessonID uuid.UUID, featured bool) error
	Delete(ctx context.Context, lessonID uuid.UUID) error
	CreatedToday(ctx context.Context) (int64, error)
	TopContributors(ctx context.Context, limit int) ([]*types.ContributorCount, error)
	AnalyticsSummary(ctx context.Context) (*types.AnalyticsSummary, error)
}

type lessonService struct {
	db         *gorm.DB
	log        *logger.Logger
	lessonRepo repos.LessonRepo
}

func NewLessonService(db *gorm.DB, log *logger.Logger, lessonRepo repos.LessonRepo) LessonService {
	serviceLog := log.With("service", "LessonService")
	return &lessonService{db: db, log: serviceLog, lessonRepo: lessonRepo}
}

// Wire field names the client sends for the structured lesson columns.
// Anything else in the payload passes through into the extra document.
var lessonColumnKeys = map[string]struct{}{
	"title":         {},
	"description":   {},
	"category":      {},
	"emotionalTone": {},
	"privacy":       {},
	"accessLevel":   {},
	"creator":       {},
}

func payloadString(payload map[string]interface{}, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func payloadCreator(payload map[string]interface{}) types.Creator {
	raw, ok := payload["creator"].(map[string]interface{})
	if !ok {
		return types.Creator{}
	}
	creator := types.Creator{}
	if s, ok := raw["email"].(string); ok {
		creator.Email = strings.TrimSpace(strings.ToLower(s))
	}
	if s, ok := raw["name"].(string); ok {
		creator.Name = strings.TrimSpace(s)
	}
	return creator
}

func payloadExtra(payload map[string]interface{}) (datatypes.JSON, error) {
	extra := map[string]interface{}{}
	for k, v := range payload {
		if _, known := lessonColumnKeys[k]; known {
			continue
		}
		extra[k] = v
	}
	if len(extra) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf("error encoding extra lesson fields: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// Create merges the client payload with the server-set fields: id,
// both timestamps, the default privacy/access/featured flags.
func (ls *lessonService) Create(ctx context.Context, payload map[string]interface{}) (*types.Lesson, error) {
	title := payloadString(payload, "title")
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	privacy := payloadString(payload, "privacy")
	if privacy == "" {
		privacy = types.PrivacyPublic
	}
	accessLevel := payloadString(payload, "accessLevel")
	if accessLevel == "" {
		accessLevel = "free"
	}
	extra, err := payloadExtra(payload)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lesson := &types.Lesson{
		ID:            uuid.New(),
		Creator:       payloadCreator(payload),
		Title:         title,
		Description:   payloadString(payload, "description"),
		Category:      payloadString(payload, "category"),
		EmotionalTone: payloadString(payload, "emotionalTone"),
		Privacy:       privacy,
		AccessLevel:   accessLevel,
		IsFeatured:    false,
		Extra:         extra,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := ls.lessonRepo.Create(ctx, nil, lesson); err != nil {
		ls.log.Error("Create lesson failed", "error", err)
		return nil, fmt.Errorf("error inserting lesson: %w", err)
	}
	return lesson, nil
}

func (ls *lessonService) ListPublic(ctx context.Context) ([]*types.Lesson, error) {
	lessons, err := ls.lessonRepo.GetPublic(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error fetching lessons: %w", err)
	}
	return lessons, nil
}

func (ls *lessonService) ListAll(ctx context.Context) ([]*types.Lesson, error) {
	lessons, err := ls.lessonRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error fetching lessons: %w", err)
	}
	return lessons, nil
}

func (ls *lessonService) GetByID(ctx context.Context, lessonID uuid.UUID) (*types.Lesson, error) {
	lesson, err := ls.lessonRepo.GetByID(ctx, nil, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: lesson %s", ErrNotFound, lessonID)
		}
		return nil, fmt.Errorf("error fetching lesson: %w", err)
	}
	return lesson, nil
}

func (ls *lessonService) ListByCreator(ctx context.Context, email string) ([]*types.Lesson, error) {
	lessons, err := ls.lessonRepo.GetByCreator(ctx, nil, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("error fetching lessons: %w", err)
	}
	return lessons, nil
}

func (ls *lessonService) ListPublicByCreator(ctx context.Context, email string) ([]*types.Lesson, error) {
	lessons, err := ls.lessonRepo.GetPublicByCreator(ctx, nil, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("error fetching lessons: %w", err)
	}
	return lessons, nil
}

func (ls *lessonService) ListRecentByCreator(ctx context.Context, email string, limit int) ([]*types.Lesson, error) {
	if limit <= 0 {
		limit = 3
	}
	lessons, err := ls.lessonRepo.GetRecentByCreator(ctx, nil, strings.ToLower(email), limit)
	if err != nil {
		return nil, fmt.Errorf("error fetching lessons: %w", err)
	}
	return lessons, nil
}

func (ls *lessonService) CountByCreator(ctx context.Context, email string) (int64, error) {
	count, err := ls.lessonRepo.CountByCreator(ctx, nil, strings.ToLower(email))
	if err != nil {
		return 0, fmt.Errorf("error counting lessons: %w", err)
	}
	return count, nil
}

func (ls *lessonService) ListFeatured(ctx context.Context) ([]*types.Lesson, error) {
	lessons, err := ls.lessonRepo.GetFeatured(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error fetching featured lessons: %w", err)
	}
	return lessons, nil
}

// Recommended finds public lessons that share the source lesson's
// category or emotional tone. The source lesson itself is excluded in
// the query, never post-filtered.
func (ls *lessonService) Recommended(ctx context.Context, lessonID uuid.UUID) ([]*types.Lesson, error) {
	source, err := ls.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	lessons, err := ls.lessonRepo.GetRecommended(ctx, nil, source, recommendedLimit)
	if err != nil {
		return nil, fmt.Errorf("error fetching recommended lessons: %w", err)
	}
	return lessons, nil
}

// Wire names → columns for the partial update path.
var lessonUpdateColumns = map[string]string{
	"title":         "title",
	"description":   "description",
	"category":      "category",
	"emotionalTone": "emotional_tone",
	"privacy":       "privacy",
	"accessLevel":   "access_level",
	"isFeatured":    "is_featured",
}

// Update applies a partial field set. Known fields map onto columns;
// unknown fields merge into the extra document. updated_at always
// bumps.
func (ls *lessonService) Update(ctx context.Context, lessonID uuid.UUID, payload map[string]interface{}) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	current, err := ls.GetByID(ctx, lessonID)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	extraChanged := false
	extra := map[string]interface{}{}
	if len(current.Extra) > 0 {
		if err := json.Unmarshal(current.Extra, &extra); err != nil {
			extra = map[string]interface{}{}
		}
	}
	for k, v := range payload {
		if col, ok := lessonUpdateColumns[k]; ok {
			fields[col] = v
			continue
		}
		if k == "creator" || k == "id" || k == "createdAt" || k == "updatedAt" {
			continue
		}
		extra[k] = v
		extraChanged = true
	}
	if extraChanged {
		raw, err := json.Marshal(extra)
		if err != nil {
			return fmt.Errorf("error encoding extra lesson fields: %w", err)
		}
		fields["extra"] = datatypes.JSON(raw)
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: no updatable fields", ErrInvalidInput)
	}
	fields["updated_at"] = time.Now().UTC()

	rows, err := ls.lessonRepo.UpdateFields(ctx, nil, lessonID, fields)
	if err != nil {
		return fmt.Errorf("error updating lesson: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: lesson %s", ErrNotFound, lessonID)
	}
	return nil
}

func (ls *lessonService) setColumn(ctx context.Context, lessonID uuid.UUID, column string, value interface{}) error {
	rows, err := ls.lessonRepo.UpdateFields(ctx, nil, lessonID, map[string]interface{}{
		column:       value,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("error updating lesson: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: lesson %s", ErrNotFound, lessonID)
	}
	return nil
}

func (ls *lessonService) SetVisibility(ctx context.Context, lessonID uuid.UUID, privacy string) error {
	privacy = strings.TrimSpace(strings.ToLower(privacy))
	if privacy != types.PrivacyPublic && privacy != types.PrivacyPrivate {
		return fmt.Errorf("%w: privacy must be %q or %q", ErrInvalidInput, types.PrivacyPublic, types.PrivacyPrivate)
	}
	return ls.setColumn(ctx, lessonID, "privacy", privacy)
}

func (ls *lessonService) SetAccessLevel(ctx context.Context, lessonID uuid.UUID, accessLevel string) error {
	accessLevel = strings.TrimSpace(accessLevel)
	if accessLevel == "" {
		return fmt.Errorf("%w: accessLevel is required", ErrInvalidInput)
	}
	return ls.setColumn(ctx, lessonID, "access_level", accessLevel)
}

func (ls *lessonService) SetFeatured(ctx context.Context, lessonID uuid.UUID, featured bool) error {
	return ls.setColumn(ctx, lessonID, "is_featured", featured)
}

func (ls *lessonService) Delete(ctx context.Context, lessonID uuid.UUID) error {
	rows, err := ls.lessonRepo.DeleteByID(ctx, nil, lessonID)
	if err != nil {
		return fmt.Errorf("error deleting lesson: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: lesson %s", ErrNotFound, lessonID)
	}
	return nil
}

func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (ls *lessonService) CreatedToday(ctx context.Context) (int64, error) {
	count, err := ls.lessonRepo.CountCreatedSince(ctx, nil, startOfToday())
	if err != nil {
		return 0, fmt.Errorf("error counting today's lessons: %w", err)
	}
	return count, nil
}

func (ls *lessonService) TopContributors(ctx context.Context, limit int) ([]*types.ContributorCount, error) {
	if limit <= 0 {
		limit = 5
	}
	contributors, err := ls.lessonRepo.TopContributors(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("error fetching top contributors: %w", err)
	}
	return contributors, nil
}

// AnalyticsSummary fans the four dashboard counts out in parallel.
func (ls *lessonService) AnalyticsSummary(ctx context.Context) (*types.AnalyticsSummary, error) {
	summary := &types.AnalyticsSummary{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := ls.lessonRepo.CountCreatedSince(gctx, nil, startOfToday())
		summary.CreatedToday = n
		return err
	})
	g.Go(func() error {
		n, err := ls.lessonRepo.CountByPrivacy(gctx, nil, types.PrivacyPublic)
		summary.PublicLessons = n
		return err
	})
	g.Go(func() error {
		n, err := ls.lessonRepo.CountByPrivacy(gctx, nil, types.PrivacyPrivate)
		summary.PrivateLessons = n
		return err
	})
	g.Go(func() error {
		n, err := ls.lessonRepo.CountDistinctCreators(gctx, nil)
		summary.ActiveCreators = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error building analytics summary: %w", err)
	}
	return summary, nil
}
