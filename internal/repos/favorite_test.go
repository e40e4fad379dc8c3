package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/types"
)

func saveFavorite(t *testing.T, repo FavoriteRepo, email string, lessonID uuid.UUID, savedAt time.Time) (*types.Favorite, bool) {
	t.Helper()
	favorite := &types.Favorite{
		ID:        uuid.New(),
		UserEmail: email,
		LessonID:  lessonID,
		SavedAt:   savedAt,
	}
	inserted, err := repo.Create(context.Background(), nil, favorite)
	if err != nil {
		t.Fatalf("save favorite: %v", err)
	}
	return favorite, inserted
}

func TestFavoriteRepoCreate_DuplicatePairIsNoOp(t *testing.T) {
	db := newTestDB(t)
	repo := NewFavoriteRepo(db, newTestLogger(t))
	now := time.Now().UTC()
	lessonID := uuid.New()

	_, inserted := saveFavorite(t, repo, "a@x.com", lessonID, now)
	if !inserted {
		t.Fatalf("first save should insert")
	}

	_, inserted = saveFavorite(t, repo, "a@x.com", lessonID, now.Add(time.Minute))
	if inserted {
		t.Fatalf("duplicate (user, lesson) save should be a no-op")
	}

	_, inserted = saveFavorite(t, repo, "b@x.com", lessonID, now)
	if !inserted {
		t.Fatalf("same lesson for a different user should insert")
	}

	var count int64
	if err := db.Model(&types.Favorite{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 favorites after duplicate save, got %d", count)
	}
}

func TestFavoriteRepoGetByUserWithLessons_AttachesLessons(t *testing.T) {
	db := newTestDB(t)
	favorites := NewFavoriteRepo(db, newTestLogger(t))
	lessons := NewLessonRepo(db, newTestLogger(t))
	now := time.Now().UTC()

	lesson := seedLesson(t, lessons, "creator@x.com", "Creator", "growth", "calm", types.PrivacyPublic, now)

	older, _ := saveFavorite(t, favorites, "a@x.com", lesson.ID, now.Add(-time.Hour))
	orphan, _ := saveFavorite(t, favorites, "a@x.com", uuid.New(), now)
	saveFavorite(t, favorites, "b@x.com", lesson.ID, now)

	results, err := favorites.GetByUserWithLessons(context.Background(), nil, "a@x.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 favorites for a@x.com, got %d", len(results))
	}
	if results[0].ID != orphan.ID || results[1].ID != older.ID {
		t.Fatalf("expected saved_at DESC ordering")
	}
	if results[0].Lesson != nil {
		t.Fatalf("favorite pointing at a deleted lesson should carry no lesson")
	}
	if results[1].Lesson == nil || results[1].Lesson.ID != lesson.ID {
		t.Fatalf("expected lesson %s attached to favorite", lesson.ID)
	}
}

func TestFavoriteRepoMostSaved_OrdersByCount(t *testing.T) {
	db := newTestDB(t)
	favorites := NewFavoriteRepo(db, newTestLogger(t))
	lessons := NewLessonRepo(db, newTestLogger(t))
	now := time.Now().UTC()

	popular := seedLesson(t, lessons, "a@x.com", "A", "growth", "calm", types.PrivacyPublic, now)
	niche := seedLesson(t, lessons, "b@x.com", "B", "career", "calm", types.PrivacyPublic, now)

	saveFavorite(t, favorites, "u1@x.com", popular.ID, now)
	saveFavorite(t, favorites, "u2@x.com", popular.ID, now)
	saveFavorite(t, favorites, "u3@x.com", popular.ID, now)
	saveFavorite(t, favorites, "u1@x.com", niche.ID, now)

	counts, err := favorites.MostSaved(context.Background(), nil, 6)
	if err != nil {
		t.Fatalf("most saved: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(counts))
	}
	if counts[0].LessonID != popular.ID || counts[0].SaveCount != 3 {
		t.Fatalf("expected popular lesson first with 3 saves, got %+v", counts[0])
	}
	if counts[0].Lesson == nil || counts[0].Lesson.Title != popular.Title {
		t.Fatalf("expected lesson row attached to count")
	}
	if counts[1].SaveCount != 1 {
		t.Fatalf("expected 1 save for the niche lesson, got %d", counts[1].SaveCount)
	}
}

func TestFavoriteRepoDeleteByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewFavoriteRepo(db, newTestLogger(t))

	favorite, _ := saveFavorite(t, repo, "a@x.com", uuid.New(), time.Now().UTC())

	rows, err := repo.DeleteByID(context.Background(), nil, favorite.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 deleted row, got %d", rows)
	}

	rows, err = repo.DeleteByID(context.Background(), nil, favorite.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows on repeat delete, got %d", rows)
	}
}
