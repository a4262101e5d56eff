package service

import (
	"context"
	"time"

	"learning-service/internal/models"
)

// The core never holds state of its own; everything lives behind these store
// interfaces, satisfied by the Mongo repositories in production and by
// in-memory fakes in tests.

type ProgressStore interface {
	Find(ctx context.Context, userID string, lessonID int) (*models.UserProgress, error)
	FindByUser(ctx context.Context, userID string) ([]models.UserProgress, error)
	RecordStart(ctx context.Context, userID string, lessonID int) (*models.UserProgress, error)
	RecordCompletion(ctx context.Context, userID string, lessonID, score int, at time.Time) (*models.UserProgress, error)
}

type StreakStore interface {
	Get(ctx context.Context, userID string) (*models.UserStreak, error)
	Swap(ctx context.Context, userID string, prev, next *models.UserStreak) error
}

type BadgeStore interface {
	AllBadges(ctx context.Context) ([]models.Badge, error)
	EarnedByUser(ctx context.Context, userID string) ([]models.UserBadge, error)
	Award(ctx context.Context, ub *models.UserBadge) error
}

// LessonCatalog and PathCatalog expose the read-only content catalog.

type LessonCatalog interface {
	FindByID(ctx context.Context, id int) (*models.Lesson, error)
	FindByPath(ctx context.Context, pathID int) ([]models.Lesson, error)
	FindAll(ctx context.Context) ([]models.Lesson, error)
}

type PathCatalog interface {
	FindAll(ctx context.Context) ([]models.LessonPath, error)
	FindByID(ctx context.Context, id int) (*models.LessonPath, error)
}
