package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"learning-service/internal/apperr"
	"learning-service/internal/engine"
	"learning-service/internal/models"
)

// streakSwapAttempts bounds the internal retry loop when a concurrent writer
// races the streak compare-and-swap. Under the per-user lock this only fires
// when another process shares the database.
const streakSwapAttempts = 3

// CompletionResult is what completing a lesson hands back to the caller.
type CompletionResult struct {
	Progress  *models.UserProgress `json:"progress"`
	Streak    int                  `json:"streak"`
	NewBadges []models.Badge       `json:"new_badges"`
}

type PathProgress struct {
	Path           models.LessonPath `json:"path"`
	CompletedCount int               `json:"completed_count"`
	TotalCount     int               `json:"total_count"`
}

type ProgressSummary struct {
	CurrentStreak         int            `json:"current_streak"`
	LongestStreak         int            `json:"longest_streak"`
	TotalLessonsCompleted int            `json:"total_lessons_completed"`
	Badges                []models.Badge `json:"badges"`
	PathProgress          []PathProgress `json:"path_progress"`
}

// ProgressService owns the start/complete transitions and, on completion,
// runs the streak and badge engine over the same user state.
type ProgressService struct {
	Progress ProgressStore
	Streaks  StreakStore
	Badges   BadgeStore
	Lessons  LessonCatalog
	Paths    PathCatalog

	now   func() time.Time
	locks sync.Map // userID -> *sync.Mutex
}

func NewProgressService(progress ProgressStore, streaks StreakStore, badges BadgeStore, lessons LessonCatalog, paths PathCatalog) *ProgressService {
	return &ProgressService{
		Progress: progress,
		Streaks:  streaks,
		Badges:   badges,
		Lessons:  lessons,
		Paths:    paths,
		now:      time.Now,
	}
}

// userLock serializes completions per user. Different users never contend.
func (s *ProgressService) userLock(userID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// StartLesson records a start transition: a fresh record with attempts=1, or
// one more attempt on an existing record. Completion state is untouched.
func (s *ProgressService) StartLesson(ctx context.Context, userID string, lessonID int) (*models.UserProgress, error) {
	if _, err := s.Lessons.FindByID(ctx, lessonID); err != nil {
		return nil, fmt.Errorf("lesson %d: %w", lessonID, err)
	}
	return s.Progress.RecordStart(ctx, userID, lessonID)
}

// CompleteLesson persists the completion and, within the same per-user
// critical section, recomputes the streak and evaluates badge criteria.
// A score outside [0,100] is rejected before anything is written.
func (s *ProgressService) CompleteLesson(ctx context.Context, userID string, lessonID, score int) (*CompletionResult, error) {
	if score < 0 || score > 100 {
		return nil, apperr.Validationf("score %d outside the valid range [0,100]", score)
	}
	if _, err := s.Lessons.FindByID(ctx, lessonID); err != nil {
		return nil, fmt.Errorf("lesson %d: %w", lessonID, err)
	}

	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	now := s.now()

	progress, err := s.Progress.RecordCompletion(ctx, userID, lessonID, score, now)
	if err != nil {
		return nil, err
	}

	streak, err := s.advanceStreak(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	newBadges, err := s.awardNewBadges(ctx, userID, streak.CurrentStreak, now)
	if err != nil {
		return nil, err
	}

	return &CompletionResult{
		Progress:  progress,
		Streak:    streak.CurrentStreak,
		NewBadges: newBadges,
	}, nil
}

// advanceStreak runs the read-recompute-swap cycle, retrying against freshly
// read state when a concurrent writer wins the compare-and-swap.
func (s *ProgressService) advanceStreak(ctx context.Context, userID string, now time.Time) (*models.UserStreak, error) {
	var lastErr error
	for i := 0; i < streakSwapAttempts; i++ {
		streak, err := s.Streaks.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		prev := *streak
		engine.AdvanceStreak(streak, now)
		err = s.Streaks.Swap(ctx, userID, &prev, streak)
		if errors.Is(err, apperr.ErrStateConflict) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		return streak, nil
	}
	return nil, fmt.Errorf("streak update for user %s kept losing races: %w", userID, lastErr)
}

// awardNewBadges evaluates every unearned badge against the user's aggregate
// history and records the unlocks. A badge another writer awarded in the
// meantime is silently skipped rather than duplicated or re-reported.
func (s *ProgressService) awardNewBadges(ctx context.Context, userID string, currentStreak int, now time.Time) ([]models.Badge, error) {
	badges, err := s.Badges.AllBadges(ctx)
	if err != nil {
		return nil, err
	}
	earnedRecords, err := s.Badges.EarnedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	earned := make(map[int]bool, len(earnedRecords))
	for _, ub := range earnedRecords {
		earned[ub.BadgeID] = true
	}

	state, err := s.userState(ctx, userID, currentStreak)
	if err != nil {
		return nil, err
	}

	unlocked := engine.EvaluateBadges(badges, earned, state)

	var awarded []models.Badge
	for _, b := range unlocked {
		err := s.Badges.Award(ctx, &models.UserBadge{
			UserID:   userID,
			BadgeID:  b.ID,
			EarnedAt: now,
		})
		if errors.Is(err, apperr.ErrStateConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		awarded = append(awarded, b)
	}
	return awarded, nil
}

func (s *ProgressService) userState(ctx context.Context, userID string, currentStreak int) (engine.UserState, error) {
	records, err := s.Progress.FindByUser(ctx, userID)
	if err != nil {
		return engine.UserState{}, err
	}
	completed := make(map[int]bool)
	for _, p := range records {
		if p.Completed {
			completed[p.LessonID] = true
		}
	}

	lessons, err := s.Lessons.FindAll(ctx)
	if err != nil {
		return engine.UserState{}, err
	}
	pathLessons := make(map[int][]int)
	for _, l := range lessons {
		pathLessons[l.PathID] = append(pathLessons[l.PathID], l.ID)
	}

	return engine.UserState{
		CurrentStreak:    currentStreak,
		CompletedLessons: completed,
		PathLessons:      pathLessons,
	}, nil
}

// GetProgressSummary reports streak counters, total completions, earned
// badges, and per-path completion counts. Every path is reported, including
// untouched ones at 0/N.
func (s *ProgressService) GetProgressSummary(ctx context.Context, userID string) (*ProgressSummary, error) {
	streak, err := s.Streaks.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.Progress.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed := make(map[int]bool)
	for _, p := range records {
		if p.Completed {
			completed[p.LessonID] = true
		}
	}

	earnedRecords, err := s.Badges.EarnedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	badges, err := s.Badges.AllBadges(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.Badge, len(badges))
	for _, b := range badges {
		byID[b.ID] = b
	}
	earnedBadges := make([]models.Badge, 0, len(earnedRecords))
	for _, ub := range earnedRecords {
		if b, ok := byID[ub.BadgeID]; ok {
			earnedBadges = append(earnedBadges, b)
		}
	}

	paths, err := s.Paths.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	lessons, err := s.Lessons.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	pathProgress := make([]PathProgress, 0, len(paths))
	for _, p := range paths {
		entry := PathProgress{Path: p}
		for _, l := range lessons {
			if l.PathID != p.ID {
				continue
			}
			entry.TotalCount++
			if completed[l.ID] {
				entry.CompletedCount++
			}
		}
		pathProgress = append(pathProgress, entry)
	}

	return &ProgressSummary{
		CurrentStreak:         streak.CurrentStreak,
		LongestStreak:         streak.LongestStreak,
		TotalLessonsCompleted: len(completed),
		Badges:                earnedBadges,
		PathProgress:          pathProgress,
	}, nil
}
