package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"learning-service/internal/apperr"
	"learning-service/internal/models"
)

// In-memory store fakes. They implement the same interfaces the Mongo
// repositories do, including the compare-and-swap conflict on streaks.

type fakeProgressStore struct {
	mu      sync.Mutex
	records map[string]*models.UserProgress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{records: make(map[string]*models.UserProgress)}
}

func progressKey(userID string, lessonID int) string {
	return fmt.Sprintf("%s|%d", userID, lessonID)
}

func (f *fakeProgressStore) Find(_ context.Context, userID string, lessonID int) (*models.UserProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.records[progressKey(userID, lessonID)]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProgressStore) FindByUser(_ context.Context, userID string) ([]models.UserProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.UserProgress
	for _, p := range f.records {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProgressStore) RecordStart(_ context.Context, userID string, lessonID int) (*models.UserProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := progressKey(userID, lessonID)
	p, ok := f.records[key]
	if !ok {
		p = &models.UserProgress{UserID: userID, LessonID: lessonID}
		f.records[key] = p
	}
	p.Attempts++
	cp := *p
	return &cp, nil
}

func (f *fakeProgressStore) RecordCompletion(_ context.Context, userID string, lessonID, score int, at time.Time) (*models.UserProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := progressKey(userID, lessonID)
	p, ok := f.records[key]
	if !ok {
		p = &models.UserProgress{UserID: userID, LessonID: lessonID, Attempts: 1}
		f.records[key] = p
	}
	p.Completed = true
	p.Score = &score
	p.CompletedAt = &at
	cp := *p
	return &cp, nil
}

type fakeStreakStore struct {
	mu     sync.Mutex
	states map[string]*models.UserStreak
}

func newFakeStreakStore() *fakeStreakStore {
	return &fakeStreakStore{states: make(map[string]*models.UserStreak)}
}

func (f *fakeStreakStore) Get(_ context.Context, userID string) (*models.UserStreak, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.states[userID]; ok {
		cp := *st
		return &cp, nil
	}
	return &models.UserStreak{UserID: userID}, nil
}

func (f *fakeStreakStore) Swap(_ context.Context, userID string, prev, next *models.UserStreak) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	current, ok := f.states[userID]
	if !ok {
		current = &models.UserStreak{UserID: userID}
	}
	if current.CurrentStreak != prev.CurrentStreak || current.LongestStreak != prev.LongestStreak {
		return apperr.ErrStateConflict
	}
	cp := *next
	f.states[userID] = &cp
	return nil
}

type fakeBadgeStore struct {
	mu     sync.Mutex
	badges []models.Badge
	earned map[string]map[int]time.Time
}

func newFakeBadgeStore(badges []models.Badge) *fakeBadgeStore {
	return &fakeBadgeStore{badges: badges, earned: make(map[string]map[int]time.Time)}
}

func (f *fakeBadgeStore) AllBadges(_ context.Context) ([]models.Badge, error) {
	return f.badges, nil
}

func (f *fakeBadgeStore) EarnedByUser(_ context.Context, userID string) ([]models.UserBadge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.UserBadge
	for id, at := range f.earned[userID] {
		out = append(out, models.UserBadge{UserID: userID, BadgeID: id, EarnedAt: at})
	}
	return out, nil
}

func (f *fakeBadgeStore) Award(_ context.Context, ub *models.UserBadge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	byUser, ok := f.earned[ub.UserID]
	if !ok {
		byUser = make(map[int]time.Time)
		f.earned[ub.UserID] = byUser
	}
	if _, dup := byUser[ub.BadgeID]; dup {
		return apperr.ErrStateConflict
	}
	byUser[ub.BadgeID] = ub.EarnedAt
	return nil
}

type fakeCatalog struct {
	lessons []models.Lesson
}

func (f *fakeCatalog) FindByID(_ context.Context, id int) (*models.Lesson, error) {
	for _, l := range f.lessons {
		if l.ID == id {
			cp := l
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeCatalog) FindByPath(_ context.Context, pathID int) ([]models.Lesson, error) {
	var out []models.Lesson
	for _, l := range f.lessons {
		if l.PathID == pathID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindAll(_ context.Context) ([]models.Lesson, error) {
	return f.lessons, nil
}

type fakePathCatalog struct {
	paths []models.LessonPath
}

func (f *fakePathCatalog) FindAll(_ context.Context) ([]models.LessonPath, error) {
	return f.paths, nil
}

func (f *fakePathCatalog) FindByID(_ context.Context, id int) (*models.LessonPath, error) {
	for _, p := range f.paths {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func testFixture() (*ProgressService, *fakeProgressStore, *fakeStreakStore, *fakeBadgeStore) {
	paths := []models.LessonPath{
		{ID: 1, Title: "Budgeting Basics", Order: 1},
		{ID: 2, Title: "Saving & Emergency Funds", Order: 2},
	}
	lessons := []models.Lesson{
		{ID: 1, PathID: 1, Order: 1},
		{ID: 2, PathID: 1, Order: 2},
		{ID: 3, PathID: 2, Order: 1},
	}
	badges := []models.Badge{
		{ID: 1, Name: "First Steps", Criteria: models.BadgeCriteria{Type: models.CriteriaLessonsCompleted, Count: 1}},
		{ID: 2, Name: "Budget Master", Criteria: models.BadgeCriteria{Type: models.CriteriaPathCompleted, PathID: 1}},
		{ID: 3, Name: "Streak Starter", Criteria: models.BadgeCriteria{Type: models.CriteriaStreak, Count: 3}},
	}

	progress := newFakeProgressStore()
	streaks := newFakeStreakStore()
	badgeStore := newFakeBadgeStore(badges)
	svc := NewProgressService(progress, streaks, badgeStore, &fakeCatalog{lessons: lessons}, &fakePathCatalog{paths: paths})
	return svc, progress, streaks, badgeStore
}

func atDay(svc *ProgressService, offset int) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	when := base.AddDate(0, 0, offset)
	svc.now = func() time.Time { return when }
}

func TestStartLesson(t *testing.T) {
	svc, _, _, _ := testFixture()
	ctx := context.Background()

	progress, err := svc.StartLesson(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if progress.Attempts != 1 {
		t.Errorf("Expected attempts 1, got %d", progress.Attempts)
	}
	if progress.Completed {
		t.Error("Expected completed false on start")
	}
	if progress.Score != nil {
		t.Errorf("Expected nil score before completion, got %d", *progress.Score)
	}

	// Repeated starts only bump the counter.
	progress, err = svc.StartLesson(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if progress.Attempts != 2 {
		t.Errorf("Expected attempts 2, got %d", progress.Attempts)
	}
	if progress.Completed {
		t.Error("Expected completed to stay false")
	}
}

func TestStartLessonUnknownLesson(t *testing.T) {
	svc, _, _, _ := testFixture()

	_, err := svc.StartLesson(context.Background(), "u1", 999)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCompleteLessonRejectsOutOfRangeScore(t *testing.T) {
	svc, progress, streaks, badges := testFixture()
	ctx := context.Background()

	for _, score := range []int{150, -1, 101} {
		_, err := svc.CompleteLesson(ctx, "u1", 1, score)
		if !apperr.IsValidation(err) {
			t.Errorf("Score %d: expected validation error, got %v", score, err)
		}
	}

	// No partial writes.
	if rec, _ := progress.Find(ctx, "u1", 1); rec != nil {
		t.Error("Expected no progress record after rejected completion")
	}
	st, _ := streaks.Get(ctx, "u1")
	if st.CurrentStreak != 0 || st.LastLessonDate != nil {
		t.Error("Expected streak state untouched after rejected completion")
	}
	if earned, _ := badges.EarnedByUser(ctx, "u1"); len(earned) != 0 {
		t.Error("Expected no badges after rejected completion")
	}
}

func TestCompleteLessonUnknownLesson(t *testing.T) {
	svc, _, _, _ := testFixture()

	_, err := svc.CompleteLesson(context.Background(), "u1", 999, 50)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCompleteLessonLifecycle(t *testing.T) {
	svc, _, _, _ := testFixture()
	ctx := context.Background()
	atDay(svc, 0)

	if _, err := svc.StartLesson(ctx, "u1", 1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result, err := svc.CompleteLesson(ctx, "u1", 1, 85)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Progress.Completed {
		t.Error("Expected completed true")
	}
	if result.Progress.Score == nil || *result.Progress.Score != 85 {
		t.Errorf("Expected score 85, got %v", result.Progress.Score)
	}
	if result.Progress.Attempts != 1 {
		t.Errorf("Expected attempts 1, got %d", result.Progress.Attempts)
	}
	if result.Streak != 1 {
		t.Errorf("Expected streak 1, got %d", result.Streak)
	}

	// First completion earns the lessons_completed{1} badge.
	if len(result.NewBadges) != 1 || result.NewBadges[0].ID != 1 {
		t.Fatalf("Expected First Steps badge, got %v", result.NewBadges)
	}

	summary, err := svc.GetProgressSummary(ctx, "u1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if summary.CurrentStreak != 1 || summary.LongestStreak != 1 {
		t.Errorf("Expected streak 1/1, got %d/%d", summary.CurrentStreak, summary.LongestStreak)
	}
	if summary.TotalLessonsCompleted != 1 {
		t.Errorf("Expected 1 completed lesson, got %d", summary.TotalLessonsCompleted)
	}
	if len(summary.Badges) != 1 {
		t.Errorf("Expected 1 earned badge, got %d", len(summary.Badges))
	}
}

func TestCompleteLessonOverwritesScore(t *testing.T) {
	svc, _, _, _ := testFixture()
	ctx := context.Background()
	atDay(svc, 0)

	if _, err := svc.CompleteLesson(ctx, "u1", 1, 90); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	result, err := svc.CompleteLesson(ctx, "u1", 1, 40)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Progress.Score == nil || *result.Progress.Score != 40 {
		t.Errorf("Expected re-completion to overwrite score with 40, got %v", result.Progress.Score)
	}
	if !result.Progress.Completed {
		t.Error("Expected completed to stay true")
	}
}

func TestBadgeAwardedExactlyOnce(t *testing.T) {
	svc, _, _, _ := testFixture()
	ctx := context.Background()
	atDay(svc, 0)

	first, err := svc.CompleteLesson(ctx, "u1", 1, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(first.NewBadges) != 1 || first.NewBadges[0].ID != 1 {
		t.Fatalf("Expected First Steps on first completion, got %v", first.NewBadges)
	}

	second, err := svc.CompleteLesson(ctx, "u1", 3, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, b := range second.NewBadges {
		if b.ID == 1 {
			t.Error("Expected First Steps not to be re-awarded")
		}
	}

	summary, _ := svc.GetProgressSummary(ctx, "u1")
	seen := 0
	for _, b := range summary.Badges {
		if b.ID == 1 {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("Expected exactly one First Steps record, got %d", seen)
	}
}

func TestPathBadgeUnlocksOnLastLesson(t *testing.T) {
	svc, _, _, _ := testFixture()
	ctx := context.Background()
	atDay(svc, 0)

	first, err := svc.CompleteLesson(ctx, "u1", 1, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, b := range first.NewBadges {
		if b.ID == 2 {
			t.Error("Expected path badge to stay locked with one of two lessons done")
		}
	}

	second, err := svc.CompleteLesson(ctx, "u1", 2, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	found := false
	for _, b := range second.NewBadges {
		if b.ID == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected Budget Master to unlock on the last lesson of the path, got %v", second.NewBadges)
	}
}

func TestStreakAcrossDays(t *testing.T) {
	svc, _, _, _ := testFixture()
	ctx := context.Background()

	// D, D+1, D+2: streak climbs. Lesson choice doesn't matter.
	for i, want := range []int{1, 2, 3} {
		atDay(svc, i)
		result, err := svc.CompleteLesson(ctx, "u1", 1, 100)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if result.Streak != want {
			t.Errorf("Day %d: expected streak %d, got %d", i, want, result.Streak)
		}
	}

	// Streak badge for 3 consecutive days should have arrived on day 2.
	summary, _ := svc.GetProgressSummary(ctx, "u1")
	found := false
	for _, b := range summary.Badges {
		if b.ID == 3 {
			found = true
		}
	}
	if !found {
		t.Error("Expected Streak Starter after three consecutive days")
	}

	// A gap resets.
	atDay(svc, 6)
	result, err := svc.CompleteLesson(ctx, "u1", 1, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Streak != 1 {
		t.Errorf("Expected streak reset to 1 after gap, got %d", result.Streak)
	}

	summary, _ = svc.GetProgressSummary(ctx, "u1")
	if summary.LongestStreak != 3 {
		t.Errorf("Expected longest streak 3 to survive the reset, got %d", summary.LongestStreak)
	}
}

func TestSameDayCompletionLeavesStreak(t *testing.T) {
	svc, _, _, _ := testFixture()
	ctx := context.Background()
	atDay(svc, 0)

	if _, err := svc.CompleteLesson(ctx, "u1", 1, 100); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	result, err := svc.CompleteLesson(ctx, "u1", 2, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Streak != 1 {
		t.Errorf("Expected second same-day completion to leave streak at 1, got %d", result.Streak)
	}
}

func TestConcurrentCompletionsSameUser(t *testing.T) {
	svc, _, streaks, _ := testFixture()
	ctx := context.Background()
	atDay(svc, 0)

	var wg sync.WaitGroup
	for _, lessonID := range []int{1, 2, 3} {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := svc.CompleteLesson(ctx, "u1", id, 100); err != nil {
				t.Errorf("Lesson %d: unexpected error: %v", id, err)
			}
		}(lessonID)
	}
	wg.Wait()

	// Three same-day completions are one streak day, whatever the interleaving.
	st, _ := streaks.Get(ctx, "u1")
	if st.CurrentStreak != 1 {
		t.Errorf("Expected streak 1 after concurrent same-day completions, got %d", st.CurrentStreak)
	}
	if st.LongestStreak != 1 {
		t.Errorf("Expected longest streak 1, got %d", st.LongestStreak)
	}
}

func TestProgressSummaryCoversEveryPath(t *testing.T) {
	svc, _, _, _ := testFixture()
	ctx := context.Background()
	atDay(svc, 0)

	if _, err := svc.CompleteLesson(ctx, "u1", 1, 70); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	summary, err := svc.GetProgressSummary(ctx, "u1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(summary.PathProgress) != 2 {
		t.Fatalf("Expected every path reported, got %d entries", len(summary.PathProgress))
	}

	byPath := make(map[int]PathProgress)
	for _, pp := range summary.PathProgress {
		byPath[pp.Path.ID] = pp
	}
	if pp := byPath[1]; pp.CompletedCount != 1 || pp.TotalCount != 2 {
		t.Errorf("Path 1: expected 1/2, got %d/%d", pp.CompletedCount, pp.TotalCount)
	}
	if pp := byPath[2]; pp.CompletedCount != 0 || pp.TotalCount != 1 {
		t.Errorf("Path 2: expected 0/1, got %d/%d", pp.CompletedCount, pp.TotalCount)
	}
}
