package models

import "time"

// Badge criteria types
const (
	CriteriaLessonsCompleted = "lessons_completed"
	CriteriaPathCompleted    = "path_completed"
	CriteriaStreak           = "streak"
)

// BadgeCriteria is a tagged variant: Type selects which of the remaining
// fields is meaningful (Count for lessons_completed/streak, PathID for
// path_completed).
type BadgeCriteria struct {
	Type   string `bson:"type" json:"type"`
	Count  int    `bson:"count,omitempty" json:"count,omitempty"`
	PathID int    `bson:"path_id,omitempty" json:"pathId,omitempty"`
}

type Badge struct {
	ID          int           `bson:"_id" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description" json:"description"`
	Icon        string        `bson:"icon" json:"icon"`
	Color       string        `bson:"color" json:"color"`
	Criteria    BadgeCriteria `bson:"criteria" json:"criteria"`
}

// UserBadge records an earned badge. A badge is earned at most once per user;
// the repository enforces this with a unique (user_id, badge_id) index.
type UserBadge struct {
	ID       string    `bson:"_id,omitempty" json:"id,omitempty"`
	UserID   string    `bson:"user_id" json:"user_id"`
	BadgeID  int       `bson:"badge_id" json:"badge_id"`
	EarnedAt time.Time `bson:"earned_at" json:"earned_at"`
}
