package models

import "time"

// UserStreak holds the per-user daily streak counters. LastLessonDate is
// date-granular: it is always stored truncated to midnight UTC.
type UserStreak struct {
	UserID         string     `bson:"_id" json:"user_id"`
	CurrentStreak  int        `bson:"current_streak" json:"current_streak"`
	LongestStreak  int        `bson:"longest_streak" json:"longest_streak"`
	LastLessonDate *time.Time `bson:"last_lesson_date,omitempty" json:"last_lesson_date,omitempty"`
}
