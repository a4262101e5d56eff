package models

import "time"

// UserProgress tracks one user's state on one lesson. There is at most one
// record per (user_id, lesson_id); the repository enforces this with a unique
// index and upserts.
type UserProgress struct {
	ID          string     `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string     `bson:"user_id" json:"user_id"`
	LessonID    int        `bson:"lesson_id" json:"lesson_id"`
	Completed   bool       `bson:"completed" json:"completed"`
	Score       *int       `bson:"score,omitempty" json:"score"`
	Attempts    int        `bson:"attempts" json:"attempts"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}
